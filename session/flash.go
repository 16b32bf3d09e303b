package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Flash categories, matching the page styles.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

// Flash is a one-shot status message shown on the next rendered page.
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

type FlashStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFlashStore(rdb *redis.Client, ttl time.Duration) *FlashStore {
	return &FlashStore{rdb: rdb, ttl: ttl}
}

func flashKey(id string) string { return fmt.Sprintf("app:flash:%s", id) }

func (s *FlashStore) Add(ctx context.Context, id string, f Flash) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, flashKey(id), b)
	pipe.Expire(ctx, flashKey(id), s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Pop returns queued messages in insertion order and clears them.
func (s *FlashStore) Pop(ctx context.Context, id string) ([]Flash, error) {
	pipe := s.rdb.TxPipeline()
	lr := pipe.LRange(ctx, flashKey(id), 0, -1)
	pipe.Del(ctx, flashKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	raw := lr.Val()
	out := make([]Flash, 0, len(raw))
	for _, r := range raw {
		var f Flash
		if err := json.Unmarshal([]byte(r), &f); err != nil {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
