// app/seenmw.go
package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// TouchLastSeen records activity of signed-in users at most once per throttle window.
func TouchLastSeen(a *App, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if id.UserID == 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("user:lastseen:%d", id.UserID)
		if ok, _ := a.RDB.SetNX(c, key, "1", throttle).Result(); ok {
			if err := a.Repo.TouchUserSeen(c, id.UserID); err != nil {
				a.Log.Warn().Err(err).Uint("user_id", id.UserID).Msg("touch last seen")
			}
		}
		c.Next()
	}
}
