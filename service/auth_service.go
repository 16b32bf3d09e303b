package service

import (
	"context"
	"errors"
	"strings"

	"Gin_postgres_redis_lend_tool/metrics"
	"Gin_postgres_redis_lend_tool/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username is unknown, so both
// failure paths spend the same bcrypt time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// AuthService checks credentials and turns users into identities.
type AuthService struct {
	users  UserStore
	admins map[string]struct{}
	log    zerolog.Logger
}

func NewAuthService(users UserStore, adminUsernames []string, log zerolog.Logger) *AuthService {
	admins := make(map[string]struct{}, len(adminUsernames))
	for _, a := range adminUsernames {
		admins[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}
	return &AuthService{users: users, admins: admins, log: log}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login verifies username and password. Any mismatch returns ErrAuthentication.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, models.ErrAuthentication
	}

	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, models.ErrAuthentication
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, models.ErrAuthentication
	}

	// bookkeeping only; the login itself succeeded
	if err := s.users.TouchUserLogin(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Uint("user_id", user.ID).Msg("touch last login")
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, nil
}

// Resolve loads the user behind a session and derives its identity.
func (s *AuthService) Resolve(ctx context.Context, userID uint) (models.Identity, error) {
	u, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.Anonymous(), err
	}
	return s.IdentityOf(u), nil
}

func (s *AuthService) IdentityOf(u *models.User) models.Identity {
	_, listed := s.admins[strings.ToLower(u.Username)]
	return models.NewIdentity(u, listed)
}
