package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"Gin_postgres_redis_lend_tool/models"

	"github.com/rs/zerolog"
)

func newAuthFixture(t *testing.T, admins ...string) (*AuthService, *stubStore) {
	t.Helper()
	store := newStubStore()
	hash, err := HashPassword("student")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	store.users["student1"] = &models.User{ID: 1, Username: "student1", PasswordHash: hash}
	store.users["boss"] = &models.User{ID: 2, Username: "boss", PasswordHash: hash, IsAdmin: true}
	return NewAuthService(store, admins, zerolog.Nop()), store
}

func TestAuthService_Login(t *testing.T) {
	svc, store := newAuthFixture(t)

	u, err := svc.Login(context.Background(), " student1 ", "student")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.ID != 1 {
		t.Fatalf("expected user 1, got %d", u.ID)
	}
	if len(store.touched) != 1 || store.touched[0] != 1 {
		t.Fatalf("login bookkeeping not recorded: %v", store.touched)
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, store := newAuthFixture(t)

	cases := []struct{ user, pass string }{
		{"student1", "wrong"},
		{"nobody", "student"},
		{"", "student"},
		{"student1", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Login(context.Background(), tc.user, tc.pass); !errors.Is(err, models.ErrAuthentication) {
			t.Fatalf("login(%q, %q): expected ErrAuthentication, got %v", tc.user, tc.pass, err)
		}
	}
	if len(store.touched) != 0 {
		t.Fatalf("failed logins must not be recorded")
	}
}

func TestAuthService_Resolve(t *testing.T) {
	svc, _ := newAuthFixture(t, "Student1")

	id, err := svc.Resolve(context.Background(), 1)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !id.IsAdmin() || id.Username != "student1" {
		t.Fatalf("admin list should grant administrator: %+v", id)
	}

	id, _ = svc.Resolve(context.Background(), 2)
	if !id.IsAdmin() {
		t.Fatalf("is_admin flag should grant administrator")
	}

	id, err = svc.Resolve(context.Background(), 99)
	if !errors.Is(err, models.ErrNotFound) || !id.IsAnonymous() {
		t.Fatalf("unknown user resolves to anonymous with ErrNotFound, got %+v %v", id, err)
	}
}

func TestAuthService_IdentityOf_Plain(t *testing.T) {
	svc, store := newAuthFixture(t)
	id := svc.IdentityOf(store.users["student1"])
	if id.Capability != models.CapAuthenticated || id.IsAdmin() {
		t.Fatalf("expected plain authenticated identity, got %+v", id)
	}
}

func TestAuthService_Login_BookkeepingErrorLogged(t *testing.T) {
	store := newStubStore()
	hash, err := HashPassword("student")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	store.users["student1"] = &models.User{ID: 1, Username: "student1", PasswordHash: hash}
	store.touchErr = errors.New("database is locked")

	var buf bytes.Buffer
	svc := NewAuthService(store, nil, zerolog.New(&buf))

	if _, err := svc.Login(context.Background(), "student1", "student"); err != nil {
		t.Fatalf("a bookkeeping failure must not fail the login: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, "database is locked") {
		t.Fatalf("expected a warn line with the error, got %q", out)
	}
}
