package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/clearcrm/crm-api/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, _ map[string]any) (*domain.User, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	u, err := r.FindByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	delete(r.users, id)
	return u, nil
}

func signToken(t *testing.T, secret, userID string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// runAuthenticate sends a request through the resolver and returns the
// identity the next handler observed, plus whether next was called at all.
func runAuthenticate(t *testing.T, repo *stubUserRepo, authHeader string) (*domain.User, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.User
	called := false
	mw := Authenticate("secret", repo)
	handler := mw(func(c echo.Context) error {
		called = true
		seen = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return seen, called
}

func TestAuthenticate_ValidToken(t *testing.T) {
	alice := &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleAdmin}
	repo := newStubUserRepo(alice)

	user, called := runAuthenticate(t, repo, "Bearer "+signToken(t, "secret", "u1", time.Hour))
	if !called {
		t.Fatalf("next not called")
	}
	if user == nil || user.ID != "u1" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", user)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	user, called := runAuthenticate(t, newStubUserRepo(), "")
	if !called {
		t.Fatalf("request must continue without a token")
	}
	if user != nil {
		t.Fatalf("expected no identity, got %+v", user)
	}
}

func TestAuthenticate_WrongScheme(t *testing.T) {
	user, called := runAuthenticate(t, newStubUserRepo(), "Token abc")
	if !called || user != nil {
		t.Fatalf("malformed header must degrade to no identity (called=%v user=%+v)", called, user)
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	alice := &domain.User{ID: "u1", Email: "alice@example.com"}
	repo := newStubUserRepo(alice)

	user, called := runAuthenticate(t, repo, "Bearer "+signToken(t, "secret", "u1", -time.Minute))
	if !called || user != nil {
		t.Fatalf("expired token must degrade to no identity (called=%v user=%+v)", called, user)
	}
}

func TestAuthenticate_BadSignature(t *testing.T) {
	alice := &domain.User{ID: "u1", Email: "alice@example.com"}
	repo := newStubUserRepo(alice)

	user, called := runAuthenticate(t, repo, "Bearer "+signToken(t, "other-secret", "u1", time.Hour))
	if !called || user != nil {
		t.Fatalf("bad signature must degrade to no identity (called=%v user=%+v)", called, user)
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	user, called := runAuthenticate(t, newStubUserRepo(), "Bearer "+signToken(t, "secret", "ghost", time.Hour))
	if !called || user != nil {
		t.Fatalf("token for a deleted user must degrade to no identity (called=%v user=%+v)", called, user)
	}
}

func TestAuthenticate_Idempotent(t *testing.T) {
	alice := &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}
	repo := newStubUserRepo(alice)
	token := "Bearer " + signToken(t, "secret", "u1", time.Hour)

	first, _ := runAuthenticate(t, repo, token)
	second, _ := runAuthenticate(t, repo, token)
	if first == nil || second == nil || first.ID != second.ID {
		t.Fatalf("verification must yield the same identity every time: %+v vs %+v", first, second)
	}
}
