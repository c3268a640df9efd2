package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/clearcrm/crm-api/internal/core/domain"
	"github.com/clearcrm/crm-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by email
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Email]; exists {
		return domain.ErrEmailTaken
	}
	if user.ID == "" {
		user.ID = "id-" + user.Email
	}
	clone := *user
	r.users[user.Email] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) { return nil, nil }

func (r *stubUserRepo) Update(_ context.Context, id string, _ map[string]any) (*domain.User, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	return r.FindByID(context.Background(), id)
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	user, token, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "secret",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("registration must log the user in")
	}
	if user.PasswordHash == "secret" {
		t.Fatalf("password must be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("new users must start as USER, got %s", user.Role)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	input := ports.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret"}
	if _, _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	registered, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "Carol", Email: "carol@x.com", Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["userId"] != registered.ID {
		t.Fatalf("token must carry the user id, got %v", claims["userId"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("token missing expiry: %v", err)
	}
	ttl := time.Until(exp.Time)
	if ttl < 59*time.Minute || ttl > time.Hour {
		t.Fatalf("expected roughly one hour of validity, got %v", ttl)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{Name: "Dave", Email: "dave@x.com", Password: "goodpass"})
	if _, _, err := svc.Login(context.Background(), "dave@x.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	// Unknown email and wrong password must be indistinguishable.
	if _, _, err := svc.Login(context.Background(), "ghost@x.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
