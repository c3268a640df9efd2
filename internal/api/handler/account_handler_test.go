package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clearcrm/crm-api/internal/core/domain"
)

type stubAccountRepo struct {
	created *domain.Account
	changes map[string]any
	deleted string
	err     error
}

func (r *stubAccountRepo) List(context.Context) ([]domain.Account, error) {
	return []domain.Account{}, r.err
}

func (r *stubAccountRepo) ListByOwner(context.Context, string) ([]domain.Account, error) {
	return []domain.Account{}, r.err
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) error {
	if r.err != nil {
		return r.err
	}
	account.ID = "a1"
	r.created = account
	return nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &domain.Account{ID: id, Name: "Acme"}, nil
}

func (r *stubAccountRepo) Update(_ context.Context, id string, changes map[string]any) (*domain.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.changes = changes
	return &domain.Account{ID: id, Name: "Acme"}, nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	r.deleted = id
	return r.err
}

func (r *stubAccountRepo) OwnerID(context.Context, string) (string, error) {
	return "", r.err
}

func TestAccountHandler_Create_DefaultsToNull(t *testing.T) {
	repo := &stubAccountRepo{}
	h := NewAccountHandler(repo)

	c, rec := newJSONContext(t, http.MethodPost, "/api/accounts", `{"name":"Acme"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["name"] != "Acme" {
		t.Fatalf("unexpected name: %v", body)
	}
	for _, key := range []string{"website", "industry", "ownerId"} {
		v, present := body[key]
		if !present || v != nil {
			t.Fatalf("expected %s to serialize as null, got %v", key, body)
		}
	}
}

func TestAccountHandler_Create_RequiresName(t *testing.T) {
	h := NewAccountHandler(&stubAccountRepo{})

	c, _ := newJSONContext(t, http.MethodPost, "/api/accounts", `{"website":"acme.io"}`)
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAccountHandler_Update_NullClearsFields(t *testing.T) {
	repo := &stubAccountRepo{}
	h := NewAccountHandler(repo)

	c, _ := newJSONContext(t, http.MethodPatch, "/api/accounts/a1",
		`{"website":null,"industry":"Software","ownerId":null}`)
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if v, ok := repo.changes["website"]; !ok || v != nil {
		t.Fatalf("expected website cleared, got %v", repo.changes)
	}
	if v, ok := repo.changes["owner_id"]; !ok || v != nil {
		t.Fatalf("expected owner_id cleared, got %v", repo.changes)
	}
	if repo.changes["industry"] != "Software" {
		t.Fatalf("expected industry set, got %v", repo.changes)
	}
	if _, touched := repo.changes["name"]; touched {
		t.Fatalf("absent fields must not be touched, got %v", repo.changes)
	}
}

func TestAccountHandler_Update_RejectsNonStringWebsite(t *testing.T) {
	h := NewAccountHandler(&stubAccountRepo{})

	c, _ := newJSONContext(t, http.MethodPatch, "/api/accounts/a1", `{"website":42}`)
	c.SetParamNames("id")
	c.SetParamValues("a1")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAccountHandler_Delete_NotFound(t *testing.T) {
	h := NewAccountHandler(&stubAccountRepo{err: domain.ErrAccountNotFound})

	c, _ := newJSONContext(t, http.MethodDelete, "/api/accounts/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Delete(c); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountHandler_Delete_Success(t *testing.T) {
	repo := &stubAccountRepo{}
	h := NewAccountHandler(repo)

	c, rec := newJSONContext(t, http.MethodDelete, "/api/accounts/a1", "")
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if repo.deleted != "a1" {
		t.Fatalf("expected delete of a1, got %q", repo.deleted)
	}
}
