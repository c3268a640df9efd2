package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clearcrm/crm-api/internal/core/domain"
)

type stubDealRepo struct {
	created *domain.Deal
	changes map[string]any
	err     error
}

func (r *stubDealRepo) List(context.Context) ([]domain.Deal, error) {
	return []domain.Deal{}, r.err
}

func (r *stubDealRepo) Create(_ context.Context, deal *domain.Deal) error {
	if r.err != nil {
		return r.err
	}
	deal.ID = "d1"
	r.created = deal
	return nil
}

func (r *stubDealRepo) FindByID(_ context.Context, id string) (*domain.Deal, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &domain.Deal{ID: id, Name: "Big deal"}, nil
}

func (r *stubDealRepo) Update(_ context.Context, id string, changes map[string]any) (*domain.Deal, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.changes = changes
	return &domain.Deal{ID: id, Name: "Big deal"}, nil
}

func (r *stubDealRepo) Delete(context.Context, string) error { return r.err }

func (r *stubDealRepo) OwnerID(context.Context, string) (string, error) {
	return "", r.err
}

func TestDealHandler_Create_AcceptsNumericString(t *testing.T) {
	repo := &stubDealRepo{}
	h := NewDealHandler(repo)

	c, rec := newJSONContext(t, http.MethodPost, "/api/deals",
		`{"name":"Big deal","amount":"50000","stage":"NEW"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if repo.created.Amount != 50000 {
		t.Fatalf("expected amount 50000, got %v", repo.created.Amount)
	}
}

func TestDealHandler_Create_RejectsBadAmount(t *testing.T) {
	h := NewDealHandler(&stubDealRepo{})

	c, _ := newJSONContext(t, http.MethodPost, "/api/deals",
		`{"name":"Big deal","amount":"lots","stage":"NEW"}`)
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if he.Message != "amount must be a number" {
		t.Fatalf("expected amount message, got %v", he.Message)
	}
}

func TestDealHandler_Create_RejectsUnknownStage(t *testing.T) {
	h := NewDealHandler(&stubDealRepo{})

	c, _ := newJSONContext(t, http.MethodPost, "/api/deals",
		`{"name":"Big deal","amount":1000,"stage":"SHIPPED"}`)
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	msg, _ := he.Message.(string)
	if msg == "" || msg[:21] != "stage must be one of:" {
		t.Fatalf("expected stage message, got %v", he.Message)
	}
}

func TestDealHandler_Update_RejectsBadAmount(t *testing.T) {
	h := NewDealHandler(&stubDealRepo{})

	c, _ := newJSONContext(t, http.MethodPatch, "/api/deals/d1", `{"amount":"not-a-number"}`)
	c.SetParamNames("id")
	c.SetParamValues("d1")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if he.Message != "amount must be a number" {
		t.Fatalf("expected amount message, got %v", he.Message)
	}
}

func TestDealHandler_Update_NullClearsCloseDateAndRefs(t *testing.T) {
	repo := &stubDealRepo{}
	h := NewDealHandler(repo)

	c, _ := newJSONContext(t, http.MethodPatch, "/api/deals/d1",
		`{"closeDate":null,"accountId":null,"stage":"WON"}`)
	c.SetParamNames("id")
	c.SetParamValues("d1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if v, ok := repo.changes["close_date"]; !ok || v != nil {
		t.Fatalf("expected close_date cleared, got %v", repo.changes)
	}
	if v, ok := repo.changes["account_id"]; !ok || v != nil {
		t.Fatalf("expected account_id cleared, got %v", repo.changes)
	}
	if repo.changes["stage"] != "WON" {
		t.Fatalf("expected stage WON, got %v", repo.changes)
	}
}

func TestDealHandler_Update_BadCloseDate(t *testing.T) {
	h := NewDealHandler(&stubDealRepo{})

	c, _ := newJSONContext(t, http.MethodPatch, "/api/deals/d1", `{"closeDate":"soon"}`)
	c.SetParamNames("id")
	c.SetParamValues("d1")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if he.Message != "closeDate must be a valid date" {
		t.Fatalf("expected closeDate message, got %v", he.Message)
	}
}

func TestDealHandler_Get_NotFound(t *testing.T) {
	h := NewDealHandler(&stubDealRepo{err: domain.ErrDealNotFound})

	c, _ := newJSONContext(t, http.MethodGet, "/api/deals/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrDealNotFound) {
		t.Fatalf("expected ErrDealNotFound, got %v", err)
	}
}
