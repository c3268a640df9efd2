package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clearcrm/crm-api/internal/api/metrics"
	"github.com/clearcrm/crm-api/internal/core/domain"
	"github.com/clearcrm/crm-api/internal/core/ports"
)

// AccountHandler handles CRUD for accounts.
type AccountHandler struct {
	accounts ports.AccountRepository
}

func NewAccountHandler(accounts ports.AccountRepository) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type createAccountRequest struct {
	Name     string  `json:"name" validate:"required"`
	Website  *string `json:"website"`
	Industry *string `json:"industry"`
	OwnerID  *string `json:"ownerId"`
}

type updateAccountRequest struct {
	Name     json.RawMessage `json:"name"`
	Website  json.RawMessage `json:"website"`
	Industry json.RawMessage `json:"industry"`
	OwnerID  json.RawMessage `json:"ownerId"`
}

// List returns all accounts, newest first.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Account
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// ListByOwner returns the accounts owned by the given user, newest first.
//
// @Summary      List accounts owned by a user
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "Owning user id"
// @Success      200     {array}   domain.Account
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/accounts/user/{userId} [get]
func (h *AccountHandler) ListByOwner(c echo.Context) error {
	accounts, err := h.accounts.ListByOwner(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Create creates an account. Website and industry default to null.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  domain.Account
// @Failure      400   {object}  errorResponse
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account := &domain.Account{
		Name:     req.Name,
		Website:  req.Website,
		Industry: req.Industry,
		OwnerID:  req.OwnerID,
	}
	if err := h.accounts.Create(c.Request().Context(), account); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("account", "create").Inc()
	return c.JSON(http.StatusCreated, account)
}

// Get returns a single account with its contacts, deals, activities and owner.
//
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  domain.Account
// @Failure      404  {object}  errorResponse
// @Router       /api/accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.accounts.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Update applies a partial update. A JSON null clears website, industry or the
// owner reference.
//
// @Summary      Update an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Account id"
// @Param        body  body      updateAccountRequest  true  "Fields to update"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/accounts/{id} [patch]
func (h *AccountHandler) Update(c echo.Context) error {
	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	changes := map[string]any{}
	if req.Name != nil && !isNull(req.Name) {
		name, err := decodeString("name", req.Name)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		changes["name"] = name
	}
	nullable := []struct {
		column string
		name   string
		raw    json.RawMessage
	}{
		{"website", "website", req.Website},
		{"industry", "industry", req.Industry},
		{"owner_id", "ownerId", req.OwnerID},
	}
	for _, f := range nullable {
		if f.raw == nil {
			continue
		}
		if isNull(f.raw) {
			changes[f.column] = nil
			continue
		}
		value, err := decodeString(f.name, f.raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		changes[f.column] = value
	}

	account, err := h.accounts.Update(c.Request().Context(), c.Param("id"), changes)
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("account", "update").Inc()
	return c.JSON(http.StatusOK, account)
}

// Delete removes an account.
//
// @Summary      Delete an account
// @Tags         accounts
// @Security     BearerAuth
// @Param        id  path  string  true  "Account id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := h.accounts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("account", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
