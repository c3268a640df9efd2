package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clearcrm/crm-api/internal/api/metrics"
	"github.com/clearcrm/crm-api/internal/core/domain"
	"github.com/clearcrm/crm-api/internal/core/ports"
)

// DealHandler handles CRUD for deals.
type DealHandler struct {
	deals ports.DealRepository
}

func NewDealHandler(deals ports.DealRepository) *DealHandler {
	return &DealHandler{deals: deals}
}

// Amount is a RawMessage so numeric strings ("50000") are accepted the same
// way as numbers, and so a non-numeric value yields the canonical
// "amount must be a number" instead of a bind failure.
type createDealRequest struct {
	Name      string          `json:"name" validate:"required"`
	Amount    json.RawMessage `json:"amount" validate:"required"`
	Stage     string          `json:"stage" validate:"required"`
	CloseDate json.RawMessage `json:"closeDate"`
	AccountID *string         `json:"accountId"`
	OwnerID   *string         `json:"ownerId"`
}

type updateDealRequest struct {
	Name      json.RawMessage `json:"name"`
	Amount    json.RawMessage `json:"amount"`
	Stage     json.RawMessage `json:"stage"`
	CloseDate json.RawMessage `json:"closeDate"`
	AccountID json.RawMessage `json:"accountId"`
	OwnerID   json.RawMessage `json:"ownerId"`
}

func stagesMessage() string {
	stages := make([]string, len(domain.DealStages))
	for i, s := range domain.DealStages {
		stages[i] = string(s)
	}
	return "stage must be one of: " + strings.Join(stages, " ")
}

// List returns all deals with their account, owner and activities.
//
// @Summary      List deals
// @Tags         deals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Deal
// @Failure      401  {object}  errorResponse
// @Router       /api/deals [get]
func (h *DealHandler) List(c echo.Context) error {
	deals, err := h.deals.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deals)
}

// Create creates a deal.
//
// @Summary      Create a deal
// @Tags         deals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDealRequest  true  "Deal details"
// @Success      201   {object}  domain.Deal
// @Failure      400   {object}  errorResponse
// @Router       /api/deals [post]
func (h *DealHandler) Create(c echo.Context) error {
	var req createDealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	amount, err := decodeNumber("amount", req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !domain.ValidDealStage(req.Stage) {
		return echo.NewHTTPError(http.StatusBadRequest, stagesMessage())
	}

	deal := &domain.Deal{
		Name:      req.Name,
		Amount:    amount,
		Stage:     domain.DealStage(req.Stage),
		AccountID: req.AccountID,
		OwnerID:   req.OwnerID,
	}
	if req.CloseDate != nil && !isNull(req.CloseDate) {
		closeDate, err := decodeTime("closeDate", req.CloseDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		deal.CloseDate = &closeDate
	}

	if err := h.deals.Create(c.Request().Context(), deal); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("deal", "create").Inc()
	return c.JSON(http.StatusCreated, deal)
}

// Get returns a single deal with its account, owner and activities.
//
// @Summary      Get a deal
// @Tags         deals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Deal id"
// @Success      200  {object}  domain.Deal
// @Failure      404  {object}  errorResponse
// @Router       /api/deals/{id} [get]
func (h *DealHandler) Get(c echo.Context) error {
	deal, err := h.deals.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deal)
}

// Update applies a partial update. A JSON null clears closeDate or a
// reference; amount and stage are validated the same way as on create.
//
// @Summary      Update a deal
// @Tags         deals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Deal id"
// @Param        body  body      updateDealRequest  true  "Fields to update"
// @Success      200   {object}  domain.Deal
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/deals/{id} [patch]
func (h *DealHandler) Update(c echo.Context) error {
	var req updateDealRequest
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
	if req.Amount != nil && !isNull(req.Amount) {
		amount, err := decodeNumber("amount", req.Amount)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		changes["amount"] = amount
	}
	if req.Stage != nil && !isNull(req.Stage) {
		stage, err := decodeString("stage", req.Stage)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if !domain.ValidDealStage(stage) {
			return echo.NewHTTPError(http.StatusBadRequest, stagesMessage())
		}
		changes["stage"] = stage
	}
	if req.CloseDate != nil {
		if isNull(req.CloseDate) {
			changes["close_date"] = nil
		} else {
			closeDate, err := decodeTime("closeDate", req.CloseDate)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			changes["close_date"] = closeDate
		}
	}
	for _, f := range []struct {
		column string
		name   string
		raw    json.RawMessage
	}{
		{"account_id", "accountId", req.AccountID},
		{"owner_id", "ownerId", req.OwnerID},
	} {
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

	deal, err := h.deals.Update(c.Request().Context(), c.Param("id"), changes)
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("deal", "update").Inc()
	return c.JSON(http.StatusOK, deal)
}

// Delete removes a deal.
//
// @Summary      Delete a deal
// @Tags         deals
// @Security     BearerAuth
// @Param        id  path  string  true  "Deal id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/deals/{id} [delete]
func (h *DealHandler) Delete(c echo.Context) error {
	if err := h.deals.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("deal", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
