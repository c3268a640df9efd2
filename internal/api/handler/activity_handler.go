package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clearcrm/crm-api/internal/api/metrics"
	"github.com/clearcrm/crm-api/internal/core/domain"
	"github.com/clearcrm/crm-api/internal/core/ports"
)

// ActivityHandler handles CRUD for activities.
type ActivityHandler struct {
	activities ports.ActivityRepository
}

func NewActivityHandler(activities ports.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

type createActivityRequest struct {
	Type      string          `json:"type" validate:"required"`
	Subject   string          `json:"subject" validate:"required"`
	Body      *string         `json:"body"`
	DueAt     json.RawMessage `json:"dueAt"`
	Completed *bool           `json:"completed"`
	OwnerID   *string         `json:"ownerId"`
	DealID    *string         `json:"dealId"`
	ContactID *string         `json:"contactId"`
	AccountID *string         `json:"accountId"`
}

type updateActivityRequest struct {
	Type      json.RawMessage `json:"type"`
	Subject   json.RawMessage `json:"subject"`
	Body      json.RawMessage `json:"body"`
	DueAt     json.RawMessage `json:"dueAt"`
	Completed json.RawMessage `json:"completed"`
	OwnerID   json.RawMessage `json:"ownerId"`
	DealID    json.RawMessage `json:"dealId"`
	ContactID json.RawMessage `json:"contactId"`
	AccountID json.RawMessage `json:"accountId"`
}

const activityTypesMessage = "type must be one of: NOTE TASK CALL MEETING"

// List returns all activities with their owner, deal, contact and account.
//
// @Summary      List activities
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Activity
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
	activities, err := h.activities.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activities)
}

// Create creates an activity.
//
// @Summary      Create an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createActivityRequest  true  "Activity details"
// @Success      201   {object}  domain.Activity
// @Failure      400   {object}  errorResponse
// @Router       /api/activities [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	var req createActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !domain.ValidActivityType(req.Type) {
		return echo.NewHTTPError(http.StatusBadRequest, activityTypesMessage)
	}

	activity := &domain.Activity{
		Type:      domain.ActivityType(req.Type),
		Subject:   req.Subject,
		Body:      req.Body,
		OwnerID:   req.OwnerID,
		DealID:    req.DealID,
		ContactID: req.ContactID,
		AccountID: req.AccountID,
	}
	if req.Completed != nil {
		activity.Completed = *req.Completed
	}
	if req.DueAt != nil && !isNull(req.DueAt) {
		dueAt, err := decodeTime("dueAt", req.DueAt)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		activity.DueAt = &dueAt
	}

	if err := h.activities.Create(c.Request().Context(), activity); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("activity", "create").Inc()
	return c.JSON(http.StatusCreated, activity)
}

// Get returns a single activity with its related records.
//
// @Summary      Get an activity
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Activity id"
// @Success      200  {object}  domain.Activity
// @Failure      404  {object}  errorResponse
// @Router       /api/activities/{id} [get]
func (h *ActivityHandler) Get(c echo.Context) error {
	activity, err := h.activities.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activity)
}

// Update applies a partial update. A JSON null clears body, dueAt or any of
// the references.
//
// @Summary      Update an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Activity id"
// @Param        body  body      updateActivityRequest  true  "Fields to update"
// @Success      200   {object}  domain.Activity
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/activities/{id} [patch]
func (h *ActivityHandler) Update(c echo.Context) error {
	var req updateActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	changes := map[string]any{}
	if req.Type != nil && !isNull(req.Type) {
		typ, err := decodeString("type", req.Type)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if !domain.ValidActivityType(typ) {
			return echo.NewHTTPError(http.StatusBadRequest, activityTypesMessage)
		}
		changes["type"] = typ
	}
	if req.Subject != nil && !isNull(req.Subject) {
		subject, err := decodeString("subject", req.Subject)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		changes["subject"] = subject
	}
	if req.Completed != nil && !isNull(req.Completed) {
		completed, err := decodeBool("completed", req.Completed)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		changes["completed"] = completed
	}
	if req.DueAt != nil {
		if isNull(req.DueAt) {
			changes["due_at"] = nil
		} else {
			dueAt, err := decodeTime("dueAt", req.DueAt)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			changes["due_at"] = dueAt
		}
	}
	if req.Body != nil {
		if isNull(req.Body) {
			changes["body"] = nil
		} else {
			body, err := decodeString("body", req.Body)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			changes["body"] = body
		}
	}
	for _, f := range []struct {
		column string
		name   string
		raw    json.RawMessage
	}{
		{"owner_id", "ownerId", req.OwnerID},
		{"deal_id", "dealId", req.DealID},
		{"contact_id", "contactId", req.ContactID},
		{"account_id", "accountId", req.AccountID},
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

	activity, err := h.activities.Update(c.Request().Context(), c.Param("id"), changes)
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("activity", "update").Inc()
	return c.JSON(http.StatusOK, activity)
}

// Delete removes an activity.
//
// @Summary      Delete an activity
// @Tags         activities
// @Security     BearerAuth
// @Param        id  path  string  true  "Activity id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/activities/{id} [delete]
func (h *ActivityHandler) Delete(c echo.Context) error {
	if err := h.activities.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("activity", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
