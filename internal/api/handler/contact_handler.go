package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clearcrm/crm-api/internal/api/metrics"
	"github.com/clearcrm/crm-api/internal/core/domain"
	"github.com/clearcrm/crm-api/internal/core/ports"
)

// ContactHandler handles CRUD for contacts.
type ContactHandler struct {
	contacts ports.ContactRepository
}

func NewContactHandler(contacts ports.ContactRepository) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type createContactRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Title     *string `json:"title"`
	AccountID *string `json:"accountId"`
	OwnerID   *string `json:"ownerId"`
}

type updateContactRequest struct {
	FirstName json.RawMessage `json:"firstName"`
	LastName  json.RawMessage `json:"lastName"`
	Email     json.RawMessage `json:"email"`
	Phone     json.RawMessage `json:"phone"`
	Title     json.RawMessage `json:"title"`
	AccountID json.RawMessage `json:"accountId"`
	OwnerID   json.RawMessage `json:"ownerId"`
}

// List returns all contacts with their account, owner and activities.
//
// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Contact
// @Failure      401  {object}  errorResponse
// @Router       /api/contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	contacts, err := h.contacts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contacts)
}

// Create creates a contact.
//
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createContactRequest  true  "Contact details"
// @Success      201   {object}  domain.Contact
// @Failure      400   {object}  errorResponse
// @Router       /api/contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req createContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contact := &domain.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Title:     req.Title,
		AccountID: req.AccountID,
		OwnerID:   req.OwnerID,
	}
	if err := h.contacts.Create(c.Request().Context(), contact); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("contact", "create").Inc()
	return c.JSON(http.StatusCreated, contact)
}

// Get returns a single contact with its account, owner and activities.
//
// @Summary      Get a contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contact id"
// @Success      200  {object}  domain.Contact
// @Failure      404  {object}  errorResponse
// @Router       /api/contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	contact, err := h.contacts.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// Update applies a partial update. A JSON null clears any nullable field.
//
// @Summary      Update a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Contact id"
// @Param        body  body      updateContactRequest  true  "Fields to update"
// @Success      200   {object}  domain.Contact
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/contacts/{id} [patch]
func (h *ContactHandler) Update(c echo.Context) error {
	var req updateContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	changes := map[string]any{}
	required := []struct {
		column string
		name   string
		raw    json.RawMessage
	}{
		{"first_name", "firstName", req.FirstName},
		{"last_name", "lastName", req.LastName},
	}
	for _, f := range required {
		if f.raw == nil || isNull(f.raw) {
			continue
		}
		value, err := decodeString(f.name, f.raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		changes[f.column] = value
	}

	nullable := []struct {
		column string
		name   string
		raw    json.RawMessage
	}{
		{"email", "email", req.Email},
		{"phone", "phone", req.Phone},
		{"title", "title", req.Title},
		{"account_id", "accountId", req.AccountID},
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

	contact, err := h.contacts.Update(c.Request().Context(), c.Param("id"), changes)
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("contact", "update").Inc()
	return c.JSON(http.StatusOK, contact)
}

// Delete removes a contact.
//
// @Summary      Delete a contact
// @Tags         contacts
// @Security     BearerAuth
// @Param        id  path  string  true  "Contact id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.contacts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("contact", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
