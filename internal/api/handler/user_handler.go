package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clearcrm/crm-api/internal/api/metrics"
	"github.com/clearcrm/crm-api/internal/core/domain"
	"github.com/clearcrm/crm-api/internal/core/ports"
)

// UserHandler handles the admin-facing user CRUD routes.
type UserHandler struct {
	users ports.UserRepository
}

func NewUserHandler(users ports.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type updateUserRequest struct {
	Name  json.RawMessage `json:"name"`
	Email json.RawMessage `json:"email"`
	Role  json.RawMessage `json:"role"`
}

// List returns all users, newest first.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns a single user by id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update applies a partial update to a user's name, email or role.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
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
	if req.Email != nil && !isNull(req.Email) {
		email, err := decodeString("email", req.Email)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		changes["email"] = email
	}
	if req.Role != nil && !isNull(req.Role) {
		role, err := decodeString("role", req.Role)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if !domain.ValidRole(role) {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("role must be one of: %s %s %s", domain.RoleUser, domain.RoleManager, domain.RoleAdmin))
		}
		changes["role"] = role
	}

	user, err := h.users.Update(c.Request().Context(), c.Param("id"), changes)
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("user", "update").Inc()
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user and echoes the deleted record back.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.users.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.RecordsWrittenTotal.WithLabelValues("user", "delete").Inc()
	return c.JSON(http.StatusOK, user)
}
