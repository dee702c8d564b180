package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuskit/provisioning-system/internal/core/domain"
	"github.com/campuskit/provisioning-system/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type listUsersResponse struct {
	Total int           `json:"total"`
	Users []domain.User `json:"users"`
}

// List handles GET /v1/users. Password hashes are never serialized.
//
// @Summary      List provisioned users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(http.StatusOK, listUsersResponse{Total: len(users), Users: users})
}

// Get handles GET /v1/users/:username.
//
// @Summary      Get one user by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  domain.User
// @Failure      404       {object}  errorResponse
// @Router       /v1/users/{username} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
