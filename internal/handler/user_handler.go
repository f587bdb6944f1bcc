package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"profilehub/internal/auth"
	apperrors "profilehub/internal/errors"
	"profilehub/internal/service"
)

// UserHandler serves the authenticated profile.
type UserHandler struct {
	svc service.UserService
	log logrus.FieldLogger
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// ProfileResponse is the public view of a user.
type ProfileResponse struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	City           string `json:"city"`
	MobileNumber   string `json:"mobileNumber"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// DashboardResponse wraps the profile.
type DashboardResponse struct {
	Message string          `json:"message"`
	User    ProfileResponse `json:"user"`
}

// Dashboard godoc
// @Summary Get the logged-in user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *UserHandler) Dashboard(c echo.Context) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fail(c, h.log, "dashboard", apperrors.ErrUnauthorized, http.StatusNotFound)
	}

	user, err := h.svc.GetProfile(c.Request().Context(), identity.UserID)
	if err != nil {
		return fail(c, h.log, "dashboard", err, http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		Message: "User data fetched successfully",
		User: ProfileResponse{
			Username:       user.Username,
			Email:          user.Email,
			City:           user.City,
			MobileNumber:   user.MobileNumber,
			ProfilePicture: user.ProfilePicturePath,
		},
	})
}
