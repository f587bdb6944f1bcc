package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "profilehub/internal/errors"
	"profilehub/internal/service"
)

// profilePictureField is the multipart field carrying the optional image.
const profilePictureField = "profilePicture"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// SignupRequest represents the signup form.
type SignupRequest struct {
	Username     string `form:"username" json:"username" validate:"required"`
	Email        string `form:"email" json:"email" validate:"required,email"`
	City         string `form:"city" json:"city" validate:"required"`
	MobileNumber string `form:"mobileNumber" json:"mobileNumber" validate:"required"`
	Password     string `form:"password" json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// SignupResponse acknowledges a registration.
type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param city formData string true "City"
// @Param mobileNumber formData string true "Mobile number"
// @Param password formData string true "Password"
// @Param profilePicture formData file false "Profile picture (jpeg, jpg, png, gif)"
// @Success 201 {object} SignupResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Failure 415 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(validationMessage(err, "All fields are required."), "VALIDATION_FAILED")
	}

	input := service.SignupInput{
		Username:     req.Username,
		Email:        req.Email,
		City:         req.City,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
	}

	fh, err := c.FormFile(profilePictureField)
	switch {
	case err == nil:
		file, err := fh.Open()
		if err != nil {
			return fail(c, h.log, "signup", fmt.Errorf("open upload: %w", err), http.StatusNotFound)
		}
		defer file.Close()
		input.Picture = &service.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Body:        file,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return badRequest("invalid profile picture upload", "INVALID_REQUEST")
	}

	if _, err := h.authService.Signup(c.Request().Context(), input); err != nil {
		return fail(c, h.log, "signup", err, http.StatusNotFound)
	}

	return c.JSON(http.StatusCreated, SignupResponse{
		Success: true,
		Message: "User registered successfully!",
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	const requiredMsg = "Username and Password are required."

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(requiredMsg, "VALIDATION_FAILED")
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return badRequest(requiredMsg, "VALIDATION_FAILED")
		}
		return fail(c, h.log, "login", err, http.StatusBadRequest)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login successful!",
		Token:   token,
	})
}
