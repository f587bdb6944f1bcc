package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "profilehub/internal/errors"
)

// fail maps err onto the error taxonomy. Unclassified errors are logged with
// their cause and answered with a generic 500.
func fail(c echo.Context, log logrus.FieldLogger, op string, err error, notFoundStatus int) error {
	httpErr := apperrors.MapErrorToHTTP(err, notFoundStatus)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.WithError(err).
			WithField("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Errorf("%s failed", op)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Message: message,
		Code:    code,
	})
}

// validationMessage prefers the "required" message when any field is missing.
func validationMessage(err error, requiredMsg string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return requiredMsg
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return requiredMsg
		}
	}
	for _, fe := range verrs {
		if fe.Tag() == "email" {
			return "Please provide a valid email address."
		}
	}
	return requiredMsg
}
