package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "profilehub/internal/errors"
)

// identityKey is the echo context key holding the verified *Identity.
const identityKey = "identity"

// TokenVerifier verifies a bearer token.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// Guard rejects requests without a bearer token (401) or with a token that
// fails verification (403). On success the *Identity is stored in the context.
func Guard(verifier TokenVerifier) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  identityKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return verifier.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			mapped := apperrors.ErrUnauthorized
			if errors.Is(err, ErrInvalidToken) {
				mapped = apperrors.ErrForbidden
			}
			httpErr := apperrors.MapErrorToHTTP(mapped, 0)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// IdentityFromContext returns the identity stored by Guard.
func IdentityFromContext(c echo.Context) (*Identity, bool) {
	identity, ok := c.Get(identityKey).(*Identity)
	return identity, ok && identity != nil
}
