package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/clearcrm/crm-api/internal/core/domain"
	"github.com/clearcrm/crm-api/internal/core/ports"
)

// userContextKey is where the resolved identity lives on the echo context.
const userContextKey = "user"

// CurrentUser returns the identity attached by Authenticate, or nil when the
// request carried no usable credentials.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}

// Authenticate resolves the caller's identity from the Authorization header
// and attaches the full user record to the context. It never terminates the
// request: a missing, malformed, expired or otherwise invalid token, and a
// token whose subject no longer exists, all degrade to "no identity" so that
// public routes stay reachable. The guards decide whether absence is fatal.
func Authenticate(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return next(c)
			}

			userID, ok := verifyToken(token, jwtSecret)
			if !ok {
				return next(c)
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return next(c)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// bearerToken extracts the token string from "Authorization: Bearer <token>".
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// verifyToken checks the HS256 signature and expiry and returns the embedded
// user identifier. Verification is pure: no state is read or written.
func verifyToken(token, jwtSecret string) (string, bool) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		return "", false
	}
	return userID, true
}
