package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// claimsKey is where the middleware stores *models.JwtCustomClaims
const claimsKey = "user"

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	ParseToken(token string) (*models.JwtCustomClaims, error)
}

// JWTAuthMiddleware rejects requests without a valid bearer token.
func JWTAuthMiddleware(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized("Missing Authorization header")
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return unauthorized("Invalid Authorization header format")
			}

			claims, err := parser.ParseToken(tokenString)
			if err != nil {
				return unauthorized("Invalid or expired token")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// OptionalJWTAuthMiddleware identifies the caller when a valid token is sent
// and otherwise lets the request through as anonymous.
func OptionalJWTAuthMiddleware(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tokenString, ok := bearerToken(c.Request().Header.Get("Authorization")); ok {
				if claims, err := parser.ParseToken(tokenString); err == nil {
					c.Set(claimsKey, claims)
				}
			}
			return next(c)
		}
	}
}

// CurrentUserID returns the authenticated user, or false for anonymous requests.
func CurrentUserID(c echo.Context) (uint, bool) {
	claims, ok := c.Get(claimsKey).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0, false
	}
	return claims.UserID, true
}

// Expecting "Bearer <token>"
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(message string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
		"success": false,
		"error":   "UNAUTHORIZED",
		"message": message,
	})
}
