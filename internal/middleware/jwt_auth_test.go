package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubParser map[string]uint

func (p stubParser) ParseToken(token string) (*models.JwtCustomClaims, error) {
	id, ok := p[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &models.JwtCustomClaims{UserID: id}, nil
}

func run(t *testing.T, mw echo.MiddlewareFunc, header string) (int, uint, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		userID uint
		ok     bool
	)
	err := mw(func(c echo.Context) error {
		userID, ok = CurrentUserID(c)
		return c.NoContent(http.StatusNoContent)
	})(c)
	if err != nil {
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		return he.Code, 0, false
	}
	return rec.Code, userID, ok
}

func TestJWTAuthMiddleware(t *testing.T) {
	mw := JWTAuthMiddleware(stubParser{"good": 7})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer good", http.StatusNoContent},
		{"lowercase scheme", "bearer good", http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, userID, ok := run(t, mw, tt.header)
			assert.Equal(t, tt.status, status)
			if tt.status == http.StatusNoContent {
				assert.True(t, ok)
				assert.Equal(t, uint(7), userID)
			}
		})
	}
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	mw := OptionalJWTAuthMiddleware(stubParser{"good": 7})

	status, userID, ok := run(t, mw, "Bearer good")
	assert.Equal(t, http.StatusNoContent, status)
	assert.True(t, ok)
	assert.Equal(t, uint(7), userID)

	for _, header := range []string{"", "Bearer bad", "garbage"} {
		status, _, ok := run(t, mw, header)
		assert.Equal(t, http.StatusNoContent, status, header)
		assert.False(t, ok, header)
	}
}
