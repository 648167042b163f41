package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/competition-service/internal/domain"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

type stubUsers struct {
	users map[string]*domain.User
}

func (s *stubUsers) Create(context.Context, *domain.User) error { return nil }

func (s *stubUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func TestTokenManager(t *testing.T) {
	t.Run("Should round trip claims", func(t *testing.T) {
		tm := NewTokenManager("secret", 5)
		token, exp, err := tm.GenerateToken("u-1", true)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(5*time.Minute), exp, 2*time.Second)

		claims, err := tm.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID())
		assert.True(t, claims.Admin)
	})

	t.Run("Should reject tokens signed with another secret", func(t *testing.T) {
		token, _, err := NewTokenManager("a", 5).GenerateToken("u-1", false)
		require.NoError(t, err)
		_, err = NewTokenManager("b", 5).ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("Should reject expired tokens", func(t *testing.T) {
		tm := NewTokenManager("secret", 1)
		tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := tm.GenerateToken("u-1", false)
		require.NoError(t, err)

		_, err = NewTokenManager("secret", 1).ParseToken(token)
		assert.Error(t, err)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "hunter22"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}

func newTestApp(tm *TokenManager, users *stubUsers) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	mw := NewAuthMiddleware(tm, users)
	app.Post("/admin", mw.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(p.User.ID)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	users := &stubUsers{users: map[string]*domain.User{
		"admin": {ID: "admin", IsAdmin: true},
		"fan":   {ID: "fan"},
	}}
	app := newTestApp(tm, users)

	tokenFor := func(id string, admin bool) string {
		token, _, err := tm.GenerateToken(id, admin)
		require.NoError(t, err)
		return token
	}

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "garbage token", header: "Bearer nope", status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "unknown user", header: "Bearer " + tokenFor("ghost", true), status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		{name: "stale admin claim", header: "Bearer " + tokenFor("fan", true), status: http.StatusForbidden, code: "FORBIDDEN"},
		{name: "admin", header: "Bearer " + tokenFor("admin", true), status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.code != "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tc.code, body["code"])
			}
		})
	}
}
