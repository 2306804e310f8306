package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"foodgram-backend/domain"
	"foodgram-backend/internal/testutil"
	"foodgram-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWT(t *testing.T) jwt.JWTService {
	t.Helper()
	db := testutil.NewDB(t)
	return jwt.NewJWTServiceWithSecret("test-secret", jwt.NewTokenRepository(db))
}

func newApp(jwtService jwt.JWTService) *fiber.App {
	m := NewMiddleware()
	app := fiber.New()
	app.Use(m.RequestID())
	app.Get("/optional", m.OptionalAuth(jwtService), func(c *fiber.Ctx) error {
		if Viewer(c) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString("user")
	})
	app.Get("/private", m.AuthMiddleware(jwtService), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/admin", m.AuthMiddleware(jwtService), m.AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func request(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	buf := make([]byte, 64)
	n, _ := resp.Body.Read(buf)
	return resp.StatusCode, string(buf[:n])
}

func TestOptionalAuth(t *testing.T) {
	jwtService := newJWT(t)
	app := newApp(jwtService)
	token, err := jwtService.GenerateTokenUser(7, domain.RoleUser)
	require.NoError(t, err)

	status, body := request(t, app, "/optional", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "anonymous", body)

	status, body = request(t, app, "/optional", token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user", body)

	status, _ = request(t, app, "/optional", "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthAndAdmin(t *testing.T) {
	jwtService := newJWT(t)
	app := newApp(jwtService)
	userToken, err := jwtService.GenerateTokenUser(1, domain.RoleUser)
	require.NoError(t, err)
	adminToken, err := jwtService.GenerateTokenUser(2, domain.RoleAdmin)
	require.NoError(t, err)

	status, _ := request(t, app, "/private", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = request(t, app, "/private", userToken)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = request(t, app, "/admin", userToken)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = request(t, app, "/admin", adminToken)
	assert.Equal(t, fiber.StatusNoContent, status)
}

func TestRevokedTokenIsRejected(t *testing.T) {
	jwtService := newJWT(t)
	app := newApp(jwtService)
	token, err := jwtService.GenerateTokenUser(3, domain.RoleUser)
	require.NoError(t, err)

	require.NoError(t, jwtService.RevokeToken(context.Background(), token))

	status, _ := request(t, app, "/private", token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("token abc"))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("abc"))
}
