package middleware

import (
	"net/http/httptest"
	"testing"

	"ptw-backend/config"
	"ptw-backend/lib/rbac"
	authutils "ptw-backend/lib/utils/auth-utils"
	"ptw-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	rbac.NewHandler()

	app := fiber.New()
	app.Use(AuthorizationRequired())
	app.Use(RbacMiddleware())
	ok := func(ctx *fiber.Ctx) error {
		return ctx.SendString(Actor(ctx).UserID + "/" + GetUserDepartment(ctx))
	}
	app.Put("/api/v1/ptw/:id/complete", ok)
	app.Post("/api/v1/job_permit/list", ok)
	app.Post("/api/v1/dict/department", AdminRoleRequired(), ok)
	return app
}

func request(t *testing.T, app *fiber.App, method, path string, role models.UserRole) int {
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		token, err := authutils.GetToken("user-1", "Test User", "OPS", role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthorization(t *testing.T) {
	app := newTestApp(t)

	t.Run(`missing token`, func(t *testing.T) {
		require.Equal(t, fiber.StatusUnauthorized, request(t, app, fiber.MethodPost, "/api/v1/job_permit/list", ""))
	})

	t.Run(`token from query`, func(t *testing.T) {
		token, err := authutils.GetToken("user-1", "Test User", "OPS", models.RoleReceiver)
		require.NoError(t, err)
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v1/job_permit/list?token="+token, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`bearer header`, func(t *testing.T) {
		token, err := authutils.GetToken("user-1", "Test User", "OPS", models.RoleReceiver)
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodPost, "/api/v1/job_permit/list", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		req = httptest.NewRequest(fiber.MethodPost, "/api/v1/job_permit/list", nil)
		req.Header.Set("Authorization", "Basic "+token)
		resp, err = app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run(`receiver can list`, func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, request(t, app, fiber.MethodPost, "/api/v1/job_permit/list", models.RoleReceiver))
	})

	t.Run(`receiver cannot complete`, func(t *testing.T) {
		require.Equal(t, fiber.StatusForbidden, request(t, app, fiber.MethodPut, "/api/v1/ptw/123/complete", models.RoleReceiver))
	})

	t.Run(`issuer can complete`, func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, request(t, app, fiber.MethodPut, "/api/v1/ptw/123/complete", models.RoleIssuer))
	})

	t.Run(`department management is admin only`, func(t *testing.T) {
		require.Equal(t, fiber.StatusForbidden, request(t, app, fiber.MethodPost, "/api/v1/dict/department", models.RoleQHSSE))
		require.Equal(t, fiber.StatusOK, request(t, app, fiber.MethodPost, "/api/v1/dict/department", models.RoleAdmin))
	})
}
