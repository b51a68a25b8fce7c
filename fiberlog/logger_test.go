package fiberlog

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestAccessLog(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagStatus, TagPath, TagBody},
		Skip: func(c *fiber.Ctx) bool {
			return c.Path() == "/skip"
		},
		HideBody: func(c *fiber.Ctx) bool {
			return c.Path() == "/login"
		},
	}))
	app.Post("/login", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/echo", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/fail", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusInternalServerError) })
	app.Get("/skip", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	call := func(method, path, body string) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		_, err := app.Test(req)
		require.NoError(t, err)
	}

	t.Run(`request body is logged`, func(t *testing.T) {
		hook.Reset()
		call(fiber.MethodPost, "/echo", `{"a":1}`)
		require.Len(t, hook.AllEntries(), 1)
		require.Equal(t, `{"a":1}`, hook.LastEntry().Data[TagBody])
		require.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	})

	t.Run(`credentials are hidden`, func(t *testing.T) {
		hook.Reset()
		call(fiber.MethodPost, "/login", `{"password":"secret"}`)
		require.Len(t, hook.AllEntries(), 1)
		require.NotContains(t, hook.LastEntry().Data, TagBody)
	})

	t.Run(`server errors are logged as errors`, func(t *testing.T) {
		hook.Reset()
		call(fiber.MethodGet, "/fail", "")
		require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	})

	t.Run(`skipped path`, func(t *testing.T) {
		hook.Reset()
		call(fiber.MethodGet, "/skip", "")
		require.Empty(t, hook.AllEntries())
	})
}
