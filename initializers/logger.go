package initializers

import (
	"strings"

	"ptw-backend/config"
	"ptw-backend/fiberlog"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

var jsonFormatter = &log.JSONFormatter{
	FieldMap: log.FieldMap{
		log.FieldKeyTime: "@timestamp",
		log.FieldKeyMsg:  "message",
	},
}

// InitLogger sets up the global logger and returns the access log config.
// Runs after config is loaded, the level comes from APP_LOG_LEVEL.
func InitLogger() *fiberlog.Config {
	level, err := log.ParseLevel(config.Conf.App.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetFormatter(jsonFormatter)
	log.SetLevel(level)
	if err != nil {
		log.WithField("level", config.Conf.App.LogLevel).Warn("unknown log level, using info")
	}

	accessLogger := log.New()
	accessLogger.SetFormatter(jsonFormatter)
	accessLogger.SetLevel(level)
	return &fiberlog.Config{
		Logger: accessLogger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagResBody,
			fiberlog.TagUserID,
			fiberlog.TagLatency,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.RequestID,
		},
		Skip: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/v1/ws")
		},
		HideBody: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/v1/auth/") || strings.HasPrefix(c.Path(), "/api/v1/admin/users")
		},
	}
}
