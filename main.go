package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"ptw-backend/config"
	apiv1 "ptw-backend/controllers/v1"
	"ptw-backend/controllers/v1/dict"
	"ptw-backend/db"
	"ptw-backend/fiberlog"
	"ptw-backend/initializers"
	"ptw-backend/lib/metrics"
	"ptw-backend/lib/ws"
	"ptw-backend/middleware"
	apimodels "ptw-backend/models/api"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

const mb = 1024 * 1024

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	// attachments are the largest bodies, keep one extra MB for the multipart envelope
	bodyLimit := (config.Conf.S3.MaxFileSizeMb + 1) * mb
	app := fiber.New(fiber.Config{
		BodyLimit: int(bodyLimit),
	})
	app.Use(fiberRecover.New())
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())
	app.Get("/health", func(ctx *fiber.Ctx) error {
		if err := db.PingDB(); err != nil {
			log.WithError(err).Warn("health check: database is not available")
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("database is not available"))
		}
		return ctx.JSON(apimodels.NewResponse(nil))
	})

	if _, err := os.Stat(config.Conf.App.SwaggerPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: config.Conf.App.SwaggerPath,
		}))
	} else {
		log.WithField("path", config.Conf.App.SwaggerPath).Warn("swagger file not found, /swagger disabled")
	}

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	apiV1.Use(middleware.ErrNotify(config.Conf.NotifyBot.AddrErr))
	apiV1.Use(middleware.WithBodyLimit(bodyLimit))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiv1.InitAuthApiRouters(apiV1)

	// everything below needs a token and passes the role rules
	apiV1.Use(middleware.AuthorizationRequired())
	apiV1.Use(middleware.RbacMiddleware())
	apiv1.InitJobPermitApiRouters(apiV1)
	apiv1.InitPTWApiRouters(apiV1)
	apiv1.InitExportApiRouters(apiV1)
	apiv1.InitUsersApiRouters(apiV1)

	//dict
	dicts := fiber.New()
	apiV1.Mount("/dict", dicts)
	dict.InitDepartmentDictApiRouters(dicts)
	dict.InitRoleDictApiRouters(dicts)

	//push
	wsApp := fiber.New()
	apiV1.Mount("/ws", wsApp)
	ws.InitWs(wsApp)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-c:
		case <-ctx.Done():
			return
		}
		log.Info("gracefully shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("error gracefully shutting down")
		}
		log.Info("gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
