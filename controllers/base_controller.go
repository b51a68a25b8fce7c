package controllers

import (
	"fmt"
	"net/url"
	"strings"

	permitflow "ptw-backend/lib/permit-flow"
	"ptw-backend/middleware"
	"ptw-backend/models"
	apimodels "ptw-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("error parsing request body")
		return errors.New("unable to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

// GetIDByKey reads a uuid path parameter.
func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("%v is required", key)
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.Errorf("%v must be a uuid", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.WithFields(log.Fields{
		"method":  ctx.Method(),
		"path":    ctx.Path(),
		"user_id": middleware.GetUserID(ctx),
	})
}

// SendError writes err as an api response. Lifecycle errors keep their code
// and message; anything else is logged and answered with msg.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	if flowErr, ok := permitflow.AsError(err); ok {
		return ctx.Status(StatusByCode(flowErr.Code)).JSON(apimodels.NewErrorWithCode(string(flowErr.Code), flowErr.Message))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

// SendFile streams file as an attachment download.
func (c *BaseAPIController) SendFile(ctx *fiber.Ctx, file *models.File) error {
	ctx.Set(fiber.HeaderContentType, file.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%v",
		asciiName(file.FileName), url.PathEscape(file.FileName)))
	return ctx.Status(fiber.StatusOK).Send(file.Body)
}

func StatusByCode(code permitflow.Code) int {
	switch code {
	case permitflow.CodeValidation:
		return fiber.StatusBadRequest
	case permitflow.CodeNotAssigned, permitflow.CodeForbidden:
		return fiber.StatusForbidden
	case permitflow.CodeNotFound:
		return fiber.StatusNotFound
	case permitflow.CodeInvalidState, permitflow.CodeAlreadyRevoked:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func asciiName(name string) string {
	return strings.Map(func(r rune) rune {
		if r > 127 || r == '"' {
			return '_'
		}
		return r
	}, name)
}
