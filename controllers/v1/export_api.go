package apiv1

import (
	"ptw-backend/controllers"
	exporthandler "ptw-backend/lib/export"
	"ptw-backend/middleware"
	apimodels "ptw-backend/models/api"
	permitapimodels "ptw-backend/models/api/permit"

	"github.com/gofiber/fiber/v2"
)

type exportApiController struct {
	controllers.BaseAPIController
}

func InitExportApiRouters(app *fiber.App) {
	controller := exportApiController{}
	app.Route("export", func(router fiber.Router) {
		router.Post("job_permit", controller.jobPermits)
		router.Post("ptw", controller.ptws)
	})
}

// @Summary Job permit register
// @Tags Export
// @Description XLSX register of the job permits visible to the signed-in user
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.PermitFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/export/job_permit [post]
func (c *exportApiController) jobPermits(ctx *fiber.Ctx) error {
	var payload permitapimodels.PermitFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := exporthandler.Instance.JobPermitRegister(ctx.UserContext(), middleware.Actor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error exporting job permits")
	}
	return c.SendFile(ctx, file)
}

// @Summary Permit to work register
// @Tags Export
// @Description XLSX register of the permits to work visible to the signed-in user
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.PTWFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/export/ptw [post]
func (c *exportApiController) ptws(ctx *fiber.Ctx) error {
	var payload permitapimodels.PTWFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := exporthandler.Instance.PTWRegister(ctx.UserContext(), middleware.Actor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error exporting permits to work")
	}
	return c.SendFile(ctx, file)
}
