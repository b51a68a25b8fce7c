package dict

import (
	"strings"

	"ptw-backend/controllers"
	departmentprovider "ptw-backend/lib/dicts/department"
	"ptw-backend/middleware"
	apimodels "ptw-backend/models/api"
	dictapimodels "ptw-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type departmentDictApiController struct {
	controllers.BaseAPIController
}

func InitDepartmentDictApiRouters(app *fiber.App) {
	controller := departmentDictApiController{}
	app.Route("department", func(router fiber.Router) {
		router.Post("list", controller.departmentList)
		router.Get(":code", controller.departmentGet)
		router.Use(middleware.AdminRoleRequired())
		router.Post("", controller.departmentCreate)
		router.Put(":code", controller.departmentUpdate)
		router.Delete(":code", controller.departmentDelete)
	})
}

// @Summary Create
// @Tags Dict. Department
// @Description Create
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DepartmentData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department [post]
func (c *departmentDictApiController) departmentCreate(ctx *fiber.Ctx) error {
	var payload dictapimodels.DepartmentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := departmentprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error creating department")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Update
// @Tags Dict. Department
// @Description Update the display name of a department
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DepartmentData	true	"request body"
// @Param   code          		path    string  				    	true         "department code"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department/{code} [put]
func (c *departmentDictApiController) departmentUpdate(ctx *fiber.Ctx) error {
	code := departmentCode(ctx)
	var payload dictapimodels.DepartmentData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := departmentprovider.Instance.Update(code, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error updating department")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Get by code
// @Tags Dict. Department
// @Description Get by code
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   code          		path    string  				    	true         "department code"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DepartmentView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department/{code} [get]
func (c *departmentDictApiController) departmentGet(ctx *fiber.Ctx) error {
	resp, err := departmentprovider.Instance.Get(departmentCode(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error getting department")
	}
	if resp == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("department not found"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary List
// @Tags Dict. Department
// @Description List
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DepartmentView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department/list [post]
func (c *departmentDictApiController) departmentList(ctx *fiber.Ctx) error {
	resp, err := departmentprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error getting department list")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Delete
// @Tags Dict. Department
// @Description Delete a department nobody belongs to
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   code          		path    string  				    	true         "department code"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department/{code} [delete]
func (c *departmentDictApiController) departmentDelete(ctx *fiber.Ctx) error {
	hMsg, err := departmentprovider.Instance.Delete(departmentCode(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error deleting department")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func departmentCode(ctx *fiber.Ctx) string {
	return strings.ToUpper(strings.TrimSpace(ctx.Params("code")))
}
