package dict

import (
	"ptw-backend/controllers"
	permitflow "ptw-backend/lib/permit-flow"
	"ptw-backend/models"
	apimodels "ptw-backend/models/api"
	dictapimodels "ptw-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type roleDictApiController struct {
	controllers.BaseAPIController
}

func InitRoleDictApiRouters(app *fiber.App) {
	controller := roleDictApiController{}
	app.Route("role", func(router fiber.Router) {
		router.Get("list", controller.list)
	})
}

// @Summary Role list
// @Tags Dict. Roles
// @Description Roles that can be given to a user. ADMIN is listed only when current is ADMIN.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   current				query		string	false	"current role of the edited user"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.RoleView}
// @Failure 403
// @router /api/v1/dict/role/list [get]
func (c *roleDictApiController) list(ctx *fiber.Ctx) error {
	current := models.UserRole(ctx.Query("current"))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.GetRoles(permitflow.SelectableUserRoles(current))))
}
