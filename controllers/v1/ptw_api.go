package apiv1

import (
	"ptw-backend/controllers"
	ptwhandler "ptw-backend/lib/ptw"
	"ptw-backend/middleware"
	apimodels "ptw-backend/models/api"
	permitapimodels "ptw-backend/models/api/permit"

	"github.com/gofiber/fiber/v2"
)

type ptwApiController struct {
	controllers.BaseAPIController
}

func InitPTWApiRouters(app *fiber.App) {
	controller := ptwApiController{}
	app.Route("ptw", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("history", controller.history)
			idRoute.Get("certificate", controller.certificate)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("complete", controller.complete)
			idRoute.Put("revoke", controller.revoke)
			idRoute.Put("revocation/approve", controller.approveRevocation)
			idRoute.Put("revocation/reject", controller.rejectRevocation)
		})
	})
}

// @Summary Create
// @Tags Permit to work
// @Description Request a permit to work under an approved job permit
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.PTWData	true	"request body"
// @Success 200 {object} apimodels.Response{data=permitapimodels.PTWView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ptw [post]
func (c *ptwApiController) create(ctx *fiber.Ctx) error {
	var payload permitapimodels.PTWData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := ptwhandler.Instance.Create(middleware.Actor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error creating permit to work")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary List
// @Tags Permit to work
// @Description Permits to work visible to the signed-in user
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.PTWListRequest	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]permitapimodels.PTWView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ptw/list [post]
func (c *ptwApiController) list(ctx *fiber.Ctx) error {
	var payload permitapimodels.PTWListRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := ptwhandler.Instance.List(middleware.Actor(ctx), payload.PTWFilter, payload.Pagination)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error getting permit to work list")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Get by ID
// @Tags Permit to work
// @Description Get by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.PTWView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ptw/{id} [get]
func (c *ptwApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := ptwhandler.Instance.Get(middleware.Actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error getting permit to work")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary History
// @Tags Permit to work
// @Description Audit trail of the permit
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]permitapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ptw/{id}/history [get]
func (c *ptwApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := ptwhandler.Instance.History(middleware.Actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error getting permit to work history")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Certificate
// @Tags Permit to work
// @Description PDF certificate of an approved permit to work
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ptw/{id}/certificate [get]
func (c *ptwApiController) certificate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := ptwhandler.Instance.Certificate(ctx.UserContext(), middleware.Actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error generating certificate")
	}
	return c.SendFile(ctx, file)
}

// @Summary Approve
// @Tags Permit to work
// @Description Approve the stage the permit waits for
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.ApproveRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.PTWView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ptw/{id}/approve [put]
func (c *ptwApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload permitapimodels.ApproveRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := ptwhandler.Instance.Approve(ctx.UserContext(), middleware.Actor(ctx), id, payload.Comments)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error approving permit to work")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Reject
// @Tags Permit to work
// @Description Reject the stage the permit waits for. Comments are required.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.RejectRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.PTWView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ptw/{id}/reject [put]
func (c *ptwApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload permitapimodels.RejectRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewErrorWithCode("VALIDATION", err.Error()))
	}
	resp, err := ptwhandler.Instance.Reject(ctx.UserContext(), middleware.Actor(ctx), id, payload.Comments)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error rejecting permit to work")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Complete
// @Tags Permit to work
// @Description Issuer marks the work done, then QHSSE closes the job with remarks
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.CompleteRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.PTWView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ptw/{id}/complete [put]
func (c *ptwApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload permitapimodels.CompleteRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := ptwhandler.Instance.Complete(ctx.UserContext(), middleware.Actor(ctx), id, payload.Remarks)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error completing permit to work")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Revoke
// @Tags Permit to work
// @Description Initiate revocation. QHSSE revokes at once, others wait for QHSSE review.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.RevokeRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.PTWView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ptw/{id}/revoke [put]
func (c *ptwApiController) revoke(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload permitapimodels.RevokeRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewErrorWithCode("VALIDATION", err.Error()))
	}
	resp, err := ptwhandler.Instance.Revoke(ctx.UserContext(), middleware.Actor(ctx), id, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error revoking permit to work")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Approve revocation
// @Tags Permit to work
// @Description QHSSE approves a pending revocation
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.RevocationReviewRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.PTWView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ptw/{id}/revocation/approve [put]
func (c *ptwApiController) approveRevocation(ctx *fiber.Ctx) error {
	return c.reviewRevocation(ctx, true)
}

// @Summary Reject revocation
// @Tags Permit to work
// @Description QHSSE rejects a pending revocation, the permit returns to its previous status
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.RevocationReviewRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.PTWView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/ptw/{id}/revocation/reject [put]
func (c *ptwApiController) rejectRevocation(ctx *fiber.Ctx) error {
	return c.reviewRevocation(ctx, false)
}

func (c *ptwApiController) reviewRevocation(ctx *fiber.Ctx, approve bool) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload permitapimodels.RevocationReviewRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := ptwhandler.Instance.ReviewRevocation(ctx.UserContext(), middleware.Actor(ctx), id, approve, payload.Comments)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error reviewing permit to work revocation")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
