package apiv1

import (
	"ptw-backend/controllers"
	filestorage "ptw-backend/lib/file-storage"
	jobpermithandler "ptw-backend/lib/job-permit"
	"ptw-backend/middleware"
	apimodels "ptw-backend/models/api"
	permitapimodels "ptw-backend/models/api/permit"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type jobPermitApiController struct {
	controllers.BaseAPIController
}

func InitJobPermitApiRouters(app *fiber.App) {
	controller := jobPermitApiController{}
	app.Route("job_permit", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("history", controller.history)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("revoke", controller.revoke)
			idRoute.Put("revocation/approve", controller.approveRevocation)
			idRoute.Put("revocation/reject", controller.rejectRevocation)
			idRoute.Post("attachment", controller.uploadAttachment)
			idRoute.Get("attachment", controller.attachmentList)
			idRoute.Get("attachment/:fileId", controller.downloadAttachment)
		})
	})
}

// @Summary Create
// @Tags Job permit
// @Description Create a job permit. It waits for the issuer approval.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.JobPermitData	true	"request body"
// @Success 200 {object} apimodels.Response{data=permitapimodels.JobPermitView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job_permit [post]
func (c *jobPermitApiController) create(ctx *fiber.Ctx) error {
	var payload permitapimodels.JobPermitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := jobpermithandler.Instance.Create(middleware.Actor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error creating job permit")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary List
// @Tags Job permit
// @Description Job permits visible to the signed-in user
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.JobPermitListRequest	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]permitapimodels.JobPermitView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job_permit/list [post]
func (c *jobPermitApiController) list(ctx *fiber.Ctx) error {
	var payload permitapimodels.JobPermitListRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := jobpermithandler.Instance.List(middleware.Actor(ctx), payload.PermitFilter, payload.Pagination)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error getting job permit list")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Get by ID
// @Tags Job permit
// @Description Get by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.JobPermitView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job_permit/{id} [get]
func (c *jobPermitApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobpermithandler.Instance.Get(middleware.Actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error getting job permit")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary History
// @Tags Job permit
// @Description Audit trail of the permit
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]permitapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job_permit/{id}/history [get]
func (c *jobPermitApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobpermithandler.Instance.History(middleware.Actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error getting job permit history")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Approve
// @Tags Job permit
// @Description Approve the stage the permit waits for
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.ApproveRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.JobPermitView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job_permit/{id}/approve [put]
func (c *jobPermitApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload permitapimodels.ApproveRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobpermithandler.Instance.Approve(ctx.UserContext(), middleware.Actor(ctx), id, payload.Comments)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error approving job permit")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Reject
// @Tags Job permit
// @Description Reject the stage the permit waits for. Comments are required.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.RejectRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.JobPermitView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job_permit/{id}/reject [put]
func (c *jobPermitApiController) reject(ctx *fiber.Ctx) error {
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
	resp, err := jobpermithandler.Instance.Reject(ctx.UserContext(), middleware.Actor(ctx), id, payload.Comments)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error rejecting job permit")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Revoke
// @Tags Job permit
// @Description Initiate revocation. QHSSE revokes at once, others wait for QHSSE review.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.RevokeRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.JobPermitView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job_permit/{id}/revoke [put]
func (c *jobPermitApiController) revoke(ctx *fiber.Ctx) error {
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
	resp, err := jobpermithandler.Instance.Revoke(ctx.UserContext(), middleware.Actor(ctx), id, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error revoking job permit")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Approve revocation
// @Tags Job permit
// @Description QHSSE approves a pending revocation
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.RevocationReviewRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.JobPermitView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job_permit/{id}/revocation/approve [put]
func (c *jobPermitApiController) approveRevocation(ctx *fiber.Ctx) error {
	return c.reviewRevocation(ctx, true)
}

// @Summary Reject revocation
// @Tags Job permit
// @Description QHSSE rejects a pending revocation, the permit returns to its previous status
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 permitapimodels.RevocationReviewRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=permitapimodels.JobPermitView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job_permit/{id}/revocation/reject [put]
func (c *jobPermitApiController) rejectRevocation(ctx *fiber.Ctx) error {
	return c.reviewRevocation(ctx, false)
}

func (c *jobPermitApiController) reviewRevocation(ctx *fiber.Ctx, approve bool) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload permitapimodels.RevocationReviewRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobpermithandler.Instance.ReviewRevocation(ctx.UserContext(), middleware.Actor(ctx), id, approve, payload.Comments)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error reviewing job permit revocation")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Upload attachment
// @Tags Job permit
// @Description Attach a supporting document (multipart field "file")
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   file formData file true "document"
// @Success 200 {object} apimodels.Response{data=permitapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/job_permit/{id}/attachment [post]
func (c *jobPermitApiController) uploadAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("file is required"))
	}
	buffer, err := file.Open()
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("error opening uploaded file")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()

	upload := filestorage.UploadFile{
		FileName:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Size:        file.Size,
		Body:        buffer,
	}
	resp, hMsg, err := jobpermithandler.Instance.AddAttachment(ctx.UserContext(), middleware.Actor(ctx), id, upload)
	if err != nil {
		if errors.Is(err, filestorage.ErrStorageDisabled) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error uploading attachment")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Attachment list
// @Tags Job permit
// @Description Attachment list
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]permitapimodels.AttachmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job_permit/{id}/attachment [get]
func (c *jobPermitApiController) attachmentList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobpermithandler.Instance.ListAttachments(middleware.Actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "error getting attachment list")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Download attachment
// @Tags Job permit
// @Description Download attachment
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   fileId          	path    string  				    	true         "attachment ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job_permit/{id}/attachment/{fileId} [get]
func (c *jobPermitApiController) downloadAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileID, err := c.GetIDByKey(ctx, "fileId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := jobpermithandler.Instance.GetAttachment(ctx.UserContext(), middleware.Actor(ctx), id, fileID)
	if err != nil {
		if errors.Is(err, filestorage.ErrStorageDisabled) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "error downloading attachment")
	}
	return c.SendFile(ctx, file)
}
