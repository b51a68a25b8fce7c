package exporthandler

import (
	"bytes"
	"context"
	"fmt"
	"time"

	xlsexport "ptw-backend/lib/export/xls"
	jobpermithandler "ptw-backend/lib/job-permit"
	permitflow "ptw-backend/lib/permit-flow"
	ptwhandler "ptw-backend/lib/ptw"
	initchecker "ptw-backend/lib/utils/init-checker"
	"ptw-backend/lib/utils/lock"
	"ptw-backend/models"
	permitapimodels "ptw-backend/models/api/permit"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Provider interface {
	JobPermitRegister(ctx context.Context, actor permitflow.Actor, filter permitapimodels.PermitFilter) (file *models.File, err error)
	PTWRegister(ctx context.Context, actor permitflow.Actor, filter permitapimodels.PTWFilter) (file *models.File, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithDeps(jobpermithandler.Instance, ptwhandler.Instance, xlsexport.Instance, lock.Resource)
}

func NewHandlerWithDeps(jobPermits jobpermithandler.Provider, ptws ptwhandler.Provider, xls xlsexport.Provider, resource *lock.ResourceLock) Provider {
	instance := impl{
		jobPermits: jobPermits,
		ptws:       ptws,
		xls:        xls,
		resource:   resource,
	}
	initchecker.CheckInit(
		"jobPermits", instance.jobPermits,
		"ptws", instance.ptws,
		"xls", instance.xls,
		"resource", instance.resource,
	)
	return instance
}

type impl struct {
	jobPermits jobpermithandler.Provider
	ptws       ptwhandler.Provider
	xls        xlsexport.Provider
	resource   *lock.ResourceLock
}

func (i impl) JobPermitRegister(ctx context.Context, actor permitflow.Actor, filter permitapimodels.PermitFilter) (*models.File, error) {
	list, err := i.jobPermits.ListVisible(actor, filter)
	if err != nil {
		return nil, err
	}
	return i.build(ctx, actor, "job_permits", func() (*bytes.Buffer, error) {
		return i.xls.ExportJobPermitList(list)
	})
}

func (i impl) PTWRegister(ctx context.Context, actor permitflow.Actor, filter permitapimodels.PTWFilter) (*models.File, error) {
	list, err := i.ptws.ListVisible(actor, filter)
	if err != nil {
		return nil, err
	}
	return i.build(ctx, actor, "permits_to_work", func() (*bytes.Buffer, error) {
		return i.xls.ExportPTWList(list)
	})
}

func (i impl) build(ctx context.Context, actor permitflow.Actor, name string, export func() (*bytes.Buffer, error)) (*models.File, error) {
	logger := log.WithField("user_id", actor.UserID).WithField("report", name)
	if i.resource.WaitCount() > 0 {
		logger.WithField("wait_count", i.resource.WaitCount()).Info("export is waiting for a free slot")
	}
	if !i.resource.Acquire(ctx) {
		return nil, errors.New("export cancelled")
	}
	defer i.resource.Release()

	started := time.Now()
	buffer, err := export()
	if err != nil {
		logger.WithError(err).Error("error building export")
		return nil, err
	}
	logger.WithField("duration", time.Since(started).String()).Info("export built")
	return &models.File{
		FileName:    fmt.Sprintf("%v_%v.xlsx", name, started.Format("20060102_150405")),
		ContentType: xlsxContentType,
		Body:        buffer.Bytes(),
	}, nil
}
