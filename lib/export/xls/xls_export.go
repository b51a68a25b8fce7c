package xlsexport

import (
	"bytes"
	"strings"

	"ptw-backend/lib/utils/helpers"
	dbmodels "ptw-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportJobPermitList(list []dbmodels.JobPermit) (*bytes.Buffer, error)
	ExportPTWList(list []dbmodels.PermitToWork) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var jobPermitHeaders = []string{"Permit number", "Department", "Location", "Description", "Workers", "Created", "Creator",
	"Status", "Assigned to", "Issuer", "HOD", "QHSSE", "Revocation"}

var ptwHeaders = []string{"Permit number", "Job permit", "Department", "Location", "Description", "Workers", "Entry date",
	"Exit date", "Duration, days", "Creator", "Status", "Assigned to", "Issuer", "HOD", "QHSSE", "Completion", "Revocation"}

// 1-based columns holding the permit status
const (
	jobPermitStatusCol = 8
	ptwStatusCol       = 11
)

func (i impl) ExportJobPermitList(list []dbmodels.JobPermit) (*bytes.Buffer, error) {
	rows := make([][]interface{}, 0, len(list))
	for _, rec := range list {
		rows = append(rows, []interface{}{
			rec.PermitNumber,
			rec.Department,
			location(rec.JobLocation, rec.SubLocation),
			rec.JobDescription,
			strings.Join(rec.WorkersNames, ", "),
			rec.CreatedAt.Format("02.01.2006"),
			rec.CreatorName,
			string(rec.Status),
			rec.AssignedTo.ToHuman(),
			stage(string(rec.IssuerStatus), rec.IssuerName),
			stage(string(rec.HODStatus), rec.HODName),
			stage(string(rec.QHSSEStatus), rec.QHSSEName),
			string(rec.QHSSERevocationStatus),
		})
	}
	return build("Job permits", jobPermitHeaders, jobPermitStatusCol, rows)
}

func (i impl) ExportPTWList(list []dbmodels.PermitToWork) (*bytes.Buffer, error) {
	rows := make([][]interface{}, 0, len(list))
	for _, rec := range list {
		jobPermitNumber := ""
		if rec.JobPermit != nil {
			jobPermitNumber = rec.JobPermit.PermitNumber
		}
		rows = append(rows, []interface{}{
			rec.PermitNumber,
			jobPermitNumber,
			rec.Department,
			location(rec.JobLocation, rec.SubLocation),
			rec.JobDescription,
			strings.Join(rec.WorkersNames, ", "),
			rec.EntryDate.Format("02.01.2006"),
			rec.ExitDate.Format("02.01.2006"),
			rec.WorkDuration,
			rec.CreatorName,
			string(rec.Status),
			rec.AssignedTo.ToHuman(),
			stage(string(rec.IssuerStatus), rec.IssuerName),
			stage(string(rec.HODStatus), rec.HODName),
			stage(string(rec.QHSSEStatus), rec.QHSSEName),
			completion(rec),
			string(rec.QHSSERevocationStatus),
		})
	}
	return build("Permits to work", ptwHeaders, ptwStatusCol, rows)
}

func build(sheetName string, headers []string, statusCol int, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("error closing xlsx file")
		}
	}()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	w, err := newSheetWriter(f, sheetName, headers, statusCol)
	if err != nil {
		return nil, errors.Wrap(err, "error writing xlsx header")
	}
	for _, values := range rows {
		if err = w.append(values); err != nil {
			return nil, errors.Wrap(err, "error writing xlsx data")
		}
	}
	if err = w.finish(); err != nil {
		return nil, errors.Wrap(err, "error adding xlsx filter")
	}
	return f.WriteToBuffer()
}

func location(location, subLocation string) string {
	if subLocation == "" {
		return location
	}
	return location + " / " + subLocation
}

func stage(status, name string) string {
	if name == "" {
		return status
	}
	return status + " (" + name + ")"
}

func completion(rec dbmodels.PermitToWork) string {
	if rec.QHSSECompletionDate != nil {
		return string(rec.CompletionStatus) + " " + helpers.FormatDate(rec.QHSSECompletionDate)
	}
	return string(rec.CompletionStatus)
}
