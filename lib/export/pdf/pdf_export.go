package pdfexport

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"ptw-backend/lib/utils/helpers"
	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const fontFamily = "Helvetica"

// GenerateCertificate renders the permit to work certificate.
func GenerateCertificate(rec dbmodels.PermitToWork) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateCertificate panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Permit to Work "+rec.PermitNumber), false)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(0, 12, "PERMIT TO WORK", "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 12)
	pdf.CellFormat(0, 8, tr(rec.PermitNumber), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	jobPermitNumber := ""
	if rec.JobPermit != nil {
		jobPermitNumber = rec.JobPermit.PermitNumber
	}
	section(pdf, "Work")
	rows := [][2]string{
		{"Job permit", jobPermitNumber},
		{"Department", rec.Department},
		{"Location", strings.TrimSpace(rec.JobLocation + " " + rec.SubLocation)},
		{"Description", rec.JobDescription},
		{"Workers", strings.Join(rec.WorkersNames, ", ")},
		{"Entry date", rec.EntryDate.Format("02.01.2006")},
		{"Exit date", rec.ExitDate.Format("02.01.2006")},
		{"Duration", fmt.Sprintf("%d day(s)", rec.WorkDuration)},
		{"Status", string(rec.Status)},
		{"Requested by", rec.CreatorName},
	}
	for _, row := range rows {
		field(pdf, tr, row[0], row[1])
	}

	pdf.Ln(4)
	section(pdf, "Approvals")
	approvals := [][4]string{
		{models.RoleIssuer.ToHuman(), string(rec.IssuerStatus), rec.IssuerName, helpers.FormatDate(rec.IssuerDate)},
		{models.RoleHOD.ToHuman(), string(rec.HODStatus), rec.HODName, helpers.FormatDate(rec.HODDate)},
		{models.RoleQHSSE.ToHuman(), string(rec.QHSSEStatus), rec.QHSSEName, helpers.FormatDate(rec.QHSSEDate)},
	}
	widths := []float64{55, 30, 60, 45}
	pdf.SetFont(fontFamily, "B", 10)
	for idx, title := range []string{"Stage", "Decision", "Signed by", "Date"} {
		pdf.CellFormat(widths[idx], 8, title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont(fontFamily, "", 10)
	for _, row := range approvals {
		for idx, value := range row {
			pdf.CellFormat(widths[idx], 8, tr(value), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if rec.CompletionStatus != models.CompletionNone {
		pdf.Ln(4)
		section(pdf, "Completion")
		field(pdf, tr, "Status", string(rec.CompletionStatus))
		field(pdf, tr, "Issuer", strings.TrimSpace(rec.IssuerCompletionName+" "+helpers.FormatDate(rec.IssuerCompletionDate)))
		field(pdf, tr, "QHSSE", strings.TrimSpace(rec.QHSSECompletionName+" "+helpers.FormatDate(rec.QHSSECompletionDate)))
		field(pdf, tr, "Remarks", rec.QHSSECompletionComments)
	}

	pdf.Ln(8)
	pdf.SetFont(fontFamily, "I", 8)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("02.01.2006 15:04"), "", 1, "R", false, 0, "")

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont(fontFamily, "B", 13)
	pdf.CellFormat(0, 9, title, "B", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func field(pdf *fpdf.Fpdf, tr func(string) string, name, value string) {
	pdf.SetFont(fontFamily, "B", 10)
	pdf.CellFormat(40, 7, name, "", 0, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(0, 7, tr(value), "", "L", false)
}
