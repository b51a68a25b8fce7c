package xlsexport

import (
	"ptw-backend/models"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	columnWidth = 22
	fontFamily  = "Calibri"
)

// status cell fill per permit status, statuses without a colour stay plain
var statusFill = map[models.PermitStatus]string{
	models.PermitPending:           "FFF2CC",
	models.PermitApproved:          "D9EAD3",
	models.PermitRejected:          "F4CCCC",
	models.PermitRevocationPending: "FCE5CD",
	models.PermitRevoked:           "E6B8AF",
}

// sheetWriter writes a register table: one bold header row, then data rows.
type sheetWriter struct {
	f          *excelize.File
	sheet      string
	columns    int
	row        int
	dataStyle  int
	statusCols map[int]bool
	fills      map[models.PermitStatus]int
}

func newSheetWriter(f *excelize.File, sheet string, headers []string, statusCols ...int) (*sheetWriter, error) {
	w := &sheetWriter{
		f:          f,
		sheet:      sheet,
		columns:    len(headers),
		statusCols: map[int]bool{},
		fills:      map[models.PermitStatus]int{},
	}
	for _, col := range statusCols {
		w.statusCols[col] = true
	}
	var err error
	w.dataStyle, err = f.NewStyle(dataStyle(""))
	if err != nil {
		return nil, errors.Wrap(err, "error creating data style")
	}
	for status, color := range statusFill {
		if w.fills[status], err = f.NewStyle(dataStyle(color)); err != nil {
			return nil, errors.Wrap(err, "error creating status style")
		}
	}
	if err = w.writeHeader(headers); err != nil {
		return nil, err
	}
	return w, nil
}

func dataStyle(fill string) *excelize.Style {
	style := &excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "top",
			WrapText:   true,
		},
		Font: &excelize.Font{Family: fontFamily, Size: 11},
	}
	if fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}}
	}
	return style
}

func (w *sheetWriter) writeHeader(headers []string) error {
	style, err := w.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Font:      &excelize.Font{Bold: true, Family: fontFamily, Size: 11},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return errors.Wrap(err, "error creating header style")
	}
	w.row++
	if err = w.writeRow(&headers); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(w.columns)
	if err != nil {
		return err
	}
	if err = w.f.SetColWidth(w.sheet, "A", lastCol, columnWidth); err != nil {
		return err
	}
	if err = w.f.SetCellStyle(w.sheet, "A1", lastCol+"1", style); err != nil {
		return err
	}
	// header stays visible while scrolling the register
	return w.f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// append writes one data row, status columns get the fill of their value.
func (w *sheetWriter) append(values []interface{}) error {
	w.row++
	if err := w.writeRow(&values); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, w.row)
	last, _ := excelize.CoordinatesToCellName(w.columns, w.row)
	if err := w.f.SetCellStyle(w.sheet, first, last, w.dataStyle); err != nil {
		return err
	}
	for idx, value := range values {
		if !w.statusCols[idx+1] {
			continue
		}
		status, _ := value.(string)
		style, ok := w.fills[models.PermitStatus(status)]
		if !ok {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(idx+1, w.row)
		if err := w.f.SetCellStyle(w.sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// writeRow takes a pointer to a slice.
func (w *sheetWriter) writeRow(values interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(w.sheet, cell, values)
}

// finish adds a filter over the whole table.
func (w *sheetWriter) finish() error {
	if w.row < 2 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(w.columns, w.row)
	if err != nil {
		return err
	}
	return w.f.AutoFilter(w.sheet, "A1:"+last, nil)
}
