package xlsexport

import (
	"testing"
	"time"

	"ptw-backend/models"
	dbmodels "ptw-backend/models/db"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExport(t *testing.T) {
	t.Run(`job permit register`, func(t *testing.T) {
		list := []dbmodels.JobPermit{
			{
				PermitNumber: "JP-1",
				Department:   "Operations",
				JobLocation:  "Plant 2",
				SubLocation:  "Pump room",
				WorkersNames: []string{"Ali", "Omar"},
				PermitApprovals: models.PermitApprovals{
					Status:       models.PermitPending,
					AssignedTo:   models.RoleHOD,
					IssuerStatus: models.StageApproved,
					IssuerName:   "Issuer",
				},
			},
		}
		buf, err := impl{}.ExportJobPermitList(list)
		require.NoError(t, err)

		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		sheet := "Job permits"
		header, err := f.GetCellValue(sheet, "A1")
		require.NoError(t, err)
		require.Equal(t, "Permit number", header)
		rows, err := f.GetRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "JP-1", rows[1][0])
		require.Equal(t, "Plant 2 / Pump room", rows[1][2])
		require.Equal(t, "Ali, Omar", rows[1][4])
		require.Equal(t, "Head of Department", rows[1][8])
		require.Equal(t, "Approved (Issuer)", rows[1][9])

		statusStyle, err := f.GetCellStyle(sheet, "H2")
		require.NoError(t, err)
		plainStyle, err := f.GetCellStyle(sheet, "A2")
		require.NoError(t, err)
		require.NotEqual(t, plainStyle, statusStyle)
	})

	t.Run(`empty ptw register has a header`, func(t *testing.T) {
		buf, err := impl{}.ExportPTWList(nil)
		require.NoError(t, err)
		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Permits to work")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, ptwHeaders, rows[0])
	})

	t.Run(`ptw row`, func(t *testing.T) {
		entry := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		list := []dbmodels.PermitToWork{{
			PermitNumber: "PTW-1",
			JobPermit:    &dbmodels.JobPermit{PermitNumber: "JP-1"},
			EntryDate:    entry,
			ExitDate:     entry.Add(48 * time.Hour),
			WorkDuration: 3,
		}}
		buf, err := impl{}.ExportPTWList(list)
		require.NoError(t, err)
		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Permits to work")
		require.NoError(t, err)
		require.Equal(t, "JP-1", rows[1][1])
		require.Equal(t, "03.03.2024", rows[1][7])
		require.Equal(t, "3", rows[1][8])
	})
}
