package permitapimodels

import (
	"encoding/json"
	"testing"

	"ptw-backend/models"

	"github.com/stretchr/testify/require"
)

func TestPTWDataDecode(t *testing.T) {
	body := `{
		"job_permit_id": "jp-1",
		"job_location": "Plant 2",
		"job_description": "Hot work on line 4",
		"workers_names": ["Ali"],
		"entry_date": "2024-03-01",
		"exit_date": "2024-03-03"
	}`
	var data PTWData
	require.NoError(t, json.Unmarshal([]byte(body), &data))
	require.NoError(t, data.Validate())
	require.Equal(t, 2, data.ExitDate.Day()-data.EntryDate.Day())
}

func TestPermitFilterValidate(t *testing.T) {
	t.Run(`approval stages`, func(t *testing.T) {
		for _, role := range []models.UserRole{models.RoleIssuer, models.RoleHOD, models.RoleQHSSE} {
			require.NoError(t, PermitFilter{AssignedTo: role}.Validate())
		}
		require.NoError(t, PermitFilter{}.Validate())
	})

	t.Run(`roles that never hold a stage`, func(t *testing.T) {
		require.Error(t, PermitFilter{AssignedTo: models.RoleReceiver}.Validate())
		require.Error(t, PermitFilter{AssignedTo: models.RoleAdmin}.Validate())
		require.Error(t, PermitFilter{AssignedTo: "CEO"}.Validate())
	})
}
