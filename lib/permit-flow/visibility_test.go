package permitflow

import (
	"ptw-backend/models"
	"testing"

	"github.com/stretchr/testify/require"
)

type testPermit struct {
	id         string
	department string
	assignedTo models.UserRole
}

func (p testPermit) VisibilityKey() (string, models.UserRole) {
	return p.department, p.assignedTo
}

func ids(permits []testPermit) []string {
	result := []string{}
	for _, p := range permits {
		result = append(result, p.id)
	}
	return result
}

func TestResolveVisible(t *testing.T) {
	departmentMap := map[string]string{
		"ASM":   "Asset Maintenance",
		"OPS":   "Operations",
		"IT":    "IT",
		"QHSSE": "QHSSE",
	}
	permits := []testPermit{
		{id: "1", department: "Asset Maintenance", assignedTo: models.RoleIssuer},
		{id: "2", department: "Operations", assignedTo: models.RoleHOD},
		{id: "3", department: "IT", assignedTo: models.RoleQHSSE},
		{id: "4", department: "Operations", assignedTo: ""},
	}

	t.Run(`QHSSE role sees everything`, func(t *testing.T) {
		res := ResolveVisible(Viewer{Role: models.RoleQHSSE, DepartmentID: "OPS"}, permits, departmentMap)
		require.Equal(t, []string{"1", "2", "3", "4"}, ids(res))
	})

	t.Run(`QHSSE department sees everything`, func(t *testing.T) {
		res := ResolveVisible(Viewer{Role: models.RoleReceiver, DepartmentID: "QHSSE"}, permits, departmentMap)
		require.Equal(t, []string{"1", "2", "3", "4"}, ids(res))
	})

	t.Run(`HOD sees own department and assigned`, func(t *testing.T) {
		res := ResolveVisible(Viewer{Role: models.RoleHOD, DepartmentID: "ASM"}, permits, departmentMap)
		require.Equal(t, []string{"1", "2"}, ids(res))
	})

	t.Run(`issuer sees own department and assigned`, func(t *testing.T) {
		res := ResolveVisible(Viewer{Role: models.RoleIssuer, DepartmentID: "IT"}, permits, departmentMap)
		require.Equal(t, []string{"1", "3"}, ids(res))
	})

	t.Run(`receiver sees own department only`, func(t *testing.T) {
		res := ResolveVisible(Viewer{Role: models.RoleReceiver, DepartmentID: "OPS"}, permits, departmentMap)
		require.Equal(t, []string{"2", "4"}, ids(res))
	})

	t.Run(`unknown department sees nothing`, func(t *testing.T) {
		res := ResolveVisible(Viewer{Role: models.RoleReceiver}, permits, departmentMap)
		require.Empty(t, res)
	})

	t.Run(`single record`, func(t *testing.T) {
		require.True(t, CanView(Viewer{Role: models.RoleHOD, DepartmentID: "IT"}, "Operations", models.RoleHOD, departmentMap))
		require.False(t, CanView(Viewer{Role: models.RoleReceiver, DepartmentID: "IT"}, "Operations", models.RoleReceiver, departmentMap))
	})
}

type ownedPermit struct {
	testPermit
	owner string
}

func (p ownedPermit) OwnerID() string {
	return p.owner
}

func TestCanViewPermit(t *testing.T) {
	departmentMap := map[string]string{"OPS": "Operations"}
	permit := ownedPermit{testPermit: testPermit{id: "1", department: "Operations"}, owner: "u1"}

	t.Run(`creator sees own permit in another department`, func(t *testing.T) {
		require.True(t, CanViewPermit(Viewer{UserID: "u1", Role: models.RoleReceiver, DepartmentID: "IT"}, permit, departmentMap))
		require.False(t, CanViewPermit(Viewer{UserID: "u2", Role: models.RoleReceiver, DepartmentID: "IT"}, permit, departmentMap))
	})

	t.Run(`empty viewer id matches nobody`, func(t *testing.T) {
		unowned := ownedPermit{testPermit: testPermit{id: "2", department: "IT"}}
		require.False(t, CanViewPermit(Viewer{Role: models.RoleReceiver, DepartmentID: "OPS"}, unowned, departmentMap))
	})
}
