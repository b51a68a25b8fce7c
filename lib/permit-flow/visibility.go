package permitflow

import (
	"ptw-backend/models"
	"strings"
)

// Viewer is the part of a user that decides what permits they see.
type Viewer struct {
	UserID       string
	Role         models.UserRole
	DepartmentID string
}

// Visible is implemented by every listable permit.
type Visible interface {
	VisibilityKey() (department string, assignedTo models.UserRole)
}

// Owned permits stay visible to the user who created them.
type Owned interface {
	OwnerID() string
}

func sameDepartment(viewer Viewer, department string, departmentMap map[string]string) bool {
	if viewer.DepartmentID == "" || department == "" {
		return false
	}
	if name, ok := departmentMap[viewer.DepartmentID]; ok && strings.EqualFold(name, department) {
		return true
	}
	return strings.EqualFold(viewer.DepartmentID, department)
}

func seesAll(viewer Viewer) bool {
	return viewer.Role == models.RoleQHSSE || strings.EqualFold(viewer.DepartmentID, models.QHSSEDepartmentCode)
}

// CanView applies the role/department visibility rule to a single permit.
// department is the permit's display department name.
func CanView(viewer Viewer, department string, assignedTo models.UserRole, departmentMap map[string]string) bool {
	if seesAll(viewer) {
		return true
	}
	if sameDepartment(viewer, department, departmentMap) {
		return true
	}
	if viewer.Role == models.RoleIssuer || viewer.Role == models.RoleHOD {
		return assignedTo != "" && assignedTo == viewer.Role
	}
	return false
}

// CanViewPermit is CanView for a stored permit, its creator included.
func CanViewPermit[T Visible](viewer Viewer, permit T, departmentMap map[string]string) bool {
	if owned, ok := any(permit).(Owned); ok && viewer.UserID != "" && owned.OwnerID() == viewer.UserID {
		return true
	}
	department, assignedTo := permit.VisibilityKey()
	return CanView(viewer, department, assignedTo, departmentMap)
}

// ResolveVisible keeps the permits the viewer may see, preserving order.
func ResolveVisible[T Visible](viewer Viewer, permits []T, departmentMap map[string]string) []T {
	result := make([]T, 0, len(permits))
	for _, permit := range permits {
		if CanViewPermit(viewer, permit, departmentMap) {
			result = append(result, permit)
		}
	}
	return result
}
