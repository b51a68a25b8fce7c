package dictapimodels

import "ptw-backend/models"

func GetRoles(roles []models.UserRole) []RoleView {
	result := make([]RoleView, 0, len(roles))
	for _, role := range roles {
		result = append(result, GetRole(role))
	}
	return result
}

func GetRole(role models.UserRole) RoleView {
	return RoleView{
		Code: string(role),
		Name: role.ToHuman(),
	}
}

type RoleView struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
