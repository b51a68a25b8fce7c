package models

type UserRole string

const (
	RoleReceiver UserRole = "RCV"
	RoleIssuer   UserRole = "ISS"
	RoleHOD      UserRole = "HOD"
	RoleQHSSE    UserRole = "QA"
	RoleAdmin    UserRole = "ADMIN"
)

var roleHumanName = map[UserRole]string{
	RoleReceiver: "Permit Receiver",
	RoleIssuer:   "Permit Issuer",
	RoleHOD:      "Head of Department",
	RoleQHSSE:    "QHSSE",
	RoleAdmin:    "Administrator",
}

var AllRoles = []UserRole{RoleReceiver, RoleIssuer, RoleHOD, RoleQHSSE, RoleAdmin}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

const SystemUser = "System"
