package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	JobPermitModule    Module = "JOB_PERMIT"
	PermitToWorkModule Module = "PTW"
	UsersModule        Module = "USERS"
	DictModule         Module = "DICT"
	ExportModule       Module = "EXPORT"
)

type Permission string

const (
	CreatePermission   Permission = "CREATE"
	ViewPermission     Permission = "VIEW"
	ManagePermission   Permission = "MANAGE"
	FlowPermission     Permission = "FLOW"
	CompletePermission Permission = "COMPLETE"
	RevokePermission   Permission = "REVOKE"
	FilesPermission    Permission = "FILES"
)
