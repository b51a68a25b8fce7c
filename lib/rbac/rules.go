package rbac

import (
	"ptw-backend/models"
)

var (
	PermitRoleSet   = []models.UserRole{models.RoleReceiver, models.RoleIssuer, models.RoleHOD, models.RoleQHSSE}
	ApproverRoleSet = []models.UserRole{models.RoleIssuer, models.RoleHOD, models.RoleQHSSE}
	CompleteRoleSet = []models.UserRole{models.RoleIssuer, models.RoleQHSSE}
	QHSSERoleSet    = []models.UserRole{models.RoleQHSSE}
	AdminRoleSet    = []models.UserRole{models.RoleAdmin}
	AllRoles        = models.AllRoles
)

func (i *impl) initRules() {
	i.jobPermit()
	i.permitToWork()
	i.export()
	i.users()
	i.dict()
}

func (i *impl) jobPermit() {
	// VIEW
	i.rule(models.JobPermitModule, models.ViewPermission, AllRoles, "/api/v1/job_permit/list [post]")
	i.rule(models.JobPermitModule, models.ViewPermission, AllRoles, "/api/v1/job_permit/{id} [get]")
	i.rule(models.JobPermitModule, models.ViewPermission, AllRoles, "/api/v1/job_permit/{id}/history [get]")
	// CREATE
	i.rule(models.JobPermitModule, models.CreatePermission, PermitRoleSet, "/api/v1/job_permit [post]")
	// FLOW
	i.rule(models.JobPermitModule, models.FlowPermission, ApproverRoleSet, "/api/v1/job_permit/{id}/approve [put]")
	i.rule(models.JobPermitModule, models.FlowPermission, ApproverRoleSet, "/api/v1/job_permit/{id}/reject [put]")
	// REVOKE
	i.rule(models.JobPermitModule, models.RevokePermission, ApproverRoleSet, "/api/v1/job_permit/{id}/revoke [put]")
	i.rule(models.JobPermitModule, models.RevokePermission, QHSSERoleSet, "/api/v1/job_permit/{id}/revocation/approve [put]")
	i.rule(models.JobPermitModule, models.RevokePermission, QHSSERoleSet, "/api/v1/job_permit/{id}/revocation/reject [put]")
	// FILES
	i.rule(models.JobPermitModule, models.FilesPermission, PermitRoleSet, "/api/v1/job_permit/{id}/attachment [post]")
	i.rule(models.JobPermitModule, models.ViewPermission, AllRoles, "/api/v1/job_permit/{id}/attachment [get]")
	i.rule(models.JobPermitModule, models.ViewPermission, AllRoles, "/api/v1/job_permit/{id}/attachment/{fileId} [get]")
}

func (i *impl) permitToWork() {
	// VIEW
	i.rule(models.PermitToWorkModule, models.ViewPermission, AllRoles, "/api/v1/ptw/list [post]")
	i.rule(models.PermitToWorkModule, models.ViewPermission, AllRoles, "/api/v1/ptw/{id} [get]")
	i.rule(models.PermitToWorkModule, models.ViewPermission, AllRoles, "/api/v1/ptw/{id}/history [get]")
	i.rule(models.PermitToWorkModule, models.ViewPermission, AllRoles, "/api/v1/ptw/{id}/certificate [get]")
	// CREATE
	i.rule(models.PermitToWorkModule, models.CreatePermission, PermitRoleSet, "/api/v1/ptw [post]")
	// FLOW
	i.rule(models.PermitToWorkModule, models.FlowPermission, ApproverRoleSet, "/api/v1/ptw/{id}/approve [put]")
	i.rule(models.PermitToWorkModule, models.FlowPermission, ApproverRoleSet, "/api/v1/ptw/{id}/reject [put]")
	i.rule(models.PermitToWorkModule, models.CompletePermission, CompleteRoleSet, "/api/v1/ptw/{id}/complete [put]")
	// REVOKE
	i.rule(models.PermitToWorkModule, models.RevokePermission, ApproverRoleSet, "/api/v1/ptw/{id}/revoke [put]")
	i.rule(models.PermitToWorkModule, models.RevokePermission, QHSSERoleSet, "/api/v1/ptw/{id}/revocation/approve [put]")
	i.rule(models.PermitToWorkModule, models.RevokePermission, QHSSERoleSet, "/api/v1/ptw/{id}/revocation/reject [put]")
}

func (i *impl) export() {
	i.rule(models.ExportModule, models.ViewPermission, AllRoles, "/api/v1/export/job_permit [post]")
	i.rule(models.ExportModule, models.ViewPermission, AllRoles, "/api/v1/export/ptw [post]")
}

func (i *impl) users() {
	i.rule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/admin/users/list [post]")
	i.rule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/admin/users [post]")
	i.rule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/admin/users/{id} [get]")
	i.rule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/admin/users/{id} [put]")
	i.rule(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/admin/users/{id} [delete]")
}

func (i *impl) dict() {
	// VIEW
	i.rule(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/department/list [post]")
	i.rule(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/department/{code} [get]")
	i.rule(models.DictModule, models.ViewPermission, AllRoles, "/api/v1/dict/role/list [get]")
	// MANAGE
	i.rule(models.DictModule, models.ManagePermission, AdminRoleSet, "/api/v1/dict/department [post]")
	i.rule(models.DictModule, models.ManagePermission, AdminRoleSet, "/api/v1/dict/department/{code} [put]")
	i.rule(models.DictModule, models.ManagePermission, AdminRoleSet, "/api/v1/dict/department/{code} [delete]")
}
