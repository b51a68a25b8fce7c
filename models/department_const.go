package models

// Default department dictionary, code -> display name.
var DefaultDepartments = map[string]string{
	"ASM":   "Asset Maintenance",
	"OPS":   "Operations",
	"IT":    "IT",
	"QHSSE": "QHSSE",
}

const QHSSEDepartmentCode = "QHSSE"
