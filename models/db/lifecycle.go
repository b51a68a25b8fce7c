package dbmodels

import "ptw-backend/models"

// LifecycleUpdMap maps the lifecycle parts of a permit onto an update map keyed by field name.
// completion is nil for job permits.
func LifecycleUpdMap(a models.PermitApprovals, r models.PermitRevocation, c *models.PermitCompletion) map[string]interface{} {
	updMap := map[string]interface{}{
		"Status":         a.Status,
		"AssignedTo":     a.AssignedTo,
		"IssuerStatus":   a.IssuerStatus,
		"IssuerID":       a.IssuerID,
		"IssuerName":     a.IssuerName,
		"IssuerDate":     a.IssuerDate,
		"IssuerComments": a.IssuerComments,
		"HODStatus":      a.HODStatus,
		"HODID":          a.HODID,
		"HODName":        a.HODName,
		"HODDate":        a.HODDate,
		"HODComments":    a.HODComments,
		"QHSSEStatus":    a.QHSSEStatus,
		"QHSSEID":        a.QHSSEID,
		"QHSSEName":      a.QHSSEName,
		"QHSSEDate":      a.QHSSEDate,
		"QHSSEComments":  a.QHSSEComments,

		"RevocationInitiatedBy":   r.RevocationInitiatedBy,
		"RevocationInitiatedByID": r.RevocationInitiatedByID,
		"InitiatorRole":           r.InitiatorRole,
		"RevocationDate":          r.RevocationDate,
		"RevocationReason":        r.RevocationReason,
		"RevocationApprovedBy":    r.RevocationApprovedBy,
		"RevocationApprovedByID":  r.RevocationApprovedByID,
		"RevocationApprovedDate":  r.RevocationApprovedDate,
		"RevocationComments":      r.RevocationComments,
		"QHSSERevocationStatus":   r.QHSSERevocationStatus,
		"PreRevocationStatus":     r.PreRevocationStatus,
		"PreRevocationAssignedTo": r.PreRevocationAssignedTo,
	}
	if c != nil {
		updMap["CompletionStatus"] = c.CompletionStatus
		updMap["IssuerCompletionStatus"] = c.IssuerCompletionStatus
		updMap["IssuerCompletionID"] = c.IssuerCompletionID
		updMap["IssuerCompletionName"] = c.IssuerCompletionName
		updMap["IssuerCompletionDate"] = c.IssuerCompletionDate
		updMap["QHSSECompletionStatus"] = c.QHSSECompletionStatus
		updMap["QHSSECompletionID"] = c.QHSSECompletionID
		updMap["QHSSECompletionName"] = c.QHSSECompletionName
		updMap["QHSSECompletionDate"] = c.QHSSECompletionDate
		updMap["QHSSECompletionComments"] = c.QHSSECompletionComments
	}
	return updMap
}
