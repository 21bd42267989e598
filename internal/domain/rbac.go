package domain

// Resource dan action yang dipakai route HR. Nilainya harus sama dengan
// kolom permissions.resource / permissions.action di database.
const (
	ResourceCompany    = "company"
	ResourceCategory   = "category"
	ResourceEmployee   = "employee"
	ResourceHoliday    = "holiday"
	ResourceAttendance = "attendance"
	ResourceSalary     = "salary"

	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// EnforceRequest dipakai bersama oleh middleware dan service RBAC
// supaya middleware tidak perlu import package rbac.
type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	CompanyID  string `json:"company_id" binding:"required"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermittedCompaniesResponse struct {
	DefaultCompanyID string   `json:"default_company_id"`
	CompanyIDs       []string `json:"company_ids"`
}

// Permission ditulis "resource:action", mis. "attendance:create".
type PermissionsResponse struct {
	CompanyID   string   `json:"company_id"`
	EmployeeID  string   `json:"employee_id"`
	Permissions []string `json:"permissions"`
}
