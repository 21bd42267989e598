package companylink

type CreateLinkRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	CompanyID     string `json:"company_id" binding:"required,uuid"`
	CategoryID    string `json:"category_id" binding:"omitempty,uuid"`
	Designation   string `json:"designation"`
	Department    string `json:"department"`
	Division      string `json:"division"`
	Branch        string `json:"branch"`
	WeeklyOff     string `json:"weekly_off"`
	DateOfJoining string `json:"date_of_joining"`
	LeftDate      string `json:"left_date"`
	IsActive      *bool  `json:"is_active"`
}

type UpdateLinkRequest struct {
	CategoryID    string `json:"category_id" binding:"omitempty,uuid"`
	Designation   string `json:"designation"`
	Department    string `json:"department"`
	Division      string `json:"division"`
	Branch        string `json:"branch"`
	WeeklyOff     string `json:"weekly_off"`
	DateOfJoining string `json:"date_of_joining"`
	LeftDate      string `json:"left_date"`
	IsActive      *bool  `json:"is_active"`
}

// SwitchCompanyRequest memindahkan employee ke company lain. LeftDate berlaku
// untuk link lama; kosong berarti sehari sebelum DateOfJoining.
type SwitchCompanyRequest struct {
	CompanyID     string `json:"company_id" binding:"required,uuid"`
	CategoryID    string `json:"category_id" binding:"omitempty,uuid"`
	Designation   string `json:"designation"`
	Department    string `json:"department"`
	Division      string `json:"division"`
	Branch        string `json:"branch"`
	WeeklyOff     string `json:"weekly_off"`
	DateOfJoining string `json:"date_of_joining" binding:"required"`
	LeftDate      string `json:"left_date"`
}

type LinkResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EmployeeID    string `json:"employee_id"`
	CompanyID     string `json:"company_id"`
	CategoryID    string `json:"category_id,omitempty"`
	FullName      string `json:"full_name"`
	Designation   string `json:"designation,omitempty"`
	Department    string `json:"department,omitempty"`
	Division      string `json:"division,omitempty"`
	Branch        string `json:"branch,omitempty"`
	WeeklyOff     string `json:"weekly_off"`
	DateOfJoining string `json:"date_of_joining,omitempty"`
	LeftDate      string `json:"left_date,omitempty"`
	IsActive      bool   `json:"is_active"`
}

// EmployeeOption adalah bentuk opsi employee yang dipakai grid absensi.
type EmployeeOption struct {
	Employee      string `json:"employee"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Label         string `json:"label"`
	Company       string `json:"company"`
	AadhaarNumber string `json:"aadhaar_number,omitempty"`
	WeeklyOff     string `json:"weekly_off"`
}

type TimelineEntry struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	CompanyName string `json:"company_name"`
	Designation string `json:"designation,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
	IsActive    bool   `json:"is_active"`
}

type LinkFilter struct {
	EmployeeID string
	CompanyID  string
	ActiveOnly bool
}

type SearchArgs struct {
	Query string `json:"query"`
}
