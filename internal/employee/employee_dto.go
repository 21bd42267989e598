package employee

type CreateEmployeeRequest struct {
	EmployeeCode  string `json:"employee_code"`
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name"`
	AadhaarNumber string `json:"aadhaar_number" binding:"omitempty,len=12,numeric"`
	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	BankName      string `json:"bank_name"`
	BankAccountNo string `json:"bank_account_no"`
	IFSCCode      string `json:"ifsc_code" binding:"omitempty,len=11"`
	PFNumber      string `json:"pf_number"`
	UANNumber     string `json:"uan_number" binding:"omitempty,len=12,numeric"`
	ESICNumber    string `json:"esic_number"`
	ImageURL      string `json:"image_url" binding:"omitempty,url"`
}

type UpdateEmployeeRequest = CreateEmployeeRequest

// ListFilter: q dicocokkan ke nama, kode employee dan awalan aadhaar.
type ListFilter struct {
	Q       string `form:"q"`
	SortBy  string `form:"sort_by" binding:"omitempty,oneof=name code joined"`
	SortDir string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

type EmployeeResponse struct {
	ID            string `json:"id"`
	EmployeeCode  string `json:"employee_code"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	FullName      string `json:"full_name"`
	DisplayName   string `json:"display_name"`
	AadhaarNumber string `json:"aadhaar_number,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Gender        string `json:"gender,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	BankAccountNo string `json:"bank_account_no,omitempty"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
	PFNumber      string `json:"pf_number,omitempty"`
	UANNumber     string `json:"uan_number,omitempty"`
	ESICNumber    string `json:"esic_number,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
}
