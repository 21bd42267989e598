package attendance

type SaveAttendanceRequest struct {
	Employee       string  `json:"employee" binding:"required,uuid"`
	AttendanceDate string  `json:"attendance_date" binding:"required"`
	Status         string  `json:"status" binding:"required"`
	Remarks        *string `json:"remarks"`
}

type UpdateAttendanceRequest struct {
	Status  string  `json:"status" binding:"required"`
	Remarks *string `json:"remarks"`
}

// BatchRecord adalah satu baris grid; Employee berisi id company link.
type BatchRecord struct {
	Employee       string `json:"employee"`
	AttendanceDate string `json:"attendance_date"`
	Status         string `json:"status"`
}

type SaveBatchArgs struct {
	AttendanceData []BatchRecord `json:"attendance_data"`
}

type BatchResult struct {
	Success    bool     `json:"success"`
	SavedCount int      `json:"saved_count"`
	Errors     []string `json:"errors,omitempty"`
	Error      string   `json:"error,omitempty"`
}

type MarkBulkRequest struct {
	Employee string   `json:"employee" binding:"required,uuid"`
	Dates    []string `json:"dates"`
	Status   string   `json:"status" binding:"required"`
}

type MarkBulkResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Total   int      `json:"total"`
	Errors  []string `json:"errors,omitempty"`
}

type BetweenDatesArgs struct {
	Employee  string `json:"employee" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type AttendanceFilter struct {
	Employee string
	From     string
	To       string
	Status   string
}

// Summary menghitung status absensi dalam satu periode. Present sudah
// termasuk Work From Home dan On Leave.
type Summary struct {
	Present         int `json:"present_days"`
	Absent          int `json:"absent_days"`
	HalfDay         int `json:"half_days"`
	LWP             int `json:"lwp_days"`
	Holiday         int `json:"holidays"`
	WeeklyOff       int `json:"weekly_offs"`
	AttendanceCount int `json:"attendance_count"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	Employee       string  `json:"employee"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	CompanyID      string  `json:"company_id"`
	AttendanceDate string  `json:"attendance_date"`
	Status         string  `json:"status"`
	Remarks        *string `json:"remarks,omitempty"`
}

type MonthlyReportFilter struct {
	Company   string   `form:"company_id"`
	Category  string   `form:"category"`
	Year      int      `form:"year" binding:"required,min=2000,max=2100"`
	Month     string   `form:"month" binding:"required"`
	Employees []string `form:"employee"`
}

// MonthlyReportRow: Days[i] adalah kode status tanggal i+1, "" bila belum diisi.
type MonthlyReportRow struct {
	Employee      string   `json:"employee"`
	CompanyLinkID string   `json:"company_link_id"`
	EmployeeName  string   `json:"employee_name"`
	Days          []string `json:"days"`
	WorkingDays   int      `json:"working_days"`
	PresentDays   float64  `json:"present_days"`
	HalfDays      int      `json:"half_days"`
	AbsentDays    float64  `json:"absent_days"`
	WeeklyOffDays int      `json:"weekly_off_days"`
	HolidayDays   int      `json:"holiday_days"`
	LWPDays       int      `json:"lwp_days"`
	AbsentLWP     float64  `json:"absent_lwp"`
}

type MonthlyReport struct {
	Year        int                `json:"year"`
	Month       string             `json:"month"`
	DaysInMonth int                `json:"days_in_month"`
	Rows        []MonthlyReportRow `json:"rows"`
}
