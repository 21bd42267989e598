package bulkattendance

import "context"

// Nama method remote yang dipakai grid.
const (
	MethodGetActiveEmployees = "employee.get_active_employees"
	MethodSearchEmployees    = "employee.search_employees"
	MethodGetHolidays        = "holiday.get_holidays_between_dates"
	MethodGetAttendance      = "attendance.get_attendance_between_dates"
	MethodSaveBatch          = "attendance.save_attendance_batch"
)

// RemoteProcedureClient memanggil method bertitik dengan argumen bernama
// dan men-decode field "message" dari hasil ke out.
type RemoteProcedureClient interface {
	Call(ctx context.Context, method string, args map[string]any, out any) error
}

type Notifier interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// Employee adalah opsi employee aktif sebagaimana dikirim server.
type Employee struct {
	EmployeeID    string `json:"employee"`
	LinkID        string `json:"name"`
	FullName      string `json:"full_name"`
	Label         string `json:"label"`
	Company       string `json:"company"`
	AadhaarNumber string `json:"aadhaar_number,omitempty"`
	WeeklyOff     string `json:"weekly_off"`
}

func (e Employee) DisplayName() string {
	if e.Label != "" {
		return e.Label
	}
	if e.AadhaarNumber != "" {
		return e.FullName + " (" + e.AadhaarNumber + ")"
	}
	return e.FullName
}

type HolidayDate struct {
	Date        string `json:"holiday_date"`
	Description string `json:"description"`
	WeeklyOff   bool   `json:"weekly_off"`
}

type SaveResult struct {
	Success    bool     `json:"success"`
	SavedCount int      `json:"saved_count"`
	Errors     []string `json:"errors,omitempty"`
	Error      string   `json:"error,omitempty"`
}
