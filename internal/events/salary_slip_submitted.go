package events

import "time"

const SalarySlipSubmittedTopic = "hr.payroll.salary_slip.submitted.v1"

type SalarySlipSubmittedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	SalarySlipID string    `json:"salary_slip_id"`
	CompanyID    string    `json:"company_id"`
	SubmittedBy  string    `json:"submitted_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
