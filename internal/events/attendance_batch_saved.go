package events

import "time"

const AttendanceBatchSavedTopic = "hr.attendance.batch_saved.v1"

type AttendanceBatchSavedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	CompanyID     string    `json:"company_id"`
	CompanyLinkID string    `json:"company_link_id"`
	Months        []string  `json:"months"` // YYYY-MM yang tersentuh batch
	SavedCount    int       `json:"saved_count"`
	OccurredAt    time.Time `json:"occurred_at"`
}
