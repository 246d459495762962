package events

import "time"

const (
	EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"
	EmployeeCreated        = "employee.created"
)

// EmployeeCreatedEvent carries what the welcome mail needs. The temporary
// password is never part of it.
type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	LoginID      string    `json:"login_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Department   string    `json:"department"`
	Designation  string    `json:"designation"`
	OccurredAt   time.Time `json:"occurred_at"`
}
