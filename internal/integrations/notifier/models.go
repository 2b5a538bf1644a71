package notifier

import "time"

// Message JSON-представление события в топике
type Message struct {
	Type       string    `json:"type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Email      string    `json:"email,omitempty"`
	Status     string    `json:"status,omitempty"`
	SlotLabel  string    `json:"slot_label,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Code       string    `json:"code,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
