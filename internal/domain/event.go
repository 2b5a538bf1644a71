package domain

import "time"

// EventType тип события для внешних получателей (уведомления)
type EventType string

const (
	EventRequestSubmitted EventType = "request.submitted"
	EventRequestDecided   EventType = "request.decided"
	EventRequestPromoted  EventType = "request.promoted"
	EventRequestCancelled EventType = "request.cancelled"
	EventOTPIssued        EventType = "otp.issued"
)

// Event уведомление, которое движок передаёт notifier после фиксации транзакции
type Event struct {
	Type       EventType
	Key        string // ключ партиционирования: id заявки или email
	RequestID  string
	EmployeeID string
	Email      string
	Status     RequestStatus
	SlotLabel  string
	Reason     string
	Code       string // только для otp.issued
	OccurredAt time.Time
}

// RequestEvent собирает событие по заявке
func RequestEvent(t EventType, r *ParkingRequest, at time.Time) Event {
	ev := Event{
		Type:       t,
		Key:        r.ID,
		RequestID:  r.ID,
		EmployeeID: r.Requester.EmployeeID,
		Email:      r.Requester.Email,
		Status:     r.Status,
		SlotLabel:  r.SlotLabel(),
		OccurredAt: at,
	}
	if r.RejectionReason != nil {
		ev.Reason = *r.RejectionReason
	}
	return ev
}
