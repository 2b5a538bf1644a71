package domain

import "strings"

// RequestStatus represents the lifecycle state of a parking request
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusWaitlist  RequestStatus = "waitlist"
	StatusCancelled RequestStatus = "cancelled" // одобренная заявка, место которой освобождено
)

// AllStatuses порядок статусов в счётчиках дашборда
var AllStatuses = []RequestStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusWaitlist,
	StatusCancelled,
}

// transitions единственный источник разрешённых переходов
var transitions = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusWaitlist: {StatusApproved, StatusRejected},
	StatusApproved: {StatusCancelled},
}

// CanTransitionTo returns true if the table allows moving from s to next
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsOpen returns true for states that still await a decision
func (s RequestStatus) IsOpen() bool {
	return s == StatusPending || s == StatusWaitlist
}

// IsDecided returns true once an admin decision (or auto-approval) has been applied.
// Approved is decided but can still be cancelled by the release hook.
func (s RequestStatus) IsDecided() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

func (s RequestStatus) IsValid() bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// ParseRequestStatus разбирает статус из query-параметра
func ParseRequestStatus(raw string) (RequestStatus, error) {
	s := RequestStatus(raw)
	if !s.IsValid() {
		names := make([]string, 0, len(AllStatuses))
		for _, st := range AllStatuses {
			names = append(names, string(st))
		}
		return "", NewValidationError("status", "Status must be one of: %s", strings.Join(names, ", "))
	}
	return s, nil
}
