package domain

import "time"

// WaitlistStatus is the state of a waitlist entry
type WaitlistStatus string

const (
	WaitlistWaiting  WaitlistStatus = "waiting"
	WaitlistNotified WaitlistStatus = "notified"
	WaitlistApproved WaitlistStatus = "approved"
	WaitlistRejected WaitlistStatus = "rejected"
	WaitlistExpired  WaitlistStatus = "expired"
)

// rank orders statuses along the forward-only lifecycle
func (s WaitlistStatus) rank() int {
	switch s {
	case WaitlistWaiting:
		return 0
	case WaitlistNotified:
		return 1
	case WaitlistApproved, WaitlistRejected, WaitlistExpired:
		return 2
	default:
		return -1
	}
}

// CanTransitionTo reports whether next is strictly later in the lifecycle
// Waiting -> Notified -> {Approved | Rejected | Expired}.
func (s WaitlistStatus) CanTransitionTo(next WaitlistStatus) bool {
	from, to := s.rank(), next.rank()
	if from < 0 || to < 0 {
		return false
	}
	return to > from
}

// IsResolved reports whether the entry reached a final state
func (s WaitlistStatus) IsResolved() bool {
	return s.rank() == 2
}

// WaitlistEntry is a request to be notified when a slot frees up
type WaitlistEntry struct {
	ID            string
	EventConfigID string
	Date          time.Time
	TimeSlot      TimeRange
	Name          string
	Email         string
	Status        WaitlistStatus
	CreatedAt     time.Time
	NotifiedAt    *time.Time
	UpdatedAt     time.Time
}

// Clone returns a copy
func (e *WaitlistEntry) Clone() *WaitlistEntry {
	if e == nil {
		return nil
	}
	out := *e
	out.NotifiedAt = clonePtr(e.NotifiedAt)
	return &out
}
