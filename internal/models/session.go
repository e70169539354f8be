package models

// SessionStatus is the lifecycle state of the shared fry-order session.
type SessionStatus string

const (
	SessionClosed    SessionStatus = "closed"    // No session running
	SessionOpen      SessionStatus = "open"      // Ordering allowed
	SessionCompleted SessionStatus = "completed" // Locked for review
	SessionOrdering  SessionStatus = "ordering"  // Being phoned in, no reopening
	SessionOrdered   SessionStatus = "ordered"   // Placed, awaiting pickup
)

// SessionState is a snapshot of the session. PickupTime is an HH:MM
// local-clock string, implicitly today, and is non-empty iff the status
// is "ordered".
type SessionState struct {
	Status     SessionStatus `json:"status"`
	PickupTime string        `json:"pickup_time,omitempty"`
}
