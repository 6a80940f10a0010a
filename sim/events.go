package sim

import "fmt"

// EventKind enumerates the audit-trail record types the simulator emits.
type EventKind string

const (
	// EventAdmitted — passenger entered the aisle at the boarding door.
	EventAdmitted EventKind = "admitted"
	// EventBlocked — passenger could not advance; the next cell was occupied.
	EventBlocked EventKind = "blocked"
	// EventStowStarted — passenger reached their row and began stowing.
	EventStowStarted EventKind = "stow_started"
	// EventBinFull — the row's bin lacked capacity; stowing proceeded anyway.
	EventBinFull EventKind = "bin_full"
	// EventShuffleStarted — seated neighbors must stand to let the passenger in.
	EventShuffleStarted EventKind = "shuffle_started"
	// EventSeated — passenger left the aisle and took their seat.
	EventSeated EventKind = "seated"
	// EventTruncated — the run hit the max-tick guard before completion.
	EventTruncated EventKind = "truncated"
)

// Event is one append-only audit record. Events are never mutated after
// creation; two runs with identical inputs must produce identical logs.
type Event struct {
	Step        int
	Kind        EventKind
	PassengerID int
	Row         int
	Column      string
	Cell        int      // aisle cell at the time of the event (-1 if N/A)
	BlockedBy   []string // column labels blocking seat access (shuffle events)
	Detail      string
}

// String renders the record for logs and trace dumps.
func (e Event) String() string {
	base := fmt.Sprintf("[tick %04d] %s p%d seat %d%s", e.Step, e.Kind, e.PassengerID, e.Row, e.Column)
	if e.Detail != "" {
		base += " (" + e.Detail + ")"
	}
	return base
}
