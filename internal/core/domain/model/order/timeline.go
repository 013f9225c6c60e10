package order

import "time"

// TimelineEntry records one status-change event in an order's history.
// Entries are immutable once appended.
type TimelineEntry struct {
	status    Status
	timestamp time.Time
	note      string
}

// NewTimelineEntry creates a timeline entry for a status reached at the given time.
func NewTimelineEntry(status Status, timestamp time.Time, note string) TimelineEntry {
	return TimelineEntry{status: status, timestamp: timestamp, note: note}
}

// Status returns the status the order held after this event.
func (e TimelineEntry) Status() Status {
	return e.status
}

// Timestamp returns when the event occurred.
func (e TimelineEntry) Timestamp() time.Time {
	return e.timestamp
}

// Note returns the free-form annotation attached to the event.
func (e TimelineEntry) Note() string {
	return e.note
}

// Timeline is the append-only ordered log of status-change events attached
// to an order. It is never empty after creation, its timestamps are
// non-decreasing, and its last entry's status equals the order's current status.
type Timeline []TimelineEntry

// append adds an entry while preserving the non-decreasing timestamp
// invariant. Clock skew between callers is clamped to the previous entry's
// timestamp rather than rejected, so history order is always consistent.
func (t Timeline) append(status Status, timestamp time.Time, note string) Timeline {
	if last, ok := t.Last(); ok && timestamp.Before(last.timestamp) {
		timestamp = last.timestamp
	}
	return append(t, NewTimelineEntry(status, timestamp, note))
}

// Last returns the most recent entry, if any.
func (t Timeline) Last() (TimelineEntry, bool) {
	if len(t) == 0 {
		return TimelineEntry{}, false
	}
	return t[len(t)-1], true
}

// CommunicationEntry records one staff or customer contact event attached
// to an order, e.g. a phone call confirming payment.
type CommunicationEntry struct {
	channel   string
	message   string
	timestamp time.Time
}

// NewCommunicationEntry creates a communication log entry.
func NewCommunicationEntry(channel, message string, timestamp time.Time) CommunicationEntry {
	return CommunicationEntry{channel: channel, message: message, timestamp: timestamp}
}

// Channel returns the contact channel, e.g. "phone" or "chat".
func (e CommunicationEntry) Channel() string {
	return e.channel
}

// Message returns what was communicated.
func (e CommunicationEntry) Message() string {
	return e.message
}

// Timestamp returns when the contact happened.
func (e CommunicationEntry) Timestamp() time.Time {
	return e.timestamp
}
