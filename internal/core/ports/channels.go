package ports

import "context"

// Priority orders spoken alerts in the single-consumer announcement queue.
type Priority int

const (
	// PriorityNormal enqueues the alert behind whatever is playing.
	PriorityNormal Priority = iota

	// PriorityHigh preempts: the current utterance is cancelled, the queue
	// is dropped, and the alert is spoken immediately.
	PriorityHigh
)

// SpokenAlert is the payload the core emits to the host's speech-synthesis
// capability. The host side (voice selection, audio output) is an external
// collaborator and not specified here.
type SpokenAlert struct {
	Text     string
	Priority Priority
	Volume   float64
	Rate     float64
}

// PushAlert is the payload the core emits to the host's background push
// delivery mechanism. Registration, rendering, and click routing are
// external collaborators.
type PushAlert struct {
	Title              string
	Body               string
	Tag                string
	RequireInteraction bool
	TargetURL          string
}

// SpokenAlertChannel is the single-consumer spoken-alert queue.
// No more than one utterance plays at a time; concurrent high-priority
// alerts collapse into cancel-then-speak-latest.
type SpokenAlertChannel interface {
	// Announce queues or preempts according to the alert's priority.
	// Delivery failures are logged and swallowed, never returned.
	Announce(alert SpokenAlert)

	// Disable clears the queue and cancels any in-flight utterance.
	Disable()
}

// PushAlertChannel dispatches a push alert to the host delivery mechanism.
// Delivery failure (e.g. permission not granted) is logged and ignored by
// callers; it never fails an order mutation.
type PushAlertChannel interface {
	Push(ctx context.Context, alert PushAlert) error
}
