// Package notify bridges the core's alert channels to the host's delivery
// mechanisms. Delivery here is best-effort: failures are logged and never
// surface back into the mutation path.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"fulfillment/internal/core/ports"
)

// Synthesizer is the host's speech-synthesis capability.
type Synthesizer interface {
	// Speak renders one utterance. It returns once playback finishes or
	// the context is cancelled.
	Speak(ctx context.Context, text string, volume, rate float64) error
}

// SpeechQueue serializes spoken alerts through a single consumer goroutine
// so no two utterances ever overlap. Normal alerts queue behind whatever is
// playing; a high-priority alert drops the queue, cancels the in-flight
// utterance, and speaks immediately.
type SpeechQueue struct {
	synth  Synthesizer
	logger *slog.Logger

	mu      sync.Mutex
	queue   []ports.SpokenAlert
	cancel  context.CancelFunc
	stopped bool

	wake chan struct{}
	done chan struct{}
}

// NewSpeechQueue creates the queue and starts its consumer goroutine.
// Call Stop to release it.
func NewSpeechQueue(synth Synthesizer, logger *slog.Logger) *SpeechQueue {
	q := &SpeechQueue{
		synth:  synth,
		logger: logger.With("component", "speech_queue"),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go q.run()
	return q
}

// Announce queues or preempts according to the alert's priority.
func (q *SpeechQueue) Announce(alert ports.SpokenAlert) {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	if alert.Priority == ports.PriorityHigh {
		q.queue = q.queue[:0]
		if q.cancel != nil {
			q.cancel()
		}
	}
	q.queue = append(q.queue, alert)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Disable clears the queue and cancels any in-flight utterance.
func (q *SpeechQueue) Disable() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue = nil
	if q.cancel != nil {
		q.cancel()
	}
}

// Stop disables the queue and shuts the consumer goroutine down.
func (q *SpeechQueue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	q.queue = nil
	if q.cancel != nil {
		q.cancel()
	}
	q.mu.Unlock()
	close(q.done)
}

func (q *SpeechQueue) run() {
	for {
		select {
		case <-q.done:
			return
		case <-q.wake:
		}

		for {
			alert, ctx, ok := q.dequeue()
			if !ok {
				break
			}
			q.speak(ctx, alert)
		}
	}
}

// dequeue pops the next alert and registers its cancel handle under the
// same lock, so a preempting Announce always sees the utterance it must
// cancel; there is no window where an alert is dequeued but uncancellable.
func (q *SpeechQueue) dequeue() (ports.SpokenAlert, context.Context, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped || len(q.queue) == 0 {
		return ports.SpokenAlert{}, nil, false
	}
	alert := q.queue[0]
	q.queue = q.queue[1:]

	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	return alert, ctx, true
}

func (q *SpeechQueue) speak(ctx context.Context, alert ports.SpokenAlert) {
	err := q.synth.Speak(ctx, alert.Text, alert.Volume, alert.Rate)

	q.mu.Lock()
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	q.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		q.logger.Error("spoken alert failed", "error", err, "text", alert.Text)
	}
}
