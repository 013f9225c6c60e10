// Package scheduler arms one escalation timer per pending order. Timers are
// an optimization for promptness; the periodic overdue sweep remains the
// correctness backstop after restarts or missed timers.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// DeadlineReason is the escalation reason recorded when an order's own
// acknowledgement timer fires. Identical to the overdue sweep's reason:
// timer and sweep are two triggers for the same SLA breach, and an order
// must carry the same reason whichever one catches it first.
const DeadlineReason = commands.SweepReason

// EscalateHandler processes a single-order escalation request.
// Satisfied by commands.EscalateOrderCommandHandler.
type EscalateHandler interface {
	Handle(ctx context.Context, cmd commands.EscalateOrderCommand) (bool, error)
}

// EscalationScheduler subscribes to committed domain events and keeps one
// deadline timer per order awaiting acknowledgement. Creation and
// reassignment arm the timer; acknowledgement, cancellation, and escalation
// disarm it. A firing timer escalates through the regular command path, so
// the eligibility re-check inside the aggregate makes timer races harmless.
type EscalationScheduler struct {
	handler EscalateHandler
	logger  *slog.Logger

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewEscalationScheduler creates a scheduler delegating to the given handler.
func NewEscalationScheduler(handler EscalateHandler, logger *slog.Logger) *EscalationScheduler {
	return &EscalationScheduler{
		handler: handler,
		logger:  logger.With("component", "escalation_scheduler"),
		timers:  make(map[string]*time.Timer),
	}
}

// Publish reacts to order lifecycle events. Implements ports.EventPublisher.
func (s *EscalationScheduler) Publish(_ context.Context, events ...order.DomainEvent) {
	for _, event := range events {
		switch e := event.(type) {
		case order.OrderCreated:
			s.Arm(e.OrderID, e.Deadline)
		case order.OrderReassigned:
			s.Arm(e.OrderID, e.Deadline)
		case order.OrderEscalated:
			s.Cancel(e.OrderID)
		case order.OrderStatusChanged:
			if e.To != order.Pending {
				s.Cancel(e.OrderID)
			}
		}
	}
}

// Arm schedules (or reschedules) the escalation timer for an order.
// A deadline already in the past fires immediately.
func (s *EscalationScheduler) Arm(orderID kernel.UUID, deadline time.Time) {
	key := orderID.String()
	delay := time.Until(deadline)
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	if existing, ok := s.timers[key]; ok {
		existing.Stop()
	}
	s.timers[key] = time.AfterFunc(delay, func() {
		s.fire(orderID)
	})
}

// Cancel disarms the escalation timer for an order, if one is armed.
func (s *EscalationScheduler) Cancel(orderID kernel.UUID) {
	key := orderID.String()

	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[key]; ok {
		timer.Stop()
		delete(s.timers, key)
	}
}

// Stop disarms every timer. A stopped scheduler ignores further Arm calls.
func (s *EscalationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for key, timer := range s.timers {
		timer.Stop()
		delete(s.timers, key)
	}
}

func (s *EscalationScheduler) fire(orderID kernel.UUID) {
	key := orderID.String()

	s.mu.Lock()
	delete(s.timers, key)
	stopped := s.stopped
	s.mu.Unlock()
	if stopped {
		return
	}

	ctx := context.Background()
	cmd, err := commands.NewEscalateOrderCommand(orderID, DeadlineReason)
	if err != nil {
		s.logger.ErrorContext(ctx, "escalation timer built invalid command", "order_id", key, "error", err)
		return
	}

	escalated, err := s.handler.Handle(ctx, cmd)
	if err != nil {
		s.logger.ErrorContext(ctx, "deadline escalation failed", "order_id", key, "error", err)
		return
	}
	if escalated {
		s.logger.InfoContext(ctx, "order escalated on deadline", "order_id", key)
	}
}
