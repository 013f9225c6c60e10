package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"golang.org/x/time/rate"
)

// minAnnouncementGap is the shortest interval between two periodic summary
// announcements for the same session.
const minAnnouncementGap = 5 * time.Minute

// session holds per-connection announcement state. The announced set and the
// rate limiter belong to the session: two operators looking at the same order
// collection each get their own reminders.
type session struct {
	viewer    services.Viewer
	limiter   *rate.Limiter
	announced map[string]struct{}
}

// Announcer drives the periodic spoken reminders: a pending-orders summary
// for each registered session, and a catch-up announcement for orders that
// appeared in storage without passing through the local create path (e.g.
// via store sync).
type Announcer struct {
	repository ports.OrderRepository
	visibility services.Visibility
	spoken     ports.SpokenAlertChannel
	logger     *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewAnnouncer creates an announcer over the given order source and spoken channel.
func NewAnnouncer(
	repository ports.OrderRepository,
	spoken ports.SpokenAlertChannel,
	logger *slog.Logger,
) *Announcer {
	return &Announcer{
		repository: repository,
		visibility: services.NewVisibility(),
		spoken:     spoken,
		logger:     logger.With("component", "announcer"),
		sessions:   make(map[string]*session),
	}
}

// RegisterSession starts announcement tracking for one connected operator.
// Registering an existing ID resets its state.
func (a *Announcer) RegisterSession(id string, viewer services.Viewer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions[id] = &session{
		viewer:    viewer,
		limiter:   rate.NewLimiter(rate.Every(minAnnouncementGap), 1),
		announced: make(map[string]struct{}),
	}
}

// UnregisterSession drops a session and its announcement state.
func (a *Announcer) UnregisterSession(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, id)
}

// AnnouncePendingSummary speaks a pending-order summary for every session
// whose view is non-empty and whose inter-announcement gap has elapsed.
func (a *Announcer) AnnouncePendingSummary(ctx context.Context, now time.Time) error {
	pending, err := a.repository.GetAllPending(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for id, sess := range a.sessions {
		view, viewErr := a.visibility.ViewFor(sess.viewer, pending)
		if viewErr != nil {
			a.logger.WarnContext(ctx, "skipping session with bad viewer", "session", id, "error", viewErr)
			continue
		}
		if len(view) == 0 {
			continue
		}
		if !sess.limiter.Allow() {
			continue
		}

		a.spoken.Announce(ports.SpokenAlert{
			Text:     summaryText(view, now),
			Priority: ports.PriorityNormal,
			Volume:   1.0,
			Rate:     1.0,
		})
	}

	return nil
}

// AnnounceNewOrders speaks an alert for pending orders a session has not yet
// been told about, and prunes tracking for orders that left Pending.
func (a *Announcer) AnnounceNewOrders(ctx context.Context) error {
	pending, err := a.repository.GetAllPending(ctx)
	if err != nil {
		return err
	}

	currentIDs := make(map[string]struct{}, len(pending))
	for _, o := range pending {
		currentIDs[o.ID().String()] = struct{}{}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for id, sess := range a.sessions {
		view, viewErr := a.visibility.ViewFor(sess.viewer, pending)
		if viewErr != nil {
			a.logger.WarnContext(ctx, "skipping session with bad viewer", "session", id, "error", viewErr)
			continue
		}

		for announced := range sess.announced {
			if _, still := currentIDs[announced]; !still {
				delete(sess.announced, announced)
			}
		}

		for _, o := range view {
			key := o.ID().String()
			if _, seen := sess.announced[key]; seen {
				continue
			}
			sess.announced[key] = struct{}{}

			a.spoken.Announce(ports.SpokenAlert{
				Text: fmt.Sprintf(
					"New order %s from %s, %s for %s.",
					o.Number(), o.Customer().Name(),
					pluralize(len(o.Items()), "item"), formatAmount(o.TotalAmount()),
				),
				Priority: ports.PriorityHigh,
				Volume:   1.0,
				Rate:     1.0,
			})
		}
	}

	return nil
}

func summaryText(view []*order.Order, now time.Time) string {
	oldest := view[0].CreatedAt()
	for _, o := range view[1:] {
		if o.CreatedAt().Before(oldest) {
			oldest = o.CreatedAt()
		}
	}

	return fmt.Sprintf(
		"You have %s. Oldest received %s.",
		pluralize(len(view), "pending order"), humanizeAge(now.Sub(oldest)),
	)
}

// humanizeAge renders an elapsed duration in the largest sensible unit.
func humanizeAge(age time.Duration) string {
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return agoText(int(age.Minutes()), "minute")
	case age < 24*time.Hour:
		return agoText(int(age.Hours()), "hour")
	default:
		return agoText(int(age.Hours()/24), "day")
	}
}

func agoText(count int, unit string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", count, unit)
}
