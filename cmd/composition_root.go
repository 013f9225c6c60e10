package cmd

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	ordersync "fulfillment/internal/adapters/out/sync"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/notifications"
	"fulfillment/internal/scheduler"
)

// CompositionRoot wires the application graph: the unit of work over the
// database, the notification channels, the escalation scheduler, and the
// event fan-out connecting mutations to their side effects.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	publisher   *FanOutPublisher
	speechQueue *notify.SpeechQueue
	pushSender  *notify.PushSender
	dispatcher  *notifications.Dispatcher
	escalations *scheduler.EscalationScheduler
	announcer   *notifications.Announcer
	syncClient  *ordersync.Client
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		publisher:  &FanOutPublisher{},
	}

	root.speechQueue = notify.NewSpeechQueue(notify.NewLogSynthesizer(logger), logger)
	root.pushSender = notify.NewPushSender(notify.NewLogPushDeliverer(logger), logger)
	root.dispatcher = notifications.NewDispatcher(root.speechQueue, root.pushSender, logger)

	// The scheduler's timer fires back into the escalate handler, whose own
	// events flow through the same fan-out. The publisher is filled in after
	// both subscribers exist.
	root.escalations = scheduler.NewEscalationScheduler(root.CreateEscalateOrderCommandHandler(), logger)
	root.publisher.Register(root.dispatcher, root.escalations)

	readRepository := orderrepo.NewGormOrderRepository(gormDB, orderrepo.NoopTracker{})
	root.announcer = notifications.NewAnnouncer(readRepository, root.speechQueue, logger)

	root.syncClient = ordersync.NewClient(config.OrderStoreURL)

	return root
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateReassignOrderCommandHandler() commands.ReassignOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReassignOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateEscalateOrderCommandHandler() commands.EscalateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEscalateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateEscalateOverdueCommandHandler() commands.EscalateOverdueCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEscalateOverdueCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateSyncOrdersCommandHandler() commands.SyncOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSyncOrdersCommandHandler(f, c.syncClient)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEscalatedOrdersQueryHandler() queries.GetEscalatedOrdersQueryHandler {
	return queries.NewGetEscalatedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateEscalateOverdueCommandHandler(),
		c.CreateSyncOrdersCommandHandler(),
		c.announcer,
		c.logger,
	)
}

// Announcer returns the per-session pending-order announcer.
func (c *CompositionRoot) Announcer() *notifications.Announcer {
	return c.announcer
}

// EscalationScheduler returns the per-order deadline timer scheduler.
func (c *CompositionRoot) EscalationScheduler() *scheduler.EscalationScheduler {
	return c.escalations
}

// Shutdown stops the background side-effect machinery. Pending timers are
// disarmed; the overdue sweep picks up anything in flight on next start.
func (c *CompositionRoot) Shutdown() {
	c.escalations.Stop()
	c.speechQueue.Stop()
}

// FanOutPublisher relays each committed event batch to every registered
// subscriber.
type FanOutPublisher struct {
	targets []ports.EventPublisher
}

func (p *FanOutPublisher) Register(targets ...ports.EventPublisher) {
	p.targets = append(p.targets, targets...)
}

func (p *FanOutPublisher) Publish(ctx context.Context, events ...order.DomainEvent) {
	for _, target := range p.targets {
		target.Publish(ctx, events...)
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
