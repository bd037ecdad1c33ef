package cmd

import (
	"log/slog"

	"orderboard/internal/adapters/out/ledger"
	"orderboard/internal/adapters/out/postgres"
	"orderboard/internal/adapters/out/webhook"
	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/core/domain/services"
	"orderboard/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	ledger     *ledger.Client
	publisher  ports.EventPublisher
	policy     ports.CreationPolicy
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	maxActiveOrders int,
	logger *slog.Logger,
) (CompositionRoot, error) {
	policy, err := services.NewMaxActiveOrdersPolicy(maxActiveOrders)
	if err != nil {
		return CompositionRoot{}, err
	}

	var publisher ports.EventPublisher
	if config.WebhookURL != "" {
		publisher = webhook.NewPublisher(config.WebhookURL, logger)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		ledger:     ledger.NewClient(config.LedgerBaseURL),
		publisher:  publisher,
		policy:     policy,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) Ledger() ports.Ledger {
	return c.ledger
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.createUoWFactory(), c.ledger, c.policy, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.createUoWFactory(), c.ledger, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.createUoWFactory(), c.ledger, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateExpireOrdersCommandHandler() commands.ExpireOrdersCommandHandler {
	return commands.NewExpireOrdersCommandHandler(c.createUoWFactory(), c.ledger, c.publisher, c.logger)
}

func (c *CompositionRoot) CreatePurgeOrdersCommandHandler() commands.PurgeOrdersCommandHandler {
	return commands.NewPurgeOrdersCommandHandler(c.createUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOwnerOrdersQueryHandler() queries.GetOwnerOrdersQueryHandler {
	return queries.NewGetOwnerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderDeliveriesQueryHandler() queries.GetOrderDeliveriesQueryHandler {
	return queries.NewGetOrderDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParticipantStatsQueryHandler() queries.GetParticipantStatsQueryHandler {
	return queries.NewGetParticipantStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
