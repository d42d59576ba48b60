package cmd

import (
	"log/slog"
	"time"

	"buildconnect/internal/adapters/out/notify"
	"buildconnect/internal/adapters/out/postgres"
	"buildconnect/internal/adapters/out/postgres/providerrepo"
	"buildconnect/internal/core/application/usecases/commands"
	"buildconnect/internal/core/application/usecases/queries"
	"buildconnect/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into command and query handlers.
type CompositionRoot struct {
	gormDB          *gorm.DB
	uowFactory      postgres.GormUnitOfWorkFactory
	dispatcher      ports.NotificationDispatcher
	publisher       ports.EventPublisher
	responseTimeout time.Duration
	logger          *slog.Logger
}

// NewCompositionRoot builds the application graph. A non-positive
// responseTimeout falls back to the command-layer default.
func NewCompositionRoot(
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	responseTimeout time.Duration,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher:      notify.NewDispatcher(logger),
		publisher:       publisher,
		responseTimeout: responseTimeout,
		logger:          logger,
	}
}

func (c *CompositionRoot) CreateCreateDeliveryRequestCommandHandler() commands.CreateDeliveryRequestCommandHandler {
	return commands.NewCreateDeliveryRequestCommandHandler(
		c.rotationUoWFactory(), c.dispatcher, c.publisher, c.responseTimeout, c.logger)
}

func (c *CompositionRoot) CreateSubmitProviderResponseCommandHandler() commands.SubmitProviderResponseCommandHandler {
	return commands.NewSubmitProviderResponseCommandHandler(
		c.rotationUoWFactory(), c.dispatcher, c.publisher, c.responseTimeout, c.logger)
}

func (c *CompositionRoot) CreateCancelDeliveryRequestCommandHandler() commands.CancelDeliveryRequestCommandHandler {
	return commands.NewCancelDeliveryRequestCommandHandler(
		c.rotationUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDiscloseDriverContactCommandHandler() commands.DiscloseDriverContactCommandHandler {
	resolver := providerrepo.NewGormContactResolver(c.gormDB)
	return commands.NewDiscloseDriverContactCommandHandler(
		c.disclosureUoWFactory(), resolver, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetRotationStatusQueryHandler() queries.GetRotationStatusQueryHandler {
	return queries.NewGetRotationStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveRequestsQueryHandler() queries.GetActiveRequestsQueryHandler {
	return queries.NewGetActiveRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetExpiredContactsQueryHandler() queries.GetExpiredContactsQueryHandler {
	return queries.NewGetExpiredContactsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) rotationUoWFactory() commands.RotationUoWFactory {
	return FuncRotationUoWFactory(func() commands.RotationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) disclosureUoWFactory() commands.DisclosureUoWFactory {
	return FuncDisclosureUoWFactory(func() commands.DisclosureUoW {
		return c.uowFactory.Create()
	})
}

type FuncRotationUoWFactory func() commands.RotationUoW

func (f FuncRotationUoWFactory) Create() commands.RotationUoW {
	return f()
}

type FuncDisclosureUoWFactory func() commands.DisclosureUoW

func (f FuncDisclosureUoWFactory) Create() commands.DisclosureUoW {
	return f()
}
