package components

import (
	"lessonbook/internal/infra/readstore"
	"lessonbook/internal/infra/uow"
	"lessonbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork owns transactions and write-side repositories
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewScheduleReadStore,
			fx.As(new(queries.ScheduleViewRepo)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		fx.Annotate(
			readstore.NewLedgerReadStore,
			fx.As(new(queries.LedgerViewRepo)),
		),
	),
)
