package components

import (
	"roomledger/internal/infra/catalog"
	"roomledger/internal/infra/ledger"
	"roomledger/internal/usecase/commands"
	"roomledger/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			ledger.NewPostgresStore,
			fx.As(new(commands.BookingRepository)),
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			catalog.NewPostgresCatalog,
			fx.As(new(commands.RoomRepository)),
		),
	),
)
