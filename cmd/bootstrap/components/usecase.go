package components

import (
	"context"

	"innkeeper/internal/infra/metrics"
	"innkeeper/internal/pkg/config"
	"innkeeper/internal/pkg/keylock"
	"innkeeper/internal/usecase/availability"
	"innkeeper/internal/usecase/commands"
	"innkeeper/internal/usecase/queries"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	fx.Invoke(registerHoldSweeper),
)

var usecaseBaseOption = fx.Provide(
	func(cfg config.Config) (commands.EngineSettings, error) {
		return commands.NewEngineSettings(cfg.Engine)
	},
	availability.NewIndex,
	// shared by the ledger and the folio service
	keylock.New[uuid.UUID],
	metrics.New,
	func(m *metrics.Metrics) shared.EngineMetrics { return m },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationLedger,
		commands.NewFolioService,
		commands.NewRoomCatalog,
		commands.NewHoldSweeper,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewAvailabilityQueries,
	),
)

// registerHoldSweeper rebuilds the availability index from durable state
// before the sweeper and the server start taking traffic.
func registerHoldSweeper(lc fx.Lifecycle, ledger commands.ReservationLedger, sweeper *commands.HoldSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := ledger.Restore(ctx); err != nil {
				return err
			}
			sweeper.Start()
			return nil
		},
		OnStop: sweeper.Stop,
	})
}
