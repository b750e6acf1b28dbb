//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"scopewatch/internal"
	"scopewatch/internal/controllers"
	"scopewatch/internal/providers"
	"scopewatch/internal/scheduler"
	"scopewatch/internal/services"
	"scopewatch/internal/storage"
	"scopewatch/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewCompressorProvider,
		providers.NewObjectStoreProvider,

		storage.NewDatabaseProvider,
		storage.NewEntityStore,

		services.NewScopeQueryService,
		services.NewAggregationService,
		services.NewSignedURLService,
		services.NewResponseCache,
		services.NewDashboardService,

		scheduler.NewScheduler,
		controllers.NewDashboardController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
