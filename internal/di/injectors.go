//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"sentinel/internal"
	"sentinel/internal/controllers"
	"sentinel/internal/monitor"
	"sentinel/internal/providers"
	"sentinel/internal/services"
	"sentinel/internal/storage"
	"sentinel/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,
		providers.NewTokenIssuer,

		storage.New,
		services.NewSiteService,
		monitor.NewProber,
		monitor.NewOrchestrator,
		monitor.NewScheduler,
		controllers.NewApiController,
		controllers.NewAuthController,
		controllers.NewMonitorController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
