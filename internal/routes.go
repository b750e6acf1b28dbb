package internal

import (
	"net/http"
	"scopewatch/internal/controllers"
	"scopewatch/internal/providers"
)

func InitRoutes(dashboardController *controllers.DashboardController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/", http.HandlerFunc(dashboardController.Home))
	routers.Get("/monitor/{name}", http.HandlerFunc(dashboardController.MonitorDetail))
	routers.Get("/monitor/{name}/scopes", http.HandlerFunc(dashboardController.MonitorScopes))
	routers.Get("/monitor/{name}/{page}", http.HandlerFunc(dashboardController.MonitorDetail))
	routers.Get("/monitor/{name}/scope/{value}", http.HandlerFunc(dashboardController.ScopeWatch))
	routers.Get("/monitor/{name}/scope/{value}/url", http.HandlerFunc(dashboardController.ScopeURL))
	return routers
}
