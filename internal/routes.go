package internal

import (
	"net/http"
	"sentinel/internal/controllers"
	"sentinel/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, authController *controllers.AuthController, monitorController *controllers.MonitorController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/sites", http.HandlerFunc(apiController.ListSites))
	routers.Post("/api/sites", http.HandlerFunc(apiController.CreateSite))
	routers.Put("/api/sites/update", http.HandlerFunc(apiController.UpdateSite))
	routers.Post("/api/sites/delete", http.HandlerFunc(apiController.DeleteSite))
	routers.Post("/api/sites/import", http.HandlerFunc(apiController.ImportSites))

	routers.Get("/api/categories", http.HandlerFunc(apiController.ListCategories))
	routers.Post("/api/categories", http.HandlerFunc(apiController.CreateCategory))
	routers.Put("/api/categories/update", http.HandlerFunc(apiController.RenameCategory))
	routers.Post("/api/categories/delete", http.HandlerFunc(apiController.DeleteCategory))

	routers.Get("/api/theme", http.HandlerFunc(apiController.GetTheme))
	routers.Post("/api/theme", http.HandlerFunc(apiController.SetTheme))

	routers.Post("/api/monitor/check", http.HandlerFunc(monitorController.Check))

	routers.Get("/api/captcha", http.HandlerFunc(authController.IssueChallenge))
	routers.Post("/api/captcha/verify", http.HandlerFunc(authController.VerifyChallenge))
	routers.Post("/api/login", http.HandlerFunc(authController.Login))
	routers.Get("/api/me", http.HandlerFunc(authController.Me))

	return routers
}
