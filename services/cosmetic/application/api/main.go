package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/fnbrowser/pkg/app"
	"github.com/ghuser/fnbrowser/pkg/auth"
	"github.com/ghuser/fnbrowser/services/cosmetic/application/handlers"
	appsvcs "github.com/ghuser/fnbrowser/services/cosmetic/application/services"
)

// CosmeticRoutes registers cosmetic catalog endpoints on the provided chi router.
// Visitor-scoped endpoints run behind the session middleware.
func CosmeticRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	r.Get("/facets", handlers.NewGetFacetsHandler(svcs).Execute)

	r.Route("/cosmetics", func(r chi.Router) {
		r.Get("/", handlers.NewListCosmeticsHandler(svcs).Execute)
		r.Get("/{id}", handlers.NewGetCosmeticHandler(svcs).Execute)
		r.Get("/{id}/related", handlers.NewGetRelatedHandler(svcs).Execute)
	})
	r.Get("/sets/{name}", handlers.NewGetSetHandler(svcs).Execute)

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/status", handlers.NewGetCatalogStatusHandler(svcs).Execute)
		r.Post("/refresh", handlers.NewPostCatalogRefreshHandler(svcs).Execute)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Visitor(a.SessionStore, a.Logger))

		r.Route("/searches", func(r chi.Router) {
			r.Get("/", handlers.NewListSearchesHandler(svcs).Execute)
			r.Get("/popular", handlers.NewPopularSearchesHandler(svcs).Execute)
			r.Post("/", handlers.NewPostSearchHandler(svcs).Execute)
			r.Delete("/", handlers.NewClearSearchesHandler(svcs).Execute)
			r.Delete("/{query}", handlers.NewDeleteSearchHandler(svcs).Execute)
		})
		r.Route("/viewed", func(r chi.Router) {
			r.Get("/", handlers.NewListViewedHandler(svcs).Execute)
			r.Post("/{id}", handlers.NewPostViewedHandler(svcs).Execute)
		})
		r.Get("/browse", handlers.NewBrowseHandler(svcs, a.Config.CORSAllowedOrigins).Execute)
	})
}
