package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	router.NotFound(app.routeNotFoundResponse)
	router.MethodNotAllowed(app.methodNotAllowedErrorResponse)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(app.logRequest)
	router.Use(app.recoverPanic)
	for key, value := range securityHeaders {
		router.Use(middleware.SetHeader(key, value))
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.TrustedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	router.Route(app.config.APIVersion, func(r chi.Router) {
		r.Get("/healthcheck", app.healthCheckHandler)

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/all", app.getAllBlogsHandler)
			r.Get("/view/{blogId}", app.viewByBlogIDHandler)
			r.Get("/view/byAuthor/{author}", app.viewByAuthorHandler)
			r.Get("/view/byCategory/{category}", app.viewByCategoryHandler)
			r.Post("/create", app.createBlogHandler)
			r.Post("/edit/{blogId}", app.editBlogHandler)
			r.Post("/delete/{blogId}", app.deleteBlogHandler)
			r.Get("/count/view/{blogId}", app.increaseBlogViewHandler)
		})
	})

	return router
}
