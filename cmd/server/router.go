package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/emberhq/portfolio-api/internal/api"
	apiMiddleware "github.com/emberhq/portfolio-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.logger,
	)
	userHandler := api.NewUserHandler(app.userStore, app.logger)
	productHandler := api.NewProductHandler(app.productStore, app.logger)
	orderHandler := api.NewOrderHandler(app.orderStore, app.orderService, app.logger)
	blogHandler := api.NewBlogPostHandler(app.postStore, app.blogService, app.logger)
	weatherHandler := api.NewWeatherHandler()
	taskHandler := api.NewTaskHandler(app.taskRegistry, app.taskRunner, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	r.Route("/api", func(r chi.Router) {
		if app.config.RateLimit.Enabled {
			r.Use(httprate.LimitByIP(app.config.RateLimit.RequestsPerMinute, time.Minute))
		}

		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Product catalog (public reads)
		r.With(httprate.LimitByIP(60, time.Minute)).
			Get("/products", productHandler.List)
		r.Get("/products/categories", productHandler.Categories)
		r.Get("/products/{id}", productHandler.Get)

		// Blog (public reads; an optional token lets admins see drafts)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.OptionalAuthenticate)
			r.With(httprate.LimitByIP(60, time.Minute)).
				Get("/blog", blogHandler.List)
			r.Get("/blog/tags", blogHandler.Tags)
			r.Get("/blog/{id}", blogHandler.Get)
		})

		// Weather simulation (public)
		r.With(httprate.LimitByIP(30, time.Minute)).
			Get("/weather/current", weatherHandler.Current)
		r.With(httprate.LimitByIP(20, time.Minute)).
			Get("/weather/forecast", weatherHandler.Forecast)
		r.Get("/weather/cities", weatherHandler.Cities)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			// User management
			r.With(apiMiddleware.RequireAdmin, httprate.LimitByIP(30, time.Minute)).
				Get("/users", userHandler.List)
			r.Get("/users/{id}", userHandler.Get)
			r.Put("/users/{id}", userHandler.Update)
			r.With(apiMiddleware.RequireAdmin).Delete("/users/{id}", userHandler.Delete)

			// Catalog administration
			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.RequireAdmin)
				r.Post("/products", productHandler.Create)
				r.Put("/products/{id}", productHandler.Update)
				r.Delete("/products/{id}", productHandler.Delete)
			})

			// Orders
			r.Get("/orders", orderHandler.List)
			r.Post("/orders", orderHandler.Create)
			r.Get("/orders/{id}", orderHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.RequireAdmin)
				r.Put("/orders/{id}/status", orderHandler.UpdateStatus)
				r.Put("/orders/{id}/payment", orderHandler.UpdatePayment)
			})

			// Blog administration
			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.RequireAdmin)
				r.Post("/blog", blogHandler.Create)
				r.Put("/blog/{id}", blogHandler.Update)
				r.Delete("/blog/{id}", blogHandler.Delete)
			})

			// Background tasks
			r.With(httprate.LimitByIP(10, time.Minute)).
				Post("/tasks", taskHandler.Create)
			r.Get("/tasks", taskHandler.List)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Post("/tasks/{id}/cancel", taskHandler.Cancel)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	return r
}
