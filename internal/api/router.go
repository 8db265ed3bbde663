package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/worlddist/ordering-backend/internal/api/handlers"
	"github.com/worlddist/ordering-backend/internal/api/middleware"
	"github.com/worlddist/ordering-backend/internal/config"
	"github.com/worlddist/ordering-backend/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSAllowOrigins))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"World Distribution API","status":"running"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	productHandler := handlers.NewProductHandler(services.Product)
	orderHandler := handlers.NewOrderHandler(services.Order)
	paymentHandler := handlers.NewPaymentHandler(services.Payment)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			// Logout takes no auth: it revokes whatever cookie is
			// present and succeeds either way.
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Post("/orders", orderHandler.Create)
			r.Get("/orders", orderHandler.List)
		})

		// Payment intent creation is deliberately outside the session
		// gate; the checkout widget calls it before login state is
		// relevant to the gateway.
		r.Post("/create-payment-intent", paymentHandler.CreateIntent)
		r.Post("/webhook", paymentHandler.Webhook)
	})

	return r
}
