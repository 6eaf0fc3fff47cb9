package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/grindzone/grindzone-api/docs" // Swagger docs
	"github.com/grindzone/grindzone-api/handlers"
	"github.com/grindzone/grindzone-api/metrics"
	"github.com/grindzone/grindzone-api/middleware"
)

type Handlers struct {
	Tournament   *handlers.TournamentHandler
	Registration *handlers.RegistrationHandler
	Payment      *handlers.PaymentHandler
	Dashboard    *handlers.DashboardHandler
	WebSocket    *handlers.WebSocketHandler
	Health       *handlers.HealthHandler
}

type Options struct {
	Logger         *slog.Logger
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Location", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if h.Health != nil {
		router.Get("/healthz", h.Health.Healthz)
	}
	if opts.MetricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/api", func(r chi.Router) {
		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", h.Tournament.ListHandler)
			r.Post("/", h.Tournament.CreateHandler)
			r.Get("/categories", h.Tournament.CategoriesHandler)

			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", h.Tournament.GetByIDHandler)
				r.Put("/", h.Tournament.UpdateHandler)
				r.Delete("/", h.Tournament.DeleteHandler)
				r.Put("/image", h.Tournament.UploadImageHandler)
				r.Post("/register", h.Registration.Register)
			})
		})

		r.Get("/payments", h.Payment.ListHandler)
		r.Get("/dashboard/stats", h.Dashboard.Stats)
	})

	if h.WebSocket != nil {
		router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)
	}
}
