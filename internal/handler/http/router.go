package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cmlabs-hris/applicant-intake-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/applicant-intake-go/internal/pkg/jwt"
)

type RouterOptions struct {
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// MetricsHandler serves /metrics; promhttp.Handler() when nil.
	MetricsHandler http.Handler
}

func NewRouter(JWTService jwt.Service, applicantHandler ApplicantHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "applicant-intake"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	metricsHandler := opts.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1/applications", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/me", func(r chi.Router) {
			r.Get("/", applicantHandler.GetMine)
			r.Put("/sections/{section}", applicantHandler.SaveSection)
			r.Post("/validate", applicantHandler.Validate)
			r.Post("/profile-image", applicantHandler.UploadProfileImage)

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", applicantHandler.ListDocuments)
				r.Post("/", applicantHandler.UploadDocuments)
				r.Post("/{category}", applicantHandler.UploadDocument)
				r.Get("/{category}/file", applicantHandler.DownloadDocument)
			})
		})

		// Staff review
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireReviewer)
			r.Get("/{id}", applicantHandler.GetApplication)
		})
	})

	return r
}
