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
	"github.com/leavedesk/leavedesk-backend-go/internal/config"
	"github.com/leavedesk/leavedesk-backend-go/internal/handler/http/middleware"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth      AuthHandler
	Tenant    TenantHandler
	Level     LevelHandler
	Employee  EmployeeHandler
	Leave     LeaveHandler
	Analytics AnalyticsHandler
	File      FileHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leavedesk"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Uploaded documents, logos and avatars.
	if cfg.Storage.Type == "local" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.BasePath)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService))
				r.Post("/change-password", h.Auth.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/tenants", func(r chi.Router) {
				r.Get("/my", h.Tenant.GetMy)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Tenant.List)
					r.Post("/", h.Tenant.Create)
					r.Get("/{id}", h.Tenant.Get)
					r.Put("/my", h.Tenant.UpdateMy)
				})
			})

			r.Route("/levels", func(r chi.Router) {
				r.Get("/", h.Level.List)
				r.Get("/{id}", h.Level.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Level.Create)
					r.Put("/{id}", h.Level.Update)
					r.Delete("/{id}", h.Level.Delete)
					r.Post("/assign", h.Level.Assign)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/my", h.Employee.GetMy)
				r.Get("/{id}", h.Employee.Get)
				r.Get("/{id}/leave-balances", h.Leave.GetEmployeeBalances)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/types", func(r chi.Router) {
					r.Get("/", h.Leave.ListTypes)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/", h.Leave.CreateType)
						r.Put("/{id}", h.Leave.UpdateType)
						r.Delete("/{id}", h.Leave.DeleteType)
					})
				})

				r.Get("/balances/my", h.Leave.GetMyBalances)

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", h.Leave.CreateRequest)
					r.Get("/my", h.Leave.GetMyRequests)
					r.Get("/{id}", h.Leave.GetRequest)
					// Stage-1 review; the service enforces that the caller is
					// the recorded line manager or an admin.
					r.Post("/{id}/review/manager", h.Leave.ReviewByLineManager)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Get("/", h.Leave.ListRequests)
						r.Post("/{id}/review/admin", h.Leave.ReviewByTenantAdmin)
						r.Post("/{id}/cancel", h.Leave.CancelRequest)
						r.Delete("/{id}", h.Leave.DeleteRequest)
					})
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/reports/monthly", h.Leave.DownloadMonthlyReport)
				})
			})

			// Admin only
			r.Route("/analytics", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/monthly", h.Analytics.MonthlyBreakdown)
				r.Get("/overview", h.Analytics.Overview)
				r.Get("/usage", h.Analytics.UsageByType)
			})

			r.Post("/files", h.File.Upload)
		})
	})
	return r
}
