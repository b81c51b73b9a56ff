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
	"github.com/punchstack/punchclock-backend-go/internal/config"
	"github.com/punchstack/punchclock-backend-go/internal/handler/http/middleware"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Department DepartmentHandler
	Employee   EmployeeHandler
	TimeEntry  TimeEntryHandler
	Calendar   CalendarHandler
	Export     ExportHandler
	Media      MediaHandler
	Dashboard  DashboardHandler
	Events     EventsHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers, uploadsDir string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "punchclock"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRFToken"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	// Stored uploads (profile pictures, logos) are served directly.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", h.Auth.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", h.Auth.LoginWithGoogle)
				})
			})
		})

		// The event stream authenticates with its own short-lived token
		// because EventSource cannot send headers.
		r.Get("/events/stream", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/events/token/", h.Events.Token)

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Department.List)
				r.Get("/{id}/employees/", h.Department.ListEmployees)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/create/", h.Department.Create)
					r.Post("/{id}/update/", h.Department.Update)
					r.Post("/{id}/delete/", h.Department.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/get/", h.Employee.List)
				r.Post("/get/", h.Employee.List)
				r.Get("/{id}/", h.Employee.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/{id}/update/", h.Employee.Update)
					r.Delete("/{id}/delete/", h.Employee.Delete)
				})
			})

			r.Route("/time", func(r chi.Router) {
				r.Post("/punch/", h.TimeEntry.Punch)
				r.Get("/today/", h.TimeEntry.Today)
				r.Get("/recent/", h.TimeEntry.Recent)
				r.Get("/entries/", h.TimeEntry.List)
				r.Get("/entries/{id}/", h.TimeEntry.Get)
				r.Get("/segment-count/", h.TimeEntry.SegmentCount)
				r.Put("/entry/{id}/update/", h.TimeEntry.Update)
				r.Delete("/entry/{id}/delete/", h.TimeEntry.Delete)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/update-status/", h.TimeEntry.UpdateStatus)
					r.Post("/approve-all/", h.TimeEntry.ApproveAll)
				})
			})

			r.Route("/calendar-settings", func(r chi.Router) {
				r.Get("/get/", h.Calendar.GetSettings)
				r.Get("/holidays.ics", h.Calendar.HolidaysICal)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/update/", h.Calendar.UpdateSettings)
					r.Post("/update-global-holiday/", h.Calendar.UpdateGlobalHoliday)
				})
			})

			r.Route("/personal-notes", func(r chi.Router) {
				r.Get("/get/", h.Calendar.GetPersonalNotes)
				r.Post("/update/", h.Calendar.UpdatePersonalNote)
				r.Delete("/delete/", h.Calendar.DeletePersonalNote)
			})

			// Admin only
			r.Route("/export", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/generate/", h.Export.Generate)
				r.Post("/preview/", h.Export.Preview)
				r.Get("/recent/", h.Export.ListRecent)
				r.Delete("/delete/{id}/", h.Export.Delete)
				r.Get("/download/{id}/", h.Export.Download)
			})

			r.Route("/profile-picture", func(r chi.Router) {
				r.Get("/get/", h.Media.GetProfilePicture)
				r.Post("/", h.Media.UploadProfilePicture)
				r.Delete("/", h.Media.DeleteProfilePicture)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/employee-profile-picture/{id}/", h.Media.UploadEmployeeProfilePicture)
			})

			r.Route("/company-logo", func(r chi.Router) {
				r.Get("/get/", h.Media.GetLogo)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Media.UploadLogo)
					r.Delete("/", h.Media.DeleteLogo)
				})
			})

			r.Get("/dashboard/summary/", h.Dashboard.Summary)
		})
	})
	return r
}
