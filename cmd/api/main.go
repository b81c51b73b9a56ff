package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/punchstack/punchclock-backend-go/internal/config"
	appHTTP "github.com/punchstack/punchclock-backend-go/internal/handler/http"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/cron"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/database"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/email"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/jwt"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/oauth"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/sse"
	"github.com/punchstack/punchclock-backend-go/internal/pkg/storage"
	"github.com/punchstack/punchclock-backend-go/internal/repository/postgresql"
	authService "github.com/punchstack/punchclock-backend-go/internal/service/auth"
	calendarService "github.com/punchstack/punchclock-backend-go/internal/service/calendar"
	dashboardService "github.com/punchstack/punchclock-backend-go/internal/service/dashboard"
	departmentService "github.com/punchstack/punchclock-backend-go/internal/service/department"
	employeeService "github.com/punchstack/punchclock-backend-go/internal/service/employee"
	exportService "github.com/punchstack/punchclock-backend-go/internal/service/export"
	mediaService "github.com/punchstack/punchclock-backend-go/internal/service/media"
	timeentryService "github.com/punchstack/punchclock-backend-go/internal/service/timeentry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	personalNoteRepo := postgresql.NewPersonalNoteRepository(db)
	exportRepo := postgresql.NewExportRepository(db)
	brandingRepo := postgresql.NewBrandingRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var googleSvc oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleSvc = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.OAuth2Google.Scopes,
		)
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	hub := sse.NewHub()

	authSvc := authService.NewAuthService(db, userRepo, employeeRepo, jwtRepo, jwtSvc, emailSvc, cfg.App.FrontendURL)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileStorage)
	timeEntrySvc := timeentryService.NewTimeEntryService(timeEntryRepo, userRepo, hub)
	calendarSvc := calendarService.NewCalendarService(calendarRepo, personalNoteRepo)
	exportSvc := exportService.NewExportService(exportRepo, timeEntryRepo, fileStorage, hub, cfg.Export.RetentionDays, cfg.Export.PreviewRows)
	mediaSvc := mediaService.NewMediaService(brandingRepo, employeeRepo, fileStorage)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	scheduler := cron.NewScheduler()
	cron.NewExportJobs(exportSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, jwtSvc, googleSvc, cfg.App.FrontendURL),
		Department: appHTTP.NewDepartmentHandler(departmentSvc, employeeSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		TimeEntry:  appHTTP.NewTimeEntryHandler(timeEntrySvc),
		Calendar:   appHTTP.NewCalendarHandler(calendarSvc),
		Export:     appHTTP.NewExportHandler(exportSvc),
		Media:      appHTTP.NewMediaHandler(mediaSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Events:     appHTTP.NewEventsHandler(jwtSvc, hub),
	}

	router := appHTTP.NewRouter(cfg, jwtSvc, handlers, cfg.Storage.BasePath)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
