package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/config"
	appHTTP "github.com/leavedesk/leavedesk-backend-go/internal/handler/http"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/cron"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/email"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/jwt"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/oauth"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/storage"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
	analyticsService "github.com/leavedesk/leavedesk-backend-go/internal/service/analytics"
	authService "github.com/leavedesk/leavedesk-backend-go/internal/service/auth"
	employeeService "github.com/leavedesk/leavedesk-backend-go/internal/service/employee"
	leaveService "github.com/leavedesk/leavedesk-backend-go/internal/service/leave"
	levelService "github.com/leavedesk/leavedesk-backend-go/internal/service/level"
	notifierService "github.com/leavedesk/leavedesk-backend-go/internal/service/notifier"
	reportService "github.com/leavedesk/leavedesk-backend-go/internal/service/report"
	tenantService "github.com/leavedesk/leavedesk-backend-go/internal/service/tenant"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	tenantRepo := postgresql.NewTenantRepository(db)
	levelRepo := postgresql.NewLevelRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	analyticsRepo := postgresql.NewAnalyticsRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			fmt.Println("Failed to initialize local storage:", err)
			os.Exit(1)
		}
	default:
		fmt.Println("Unsupported storage type:", cfg.Storage.Type)
		os.Exit(1)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		fmt.Println("Failed to initialize email service:", err)
		os.Exit(1)
	}
	leaveNotifier := notifierService.NewService(emailService, notifierService.Config{})
	defer leaveNotifier.Close()

	authSvc := authService.NewService(jwtService, googleService, employeeRepo)
	tenantSvc := tenantService.NewService(tenantRepo)
	balanceSvc := leaveService.NewBalanceService(db, leaveTypeRepo, leaveBalanceRepo, employeeRepo)
	levelSvc := levelService.NewService(db, balanceSvc, levelRepo, leaveTypeRepo, leaveBalanceRepo, employeeRepo)
	typeSvc := leaveService.NewTypeService(db, balanceSvc, leaveTypeRepo, leaveBalanceRepo, employeeRepo, levelRepo)
	requestSvc := leaveService.NewRequestService(db, cfg.App.FrontendURL, leaveNotifier, leaveTypeRepo, leaveBalanceRepo, leaveRequestRepo, employeeRepo, tenantRepo)
	employeeSvc := employeeService.NewService(db, balanceSvc, employeeRepo, levelRepo)
	analyticsSvc := analyticsService.NewService(analyticsRepo)
	reportSvc := reportService.NewService(leaveRequestRepo)

	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(employeeRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	handlers := appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(jwtService, authSvc),
		Tenant:    appHTTP.NewTenantHandler(tenantSvc),
		Level:     appHTTP.NewLevelHandler(levelSvc),
		Employee:  appHTTP.NewEmployeeHandler(employeeSvc),
		Leave:     appHTTP.NewLeaveHandler(typeSvc, balanceSvc, requestSvc, reportSvc),
		Analytics: appHTTP.NewAnalyticsHandler(analyticsSvc),
		File:      appHTTP.NewFileHandler(fileStorage),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
