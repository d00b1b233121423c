package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkAuthHandler "github.com/T-Nieb/OPD-BookingService/internal/api/handlers/check_auth"
	createBookingHandler "github.com/T-Nieb/OPD-BookingService/internal/api/handlers/create_booking"
	dateCountsHandler "github.com/T-Nieb/OPD-BookingService/internal/api/handlers/date_counts"
	deleteBookingHandler "github.com/T-Nieb/OPD-BookingService/internal/api/handlers/delete_booking"
	getBookingsHandler "github.com/T-Nieb/OPD-BookingService/internal/api/handlers/get_bookings"
	loginHandler "github.com/T-Nieb/OPD-BookingService/internal/api/handlers/login"
	nextAvailableHandler "github.com/T-Nieb/OPD-BookingService/internal/api/handlers/next_available"
	patientByFolderHandler "github.com/T-Nieb/OPD-BookingService/internal/api/handlers/patient_by_folder"
	referralCountsHandler "github.com/T-Nieb/OPD-BookingService/internal/api/handlers/referral_counts"
	updateStatusHandler "github.com/T-Nieb/OPD-BookingService/internal/api/handlers/update_status"
	"github.com/T-Nieb/OPD-BookingService/internal/api/middleware"
	"github.com/T-Nieb/OPD-BookingService/internal/config"
	bookingRepo "github.com/T-Nieb/OPD-BookingService/internal/infra/storage/booking"
	patientRepo "github.com/T-Nieb/OPD-BookingService/internal/infra/storage/patient"
	userRepo "github.com/T-Nieb/OPD-BookingService/internal/infra/storage/user"
	authService "github.com/T-Nieb/OPD-BookingService/internal/service/auth"
	bookingsService "github.com/T-Nieb/OPD-BookingService/internal/service/bookings"
	patientsService "github.com/T-Nieb/OPD-BookingService/internal/service/patients"
	createBookingUC "github.com/T-Nieb/OPD-BookingService/internal/usecase/create_booking"
	nextAvailableUC "github.com/T-Nieb/OPD-BookingService/internal/usecase/next_available"
	"github.com/T-Nieb/OPD-BookingService/pkg/audit"
	"github.com/T-Nieb/OPD-BookingService/pkg/logger"
	"github.com/T-Nieb/OPD-BookingService/pkg/metrics"
	"github.com/T-Nieb/OPD-BookingService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting OPD-BookingService...")

	auditLog, err := audit.Open(cfg.Audit.File)
	if err != nil {
		log.Fatal("Failed to open audit log: %v", err)
	}
	defer auditLog.Close()

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Repositories and transaction manager
	bookingRepository := bookingRepo.NewRepository(db)
	patientRepository := patientRepo.NewRepository(db)
	userRepository := userRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Services
	limits := cfg.Limits.CategoryLimits()
	authSvc := authService.NewService(
		userRepository,
		auditLog,
		log,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)
	bookingSvc := bookingsService.NewService(bookingRepository, auditLog, log)
	patientSvc := patientsService.NewService(patientRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		patientRepository,
		limits,
		txMgr,
		auditLog,
		log,
	)
	nextAvailableUseCase := nextAvailableUC.NewUseCase(bookingRepository, limits, log)

	// Handlers
	login := loginHandler.NewHandler(authSvc, log)
	checkAuth := checkAuthHandler.NewHandler(log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	updateStatus := updateStatusHandler.NewHandler(bookingSvc, log)
	nextAvailable := nextAvailableHandler.NewHandler(nextAvailableUseCase, log)
	dateCounts := dateCountsHandler.NewHandler(bookingSvc, log)
	referralCounts := referralCountsHandler.NewHandler(bookingSvc, log)
	patientByFolder := patientByFolderHandler.NewHandler(patientSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public: sign-in only
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// Everything else requires a valid session
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc, log))

	protected.HandleFunc("/auth/check", checkAuth.Handle).Methods(http.MethodGet)

	// Availability lookups: any authenticated role, clinic included
	protected.HandleFunc("/bookings/next-available", nextAvailable.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/date-counts", dateCounts.Handle).Methods(http.MethodGet)

	// The booking book itself: hospital, opd_admin and master only.
	// Delete is narrowed further to master inside the service.
	manage := middleware.RequireManageBookings(log)
	protected.Handle("/bookings", manage(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	protected.Handle("/bookings", manage(http.HandlerFunc(getBookings.Handle))).Methods(http.MethodGet)
	protected.Handle("/bookings/referral-counts", manage(http.HandlerFunc(referralCounts.Handle))).Methods(http.MethodGet)
	protected.Handle("/bookings/{id:[0-9]+}", manage(http.HandlerFunc(deleteBooking.Handle))).Methods(http.MethodDelete)
	protected.Handle("/bookings/{id:[0-9]+}/status", manage(http.HandlerFunc(updateStatus.Handle))).Methods(http.MethodPatch)
	protected.Handle("/patients/by-folder", manage(http.HandlerFunc(patientByFolder.Handle))).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
