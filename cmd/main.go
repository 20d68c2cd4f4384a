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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	approveBookingHandler "github.com/jla-rentals/JLA-BookingService/internal/api/handlers/approve_booking"
	checkAvailabilityHandler "github.com/jla-rentals/JLA-BookingService/internal/api/handlers/check_availability"
	closeBookingHandler "github.com/jla-rentals/JLA-BookingService/internal/api/handlers/close_booking"
	createBookingHandler "github.com/jla-rentals/JLA-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/jla-rentals/JLA-BookingService/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/jla-rentals/JLA-BookingService/internal/api/handlers/get_calendar"
	importCalendarHandler "github.com/jla-rentals/JLA-BookingService/internal/api/handlers/import_calendar"
	listTrailersHandler "github.com/jla-rentals/JLA-BookingService/internal/api/handlers/list_trailers"
	lookupBookingHandler "github.com/jla-rentals/JLA-BookingService/internal/api/handlers/lookup_booking"
	markPaidHandler "github.com/jla-rentals/JLA-BookingService/internal/api/handlers/mark_paid"
	rejectBookingHandler "github.com/jla-rentals/JLA-BookingService/internal/api/handlers/reject_booking"
	rescheduleBookingHandler "github.com/jla-rentals/JLA-BookingService/internal/api/handlers/reschedule_booking"
	"github.com/jla-rentals/JLA-BookingService/internal/api/middleware"
	"github.com/jla-rentals/JLA-BookingService/internal/config"
	bookingRepo "github.com/jla-rentals/JLA-BookingService/internal/infra/storage/booking"
	clientRepo "github.com/jla-rentals/JLA-BookingService/internal/infra/storage/client"
	trailerRepo "github.com/jla-rentals/JLA-BookingService/internal/infra/storage/trailer"
	"github.com/jla-rentals/JLA-BookingService/internal/integrations/gcalendar"
	"github.com/jla-rentals/JLA-BookingService/internal/integrations/mailer"
	availabilityService "github.com/jla-rentals/JLA-BookingService/internal/service/availability"
	bookingsService "github.com/jla-rentals/JLA-BookingService/internal/service/bookings"
	credentialsService "github.com/jla-rentals/JLA-BookingService/internal/service/credentials"
	trailersService "github.com/jla-rentals/JLA-BookingService/internal/service/trailers"
	createBookingUC "github.com/jla-rentals/JLA-BookingService/internal/usecase/create_booking"
	importCalendarUC "github.com/jla-rentals/JLA-BookingService/internal/usecase/import_calendar"
	"github.com/jla-rentals/JLA-BookingService/pkg/dbmetrics"
	"github.com/jla-rentals/JLA-BookingService/pkg/logger"
	"github.com/jla-rentals/JLA-BookingService/pkg/metrics"
	"github.com/jla-rentals/JLA-BookingService/pkg/simpletxmanager"
	"github.com/jla-rentals/JLA-BookingService/pkg/txmanager"
)

func main() {
	// .env не обязателен, секреты могут приходить из окружения напрямую
	_ = godotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting JLA-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Почтовые уведомления
	notifier := mailer.NewClient(mailer.Config{
		Enabled:       cfg.SMTP.Enabled,
		Host:          cfg.SMTP.Host,
		Port:          cfg.SMTP.Port,
		Username:      cfg.SMTP.Username,
		Password:      cfg.SMTP.Password,
		FromName:      cfg.SMTP.FromName,
		RatePerSecond: cfg.SMTP.RatePerSecond,
		Burst:         cfg.SMTP.Burst,
	}, log)
	log.Info("Mail notifier initialized (enabled=%v, host=%s)", cfg.SMTP.Enabled, cfg.SMTP.Host)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		clientRepository  *clientRepo.Repository
		trailerRepository *trailerRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		trailerRepository = trailerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		trailerRepository = trailerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	credentialsSvc := credentialsService.NewService(credentialsService.Config{
		Pepper: cfg.Credentials.Pepper,
	})
	availabilitySvc := availabilityService.NewService(bookingRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		clientRepository,
		availabilitySvc,
		credentialsSvc,
		notifier,
		log,
	)
	trailersSvc := trailersService.NewService(trailerRepository, bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		clientRepository,
		trailerRepository,
		availabilitySvc,
		credentialsSvc,
		notifier,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	lookupBooking := lookupBookingHandler.NewHandler(bookingSvc, log)
	listTrailers := listTrailersHandler.NewHandler(trailersSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilitySvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	approveBooking := approveBookingHandler.NewHandler(bookingSvc, log)
	markPaid := markPaidHandler.NewHandler(bookingSvc, log)
	closeBooking := closeBookingHandler.NewHandler(bookingSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(bookingSvc, log)
	getCalendar := getCalendarHandler.NewHandler(trailersSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (клиенты, без аутентификации)
	// ============================================================

	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/lookup", lookupBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/trailers", listTrailers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/trailers/{trailerId}", listTrailers.HandleGetByID).Methods(http.MethodGet)
	api.HandleFunc("/trailers/{trailerId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (сотрудники, X-Staff-Token header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.StaffAuth(cfg.Auth.StaffToken))

	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/approve", approveBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/paid", markPaid.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/close", closeBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// Синхронизация с Google Calendar доступна только при настроенной
	// интеграции
	if cfg.Calendar.Enabled {
		calendarClient, err := gcalendar.NewClient(
			context.Background(),
			cfg.Calendar.CredentialsFile,
			cfg.Calendar.CalendarID,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize calendar client: %v", err)
		}
		log.Info("Google Calendar integration initialized (calendar_id=%s)", cfg.Calendar.CalendarID)

		importCalendarUseCase := importCalendarUC.NewUseCase(
			calendarClient,
			bookingRepository,
			clientRepository,
			trailerRepository,
			availabilitySvc,
			credentialsSvc,
			notifier,
			log,
		)
		importCalendar := importCalendarHandler.NewHandler(importCalendarUseCase, log)
		protected.HandleFunc("/calendar/sync", importCalendar.Handle).Methods(http.MethodPost)
	} else {
		log.Info("Google Calendar integration disabled, /calendar/sync is not registered")
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
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

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
