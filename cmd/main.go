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

	confirmBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/confirm_booking"
	createSessionHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_session"
	getAvailableDatesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getChainSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_chain_slots"
	getSessionHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_session"
	lockSlotHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/lock_slot"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/customer"
	lockRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/lock"
	sessionRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/internal/service/sessions"
	confirmBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/confirm_booking"
	getAvailableDatesUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	getChainSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_chain_slots"
	lockSlotUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/lock_slot"
	"github.com/m04kA/SMC-SalonBooking/internal/worker/locksweeper"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

func main() {
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// Выключенные метрики передаются как nil: все методы *metrics.Metrics безопасны для nil
	var metricsCollector *metrics.Metrics
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	catalogRepository := catalogRepo.NewRepository(wrappedDB, cfg.Booking.DefaultTimezone)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	lockRepository := lockRepo.NewRepository(wrappedDB)
	sessionRepository := sessionRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)

	// Индекс доступности строится заново на каждый запрос
	loader := availability.NewLoader(catalogRepository, appointmentRepository, log.Named("availability"))

	// Инициализируем сервисы
	sessionSvc := sessions.NewService(catalogRepository, sessionRepository, cfg.Booking.SessionTTL(), log)

	// Инициализируем use cases
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(sessionRepository, loader, metricsCollector, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		sessionRepository,
		lockRepository,
		loader,
		metricsCollector,
		cfg.Booking.LockTTL(),
		log,
	)
	getChainSlotsUseCase := getChainSlotsUC.NewUseCase(sessionRepository, loader, metricsCollector, log)
	lockSlotUseCase := lockSlotUC.NewUseCase(
		sessionRepository,
		lockRepository,
		appointmentRepository,
		loader,
		txMgr,
		metricsCollector,
		cfg.Booking.LockTTL(),
		log,
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		sessionRepository,
		lockRepository,
		customerRepository,
		appointmentRepository,
		loader,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getChainSlots := getChainSlotsHandler.NewHandler(getChainSlotsUseCase, log)
	lockSlot := lockSlotHandler.NewHandler(lockSlotUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Сессии бронирования ---
	api.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{token}", getSession.Handle).Methods(http.MethodGet)

	// --- Доступность ---
	api.HandleFunc("/sessions/{token}/dates", getAvailableDates.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{token}/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{token}/chain-slots", getChainSlots.Handle).Methods(http.MethodPost)

	// --- Бронирование ---
	api.HandleFunc("/sessions/{token}/lock", lockSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{token}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// Фоновая очистка истекших блокировок
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	sweeper := locksweeper.New(lockRepository, metricsCollector, cfg.Booking.SweepInterval(), log.Named("locksweeper"))
	sweeper.Start(sweeperCtx)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	sweeper.Stop()
	stopSweeper()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
