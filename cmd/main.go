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

	addBlockedPeriodHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/add_blocked_period"
	cancelReservationHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/cancel_reservation"
	confirmReservationHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/create_reservation"
	createResourceHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/create_resource"
	deleteReservationHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/delete_reservation"
	deleteResourceHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/delete_resource"
	getOwnerReservationsHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/get_owner_reservations"
	getReservationHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/get_reservation"
	getResourceHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/get_resource"
	getUserReservationsHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/get_user_reservations"
	listBlockedPeriodsHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/list_blocked_periods"
	listResourcesHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/list_resources"
	removeBlockedPeriodHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/remove_blocked_period"
	updateReservationHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/update_reservation"
	updateResourceHandler "github.com/rodrigocvmd/pgra-backend/internal/api/handlers/update_resource"
	"github.com/rodrigocvmd/pgra-backend/internal/api/middleware"
	"github.com/rodrigocvmd/pgra-backend/internal/config"
	"github.com/rodrigocvmd/pgra-backend/internal/domain"
	blockedPeriodRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/blockedperiod"
	reservationRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/reservation"
	resourceRepo "github.com/rodrigocvmd/pgra-backend/internal/infra/storage/resource"
	identityServiceClient "github.com/rodrigocvmd/pgra-backend/internal/integrations/identityservice"
	availabilityService "github.com/rodrigocvmd/pgra-backend/internal/service/availability"
	conflictsService "github.com/rodrigocvmd/pgra-backend/internal/service/conflicts"
	reservationsService "github.com/rodrigocvmd/pgra-backend/internal/service/reservations"
	resourcesService "github.com/rodrigocvmd/pgra-backend/internal/service/resources"
	createReservationUC "github.com/rodrigocvmd/pgra-backend/internal/usecase/create_reservation"
	updateReservationUC "github.com/rodrigocvmd/pgra-backend/internal/usecase/update_reservation"
	"github.com/rodrigocvmd/pgra-backend/pkg/dbmetrics"
	"github.com/rodrigocvmd/pgra-backend/pkg/logger"
	"github.com/rodrigocvmd/pgra-backend/pkg/metrics"
	"github.com/rodrigocvmd/pgra-backend/pkg/simpletxmanager"
	"github.com/rodrigocvmd/pgra-backend/pkg/txmanager"
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

	log.Info("Starting PGRA-Backend...")
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

	// Инициализируем клиент identity-сервиса
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Identity service client initialized (url=%s, timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		resourceRepository      *resourceRepo.Repository
		reservationRepository   *reservationRepo.Repository
		blockedPeriodRepository *blockedPeriodRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		blockedPeriodRepository = blockedPeriodRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		resourceRepository = resourceRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		blockedPeriodRepository = blockedPeriodRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем проверку конфликтов интервалов
	conflictChecker := conflictsService.NewChecker(
		resourceRepository,
		reservationRepository,
		blockedPeriodRepository,
		log,
	)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		resourceRepository,
		identityClient,
		log,
	)
	resourceSvc := resourcesService.NewService(
		resourceRepository,
		reservationRepository,
		identityClient,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		blockedPeriodRepository,
		resourceRepository,
		identityClient,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		resourceRepository,
		conflictChecker,
		identityClient,
		txMgr,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		resourceRepository,
		conflictChecker,
		identityClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getOwnerReservations := getOwnerReservationsHandler.NewHandler(reservationSvc, log)
	createResource := createResourceHandler.NewHandler(resourceSvc, log)
	getResource := getResourceHandler.NewHandler(resourceSvc, log)
	listResources := listResourcesHandler.NewHandler(resourceSvc, log)
	updateResource := updateResourceHandler.NewHandler(resourceSvc, log)
	deleteResource := deleteResourceHandler.NewHandler(resourceSvc, log)
	addBlockedPeriod := addBlockedPeriodHandler.NewHandler(availabilitySvc, log)
	listBlockedPeriods := listBlockedPeriodsHandler.NewHandler(availabilitySvc, log)
	removeBlockedPeriod := removeBlockedPeriodHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог ресурсов
	api.HandleFunc("/resources", listResources.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}", getResource.Handle).Methods(http.MethodGet)

	// Заблокированные периоды ресурса
	api.HandleFunc("/resources/{resourceId}/blocked-periods", listBlockedPeriods.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// Бронирования на ресурсах владельца
	protected.HandleFunc("/owners/{ownerId}/reservations", getOwnerReservations.Handle).Methods(http.MethodGet)

	// --- Ресурсы ---
	protected.HandleFunc("/resources", createResource.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/resources/{resourceId}", updateResource.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/resources/{resourceId}", deleteResource.Handle).Methods(http.MethodDelete)

	// --- Доступность ---
	protected.HandleFunc("/resources/{resourceId}/blocked-periods", addBlockedPeriod.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blocked-periods/{blockedPeriodId}", removeBlockedPeriod.Handle).Methods(http.MethodDelete)

	// Фоновое завершение прошедших подтвержденных бронирований
	stopFinalizerCh := make(chan struct{})
	if cfg.Finalizer.Enabled {
		intervalSeconds := cfg.Finalizer.IntervalSeconds
		if intervalSeconds <= 0 {
			intervalSeconds = domain.DefaultFinalizerIntervalSeconds
		}
		interval := time.Duration(intervalSeconds) * time.Second
		go runFinalizer(reservationSvc, interval, stopFinalizerCh, log)
		log.Info("Reservation finalizer started (interval=%s)", interval)
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи
	if cfg.Finalizer.Enabled {
		close(stopFinalizerCh)
		log.Info("Reservation finalizer stopped")
	}
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

// runFinalizer по таймеру переводит прошедшие подтвержденные бронирования
// в статус finalized
func runFinalizer(svc *reservationsService.Service, interval time.Duration, stopCh <-chan struct{}, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			count, err := svc.FinalizePast(context.Background())
			if err != nil {
				log.Error("Finalizer sweep failed: %v", err)
				continue
			}
			if count > 0 {
				log.Info("Finalizer sweep completed: finalized=%d", count)
			}
		case <-stopCh:
			return
		}
	}
}
