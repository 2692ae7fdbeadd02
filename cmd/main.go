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

	adminStatsHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/admin_stats"
	cancelBookingHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/create_booking"
	deleteResourceHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/delete_resource"
	getBookingHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/get_booking"
	getResourceHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/get_resource"
	getUserBookingsHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/get_user_bookings"
	listAvailabilityHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/list_availability"
	listResourcesHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/list_resources"
	updateBookingStatusHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/update_booking_status"
	upsertResourceHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/upsert_resource"
	"github.com/m04kA/HMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/HMS-ReservationService/internal/config"
	"github.com/m04kA/HMS-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/catalog"
	guestServiceClient "github.com/m04kA/HMS-ReservationService/internal/integrations/guestservice"
	bookingsService "github.com/m04kA/HMS-ReservationService/internal/service/bookings"
	catalogService "github.com/m04kA/HMS-ReservationService/internal/service/catalog"
	statsService "github.com/m04kA/HMS-ReservationService/internal/service/stats"
	createBookingUC "github.com/m04kA/HMS-ReservationService/internal/usecase/create_booking"
	listAvailabilityUC "github.com/m04kA/HMS-ReservationService/internal/usecase/list_availability"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/logger"
	"github.com/m04kA/HMS-ReservationService/pkg/metrics"
	"github.com/m04kA/HMS-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/HMS-ReservationService/pkg/txmanager"
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

	log.Info("Starting HMS-ReservationService...")
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

	// Инициализируем клиента GuestService
	guestClient := guestServiceClient.NewClient(
		cfg.GuestService.URL,
		time.Duration(cfg.GuestService.Timeout)*time.Second,
		log,
	)
	log.Info("GuestService client initialized (url=%s, timeout=%ds)",
		cfg.GuestService.URL, cfg.GuestService.Timeout)

	// Статусы бронирований, занимающие ёмкость ресурсов
	capacityStatuses := domain.CapacityStatuses(cfg.Availability.CompletedBlocksCapacity)
	log.Info("Capacity statuses: %v (completed_blocks_capacity=%t)",
		capacityStatuses, cfg.Availability.CompletedBlocksCapacity)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		catalogRepository *catalogRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	statsSvc := statsService.NewService(
		bookingRepository,
		catalogRepository,
		capacityStatuses,
		cfg.Availability.OccupancyWindowDays,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		guestClient,
		txMgr,
		capacityStatuses,
		log,
	)

	listAvailabilityUseCase := listAvailabilityUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		capacityStatuses,
		log,
	)

	// Инициализируем handlers
	listAvailability := listAvailabilityHandler.NewHandler(listAvailabilityUseCase, log)
	listResources := listResourcesHandler.NewHandler(catalogSvc, log)
	getResource := getResourceHandler.NewHandler(catalogSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	upsertResource := upsertResourceHandler.NewHandler(catalogSvc, log)
	deleteResource := deleteResourceHandler.NewHandler(catalogSvc, log)
	adminStats := adminStatsHandler.NewHandler(statsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность ресурсов на диапазон дат
	api.HandleFunc("/availability", listAvailability.Handle).Methods(http.MethodGet)

	// Каталог ресурсов
	api.HandleFunc("/resources", listResources.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}", getResource.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth, middleware.AdminOnly)

	// Управление каталогом ресурсов
	admin.HandleFunc("/resources", upsertResource.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/resources/{resourceId}", deleteResource.Handle).Methods(http.MethodDelete)

	// Смена статуса бронирования
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Сводная статистика
	admin.HandleFunc("/stats", adminStats.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
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

	log.Info("Server exited")
}
