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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/tablebook/reservation-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/tablebook/reservation-service/internal/api/handlers/create_booking"
	createCombinedTableHandler "github.com/tablebook/reservation-service/internal/api/handlers/create_combined_table"
	createTableHandler "github.com/tablebook/reservation-service/internal/api/handlers/create_table"
	deleteCombinedTableHandler "github.com/tablebook/reservation-service/internal/api/handlers/delete_combined_table"
	getAvailableSlotsHandler "github.com/tablebook/reservation-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/tablebook/reservation-service/internal/api/handlers/get_booking"
	getGuestBookingsHandler "github.com/tablebook/reservation-service/internal/api/handlers/get_guest_bookings"
	getOpeningHoursHandler "github.com/tablebook/reservation-service/internal/api/handlers/get_opening_hours"
	getRestaurantBookingsHandler "github.com/tablebook/reservation-service/internal/api/handlers/get_restaurant_bookings"
	getSettingsHandler "github.com/tablebook/reservation-service/internal/api/handlers/get_settings"
	listCombinedTablesHandler "github.com/tablebook/reservation-service/internal/api/handlers/list_combined_tables"
	listTablesHandler "github.com/tablebook/reservation-service/internal/api/handlers/list_tables"
	updateBookingStatusHandler "github.com/tablebook/reservation-service/internal/api/handlers/update_booking_status"
	updateOpeningHoursHandler "github.com/tablebook/reservation-service/internal/api/handlers/update_opening_hours"
	updateSettingsHandler "github.com/tablebook/reservation-service/internal/api/handlers/update_settings"
	updateTableHandler "github.com/tablebook/reservation-service/internal/api/handlers/update_table"
	validateBookingHandler "github.com/tablebook/reservation-service/internal/api/handlers/validate_booking"
	"github.com/tablebook/reservation-service/internal/api/middleware"
	"github.com/tablebook/reservation-service/internal/config"
	"github.com/tablebook/reservation-service/internal/infra/cache"
	bookingRepo "github.com/tablebook/reservation-service/internal/infra/storage/booking"
	scheduleRepo "github.com/tablebook/reservation-service/internal/infra/storage/schedule"
	settingsRepo "github.com/tablebook/reservation-service/internal/infra/storage/settings"
	tableRepo "github.com/tablebook/reservation-service/internal/infra/storage/table"
	bookingsService "github.com/tablebook/reservation-service/internal/service/bookings"
	scheduleService "github.com/tablebook/reservation-service/internal/service/schedule"
	tablesService "github.com/tablebook/reservation-service/internal/service/tables"
	createBookingUC "github.com/tablebook/reservation-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/tablebook/reservation-service/internal/usecase/get_available_slots"
	validateBookingUC "github.com/tablebook/reservation-service/internal/usecase/validate_booking"
	"github.com/tablebook/reservation-service/pkg/dbmetrics"
	"github.com/tablebook/reservation-service/pkg/logger"
	"github.com/tablebook/reservation-service/pkg/metrics"
	"github.com/tablebook/reservation-service/pkg/simpletxmanager"
	"github.com/tablebook/reservation-service/pkg/txmanager"
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

	log.Info("Starting reservation-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Подключаемся к Redis для кеша доступности (если включен)
	var availabilityCache *cache.AvailabilityCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to ping redis: %v", err)
		}
		cancel()

		availabilityCache = cache.New(rdb, cfg.Redis.CacheTTL(), log)
		log.Info("Availability cache enabled (redis=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.CacheTTL())
	} else {
		log.Info("Availability cache disabled")
	}

	// Типизированный nil в интерфейсе ломает проверку cache == nil
	// у потребителей, поэтому кеш присваивается только при включенном Redis
	var (
		slotsCache           getAvailableSlotsUC.AvailabilityCache
		createCache          createBookingUC.AvailabilityCache
		bookingsServiceCache bookingsService.AvailabilityCache
	)
	if availabilityCache != nil {
		slotsCache = availabilityCache
		createCache = availabilityCache
		bookingsServiceCache = availabilityCache
	}

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		tableRepository    *tableRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		settingsRepository *settingsRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		tableRepository = tableRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		tableRepository = tableRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, bookingsServiceCache, log)
	tableSvc := tablesService.NewService(tableRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, settingsRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		tableRepository,
		scheduleRepository,
		settingsRepository,
		slotsCache,
		log,
	)

	validateBookingUseCase := validateBookingUC.NewUseCase(
		bookingRepository,
		tableRepository,
		scheduleRepository,
		settingsRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		tableRepository,
		scheduleRepository,
		settingsRepository,
		txMgr,
		createCache,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	validateBooking := validateBookingHandler.NewHandler(validateBookingUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getGuestBookings := getGuestBookingsHandler.NewHandler(bookingSvc, log)
	getRestaurantBookings := getRestaurantBookingsHandler.NewHandler(bookingSvc, log)
	getOpeningHours := getOpeningHoursHandler.NewHandler(scheduleSvc, log)
	updateOpeningHours := updateOpeningHoursHandler.NewHandler(scheduleSvc, log)
	getSettings := getSettingsHandler.NewHandler(scheduleSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(scheduleSvc, log)
	listTables := listTablesHandler.NewHandler(tableSvc, log)
	createTable := createTableHandler.NewHandler(tableSvc, log)
	updateTable := updateTableHandler.NewHandler(tableSvc, log)
	listCombinedTables := listCombinedTablesHandler.NewHandler(tableSvc, log)
	createCombinedTable := createCombinedTableHandler.NewHandler(tableSvc, log)
	deleteCombinedTable := deleteCombinedTableHandler.NewHandler(tableSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Ограничение частоты запросов (если включено)
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		api.Use(rateLimiter.Middleware())
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание и настройки ресторана
	api.HandleFunc("/restaurants/{restaurantId}/opening-hours",
		getOpeningHours.Handle).Methods(http.MethodGet)
	api.HandleFunc("/restaurants/{restaurantId}/settings",
		getSettings.Handle).Methods(http.MethodGet)

	// Столы и комбинации
	api.HandleFunc("/restaurants/{restaurantId}/tables",
		listTables.Handle).Methods(http.MethodGet)
	api.HandleFunc("/restaurants/{restaurantId}/combined-tables",
		listCombinedTables.Handle).Methods(http.MethodGet)

	// Доступные слоты для бронирования
	api.HandleFunc("/restaurants/{restaurantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Предварительная проверка бронирования
	api.HandleFunc("/bookings/validate", validateBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса жизненного цикла (для сотрудников)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований гостя
	protected.HandleFunc("/guests/{guestId}/bookings", getGuestBookings.Handle).Methods(http.MethodGet)

	// --- Управление рестораном (для сотрудников) ---
	// Журнал бронирований ресторана
	protected.HandleFunc("/restaurants/{restaurantId}/bookings",
		getRestaurantBookings.Handle).Methods(http.MethodGet)

	// Замена недельного расписания
	protected.HandleFunc("/restaurants/{restaurantId}/opening-hours",
		updateOpeningHours.Handle).Methods(http.MethodPut)

	// Обновление настроек бронирования
	protected.HandleFunc("/restaurants/{restaurantId}/settings",
		updateSettings.Handle).Methods(http.MethodPut)

	// Управление столами
	protected.HandleFunc("/restaurants/{restaurantId}/tables",
		createTable.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/restaurants/{restaurantId}/tables/{tableId}",
		updateTable.Handle).Methods(http.MethodPatch)

	// Управление комбинациями столов
	protected.HandleFunc("/restaurants/{restaurantId}/combined-tables",
		createCombinedTable.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/restaurants/{restaurantId}/combined-tables/{combinedTableId}",
		deleteCombinedTable.Handle).Methods(http.MethodDelete)

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

	log.Info("Server stopped gracefully")
}
