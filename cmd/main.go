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

	cancelOrderHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/cancel_order"
	confirmOrderHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/confirm_order"
	createOrderHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/create_order"
	createServiceHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/create_service"
	deleteProfileHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/delete_profile"
	getAvailableSlotsHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_available_slots"
	getOrderHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_order"
	getProfileHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_profile"
	getServiceHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/get_service"
	healthHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/health"
	listOrdersHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/list_orders"
	listServicesHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/list_services"
	loginHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/login"
	registerHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/register"
	updateProfileHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/update_profile"
	updateServiceHandler "github.com/m04kA/SMC-LaundryService/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/config"
	"github.com/m04kA/SMC-LaundryService/internal/infra/cache/servicecache"
	catalogRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/catalog"
	orderRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/order"
	userRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/user"
	authService "github.com/m04kA/SMC-LaundryService/internal/service/auth"
	catalogService "github.com/m04kA/SMC-LaundryService/internal/service/catalog"
	ordersService "github.com/m04kA/SMC-LaundryService/internal/service/orders"
	createOrderUC "github.com/m04kA/SMC-LaundryService/internal/usecase/create_order"
	getAvailableSlotsUC "github.com/m04kA/SMC-LaundryService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-LaundryService/migrations"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/jwtauth"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
	"github.com/m04kA/SMC-LaundryService/pkg/metrics"
	"github.com/m04kA/SMC-LaundryService/pkg/txmanager"
)

const rateLimitSweepInterval = time.Minute

func main() {
	configPath := "config.toml"
	if p := os.Getenv("LAUNDRY_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-LaundryService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

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

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		applied, err := migrations.Apply(startupCtx, db)
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied: %v", applied)
	}

	// Обёртка собирает метрики запросов; без коллектора она прозрачна
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	orderRepository := orderRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)

	// Кэш услуг (если включен): чтение через Redis, запись и блокировки идут в PostgreSQL
	var (
		serviceReader    getAvailableSlotsUC.ServiceRepository = catalogRepository
		cacheInvalidator catalogService.CacheInvalidator
	)
	if cfg.Redis.Enabled {
		redisClient := servicecache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		defer redisClient.Close()

		if err := servicecache.Ping(startupCtx, redisClient); err != nil {
			log.Warn("Redis unavailable at %s, catalog reads fall back to database: %v", cfg.Redis.Addr, err)
		}

		cache := servicecache.New(catalogRepository, redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log)
		serviceReader = cache
		cacheInvalidator = cache
		log.Info("Service catalog cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Токены
	tokenManager, err := jwtauth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	if err != nil {
		log.Fatal("Failed to initialize token manager: %v", err)
	}

	// Инициализируем сервисы
	authSvc := authService.NewService(userRepository, tokenManager, cfg.Auth.BcryptCost, cfg.Auth.AdminPhones, log)
	catalogSvc := catalogService.NewService(catalogRepository, cacheInvalidator, log)
	ordersSvc := ordersService.NewService(orderRepository, log)

	// Инициализируем use cases
	var (
		slotsObserver       getAvailableSlotsUC.SlotsObserver
		reservationRecorder createOrderUC.ReservationRecorder
	)
	if metricsCollector != nil {
		slotsObserver = metricsCollector
		reservationRecorder = metricsCollector
	}

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		serviceReader,
		orderRepository,
		slotsObserver,
		cfg.Booking.DefaultStepMinutes,
		log,
	)

	guard := createOrderUC.NewGuard(catalogRepository, orderRepository, txMgr)
	createOrderUseCase := createOrderUC.NewUseCase(
		serviceReader,
		guard,
		reservationRecorder,
		log,
	)

	// Инициализируем handlers
	h := routes{
		health:         healthHandler.NewHandler(wrappedDB, log),
		register:       registerHandler.NewHandler(authSvc, log),
		login:          loginHandler.NewHandler(authSvc, log),
		getProfile:     getProfileHandler.NewHandler(authSvc, log),
		updateProfile:  updateProfileHandler.NewHandler(authSvc, log),
		deleteProfile:  deleteProfileHandler.NewHandler(authSvc, log),
		listServices:   listServicesHandler.NewHandler(catalogSvc, log),
		getService:     getServiceHandler.NewHandler(catalogSvc, log),
		createService:  createServiceHandler.NewHandler(catalogSvc, log),
		updateService:  updateServiceHandler.NewHandler(catalogSvc, log),
		availableSlots: getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log),
		createOrder:    createOrderHandler.NewHandler(createOrderUseCase, log),
		listOrders:     listOrdersHandler.NewHandler(ordersSvc, log),
		getOrder:       getOrderHandler.NewHandler(ordersSvc, log),
		cancelOrder:    cancelOrderHandler.NewHandler(ordersSvc, log),
		confirmOrder:   confirmOrderHandler.NewHandler(ordersSvc, log),
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, log)
		go limiter.RunSweeper(rateLimitSweepInterval, 10*time.Minute, stopCh)
		log.Info("Auth rate limit enabled (%d req/min, burst %d)", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	router := buildRouter(h, routerDeps{
		metrics:     metricsCollector,
		metricsPath: cfg.Metrics.Path,
		tokens:      tokenManager,
		actors:      authSvc,
		limiter:     limiter,
		logger:      log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
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

	// Останавливаем сбор метрик пула и очистку лимитера
	close(stopCh)

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

type routes struct {
	health         *healthHandler.Handler
	register       *registerHandler.Handler
	login          *loginHandler.Handler
	getProfile     *getProfileHandler.Handler
	updateProfile  *updateProfileHandler.Handler
	deleteProfile  *deleteProfileHandler.Handler
	listServices   *listServicesHandler.Handler
	getService     *getServiceHandler.Handler
	createService  *createServiceHandler.Handler
	updateService  *updateServiceHandler.Handler
	availableSlots *getAvailableSlotsHandler.Handler
	createOrder    *createOrderHandler.Handler
	listOrders     *listOrdersHandler.Handler
	getOrder       *getOrderHandler.Handler
	cancelOrder    *cancelOrderHandler.Handler
	confirmOrder   *confirmOrderHandler.Handler
}

type routerDeps struct {
	metrics     *metrics.Metrics
	metricsPath string
	tokens      middleware.TokenVerifier
	actors      middleware.ActorResolver
	limiter     *middleware.RateLimiter
	logger      *logger.Logger
}

func buildRouter(h routes, deps routerDeps) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(deps.logger))
	r.Use(middleware.Logging(deps.logger))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if deps.metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.metrics))
		r.Handle(deps.metricsPath, deps.metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", h.health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// AUTH ROUTES (ограничение частоты запросов по IP)
	// ============================================================

	authRoutes := api.PathPrefix("/auth").Subrouter()
	if deps.limiter != nil {
		authRoutes.Use(deps.limiter.Middleware)
	}
	authRoutes.HandleFunc("/register", h.register.Handle).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", h.login.Handle).Methods(http.MethodPost)

	// ============================================================
	// PUBLIC ROUTES (токен опционален: администратор видит отключенные услуги)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth(deps.tokens, deps.actors, deps.logger))

	public.HandleFunc("/services", h.listServices.Handle).Methods(http.MethodGet)
	public.HandleFunc("/services/{serviceId}", h.getService.Handle).Methods(http.MethodGet)
	public.HandleFunc("/services/{serviceId}/slots", h.availableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(deps.tokens, deps.actors, deps.logger))

	// --- Профиль ---
	protected.HandleFunc("/auth/me", h.getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/auth/me", h.updateProfile.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/auth/me", h.deleteProfile.Handle).Methods(http.MethodDelete)

	// --- Заказы ---
	protected.HandleFunc("/orders", h.createOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/orders", h.listOrders.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}", h.getOrder.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}/cancel", h.cancelOrder.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth(deps.tokens, deps.actors, deps.logger))
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/services", h.createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", h.updateService.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/orders/{orderId}/confirm", h.confirmOrder.Handle).Methods(http.MethodPatch)

	return r
}
