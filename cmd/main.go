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
	"golang.org/x/time/rate"

	adminLoginHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/admin_login"
	createOfficeHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_office"
	decideRequestHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/decide_request"
	getAvailabilityHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_availability"
	getDashboardHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_dashboard"
	getUserRequestsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_requests"
	healthHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/health"
	listOfficesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_offices"
	listRequestsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_requests"
	releaseRequestHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/release_request"
	sendOTPHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/send_otp"
	submitRequestHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/submit_request"
	updatePoolCapacityHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_pool_capacity"
	verifyOTPHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/verify_otp"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/migrations"
	officeRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/office"
	otpStore "github.com/m04kA/SMC-ParkingService/internal/infra/storage/otp"
	poolRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/pool"
	requestRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/request"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
	authService "github.com/m04kA/SMC-ParkingService/internal/service/auth"
	dashboardService "github.com/m04kA/SMC-ParkingService/internal/service/dashboard"
	officesService "github.com/m04kA/SMC-ParkingService/internal/service/offices"
	otpService "github.com/m04kA/SMC-ParkingService/internal/service/otp"
	requestsService "github.com/m04kA/SMC-ParkingService/internal/service/requests"
	decideRequestUC "github.com/m04kA/SMC-ParkingService/internal/usecase/decide_request"
	promoteWaitlistUC "github.com/m04kA/SMC-ParkingService/internal/usecase/promote_waitlist"
	releaseRequestUC "github.com/m04kA/SMC-ParkingService/internal/usecase/release_request"
	submitRequestUC "github.com/m04kA/SMC-ParkingService/internal/usecase/submit_request"
	updatePoolCapacityUC "github.com/m04kA/SMC-ParkingService/internal/usecase/update_pool_capacity"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/memtx"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// Хранилища postgres и memory реализуют один и тот же набор методов
type requestRepository interface {
	submitRequestUC.RequestRepository
	decideRequestUC.RequestRepository
	promoteWaitlistUC.RequestRepository
	requestsService.RequestRepository
	dashboardService.RequestRepository
}

type poolRepository interface {
	promoteWaitlistUC.PoolRepository
	updatePoolCapacityUC.PoolRepository
	dashboardService.PoolRepository
}

type officeRepository interface {
	officesService.OfficeRepository
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type eventNotifier interface {
	Notify(ctx context.Context, event domain.Event) error
	Close() error
}

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

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from config.toml (storage=%s, auto_approve=%t, timezone=%s)",
		cfg.Storage.Driver, cfg.Engine.AutoApprove, cfg.Engine.Timezone)

	location, err := cfg.Engine.Location()
	if err != nil {
		log.Fatal("Invalid engine timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	readiness := make(map[string]healthHandler.Pinger)

	// Инициализируем хранилище
	var (
		requests requestRepository
		pools    poolRepository
		offices  officeRepository
		txMgr    txManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
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

		if err := migrations.Migrate(context.Background(), db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		requests = requestRepo.NewRepository(wrappedDB)
		pools = poolRepo.NewRepository(wrappedDB)
		offices = officeRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		readiness["database"] = healthHandler.PingFunc(db.PingContext)

	case config.StorageDriverMemory:
		store := memory.New()
		requests = store.Requests
		pools = store.Pools
		offices = store.Offices
		txMgr = memtx.NewManager()
		log.Warn("Using in-memory storage, data is lost on restart")
	}

	// Хранилище одноразовых кодов
	var codes otpService.CodeStore
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		redisStore := otpStore.NewRedisStore(redisClient)
		if err := redisStore.Ping(context.Background()); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		codes = redisStore
		readiness["redis"] = redisStore
		log.Info("OTP store: redis at %s", cfg.Redis.Addr)
	} else {
		codes = otpStore.NewMemoryStore()
		log.Info("OTP store: in-memory")
	}

	// Публикация событий
	var events eventNotifier
	if cfg.Kafka.Enabled {
		events = notifier.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.WriteTimeout)*time.Second, log)
		log.Info("Notifier: kafka brokers=%v topic=%s", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		events = notifier.NewLogNotifier(log)
		log.Info("Notifier: log only")
	}
	defer events.Close()

	// Инициализируем сервисы
	admins := make([]domain.Admin, 0, len(cfg.Auth.Admins))
	for _, a := range cfg.Auth.Admins {
		admins = append(admins, domain.Admin{Email: a.Email, PasswordHash: a.PasswordHash, Role: domain.Role(a.Role)})
	}
	if len(admins) == 0 {
		log.Warn("No admins configured, admin endpoints are unreachable")
	}

	authSvc := authService.NewService(admins, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute, log)
	officesSvc := officesService.NewService(offices, pools, txMgr, log)
	requestsSvc := requestsService.NewService(requests, log)
	dashboardSvc := dashboardService.NewService(requests, offices, pools, txMgr, location, log)
	otpSvc := otpService.NewService(codes, events, otpService.Config{
		Issuer:      cfg.OTP.Issuer,
		TTL:         time.Duration(cfg.OTP.TTL) * time.Second,
		MaxAttempts: cfg.OTP.MaxAttempts,
		ExposeCode:  cfg.OTP.ExposeCode,
	}, log)
	if cfg.OTP.ExposeCode {
		log.Warn("OTP codes are returned in /send-otp responses, do not use in production")
	}

	// Офисы из конфигурации создаются при первом старте
	for _, o := range cfg.Offices {
		if err := officesSvc.EnsureDefault(context.Background(), o.ToDomain()); err != nil {
			log.Fatal("Failed to seed office %s: %v", o.ID, err)
		}
	}

	// Инициализируем use cases
	promoteWaitlistUseCase := promoteWaitlistUC.NewUseCase(
		requests,
		pools,
		txMgr,
		events,
		metricsCollector,
		log,
	)
	submitRequestUseCase := submitRequestUC.NewUseCase(
		requests,
		pools,
		offices,
		txMgr,
		events,
		metricsCollector,
		submitRequestUC.Config{
			AutoApprove:     cfg.Engine.AutoApprove,
			Location:        location,
			DefaultOfficeID: cfg.Engine.DefaultOfficeID,
		},
		log,
	)
	decideRequestUseCase := decideRequestUC.NewUseCase(
		requests,
		pools,
		txMgr,
		events,
		metricsCollector,
		log,
	)
	releaseRequestUseCase := releaseRequestUC.NewUseCase(
		requests,
		pools,
		promoteWaitlistUseCase,
		txMgr,
		events,
		log,
	)
	updatePoolCapacityUseCase := updatePoolCapacityUC.NewUseCase(
		pools,
		promoteWaitlistUseCase,
		txMgr,
		log,
	)

	// Инициализируем handlers
	submitRequest := submitRequestHandler.NewHandler(submitRequestUseCase, log)
	getUserRequests := getUserRequestsHandler.NewHandler(requestsSvc, log)
	listRequests := listRequestsHandler.NewHandler(requestsSvc, log)
	decideRequest := decideRequestHandler.NewHandler(decideRequestUseCase, log)
	releaseRequest := releaseRequestHandler.NewHandler(releaseRequestUseCase, log)
	updatePoolCapacity := updatePoolCapacityHandler.NewHandler(updatePoolCapacityUseCase, log)
	getDashboard := getDashboardHandler.NewHandler(dashboardSvc, log)
	adminLogin := adminLoginHandler.NewHandler(authSvc, log)
	listOffices := listOfficesHandler.NewHandler(officesSvc, log)
	createOffice := createOfficeHandler.NewHandler(officesSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(officesSvc, log)
	sendOTP := sendOTPHandler.NewHandler(otpSvc, log)
	verifyOTP := verifyOTPHandler.NewHandler(otpSvc, log)
	health := healthHandler.NewHandler(readiness, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Подача заявки и история сотрудника
	api.HandleFunc("/parking-requests", submitRequest.Handle).Methods(http.MethodPost)
	api.HandleFunc("/parking-requests/user/{empId}", getUserRequests.Handle).Methods(http.MethodGet)

	// Офисы и свободные места
	api.HandleFunc("/offices", listOffices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/offices/{officeId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Вход и одноразовые коды ограничены по частоте запросов
	limited := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewIPRateLimiter(rate.Every(time.Minute/time.Duration(cfg.RateLimit.RequestsPerMinute)), cfg.RateLimit.Burst)
		limited.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limit enabled: %d req/min, burst %d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	limited.HandleFunc("/send-otp", sendOTP.Handle).Methods(http.MethodPost)
	limited.HandleFunc("/verify-otp", verifyOTP.Handle).Methods(http.MethodPost)
	limited.HandleFunc("/admin/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Bearer токен из /admin/login)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(authSvc, log))

	admin.HandleFunc("/parking-requests", listRequests.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/admin/approve-request", decideRequest.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/admin/release-request", releaseRequest.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/admin/dashboard", getDashboard.Handle).Methods(http.MethodGet)

	// --- Только super_admin ---
	super := admin.PathPrefix("").Subrouter()
	super.Use(middleware.RequireSuperAdmin(log))

	super.HandleFunc("/offices", createOffice.Handle).Methods(http.MethodPost)
	super.HandleFunc("/admin/pools/capacity", updatePoolCapacity.Handle).Methods(http.MethodPost)

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
