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

	authHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/auth"
	bookingActionsHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/booking_actions"
	catalogHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/catalog"
	createBookingHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/create_booking"
	geographyHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/geography"
	getAvailableSlotsHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/get_booking"
	healthHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/health"
	listBookingsHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/list_bookings"
	providersHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/providers"
	reviewsHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/reviews"
	serviceRequestsHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/service_requests"
	updateBookingHandler "github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers/update_booking"
	"github.com/Spheriverse04/ServeMee-sub000/internal/api/middleware"
	"github.com/Spheriverse04/ServeMee-sub000/internal/config"
	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	"github.com/Spheriverse04/ServeMee-sub000/internal/infra/cache"
	bookingRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/booking"
	catalogRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/catalog"
	geographyRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/geography"
	providerRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/provider"
	reviewRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/review"
	serviceRequestRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/servicerequest"
	userRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/user"
	"github.com/Spheriverse04/ServeMee-sub000/internal/integrations/firebaseauth"
	authService "github.com/Spheriverse04/ServeMee-sub000/internal/service/auth"
	bookingsService "github.com/Spheriverse04/ServeMee-sub000/internal/service/bookings"
	catalogService "github.com/Spheriverse04/ServeMee-sub000/internal/service/catalog"
	geographyService "github.com/Spheriverse04/ServeMee-sub000/internal/service/geography"
	providersService "github.com/Spheriverse04/ServeMee-sub000/internal/service/providers"
	reviewsService "github.com/Spheriverse04/ServeMee-sub000/internal/service/reviews"
	serviceRequestsService "github.com/Spheriverse04/ServeMee-sub000/internal/service/servicerequests"
	createBookingUC "github.com/Spheriverse04/ServeMee-sub000/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/Spheriverse04/ServeMee-sub000/internal/usecase/get_available_slots"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/dbmetrics"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/jwt"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/metrics"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
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

	log.Info("Starting ServeMee...")
	log.Info("Configuration loaded from %s", configPath)

	ctx := context.Background()

	// Метрики (nil, если выключены: обёртка БД и observer работают без них)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш справочников
	checks := map[string]healthHandler.Check{"database": db.PingContext}
	var geoCache geographyService.Cache = cache.Noop{}
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second, cfg.Metrics.ServiceName)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
		geoCache = redisCache
		checks["redis"] = redisCache.Ping
		log.Info("Redis cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	geographyRepository := geographyRepo.NewRepository(wrappedDB)
	providerRepository := providerRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	serviceRequestRepository := serviceRequestRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)

	// Аутентификация
	tokens := jwt.NewService(jwt.Config{
		Secret:     []byte(cfg.Auth.JWTSecret),
		Expiration: time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute,
		Issuer:     cfg.Auth.JWTIssuer,
	})

	// nil интерфейс, а не nil *Client: сервис проверяет external != nil
	var externalVerifier authService.ExternalVerifier
	if cfg.Auth.Provider == config.AuthProviderFirebase {
		firebaseClient, err := firebaseauth.NewClient(ctx, cfg.Auth.FirebaseProjectID, cfg.Auth.FirebaseCredentialsFile, log)
		if err != nil {
			log.Fatal("Failed to initialize firebase auth: %v", err)
		}
		externalVerifier = firebaseClient
		log.Info("Firebase authentication enabled (project=%s)", cfg.Auth.FirebaseProjectID)
	}

	// Сервисы
	authSvc := authService.NewService(userRepository, providerRepository, tokens, externalVerifier, txMgr, log)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, metricsCollector, log)
	serviceRequestSvc := serviceRequestsService.NewService(serviceRequestRepository, catalogRepository, txMgr, metricsCollector, log)
	reviewSvc := reviewsService.NewService(reviewRepository, serviceRequestRepository, providerRepository, txMgr, log)
	geographySvc := geographyService.NewService(geographyRepository, geoCache, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	providerSvc := providersService.NewService(providerRepository, geographyRepository, txMgr, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, catalogRepository, txMgr, metricsCollector, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, catalogRepository, getAvailableSlotsUC.Settings{
		DayStartHour:       cfg.Slots.DayStartHour,
		DayEndHour:         cfg.Slots.DayEndHour,
		DefaultSlotMinutes: cfg.Slots.DefaultSlotMinutes,
		MinNoticeMinutes:   cfg.Slots.MinNoticeMinutes,
		AdvanceBookingDays: cfg.Slots.AdvanceBookingDays,
	}, log)

	// Handlers
	auth := authHandler.NewHandler(authSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := bookingActionsHandler.NewConfirmHandler(bookingSvc, log)
	rejectBooking := bookingActionsHandler.NewRejectHandler(bookingSvc, log)
	completeBooking := bookingActionsHandler.NewCompleteHandler(bookingSvc, log)
	cancelBooking := bookingActionsHandler.NewCancelHandler(bookingSvc, log)
	serviceRequests := serviceRequestsHandler.NewHandler(serviceRequestSvc, log)
	reviews := reviewsHandler.NewHandler(reviewSvc, log)
	geography := geographyHandler.NewHandler(geographySvc, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)
	providers := providersHandler.NewHandler(providerSvc, log)
	health := healthHandler.NewHandler(checks, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	authenticate := middleware.Auth(authSvc, log)

	// protect требует bearer токен и, если заданы роли, одну из них
	protect := func(h http.HandlerFunc, roles ...domain.Role) http.Handler {
		var handler http.Handler = h
		if len(roles) > 0 {
			handler = middleware.RequireRoles(roles...)(handler)
		}
		return authenticate(handler)
	}

	var (
		consumer = domain.RoleConsumer
		provider = domain.RoleServiceProvider
		admin    = domain.RoleAdmin
	)

	// ============================================================
	// AUTH
	// ============================================================

	authRoutes := api.PathPrefix("/auth").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		authRoutes.Use(limiter.Middleware)
		log.Info("Rate limit on /auth enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	authRoutes.HandleFunc("/register", auth.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", auth.Login).Methods(http.MethodPost)
	authRoutes.Handle("/profile", protect(auth.Profile)).Methods(http.MethodGet)

	// ============================================================
	// BOOKINGS
	// ============================================================

	api.Handle("/bookings", protect(createBooking.Handle, consumer)).Methods(http.MethodPost)
	api.Handle("/bookings", protect(listBookings.Handle)).Methods(http.MethodGet)
	api.Handle("/bookings/{bookingId:[0-9]+}", protect(getBooking.Handle)).Methods(http.MethodGet)
	api.Handle("/bookings/{bookingId:[0-9]+}", protect(updateBooking.Handle, consumer, provider)).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId:[0-9]+}/confirm", protect(confirmBooking.Handle, provider)).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId:[0-9]+}/reject", protect(rejectBooking.Handle, provider)).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId:[0-9]+}/complete", protect(completeBooking.Handle, provider)).Methods(http.MethodPatch)
	api.Handle("/bookings/{bookingId:[0-9]+}/cancel", protect(cancelBooking.Handle, consumer, provider)).Methods(http.MethodPatch)

	// ============================================================
	// SERVICE REQUESTS
	// ============================================================

	api.Handle("/service-requests", protect(serviceRequests.Create, consumer)).Methods(http.MethodPost)
	api.Handle("/service-requests", protect(serviceRequests.List)).Methods(http.MethodGet)
	api.Handle("/service-requests/nearby", protect(serviceRequests.Nearby, provider, admin)).Methods(http.MethodGet)
	api.Handle("/service-requests/{requestId:[0-9]+}", protect(serviceRequests.Get)).Methods(http.MethodGet)
	api.Handle("/service-requests/{requestId:[0-9]+}/accept", protect(serviceRequests.Accept, provider)).Methods(http.MethodPatch)
	api.Handle("/service-requests/{requestId:[0-9]+}/start", protect(serviceRequests.Start, provider)).Methods(http.MethodPatch)
	api.Handle("/service-requests/{requestId:[0-9]+}/complete", protect(serviceRequests.Complete, provider)).Methods(http.MethodPatch)
	api.Handle("/service-requests/{requestId:[0-9]+}/reject", protect(serviceRequests.Reject, provider)).Methods(http.MethodPatch)
	api.Handle("/service-requests/{requestId:[0-9]+}/cancel", protect(serviceRequests.Cancel)).Methods(http.MethodPatch)

	// ============================================================
	// RATINGS & REVIEWS
	// ============================================================

	api.HandleFunc("/ratings-reviews", reviews.List).Methods(http.MethodGet)
	api.Handle("/ratings-reviews", protect(reviews.Create, consumer)).Methods(http.MethodPost)
	api.HandleFunc("/ratings-reviews/{id:[0-9]+}", reviews.Get).Methods(http.MethodGet)
	api.Handle("/ratings-reviews/{id:[0-9]+}", protect(reviews.Update, consumer)).Methods(http.MethodPatch)
	api.Handle("/ratings-reviews/{id:[0-9]+}", protect(reviews.Delete, consumer, admin)).Methods(http.MethodDelete)
	api.Handle("/ratings-reviews/{id:[0-9]+}/helpful", protect(reviews.MarkHelpful)).Methods(http.MethodPost)

	// ============================================================
	// GEOGRAPHY (чтение публичное)
	// ============================================================

	api.HandleFunc("/countries", geography.ListCountries).Methods(http.MethodGet)
	api.Handle("/countries", protect(geography.CreateCountry, admin)).Methods(http.MethodPost)
	api.HandleFunc("/countries/{id:[0-9]+}", geography.GetCountry).Methods(http.MethodGet)
	api.Handle("/countries/{id:[0-9]+}", protect(geography.UpdateCountry, admin)).Methods(http.MethodPut)
	api.Handle("/countries/{id:[0-9]+}", protect(geography.DeleteCountry, admin)).Methods(http.MethodDelete)

	api.HandleFunc("/states", geography.ListStates).Methods(http.MethodGet)
	api.Handle("/states", protect(geography.CreateState, admin)).Methods(http.MethodPost)
	api.HandleFunc("/states/{id:[0-9]+}", geography.GetState).Methods(http.MethodGet)
	api.Handle("/states/{id:[0-9]+}", protect(geography.UpdateState, admin)).Methods(http.MethodPut)
	api.Handle("/states/{id:[0-9]+}", protect(geography.DeleteState, admin)).Methods(http.MethodDelete)

	api.HandleFunc("/districts", geography.ListDistricts).Methods(http.MethodGet)
	api.Handle("/districts", protect(geography.CreateDistrict, admin)).Methods(http.MethodPost)
	api.HandleFunc("/districts/{id:[0-9]+}", geography.GetDistrict).Methods(http.MethodGet)
	api.Handle("/districts/{id:[0-9]+}", protect(geography.UpdateDistrict, admin)).Methods(http.MethodPut)
	api.Handle("/districts/{id:[0-9]+}", protect(geography.DeleteDistrict, admin)).Methods(http.MethodDelete)

	api.HandleFunc("/localities", geography.ListLocalities).Methods(http.MethodGet)
	api.Handle("/localities", protect(geography.CreateLocality, admin)).Methods(http.MethodPost)
	api.HandleFunc("/localities/{id:[0-9]+}", geography.GetLocality).Methods(http.MethodGet)
	api.Handle("/localities/{id:[0-9]+}", protect(geography.UpdateLocality, admin)).Methods(http.MethodPut)
	api.Handle("/localities/{id:[0-9]+}", protect(geography.DeleteLocality, admin)).Methods(http.MethodDelete)

	// ============================================================
	// CATALOG
	// ============================================================

	api.HandleFunc("/service-categories", catalog.ListCategories).Methods(http.MethodGet)
	api.Handle("/service-categories", protect(catalog.CreateCategory, admin)).Methods(http.MethodPost)
	api.HandleFunc("/service-categories/{id:[0-9]+}", catalog.GetCategory).Methods(http.MethodGet)
	api.Handle("/service-categories/{id:[0-9]+}", protect(catalog.UpdateCategory, admin)).Methods(http.MethodPut)
	api.Handle("/service-categories/{id:[0-9]+}", protect(catalog.DeleteCategory, admin)).Methods(http.MethodDelete)

	api.HandleFunc("/service-types", catalog.ListServiceTypes).Methods(http.MethodGet)
	api.Handle("/service-types", protect(catalog.CreateServiceType, admin)).Methods(http.MethodPost)
	api.HandleFunc("/service-types/{id:[0-9]+}", catalog.GetServiceType).Methods(http.MethodGet)
	api.Handle("/service-types/{id:[0-9]+}", protect(catalog.UpdateServiceType, admin)).Methods(http.MethodPut)
	api.Handle("/service-types/{id:[0-9]+}", protect(catalog.DeleteServiceType, admin)).Methods(http.MethodDelete)

	api.HandleFunc("/services", catalog.ListServices).Methods(http.MethodGet)
	api.Handle("/services", protect(catalog.CreateService, provider, admin)).Methods(http.MethodPost)
	api.HandleFunc("/services/{id:[0-9]+}", catalog.GetService).Methods(http.MethodGet)
	api.HandleFunc("/services/{id:[0-9]+}/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.Handle("/services/{id:[0-9]+}", protect(catalog.UpdateService, provider, admin)).Methods(http.MethodPut)
	api.Handle("/services/{id:[0-9]+}", protect(catalog.DeleteService, provider, admin)).Methods(http.MethodDelete)

	// ============================================================
	// SERVICE PROVIDERS
	// ============================================================

	api.Handle("/service-providers/me", protect(providers.UpdateMe, provider)).Methods(http.MethodPut)
	api.Handle("/service-providers/me/localities", protect(providers.SetMyLocalities, provider)).Methods(http.MethodPut)
	api.HandleFunc("/service-providers/{id:[0-9]+}", providers.Get).Methods(http.MethodGet)
	api.Handle("/service-providers/{id:[0-9]+}/verify", protect(providers.Verify, admin)).Methods(http.MethodPatch)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
