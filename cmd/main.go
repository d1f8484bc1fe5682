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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	bookingTypesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/booking_types"
	cancelBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_booking"
	checkSlotHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/check_slot"
	createBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_booking"
	getAvailableDatesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking"
	getContactBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_contact_bookings"
	getTenantBookingsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_tenant_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	bookingTypeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/bookingtype"
	contactRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/contact"
	formRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/form"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/workspaceservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	bookingTypesService "github.com/m04kA/SMC-AppointmentService/internal/service/bookingtypes"
	"github.com/m04kA/SMC-AppointmentService/internal/service/contacts"
	"github.com/m04kA/SMC-AppointmentService/internal/service/refcode"
	checkSlotUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/check_slot"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const rateLimitCleanupInterval = time.Minute

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

	log.Info("Starting SMC-AppointmentService...")

	// Метрики: *metrics.Metrics безопасен при nil, поэтому передаётся всегда
	var metricsCollector *metrics.Metrics
	var dbRecorder dbmetrics.Recorder
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopCh)

	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxAttempts(cfg.Booking.TxMaxAttempts),
		txmanager.WithRecorder(metricsCollector),
		txmanager.WithLogger(log),
	)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	bookingTypeRepository := bookingTypeRepo.NewRepository(wrappedDB)
	contactRepository := contactRepo.NewRepository(wrappedDB)
	formRepository := formRepo.NewRepository(wrappedDB)

	// Часовой пояс арендатора из WorkspaceService, при пустом URL всегда пояс по умолчанию
	defaultLocation, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid default timezone: %v", err)
	}
	var tenantGetter workspaceservice.TenantGetter
	if cfg.WorkspaceService.URL != "" {
		tenantGetter = workspaceservice.NewClient(
			cfg.WorkspaceService.URL,
			time.Duration(cfg.WorkspaceService.Timeout)*time.Second,
		)
		log.Info("WorkspaceService client initialized (url=%s, timeout=%ds)",
			cfg.WorkspaceService.URL, cfg.WorkspaceService.Timeout)
	}
	timezoneResolver := workspaceservice.NewTimezoneResolver(
		tenantGetter,
		defaultLocation,
		time.Duration(cfg.WorkspaceService.CacheTTL)*time.Second,
		log,
	)

	// Доставка событий
	publisher, dispatcher := newPublisher(cfg, log, metricsCollector)

	// Сервисы
	checker := availability.NewChecker(bookingRepository)
	contactResolver := contacts.NewResolver(contactRepository, log)
	codeAllocator := refcode.NewAllocator(refcode.WithCollisionObserver(metricsCollector.IncReferenceCodeCollision))

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		publisher,
		&bookingsService.RealTimeProvider{},
		log,
	)
	bookingTypeSvc := bookingTypesService.NewService(
		bookingTypeRepository,
		formRepository,
		txMgr,
		log,
	)

	// Use cases
	timeProvider := &createBookingUC.RealTimeProvider{}

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		bookingTypeRepository,
		formRepository,
		checker,
		contactResolver,
		codeAllocator,
		timezoneResolver,
		txMgr,
		publisher,
		metricsCollector,
		timeProvider,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		bookingTypeRepository,
		checker,
		txMgr,
		publisher,
		metricsCollector,
		timeProvider,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		bookingTypeRepository,
		timezoneResolver,
		txMgr,
		timeProvider,
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		bookingTypeRepository,
		timezoneResolver,
		txMgr,
		timeProvider,
		log,
		cfg.Booking.DefaultHorizonDays,
		cfg.Booking.MaxHorizonDays,
	)
	checkSlotUseCase := checkSlotUC.NewUseCase(bookingTypeRepository, checker, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(checkSlotUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getTenantBookings := getTenantBookingsHandler.NewHandler(bookingSvc, log)
	getContactBookings := getContactBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	bookingTypes := bookingTypesHandler.NewHandler(bookingTypeSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с ограничением частоты)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerSecond,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.VisitorTTL)*time.Second,
		)
		go limiter.RunCleanup(rateLimitCleanupInterval, stopCh)
		public.Use(limiter.Limit)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Доступность
	public.HandleFunc("/booking-types/{bookingTypeId}/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)
	public.HandleFunc("/booking-types/{bookingTypeId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/booking-types/{bookingTypeId}/availability", checkSlot.Handle).Methods(http.MethodGet)

	// Создание бронирования клиентом
	public.HandleFunc("/tenants/{tenantId}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Tenant-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", getTenantBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/contacts/{contactId}/bookings", getContactBookings.Handle).Methods(http.MethodGet)

	// --- Типы бронирования ---
	protected.HandleFunc("/booking-types", bookingTypes.Create).Methods(http.MethodPost)
	protected.HandleFunc("/booking-types", bookingTypes.List).Methods(http.MethodGet)
	protected.HandleFunc("/booking-types/{bookingTypeId}", bookingTypes.Get).Methods(http.MethodGet)
	protected.HandleFunc("/booking-types/{bookingTypeId}", bookingTypes.Update).Methods(http.MethodPut)
	protected.HandleFunc("/booking-types/{bookingTypeId}", bookingTypes.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/booking-types/{bookingTypeId}/rules", bookingTypes.AddRule).Methods(http.MethodPost)
	protected.HandleFunc("/booking-types/{bookingTypeId}/rules", bookingTypes.ListRules).Methods(http.MethodGet)
	protected.HandleFunc("/booking-types/{bookingTypeId}/rules/{ruleId}", bookingTypes.DeleteRule).Methods(http.MethodDelete)
	protected.HandleFunc("/booking-types/{bookingTypeId}/forms", bookingTypes.LinkForm).Methods(http.MethodPost)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(r),
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые задачи: статистику пула и очистку rate limiter
	close(stopCh)

	// Дожидаемся отправки событий из очереди
	if dispatcher != nil {
		if err := dispatcher.Close(shutdownCtx); err != nil {
			log.Warn("Event dispatcher did not drain: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}

// newPublisher выбирает транспорт событий по конфигурации
// При недоступном брокере сервис продолжает работу без событий
func newPublisher(cfg *config.Config, log *logger.Logger, recorder events.Recorder) (events.Publisher, *events.Dispatcher) {
	var transport events.Transport

	switch cfg.Events.Transport {
	case config.TransportNone:
		log.Info("Event delivery disabled")
		return events.NopPublisher{}, nil

	case config.TransportRabbitMQ:
		rabbit, err := events.NewRabbitMQTransport(cfg.Events.RabbitMQ.URL, cfg.Events.RabbitMQ.Exchange)
		if err != nil {
			log.Error("Failed to initialize RabbitMQ transport, events disabled: %v", err)
			return events.NopPublisher{}, nil
		}
		transport = rabbit
		log.Info("Events are published to RabbitMQ exchange %s", cfg.Events.RabbitMQ.Exchange)

	case config.TransportRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Events.Redis.Addr,
			Password: cfg.Events.Redis.Password,
			DB:       cfg.Events.Redis.DB,
		})
		transport = events.NewRedisTransport(client, cfg.Events.Redis.ChannelPrefix)
		log.Info("Events are published to Redis channels %s*", cfg.Events.Redis.ChannelPrefix)

	default:
		transport = events.NewLogTransport(log)
		log.Info("Events are written to the log")
	}

	dispatcher := events.NewDispatcher(
		transport,
		log,
		events.WithQueueSize(cfg.Events.QueueSize),
		events.WithWorkers(cfg.Events.Workers),
		events.WithSendTimeout(time.Duration(cfg.Events.SendTimeout)*time.Second),
		events.WithRecorder(recorder),
	)
	return dispatcher, dispatcher
}
