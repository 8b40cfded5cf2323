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

	cancelAppointmentHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/cancel_appointment"
	confirmAppointmentHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/create_appointment"
	debugAvailabilityHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/debug_availability"
	deleteWorkingHoursHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/delete_working_hours"
	getAgendaHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/get_agenda"
	getAppointmentHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/get_appointment"
	getDayAvailabilityHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/get_day_availability"
	getMonthAvailabilityHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/get_month_availability"
	getQuickSlotsHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/get_quick_slots"
	getTreatmentsHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/get_treatments"
	getWorkingHoursHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/get_working_hours"
	transferAppointmentHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/transfer_appointment"
	updateWorkingHoursHandler "github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers/update_working_hours"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/middleware"
	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/config"
	appointmentRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/appointment"
	treatmentRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/treatment"
	workinghoursRepo "github.com/vitaalpraktijk/VP-AvailabilityService/internal/infra/storage/workinghours"
	googleCalendarClient "github.com/vitaalpraktijk/VP-AvailabilityService/internal/integrations/googlecalendar"
	appointmentsService "github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/appointments"
	availabilityService "github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/availability"
	workinghoursService "github.com/vitaalpraktijk/VP-AvailabilityService/internal/service/workinghours"
	createAppointmentUC "github.com/vitaalpraktijk/VP-AvailabilityService/internal/usecase/create_appointment"
	getDayAvailabilityUC "github.com/vitaalpraktijk/VP-AvailabilityService/internal/usecase/get_day_availability"
	getMonthAvailabilityUC "github.com/vitaalpraktijk/VP-AvailabilityService/internal/usecase/get_month_availability"
	getQuickSlotsUC "github.com/vitaalpraktijk/VP-AvailabilityService/internal/usecase/get_quick_slots"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/dbmetrics"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/logger"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/metrics"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/simpletxmanager"
	"github.com/vitaalpraktijk/VP-AvailabilityService/pkg/txmanager"
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

	log.Info("Starting VP-AvailabilityService...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона практики - все расчёты доступности выполняются в ней
	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

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

	// Инициализируем клиент Google Calendar
	calendarClient, err := googleCalendarClient.NewClient(
		cfg.GoogleCalendar.CalendarIDs,
		cfg.GoogleCalendar.CredentialsFile,
		cfg.Booking.Timezone,
		time.Duration(cfg.GoogleCalendar.Timeout)*time.Second,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize Google Calendar client: %v", err)
	}
	log.Info("Google Calendar client initialized (calendars=%d, timeout=%ds)",
		len(cfg.GoogleCalendar.CalendarIDs), cfg.GoogleCalendar.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		treatmentRepository    *treatmentRepo.Repository
		workinghoursRepository *workinghoursRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		treatmentRepository = treatmentRepo.NewRepository(wrappedDB)
		workinghoursRepository = workinghoursRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		treatmentRepository = treatmentRepo.NewRepository(db)
		workinghoursRepository = workinghoursRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Классификатор событий календаря со словарями из конфигурации
	classifier := availabilityService.NewKeywordClassifier(
		cfg.Booking.MarkerKeyword,
		cfg.Booking.PersonalKeywords,
		cfg.Booking.AdminBlockKeywords,
		cfg.Booking.AdminBlockPrefix,
	)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		calendarClient,
		workinghoursRepository,
		availabilityService.NewRuleCache(),
		classifier,
		&availabilityService.RealTimeProvider{},
		loc,
		availabilityService.Params{
			SlotIntervalMinutes:    cfg.Booking.SlotIntervalMinutes,
			BufferMinutes:          cfg.Booking.BufferMinutes,
			QuickSlotCount:         cfg.Booking.QuickSlotCount,
			QuickPickHorizonMonths: cfg.Booking.QuickPickHorizonMonths,
		},
		metricsCollector,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		treatmentRepository,
		calendarClient,
		log,
	)
	workinghoursSvc := workinghoursService.NewService(
		workinghoursRepository,
		availabilitySvc,
		log,
	)

	// Инициализируем use cases
	getDayAvailabilityUseCase := getDayAvailabilityUC.NewUseCase(availabilitySvc, treatmentRepository, loc, log)
	getMonthAvailabilityUseCase := getMonthAvailabilityUC.NewUseCase(availabilitySvc, treatmentRepository, loc, log)
	getQuickSlotsUseCase := getQuickSlotsUC.NewUseCase(availabilitySvc, treatmentRepository, log)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		treatmentRepository,
		availabilitySvc,
		calendarClient,
		txMgr,
		loc,
		log,
	)

	// Инициализируем handlers
	getDayAvailability := getDayAvailabilityHandler.NewHandler(getDayAvailabilityUseCase, log)
	getMonthAvailability := getMonthAvailabilityHandler.NewHandler(getMonthAvailabilityUseCase, log)
	getQuickSlots := getQuickSlotsHandler.NewHandler(getQuickSlotsUseCase, log)
	getTreatments := getTreatmentsHandler.NewHandler(appointmentsSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAgenda := getAgendaHandler.NewHandler(appointmentsSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	transferAppointment := transferAppointmentHandler.NewHandler(appointmentsSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(workinghoursSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(workinghoursSvc, log)
	deleteWorkingHours := deleteWorkingHoursHandler.NewHandler(workinghoursSvc, log)
	debugAvailability := debugAvailabilityHandler.NewHandler(availabilitySvc, loc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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

	// ============================================================
	// PUBLIC ROUTES (сайт практики, без аутентификации)
	// ============================================================

	// Доступность: день, месяц, быстрые опции
	api.HandleFunc("/availability/day", getDayAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/month", getMonthAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/quick", getQuickSlots.Handle).Methods(http.MethodGet)

	// Список процедур для формы бронирования
	api.HandleFunc("/treatments", getTreatments.Handle).Methods(http.MethodGet)

	// Создание заявки на приём
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Server.AdminToken))

	// --- Агенда и заявки ---
	admin.HandleFunc("/agenda", getAgenda.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{appointmentId}/transfer", transferAppointment.Handle).Methods(http.MethodPatch)

	// --- Рабочие часы ---
	admin.HandleFunc("/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/working-hours/{dayOfWeek}", updateWorkingHours.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/working-hours/{dayOfWeek}", deleteWorkingHours.Handle).Methods(http.MethodDelete)

	// --- Диагностика расчёта доступности ---
	admin.HandleFunc("/debug/availability/day", debugAvailability.HandleDay).Methods(http.MethodGet)
	admin.HandleFunc("/debug/availability/month", debugAvailability.HandleMonth).Methods(http.MethodGet)

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
