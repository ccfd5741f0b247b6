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

	addWaitlistEntryHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/add_waitlist_entry"
	cancelBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_booking"
	connectCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/connect_calendar"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	createEventHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_event"
	createRecurringHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_recurring_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getBookingICSHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking_ics"
	getEventHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_event"
	getNoShowRateHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_no_show_rate"
	listBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_bookings"
	listWaitlistHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_waitlist"
	rescheduleBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/reschedule_booking"
	resolveWaitlistEntryHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/resolve_waitlist_entry"
	syncCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/sync_calendar_connection"
	updateBookingStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_booking_status"
	updateCalendarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_calendar_connection"
	updateEventHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_event"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/ics"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/storage/snapshot"
	"github.com/m04kA/SMC-SchedulingService/internal/jobs"
	bookingsService "github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
	calendarSyncService "github.com/m04kA/SMC-SchedulingService/internal/service/calendarsync"
	eventsService "github.com/m04kA/SMC-SchedulingService/internal/service/events"
	waitlistService "github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	createRecurringUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_recurring_bookings"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/lockmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/tzconv"
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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	location, err := tzconv.LoadLocation(cfg.Scheduling.Timezone)
	if err != nil {
		log.Fatal("Invalid scheduling timezone %q: %v", cfg.Scheduling.Timezone, err)
	}

	// Хранилище в памяти - источник истины для всех операций
	store := memory.NewStore()
	locks := lockmanager.New()
	clock := &getAvailableSlotsUC.RealTimeProvider{}

	// Подключаемся к базе данных снимков (если включена)
	var snapshots *snapshot.Repository
	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		snapshots = snapshot.NewRepository(db)
		if err := snapshots.EnsureSchema(context.Background()); err != nil {
			log.Fatal("Failed to prepare snapshot schema: %v", err)
		}

		// Восстанавливаем последнее сохранённое состояние
		state, err := snapshots.Load(context.Background())
		if err != nil {
			log.Fatal("Failed to load snapshot: %v", err)
		}
		store.Restore(state)
		log.Info("Snapshot restored: %d events, %d bookings, %d waitlist entries, %d connections",
			len(state.Events), len(state.Bookings), len(state.Waitlist), len(state.Connections))
	}

	// Инициализируем сервисы
	eventSvc := eventsService.NewService(store, log)
	waitlistSvc := waitlistService.NewService(store, store, locks, metricsCollector, clock, log)
	bookingSvc := bookingsService.NewService(store, store, waitlistSvc, locks, metricsCollector, clock, location, log)
	calendarSvc := calendarSyncService.NewService(store, clock, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(store, store, metricsCollector, clock, log)
	createBookingUseCase := createBookingUC.NewUseCase(store, store, locks, metricsCollector, clock, log)
	createRecurringUseCase := createRecurringUC.NewUseCase(store, store, locks, metricsCollector, clock, log)

	encoder := ics.NewEncoder(cfg.Scheduling.ICSProduct, cfg.Scheduling.ICSDomain)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createEvent := createEventHandler.NewHandler(eventSvc, log)
	getEvent := getEventHandler.NewHandler(eventSvc, log)
	updateEvent := updateEventHandler.NewHandler(eventSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createRecurring := createRecurringHandler.NewHandler(createRecurringUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getBookingICS := getBookingICSHandler.NewHandler(bookingSvc, eventSvc, encoder, log)
	getNoShowRate := getNoShowRateHandler.NewHandler(bookingSvc, log)
	addWaitlistEntry := addWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	resolveWaitlistEntry := resolveWaitlistEntryHandler.NewHandler(waitlistSvc, log)
	listWaitlist := listWaitlistHandler.NewHandler(waitlistSvc, log)
	connectCalendar := connectCalendarHandler.NewHandler(calendarSvc, log)
	updateCalendar := updateCalendarHandler.NewHandler(calendarSvc, log)
	syncCalendar := syncCalendarHandler.NewHandler(calendarSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- События ---
	api.HandleFunc("/events", createEvent.Handle).Methods(http.MethodPost)
	api.HandleFunc("/events", getEvent.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/events/{eventId}", getEvent.Handle).Methods(http.MethodGet)
	api.HandleFunc("/events/{eventId}", updateEvent.Handle).Methods(http.MethodPut)

	// --- Доступность ---
	api.HandleFunc("/events/{eventId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/events/{eventId}/availability", getAvailableSlots.HandleMonth).Methods(http.MethodGet)
	api.HandleFunc("/events/{eventId}/next-available", getAvailableSlots.HandleNext).Methods(http.MethodGet)

	// --- Бронирования ---
	// Статические пути регистрируются раньше /bookings/{bookingId}
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/recurring", createRecurring.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/no-show-rate", getNoShowRate.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/no-show", updateBookingStatus.HandleMarkNoShow).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/no-show", updateBookingStatus.HandleUndoNoShow).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/{bookingId}/complete", updateBookingStatus.HandleComplete).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/ics", getBookingICS.Handle).Methods(http.MethodGet)

	// --- Лист ожидания ---
	api.HandleFunc("/waitlist", addWaitlistEntry.Handle).Methods(http.MethodPost)
	api.HandleFunc("/waitlist", listWaitlist.Handle).Methods(http.MethodGet)
	api.HandleFunc("/waitlist/{entryId}/approve", resolveWaitlistEntry.HandleApprove).Methods(http.MethodPatch)
	api.HandleFunc("/waitlist/{entryId}/reject", resolveWaitlistEntry.HandleReject).Methods(http.MethodPatch)
	api.HandleFunc("/waitlist/{entryId}", resolveWaitlistEntry.HandleRemove).Methods(http.MethodDelete)

	// --- Внешние календари ---
	api.HandleFunc("/calendar-connections", connectCalendar.Handle).Methods(http.MethodPost)
	api.HandleFunc("/calendar-connections", connectCalendar.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/calendar-connections/{connectionId}", updateCalendar.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/calendar-connections/{connectionId}", updateCalendar.HandleDisconnect).Methods(http.MethodDelete)
	api.HandleFunc("/calendar-connections/{connectionId}/sync", syncCalendar.Handle).Methods(http.MethodPost)

	// Фоновые задачи
	scheduler := jobs.NewScheduler(log)
	if cfg.Jobs.Enabled {
		if err := scheduler.AddWaitlistExpiry(cfg.Jobs.WaitlistExpiry, waitlistSvc, cfg.Scheduling.WaitlistTTL()); err != nil {
			log.Fatal("Failed to schedule waitlist expiry: %v", err)
		}
		if snapshots != nil {
			if err := scheduler.AddSnapshot(cfg.Jobs.SnapshotSave, store, snapshots); err != nil {
				log.Fatal("Failed to schedule snapshot: %v", err)
			}
		}
		scheduler.Start()
		log.Info("Background jobs started")
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if cfg.Jobs.Enabled {
		if err := scheduler.Stop(shutdownCtx); err != nil {
			log.Error("Background jobs did not stop in time: %v", err)
		}
	}

	// Финальный снимок, чтобы не потерять изменения после последнего запуска задачи
	if snapshots != nil {
		if err := snapshots.Save(shutdownCtx, store.Snapshot()); err != nil {
			log.Error("Failed to save final snapshot: %v", err)
		} else {
			log.Info("Final snapshot saved")
		}
	}

	log.Info("Server stopped gracefully")
}
