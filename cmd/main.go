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

	approveReservationHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/approve_reservation"
	cancelReservationHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/create_reservation"
	createResourceHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/create_resource"
	deleteReservationHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/delete_reservation"
	deleteResourceHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/delete_resource"
	getPendingReservationsHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/get_pending_reservations"
	getPlanningHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/get_planning"
	getReservationHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/get_reservation"
	getResourceHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/get_resource"
	getResourcesHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/get_resources"
	getUserReservationsHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/get_user_reservations"
	refuseReservationHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/refuse_reservation"
	updateResourceHandler "github.com/batiparc/BTP-ReservationService/internal/api/handlers/update_resource"
	"github.com/batiparc/BTP-ReservationService/internal/api/middleware"
	"github.com/batiparc/BTP-ReservationService/internal/config"
	"github.com/batiparc/BTP-ReservationService/internal/events"
	reservationRepo "github.com/batiparc/BTP-ReservationService/internal/infra/storage/reservation"
	resourceRepo "github.com/batiparc/BTP-ReservationService/internal/infra/storage/resource"
	identityServiceClient "github.com/batiparc/BTP-ReservationService/internal/integrations/identityservice"
	siteServiceClient "github.com/batiparc/BTP-ReservationService/internal/integrations/siteservice"
	reservationsService "github.com/batiparc/BTP-ReservationService/internal/service/reservations"
	resourcesService "github.com/batiparc/BTP-ReservationService/internal/service/resources"
	buildPlanningUC "github.com/batiparc/BTP-ReservationService/internal/usecase/build_planning"
	createReservationUC "github.com/batiparc/BTP-ReservationService/internal/usecase/create_reservation"
	"github.com/batiparc/BTP-ReservationService/pkg/dbmetrics"
	"github.com/batiparc/BTP-ReservationService/pkg/logger"
	"github.com/batiparc/BTP-ReservationService/pkg/metrics"
	"github.com/batiparc/BTP-ReservationService/pkg/simpletxmanager"
	"github.com/batiparc/BTP-ReservationService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting BTP-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	siteClient := siteServiceClient.NewClient(
		cfg.SiteService.URL,
		time.Duration(cfg.SiteService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s timeout=%ds, SiteService=%s timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout, cfg.SiteService.URL, cfg.SiteService.Timeout)

	var (
		resourceRepository    *resourceRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		resourceRepository = resourceRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	publisher := events.NewLogPublisher(log)

	resourceSvc := resourcesService.NewService(resourceRepository, log)
	reservationSvc := reservationsService.NewService(reservationRepository, publisher, log)

	createReservationUseCase := createReservationUC.NewUseCase(
		resourceRepository,
		reservationRepository,
		txMgr,
		publisher,
		log,
	)
	buildPlanningUseCase := buildPlanningUC.NewUseCase(
		resourceRepository,
		reservationRepository,
		identityClient,
		siteClient,
		log,
	)

	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	approveReservation := approveReservationHandler.NewHandler(reservationSvc, log)
	refuseReservation := refuseReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getPendingReservations := getPendingReservationsHandler.NewHandler(reservationSvc, log)
	getPlanning := getPlanningHandler.NewHandler(buildPlanningUseCase, log)
	createResource := createResourceHandler.NewHandler(resourceSvc, log)
	getResource := getResourceHandler.NewHandler(resourceSvc, log)
	getResources := getResourcesHandler.NewHandler(resourceSvc, log)
	updateResource := updateResourceHandler.NewHandler(resourceSvc, log)
	deleteResource := deleteResourceHandler.NewHandler(resourceSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: catalog and planning reads.
	api.HandleFunc("/resources", getResources.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}", getResource.Handle).Methods(http.MethodGet)
	api.HandleFunc("/resources/{resourceId}/planning", getPlanning.Handle).Methods(http.MethodGet)

	// Protected routes: require the X-User-ID header.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/pending", getPendingReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/reservations/{reservationId}/approve", approveReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/refuse", refuseReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/resources", createResource.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/resources/{resourceId}", updateResource.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/resources/{resourceId}", deleteResource.Handle).Methods(http.MethodDelete)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
