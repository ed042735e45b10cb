package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/missaelcorm/notas-service/internal/bus"
	"github.com/missaelcorm/notas-service/internal/config"
	"github.com/missaelcorm/notas-service/internal/consumer"
	"github.com/missaelcorm/notas-service/internal/handler"
	"github.com/missaelcorm/notas-service/internal/repository"
	"github.com/missaelcorm/notas-service/internal/service"
	"github.com/missaelcorm/notas-service/internal/storage"
	"github.com/missaelcorm/notas-service/internal/storage/ftp"
	"github.com/missaelcorm/notas-service/pkg/db"
	"github.com/missaelcorm/notas-service/pkg/helpers"
	"github.com/missaelcorm/notas-service/pkg/logger"
	"github.com/missaelcorm/notas-service/pkg/metrics"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	log := logger.NewLogger("notas-service")
	cfg := config.LoadConfig()
	m := metrics.NewMetrics("api")

	// Database
	conn, err := db.NewConnection(db.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer conn.Close()
	log.Info("database connection established")

	// Document storage backend
	ftpClient := ftp.NewServerClient(
		cfg.FTP.Host,
		cfg.FTP.Port,
		cfg.FTP.User,
		cfg.FTP.Password,
		cfg.FTP.BaseDir,
	)
	defer ftpClient.Close()

	// Repositories
	customerRepo := repository.NewCustomerRepository(conn.DB)
	addressRepo := repository.NewAddressRepository(conn.DB)
	productRepo := repository.NewProductRepository(conn.DB)
	noteRepo := repository.NewNoteRepository(conn.DB)
	lineRepo := repository.NewNoteLineRepository(conn.DB)
	documentRepo := repository.NewDocumentRepository(conn.DB)

	// Document store with signed retrieval handles
	signer := storage.NewSigner(cfg.Download.Secret)
	store := storage.NewDocumentStore(ftpClient, documentRepo, signer, cfg.Server.OriginURL, cfg.Download.TTL)

	// Event bus and notification consumer
	eventBus := bus.New(cfg.Bus.MaxAttempts, log)
	dispatcher := bus.NewDispatcher(eventBus, cfg.Bus.Topic)
	emailConsumer := consumer.NewEmailConsumer(consumer.NewLogEmailChannel(log), m, log, cfg.Environment)
	emailConsumer.Subscribe(eventBus, cfg.Bus.Topic)

	busCtx, stopBus := context.WithCancel(context.Background())
	eventBus.Start(busCtx)

	// Services
	ids := helpers.NewIDGenerator()
	validator := helpers.NewCustomValidator()
	pricing := service.NewPricingService(productRepo)
	catalog := service.NewCatalogService(customerRepo, addressRepo, productRepo, validator, ids)
	notes := service.NewNoteService(
		customerRepo, addressRepo, noteRepo, lineRepo, productRepo,
		pricing, store, dispatcher, ids, log, m, cfg.Server.OriginURL,
	)

	// Routes
	mux := http.NewServeMux()
	handler.NewCatalogHandler(catalog).RegisterRoutes(mux)
	handler.NewNoteHandler(notes, log).RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := conn.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","reason":"database unreachable"}`))
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	})

	var root http.Handler = mux
	root = metrics.HTTPMiddleware(m)(root)
	root = logger.HTTPMiddleware(log)(root)

	server := &http.Server{
		Addr:         ":" + cfg.Server.HTTPPort,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.HTTPPort).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}

	// Stop the bus after the HTTP surface: in-flight requests may still
	// publish events, and the broker flushes its backlog before exiting.
	stopBus()
	eventBus.Drain()

	log.Info("server stopped")
}
