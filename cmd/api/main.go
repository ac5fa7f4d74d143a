package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/application/service"
	"github.com/atlantichotel/frontdesk-api/internal/config"
	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"github.com/atlantichotel/frontdesk-api/internal/infrastructure/connectivity"
	"github.com/atlantichotel/frontdesk-api/internal/infrastructure/database"
	"github.com/atlantichotel/frontdesk-api/internal/infrastructure/localstore"
	"github.com/atlantichotel/frontdesk-api/internal/infrastructure/repository"
	"github.com/atlantichotel/frontdesk-api/internal/infrastructure/repository/mongorepo"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/handler"
	"github.com/atlantichotel/frontdesk-api/internal/presentation/http/routes"
	"github.com/atlantichotel/frontdesk-api/pkg/logger"
	"github.com/atlantichotel/frontdesk-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// remoteBackend is the selected cloud database with its one-time schema
// step, which has to wait until the cloud is reachable.
type remoteBackend struct {
	remote  *domainRepo.Remote
	prepare func(ctx context.Context) error
	close   func()
}

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	kv, closeStore, err := openLocalStore(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to open local store", zap.Error(err))
	}
	defer closeStore()

	backend, err := openRemote(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to configure remote database", zap.Error(err))
	}
	defer backend.close()
	remote := backend.remote

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	monitor := connectivity.NewMonitor(remote.Pinger, cfg.Sync.ProbeInterval, cfg.Sync.ProbeTimeout, zlog.Named("connectivity"))
	prepareWhenOnline(ctx, monitor, backend.prepare, zlog)

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Local caches and queues
	idempotencyRepo := localstore.NewIdempotencyRepository(kv)
	if err := idempotencyRepo.DeleteExpired(ctx); err != nil {
		zlog.Warn("Failed to prune idempotency keys", zap.Error(err))
	}

	// Services
	roomService := service.NewRoomService(
		localstore.NewRoomCache(kv), remote.Rooms,
		localstore.NewQueueStore(kv, localstore.KeyRoomsQueue), monitor, zlog)
	receiptService := service.NewReceiptService(
		localstore.NewReceiptCache(kv), remote.Receipts,
		localstore.NewQueueStore(kv, localstore.KeyReceiptsQueue), roomService, monitor,
		cfg.Tax.ServiceChargeRate, zlog)
	menuService := service.NewMenuService(localstore.NewMenuCache(kv), remote.Menu, monitor, zlog)
	billService := service.NewBillService(
		localstore.NewBillCache(kv), remote.Bills,
		localstore.NewQueueStore(kv, localstore.KeyBillsQueue), menuService, monitor, zlog)
	bankAccountService := service.NewBankAccountService(localstore.NewBankAccountCache(kv), remote.BankAccounts, monitor, zlog)
	invoiceService := service.NewInvoiceService(receiptService, billService, roomService, bankAccountService, zlog)
	syncService := service.NewSyncService(receiptService, roomService, billService, menuService,
		localstore.NewSyncStateStore(kv), monitor, cfg.Sync.DrainInterval, zlog)
	authService := service.NewAuthService(localstore.NewUserStore(kv), jwtManager, zlog)

	if err := authService.EnsureDefaultUsers(ctx); err != nil {
		zlog.Fatal("Failed to seed default users", zap.Error(err))
	}

	go monitor.Run(ctx)
	go syncService.Run(ctx)

	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Receipt:     handler.NewReceiptHandler(receiptService),
		Room:        handler.NewRoomHandler(roomService),
		Bill:        handler.NewBillHandler(billService),
		Menu:        handler.NewMenuHandler(menuService),
		BankAccount: handler.NewBankAccountHandler(bankAccountService),
		Invoice:     handler.NewInvoiceHandler(invoiceService),
		Sync:        handler.NewSyncHandler(syncService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          zlog.Named("http"),
		Online:          monitor.IsOnline,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zlog.Info("Starting server",
		zap.String("service", cfg.App.Name),
		zap.String("addr", srv.Addr),
		zap.String("env", cfg.App.Env),
		zap.String("remote", cfg.Remote.Driver),
		zap.String("local_store", cfg.LocalStore.Driver),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down")

	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Forced shutdown", zap.Error(err))
	}
}

func openLocalStore(cfg *config.Config, zlog *zap.Logger) (domainRepo.KeyValueStore, func(), error) {
	switch cfg.LocalStore.Driver {
	case config.LocalStoreRedis:
		client, err := database.NewRedisClient(&cfg.Redis, zlog)
		if err != nil {
			return nil, nil, err
		}
		return localstore.NewRedisStore(client, cfg.LocalStore.Prefix), func() { _ = client.Close() }, nil
	case config.LocalStoreMemory:
		zlog.Warn("Using in-memory local store; queued records are lost on restart")
		return localstore.NewMemoryStore(), func() {}, nil
	case config.LocalStoreFile, "":
		store, err := localstore.OpenFileStore(cfg.LocalStore.Path)
		if err != nil {
			return nil, nil, err
		}
		zlog.Info("Opened local store", zap.String("path", cfg.LocalStore.Path))
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown local store driver %q", cfg.LocalStore.Driver)
	}
}

func openRemote(cfg *config.Config, zlog *zap.Logger) (*remoteBackend, error) {
	switch cfg.Remote.Driver {
	case config.RemoteDriverMongo:
		db, err := database.NewMongoDB(&cfg.Mongo, zlog)
		if err != nil {
			return nil, err
		}
		return &remoteBackend{
			remote:  mongorepo.NewRemote(db),
			prepare: func(ctx context.Context) error { return mongorepo.EnsureIndexes(ctx, db) },
			close:   func() { _ = database.CloseMongoDB(db) },
		}, nil
	case config.RemoteDriverPostgres, "":
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, zlog)
		if err != nil {
			return nil, err
		}
		return &remoteBackend{
			remote:  repository.NewRemote(db),
			prepare: func(ctx context.Context) error { return database.AutoMigrate(db.WithContext(ctx), zlog) },
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown remote driver %q", cfg.Remote.Driver)
	}
}

// prepareWhenOnline runs the schema step on every reconnect until it
// succeeds once. The desk works offline in the meantime.
func prepareWhenOnline(ctx context.Context, monitor *connectivity.Monitor, prepare func(context.Context) error, zlog *zap.Logger) {
	events := monitor.Subscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case online := <-events:
				if !online {
					continue
				}
				if err := prepare(ctx); err != nil {
					zlog.Warn("Remote schema preparation failed", zap.Error(err))
					continue
				}
				zlog.Info("Remote schema ready")
				return
			}
		}
	}()
}
