package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookstack/internal/analytics"
	"github.com/mrlokans/bookstack/internal/audit"
	"github.com/mrlokans/bookstack/internal/config"
	"github.com/mrlokans/bookstack/internal/database"
	auditRepo "github.com/mrlokans/bookstack/internal/database/audit"
	"github.com/mrlokans/bookstack/internal/database/books"
	"github.com/mrlokans/bookstack/internal/database/settings"
	"github.com/mrlokans/bookstack/internal/demo"
	http_controllers "github.com/mrlokans/bookstack/internal/http"
	"github.com/mrlokans/bookstack/internal/logging"
	"github.com/mrlokans/bookstack/internal/scheduler"
	"github.com/mrlokans/bookstack/internal/services"
	"github.com/mrlokans/bookstack/internal/settingsstore"
	"github.com/mrlokans/bookstack/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := cfg.Global.ShutdownTimeout()

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("listen")
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT; SIGKILL can't be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Dur("timeout", timeout).Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Background work stops before the listener.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("server shutdown")
	}

	logging.Info().Msg("server exiting")
}

// OpenDatabase opens the main database with SQL logging per cfg.
func OpenDatabase(cfg *config.Config) (*database.Database, error) {
	opts := database.Options{}
	if cfg.Database.LogSQL {
		opts.LogLevel = logger.Info
	}
	return database.Open(cfg.Database.Path, opts)
}

func Run(cfg *config.Config, version string) {
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logging.Info().Str("version", version).Msg("starting bookstack")

	db, err := OpenDatabase(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing database")
		}
	}()

	auditService := audit.NewService(auditRepo.NewRepository(db.DB))
	archive := audit.NewArchive(cfg.Audit.ArchiveDir)

	memo, err := analytics.NewMemo(cfg.Analytics.CacheSize)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize analytics cache")
	}
	defer memo.Close()

	library := services.NewLibraryService(db.DB, auditService, memo, services.LibraryOptions{
		AuditWorkers: cfg.IntegrityAudit.Workers,
	})

	settingsStore := settingsstore.New(settings.NewRepository(db.DB))
	auditScheduler := scheduler.NewIntegrityAuditScheduler(library, settingsStore, auditService, archive)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	if cfg.Demo.Enabled {
		seedDemo(db, library)
	}

	if err := auditScheduler.Start(rootCtx); err != nil {
		logging.Error().Err(err).Msg("failed to start integrity audit scheduler")
	}

	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				logging.Error().Err(err).Msg("error closing task client")
			}
		}()

		taskClient.RegisterAll(tasks.Handlers{
			Rescorer: library,
			Auditor:  auditScheduler,
			Cleaner:  auditService,
			Archive:  archive,
		})
		go taskClient.Start(rootCtx)

		if _, err := taskClient.Enqueue(tasks.CleanupAuditEventsTask{RetentionDays: cfg.Audit.RetentionDays}); err != nil {
			logging.Warn().Err(err).Msg("failed to enqueue audit event cleanup")
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Library:        library,
		Database:       db,
		Events:         auditService,
		SettingsStore:  settingsStore,
		AuditScheduler: auditScheduler,
		Archive:        archive,
		Version:        version,
		DemoMode:       cfg.Demo.Enabled,
	}
	if taskClient != nil {
		routerCfg.TaskClient = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		auditScheduler.Stop()
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		rootCancel()
		auditService.Wait()
	}

	Serve(router, cfg, onShutdown)
}

// seedDemo loads the sample library for the default user when it has no
// books yet.
func seedDemo(db *database.Database, library *services.LibraryService) {
	userID := http_controllers.DefaultUserID
	count, err := books.NewRepository(db.DB).CountForUser(userID)
	if err != nil {
		logging.Error().Err(err).Msg("failed to count demo books")
		return
	}
	if count > 0 {
		return
	}
	n, err := demo.Seed(db.DB, userID)
	if err != nil {
		logging.Error().Err(err).Msg("failed to seed demo library")
		return
	}
	if _, err := library.RecomputeScores(userID); err != nil {
		logging.Error().Err(err).Msg("failed to score demo library")
		return
	}
	logging.Info().Int("books", n).Msg("demo library seeded")
}
