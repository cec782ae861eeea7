package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Cheertaboi/bookverse-storefront/internal/api"
	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/config"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/repository"
	"github.com/Cheertaboi/bookverse-storefront/internal/session"
	"github.com/Cheertaboi/bookverse-storefront/pkg/db"
)

const sweepInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	log, err := newLogger(cfg)
	if err != nil {
		panic("logger: " + err.Error())
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("session store", zap.Error(err))
	}
	defer closeStore()

	client := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, log.Named("api"))
	handler := api.NewRouter(api.Deps{
		Config:   cfg,
		API:      client,
		Sessions: session.NewManager(store, log.Named("session")),
		Log:      log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("http server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	// models flips decimal.MarshalJSONWithoutQuotes at init, so money goes
	// out as JSON numbers to both the backend and the browser.
	log.Info("starting storefront",
		zap.String("addr", srv.Addr),
		zap.String("api", client.BaseURL()),
		zap.String("sessions", cfg.SessionBackend),
		zap.Bool("money_as_json_number", models.MoneyAsJSONNumber()),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("listen", zap.Error(err))
	}

	<-idleConnsClosed
	log.Info("server stopped")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	if cfg.Production() {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// openSessionStore returns the configured store and starts its expiry sweep.
func openSessionStore(ctx context.Context, cfg config.Config, log *zap.Logger) (session.Store, func(), error) {
	if cfg.SessionBackend != "postgres" {
		mem := session.NewMemoryStore(cfg.SessionTTL)
		go every(ctx, sweepInterval, func() {
			if n := mem.Sweep(); n > 0 {
				log.Debug("expired sessions removed", zap.Int("count", n))
			}
		})
		return mem, func() {}, nil
	}

	dbCfg, err := db.LoadPostgresConfig()
	if err != nil {
		return nil, nil, err
	}
	conn, err := db.NewPostgresConnection(dbCfg)
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewSessionRepo(conn, cfg.SessionTTL)
	migrateCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := repo.Migrate(migrateCtx); err != nil {
		conn.Close()
		return nil, nil, err
	}
	go every(ctx, sweepInterval, func() {
		n, err := repo.PurgeExpired(ctx)
		if err != nil {
			log.Warn("purge expired sessions", zap.Error(err))
			return
		}
		if n > 0 {
			log.Debug("expired sessions removed", zap.Int64("count", n))
		}
	})
	return repo, func() { conn.Close() }, nil
}

func every(ctx context.Context, d time.Duration, fn func()) {
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn()
		}
	}
}
