// @title        User CRUD API
// @version      1.0
// @description  單一 User 資源的 CRUD 服務，資料存放於 MongoDB
// @host         localhost:3000
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-crud/internal/cache"
	"user-crud/internal/config"
	"user-crud/internal/database"
	"user-crud/internal/logger"
	"user-crud/internal/router"
	"user-crud/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

const closeTimeout = 5 * time.Second

var (
	loadConfig      = config.Load
	connectStore    = openStore
	connectMongo    = database.ConnectMongo
	connectPostgres = database.ConnectPostgres
	ensureIndexes   = store.EnsureUserIndexes
	newRedisClient  = cache.NewRedisClient
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	exitFunc        = os.Exit
)

// openStore 依 STORE_DRIVER 建立連線與對應的 UserStore
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (database.Conn, store.UserStore, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		conn, err := connectPostgres(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		return conn, store.NewPostgresUserStore(conn.DB()), nil
	case config.DriverMongo:
		conn, err := connectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
		if err != nil {
			return nil, nil, err
		}
		coll := conn.Collection(store.UsersCollection)
		if err := ensureIndexes(ctx, coll.Indexes()); err != nil {
			_ = conn.Close(ctx)
			return nil, nil, err
		}
		return conn, store.NewMongoUserStore(coll), nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.StoreDriver)
	}
}

func logConnectError(log zerolog.Logger, err error) {
	var ce *database.ConnectError
	if !errors.As(err, &ce) {
		log.Error().Err(err).Msg("database setup failed")
		return
	}
	log.Error().Err(ce.Err).Str("kind", ce.Kind.String()).Msg("database connection failed")
	for _, h := range database.Hints(ce.Kind) {
		log.Info().Msg(h)
	}
}

func closeConn(conn database.Conn, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := conn.Close(ctx); err != nil {
		log.Error().Err(err).Msg("close database connection")
		return
	}
	log.Info().Msg("connection closed through app termination")
}

// run 在 ctx 結束（收到 SIGINT/SIGTERM）時關閉 server 與連線
func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.Env)

	conn, users, err := connectStore(ctx, cfg, log)
	if err != nil {
		logConnectError(log, err)
		return err
	}
	defer closeConn(conn, log)

	deps := router.Deps{
		Conn:  conn,
		Users: users,
		Log:   log,
		Dev:   cfg.IsDevelopment(),
	}
	if cfg.Redis.Enabled() {
		rdb, err := newRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
		} else {
			defer rdb.Close()
			deps.Limiter = cache.NewLimiter(rdb, cfg.Redis.RateLimit, cfg.Redis.Window)
		}
	}
	e := router.New(deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Addr()).
			Str("env", cfg.Env).
			Str("driver", cfg.StoreDriver).
			Msg("server is running")
		errCh <- startServer(e, cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := shutdownServer(sctx, e); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		zlog.Error().Err(err).Msg("service stopped")
		stop()
		exitFunc(1)
	}
}
