package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

var (
	pgxpoolNew      = pgxpool.New
	newPgxPool      = NewPgxPool
	runMigrationsFn = RunMigrations
)

func NewPgxPool(ctx context.Context, url string) (DB, error) {
	pool, err := pgxpoolNew(ctx, url)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// PostgresConn 是以 PostgreSQL 作為使用者儲存時的連線 handle
type PostgresConn struct {
	db    DB
	host  string
	name  string
	state *stateTracker
}

// ConnectPostgres 建立連線池、Ping 一次並執行 migration；與 ConnectMongo 相同不重試。
func ConnectPostgres(ctx context.Context, url string, log zerolog.Logger) (*PostgresConn, error) {
	if url == "" {
		return nil, &ConnectError{Kind: KindConfig, Err: fmt.Errorf("DATABASE_URL: %w", ErrMissingURI)}
	}
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, &ConnectError{Kind: KindConfig, Err: err}
	}
	host := fmt.Sprintf("%s:%d", cfg.ConnConfig.Host, cfg.ConnConfig.Port)
	name := cfg.ConnConfig.Database
	log = log.With().Str("host", host).Str("database", name).Logger()

	state := newStateTracker(log)
	state.set(Connecting)
	log.Info().Msg("attempting to connect to PostgreSQL")

	db, err := newPgxPool(ctx, url)
	if err != nil {
		state.set(Disconnected)
		return nil, &ConnectError{Kind: Classify(err), Err: err}
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		state.set(Disconnected)
		return nil, &ConnectError{Kind: classifyPostgres(err), Err: err}
	}
	if err := runMigrationsFn(url); err != nil {
		db.Close()
		state.set(Disconnected)
		return nil, &ConnectError{Kind: KindUnknown, Err: fmt.Errorf("migrations: %w", err)}
	}
	state.connected()

	log.Info().Str("state", state.get().String()).Msg("PostgreSQL connected successfully")
	return &PostgresConn{db: db, host: host, name: name, state: state}, nil
}

// classifyPostgres recognises SQLSTATE class 28 (invalid authorization)
// before falling back to the generic classification.
func classifyPostgres(err error) ErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "28" {
		return KindAuth
	}
	return Classify(err)
}

var _ Conn = (*PostgresConn)(nil)

func (c *PostgresConn) ReadyState() ReadyState { return c.state.get() }
func (c *PostgresConn) Host() string           { return c.host }
func (c *PostgresConn) Name() string           { return c.name }

// DB 回傳底層連線池
func (c *PostgresConn) DB() DB { return c.db }

func (c *PostgresConn) Ping(ctx context.Context) error {
	if err := c.db.Ping(ctx); err != nil {
		c.state.failed(err)
		return err
	}
	c.state.connected()
	return nil
}

func (c *PostgresConn) Close(context.Context) error {
	if !c.state.beginClose() {
		return nil
	}
	c.db.Close()
	c.state.endClose()
	return nil
}
