// Package postgres owns the process-wide PostgreSQL connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors for pool lifecycle misuse.
var (
	ErrNotReady = errors.New("postgres: pool not initialized")
	ErrConfig   = errors.New("postgres: missing required connection settings")
)

// Pool bounds. The catalog functions are cheap reads; ten connections is
// plenty and keeps a runaway client from pinning the database.
const (
	defaultMinConns = 1
	defaultMaxConns = 10

	defaultHost = "localhost"
	defaultPort = "5432"

	defaultConnectTimeout = 10 * time.Second
)

// Config holds PostgreSQL connection settings. Either URL or the discrete
// Name/User/Password fields must be set; Host and Port fall back to
// localhost:5432.
type Config struct {
	URL      string
	Name     string
	User     string
	Password string
	Host     string
	Port     string

	MinConns       int32
	MaxConns       int32
	ConnectTimeout time.Duration
}

// DSN builds the connection string. User and password are URL-escaped so
// credentials with special characters survive the round trip.
func (c Config) DSN() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}
	if c.Name == "" || c.User == "" || c.Password == "" {
		return "", fmt.Errorf(
			"%w: DB_NAME, DB_USER and DB_PASSWORD are required (DB_HOST defaults to %q, DB_PORT to %q)",
			ErrConfig, defaultHost, defaultPort,
		)
	}

	host := c.Host
	if host == "" {
		host = defaultHost
	}
	port := c.Port
	if port == "" {
		port = defaultPort
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   host + ":" + port,
		Path:   "/" + c.Name,
	}
	return u.String(), nil
}

func (c Config) poolConfig() (*pgxpool.Config, error) {
	dsn, err := c.DSN()
	if err != nil {
		return nil, err
	}

	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse connection string: %w", err)
	}

	pc.MinConns = c.MinConns
	if pc.MinConns <= 0 {
		pc.MinConns = defaultMinConns
	}
	pc.MaxConns = c.MaxConns
	if pc.MaxConns <= 0 {
		pc.MaxConns = defaultMaxConns
	}
	if pc.MaxConns < pc.MinConns {
		pc.MaxConns = pc.MinConns
	}

	timeout := c.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	pc.ConnConfig.ConnectTimeout = timeout

	return pc, nil
}

// Store wraps a pgxpool.Pool behind an explicit open/close lifecycle so the
// composition root owns initialization order instead of package-level state.
type Store struct {
	mu   sync.RWMutex
	pool *pgxpool.Pool
}

// NewStore creates an unopened Store.
func NewStore() *Store {
	return &Store{}
}

// Open establishes the connection pool. A second call on an already open
// store is a no-op. Open does not retry: bad credentials or an unreachable
// host surface immediately so startup can fail fast.
func (s *Store) Open(ctx context.Context, cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool != nil {
		return nil
	}

	pc, err := cfg.poolConfig()
	if err != nil {
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return fmt.Errorf("postgres: create pool: %w", err)
	}

	s.pool = pool
	return nil
}

// Close releases all pooled connections. Safe to call more than once and
// safe to call on a store that was never opened.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

func (s *Store) get() *pgxpool.Pool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pool
}

// Acquire checks one connection out of the pool for exclusive use. The
// caller must Release it; prefer Query, which scopes the checkout to a
// single statement.
func (s *Store) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	pool := s.get()
	if pool == nil {
		return nil, ErrNotReady
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: acquire connection: %w", err)
	}
	return conn, nil
}

// Query runs a single statement on a pooled connection. The connection is
// returned to the pool when the rows are closed, on every exit path.
func (s *Store) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	pool := s.get()
	if pool == nil {
		return nil, ErrNotReady
	}
	return pool.Query(ctx, sql, args...) //nolint:wrapcheck // callers wrap with operation context
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	pool := s.get()
	if pool == nil {
		return ErrNotReady
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}

// Stat reports pool usage counters, nil if the store is not open.
func (s *Store) Stat() *pgxpool.Stat {
	pool := s.get()
	if pool == nil {
		return nil
	}
	return pool.Stat()
}
