// Package vector stores catalog documents in SurrealDB and retrieves the
// closest ones for a question embedding. It backs the generative fallback
// with catalog context so off-script questions still get grounded answers.
package vector

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/contrib/rews"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/pkg/logger"
	"github.com/surrealdb/surrealdb.go/surrealcbor"
)

func init() {
	// The WebSocket upgrade needs HTTP/1.1; over TLS the default ALPN
	// negotiation picks HTTP/2 and the handshake fails, so pin h1.
	gorillaws.DefaultDialer.TLSClientConfig = &tls.Config{
		NextProtos: []string{"http/1.1"},
	}
}

// Config is the SurrealDB endpoint and credentials for the vector store.
type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
	AuthLevel string // "root" or "database"
}

// Client is the vector store handle. The underlying WebSocket reconnects
// on its own, so a Client survives SurrealDB restarts.
type Client struct {
	conn   *rews.Connection[*gorillaws.Connection]
	db     *surrealdb.DB
	cfg    Config
	logger logger.Logger
}

// NewClient dials SurrealDB, signs in and selects the configured
// namespace and database.
func NewClient(ctx context.Context, cfg Config, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	sdkLog := logger.New(log.Handler())

	conn := dial(cfg, sdkLog)

	sdkLog.Info("dialing vector store", "url", cfg.URL)
	if err := conn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("from connection: %w", err)
	}

	if err := signIn(ctx, db, cfg); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("signin: %w", err)
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("use: %w", err)
	}

	sdkLog.Info("vector store ready",
		"namespace", cfg.Namespace, "database", cfg.Database)
	return &Client{conn: conn, db: db, cfg: cfg, logger: sdkLog}, nil
}

// dial builds the reconnecting WebSocket transport. Not connected yet.
func dial(cfg Config, sdkLog logger.Logger) *rews.Connection[*gorillaws.Connection] {
	// SurrealDB's CBOR dialect carries custom tags that encoding/cbor
	// defaults would mangle
	codec := surrealcbor.New()

	// gorillaws appends /rpc itself
	baseURL := strings.TrimSuffix(cfg.URL, "/rpc")

	conn := rews.New(
		func(ctx context.Context) (*gorillaws.Connection, error) {
			return gorillaws.New(&connection.Config{
				BaseURL:     baseURL,
				Marshaler:   codec,
				Unmarshaler: codec,
				Logger:      sdkLog,
			}), nil
		},
		5*time.Second,
		codec,
		sdkLog,
	)

	retryer := rews.NewExponentialBackoffRetryer()
	retryer.InitialDelay = 1 * time.Second
	retryer.MaxDelay = 30 * time.Second
	retryer.Multiplier = 2.0
	retryer.MaxRetries = 10
	conn.Retryer = retryer

	return conn
}

func signIn(ctx context.Context, db *surrealdb.DB, cfg Config) error {
	auth := surrealdb.Auth{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	// Database-scoped credentials need the namespace and database in the
	// signin payload; root credentials must omit them.
	if cfg.AuthLevel == "database" {
		auth.Namespace = cfg.Namespace
		auth.Database = cfg.Database
	}
	_, err := db.SignIn(ctx, auth)
	return err
}

// Close shuts the WebSocket down.
func (c *Client) Close(ctx context.Context) error {
	c.logger.Info("closing vector store connection")
	return c.conn.Close(ctx)
}

// InitSchema creates the converter document table and its indexes.
func (c *Client) InitSchema(ctx context.Context) error {
	c.logger.Info("initializing vector schema")
	_, err := surrealdb.Query[any](ctx, c.db, SchemaSQL, nil)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Wipe deletes all indexed documents, keeping the schema. For tests and
// full re-indexing.
func (c *Client) Wipe(ctx context.Context) error {
	c.logger.Warn("wiping indexed documents")
	if _, err := surrealdb.Query[any](ctx, c.db, "DELETE converter_doc", nil); err != nil {
		return fmt.Errorf("delete converter_doc: %w", err)
	}
	return nil
}
