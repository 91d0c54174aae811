package postgres

import (
	"context"
	"database/sql"
)

// Client represents a Postgres client interface for testing and abstraction
type Client interface {
	// Connect establishes connection to the database
	Connect(ctx context.Context) error

	// Disconnect closes the database connection
	Disconnect() error

	// DB returns the underlying connection pool
	DB() *sql.DB

	// IsConnected returns whether the client is connected
	IsConnected() bool

	// Exec executes a query without returning rows
	Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

	// Query executes a query that returns rows
	Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)

	// QueryRow executes a query that returns a single row
	QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row

	// Ping tests the database connection
	Ping(ctx context.Context) error
}
