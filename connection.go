package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ConnectionTimeout bounds connection establishment and liveness pings.
const ConnectionTimeout = 10 * time.Second

// ConnManager owns the single database connection. The connection is created
// lazily on first Acquire and replaced when a liveness check fails. A failed
// (re)connect leaves the manager empty so the next request retries from
// scratch.
type ConnManager struct {
	adapter DBAdapter
	dsn     string
	db      *sql.DB
}

func NewConnManager(adapter DBAdapter, dsn string) *ConnManager {
	return &ConnManager{adapter: adapter, dsn: dsn}
}

// Acquire returns a live database handle, establishing or re-establishing
// the connection as needed.
func (m *ConnManager) Acquire(ctx context.Context) (*sql.DB, error) {
	if m.db != nil {
		err := m.ping(ctx, m.db)
		if err == nil {
			return m.db, nil
		}
		logError("Connection check failed, reconnecting: %v", err)
		m.db.Close()
		m.db = nil
	}

	db, err := sql.Open(m.adapter.DriverName(), m.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	// One exclusively-owned connection, no pooling.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := m.ping(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	m.db = db
	return db, nil
}

func (m *ConnManager) ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, ConnectionTimeout)
	defer cancel()
	return db.PingContext(pingCtx)
}

// Release closes the connection if open. Idempotent.
func (m *ConnManager) Release() error {
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}
