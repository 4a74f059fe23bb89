package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	adapter, err := adapterForDriver(os.Getenv("DB_DRIVER"))
	if err != nil {
		logError("%v", err)
		os.Exit(1)
	}

	// Missing required configuration is fatal before the loop starts.
	dsn, err := adapter.BuildDSN()
	if err != nil {
		logError("Configuration error: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logError("Received shutdown signal")
		cancel()
	}()

	server := NewServer(ctx, adapter, dsn, os.Stdin, os.Stdout)
	defer server.Close()

	logError("%s started (database: %s)", adapter.ServerName(), server.databaseName)

	if err := server.Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			logError("Server shutdown gracefully")
		} else {
			logError("Server error: %v", err)
			os.Exit(1)
		}
	}
}

// adapterForDriver selects the database backend from the DB_DRIVER
// environment variable. MySQL is the default.
func adapterForDriver(name string) (DBAdapter, error) {
	switch name {
	case "", "mysql":
		return &MySQLAdapter{}, nil
	case "postgres":
		return &PostgresAdapter{}, nil
	case "sqlite":
		return &SQLiteAdapter{}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (expected mysql, postgres, or sqlite)", name)
	}
}
