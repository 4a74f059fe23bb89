package main

import "database/sql"

// DBAdapter defines the contract for database-specific behavior.
// Each supported database (MySQL, PostgreSQL, SQLite) implements this interface.
type DBAdapter interface {
	// DriverName returns the database/sql driver name (e.g., "mysql", "postgres", "sqlite").
	DriverName() string

	// ServerName returns the MCP server name for this adapter.
	ServerName() string

	// URIScheme returns the resource URI scheme (e.g., "mysql", "postgres", "sqlite").
	URIScheme() string

	// BuildDSN constructs a DSN from environment variables. Missing required
	// variables are a configuration error; callers treat it as fatal.
	BuildDSN() (string, error)

	// DatabaseName extracts the database/file name from a DSN string.
	DatabaseName(dsn string) string

	// ListTablesQuery returns the SQL query and arguments to list all tables.
	ListTablesQuery(databaseName string) (string, []any)

	// ListDatabasesQuery returns the SQL query and arguments to list all databases.
	ListDatabasesQuery() (string, []any)

	// DescribeTableQuery returns the SQL query and arguments to read column
	// metadata for a table. The query yields zero rows for an unknown table.
	DescribeTableQuery(databaseName, tableName string) (string, []any)

	// ScanColumn scans a single row from the describe-table query result.
	ScanColumn(rows *sql.Rows) (ColumnInfo, error)

	// RemoveStringsAndComments strips string literals and comments from SQL
	// for safe multi-statement detection.
	RemoveStringsAndComments(sql string) string
}
