package main

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// PostgresAdapter implements DBAdapter for PostgreSQL databases.
type PostgresAdapter struct{}

func (a *PostgresAdapter) DriverName() string { return "postgres" }
func (a *PostgresAdapter) ServerName() string { return "postgres-mcp-server" }
func (a *PostgresAdapter) URIScheme() string  { return "postgres" }

func (a *PostgresAdapter) BuildDSN() (string, error) {
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	db := os.Getenv("POSTGRES_DATABASE")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	sslmode := os.Getenv("POSTGRES_SSLMODE")
	timeout := os.Getenv("POSTGRES_CONNECTION_TIMEOUT")

	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "prefer"
	}
	if timeout == "" {
		timeout = "10"
	}

	var missing []string
	if host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if db == "" {
		missing = append(missing, "POSTGRES_DATABASE")
	}
	if user == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}

	if len(missing) > 0 {
		return "", fmt.Errorf("missing required environment variables: %v", missing)
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s&connect_timeout=%s",
		url.PathEscape(user), url.PathEscape(password), host, port, db, sslmode, timeout), nil
}

func (a *PostgresAdapter) DatabaseName(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

func (a *PostgresAdapter) ListTablesQuery(databaseName string) (string, []any) {
	return `SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_catalog = $1
		ORDER BY table_name`, []any{databaseName}
}

func (a *PostgresAdapter) ListDatabasesQuery() (string, []any) {
	return `SELECT datname FROM pg_database WHERE datistemplate = false ORDER BY datname`, nil
}

func (a *PostgresAdapter) DescribeTableQuery(databaseName, tableName string) (string, []any) {
	return `SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_catalog = $1 AND table_schema = 'public' AND table_name = $2
		ORDER BY ordinal_position`, []any{databaseName, tableName}
}

func (a *PostgresAdapter) ScanColumn(rows *sql.Rows) (ColumnInfo, error) {
	var field, dataType, isNullable string
	var colDefault sql.NullString

	if err := rows.Scan(&field, &dataType, &isNullable, &colDefault); err != nil {
		return ColumnInfo{}, err
	}

	// PostgreSQL has no column_key/extra equivalents in information_schema.columns.
	col := ColumnInfo{
		Field:   field,
		Type:    dataType,
		Null:    isNullable,
		Default: "NULL",
	}
	if colDefault.Valid {
		col.Default = colDefault.String
	}
	return col, nil
}

// RemoveStringsAndComments strips string literals and comments from SQL
// for safe multi-statement detection. PostgreSQL-specific: no # comments, no
// backtick identifiers, handles $$ dollar-quoted strings, no backslash
// escaping by default.
func (a *PostgresAdapter) RemoveStringsAndComments(sql string) string {
	var result strings.Builder
	i := 0
	n := len(sql)

	for i < n {
		// Single-line comment starting with --
		if i+1 < n && sql[i] == '-' && sql[i+1] == '-' {
			for i < n && sql[i] != '\n' {
				i++
			}
			result.WriteByte(' ')
			continue
		}

		// Multi-line comment /* */
		if i+1 < n && sql[i] == '/' && sql[i+1] == '*' {
			i += 2
			for i+1 < n && !(sql[i] == '*' && sql[i+1] == '/') {
				i++
			}
			i += 2 // Skip */
			result.WriteByte(' ')
			continue
		}

		// Dollar-quoted string $tag$...$tag$ or $$...$$
		if sql[i] == '$' {
			tagEnd := strings.Index(sql[i+1:], "$")
			if tagEnd >= 0 {
				tag := sql[i : i+tagEnd+2] // e.g., "$$" or "$tag$"
				closeIdx := strings.Index(sql[i+len(tag):], tag)
				if closeIdx >= 0 {
					i += len(tag) + closeIdx + len(tag)
					result.WriteString("''") // Placeholder for string content
					continue
				}
			}
		}

		// Single-quoted string (no backslash escaping in standard PostgreSQL)
		if sql[i] == '\'' {
			i++
			for i < n {
				if sql[i] == '\'' {
					if i+1 < n && sql[i+1] == '\'' {
						i += 2 // Escaped quote ''
						continue
					}
					i++
					break
				}
				i++
			}
			result.WriteString("''") // Placeholder for string
			continue
		}

		// Double-quoted identifier (PostgreSQL standard identifier quoting)
		if sql[i] == '"' {
			result.WriteByte('"')
			i++
			for i < n {
				if sql[i] == '"' {
					if i+1 < n && sql[i+1] == '"' {
						result.WriteString(`""`)
						i += 2
						continue
					}
					result.WriteByte('"')
					i++
					break
				}
				result.WriteByte(sql[i])
				i++
			}
			continue
		}

		result.WriteByte(sql[i])
		i++
	}

	return result.String()
}
