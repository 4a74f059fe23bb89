package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// SQLiteAdapter implements DBAdapter for SQLite databases.
type SQLiteAdapter struct{}

func (a *SQLiteAdapter) DriverName() string { return "sqlite" }
func (a *SQLiteAdapter) ServerName() string { return "sqlite-mcp-server" }
func (a *SQLiteAdapter) URIScheme() string  { return "sqlite" }

func (a *SQLiteAdapter) BuildDSN() (string, error) {
	dbPath := os.Getenv("SQLITE_PATH")
	if dbPath == "" {
		return "", fmt.Errorf("missing required environment variable: SQLITE_PATH")
	}
	return dbPath, nil
}

func (a *SQLiteAdapter) DatabaseName(dsn string) string {
	// DSN is a file path, possibly with ?options
	path := dsn
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}
	parts := strings.Split(path, "/")
	name := parts[len(parts)-1]
	name = strings.TrimSuffix(name, ".db")
	name = strings.TrimSuffix(name, ".sqlite")
	name = strings.TrimSuffix(name, ".sqlite3")
	return name
}

func (a *SQLiteAdapter) ListTablesQuery(databaseName string) (string, []any) {
	// SQLite has no information_schema. databaseName is ignored
	// (SQLite has one DB per file).
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
		nil
}

func (a *SQLiteAdapter) ListDatabasesQuery() (string, []any) {
	return `SELECT name FROM pragma_database_list`, nil
}

func (a *SQLiteAdapter) DescribeTableQuery(databaseName, tableName string) (string, []any) {
	// pragma_table_info yields zero rows for an unknown table instead of failing.
	return `SELECT name, type, "notnull", dflt_value, pk FROM pragma_table_info(?)`,
		[]any{tableName}
}

func (a *SQLiteAdapter) ScanColumn(rows *sql.Rows) (ColumnInfo, error) {
	var field, colType string
	var notNull, pk int
	var dfltValue sql.NullString

	if err := rows.Scan(&field, &colType, &notNull, &dfltValue, &pk); err != nil {
		return ColumnInfo{}, err
	}

	col := ColumnInfo{
		Field:   field,
		Type:    colType,
		Null:    "YES",
		Default: "NULL",
	}
	if notNull == 1 {
		col.Null = "NO"
	}
	if pk > 0 {
		col.Key = "PRI"
	}
	if dfltValue.Valid {
		col.Default = dfltValue.String
	}
	return col, nil
}

// RemoveStringsAndComments strips string literals and comments from SQL
// for safe multi-statement detection. SQLite-specific: no # comments, no
// backslash escaping, supports backtick and [bracket] identifiers.
func (a *SQLiteAdapter) RemoveStringsAndComments(sql string) string {
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

		// Single-quoted string (no backslash escaping in SQLite)
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

		// Double-quoted identifier/string
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

		// Backtick-quoted identifier (SQLite compatibility)
		if sql[i] == '`' {
			result.WriteByte('`')
			i++
			for i < n && sql[i] != '`' {
				result.WriteByte(sql[i])
				i++
			}
			if i < n {
				result.WriteByte('`')
				i++
			}
			continue
		}

		// [bracket]-quoted identifier (SQL Server compatibility in SQLite)
		if sql[i] == '[' {
			result.WriteByte('[')
			i++
			for i < n && sql[i] != ']' {
				result.WriteByte(sql[i])
				i++
			}
			if i < n {
				result.WriteByte(']')
				i++
			}
			continue
		}

		result.WriteByte(sql[i])
		i++
	}

	return result.String()
}
