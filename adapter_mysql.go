package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// MySQLAdapter implements DBAdapter for MySQL databases.
type MySQLAdapter struct{}

func (a *MySQLAdapter) DriverName() string { return "mysql" }
func (a *MySQLAdapter) ServerName() string { return "mysql-mcp-server" }
func (a *MySQLAdapter) URIScheme() string  { return "mysql" }

func (a *MySQLAdapter) BuildDSN() (string, error) {
	host := os.Getenv("MYSQL_HOST")
	port := os.Getenv("MYSQL_PORT")
	db := os.Getenv("MYSQL_DATABASE")
	user := os.Getenv("MYSQL_USER")
	password := os.Getenv("MYSQL_PASSWORD")
	charset := os.Getenv("MYSQL_CHARSET")
	timeout := os.Getenv("MYSQL_CONNECTION_TIMEOUT")

	if port == "" {
		port = "3306"
	}
	if charset == "" {
		charset = "utf8mb4"
	}
	if timeout == "" {
		timeout = "10"
	}

	var missing []string
	if host == "" {
		missing = append(missing, "MYSQL_HOST")
	}
	if db == "" {
		missing = append(missing, "MYSQL_DATABASE")
	}
	if user == "" {
		missing = append(missing, "MYSQL_USER")
	}
	if password == "" {
		missing = append(missing, "MYSQL_PASSWORD")
	}

	if len(missing) > 0 {
		return "", fmt.Errorf("missing required environment variables: %v", missing)
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&timeout=%ss",
		user, password, host, port, db, charset, timeout), nil
}

func (a *MySQLAdapter) DatabaseName(dsn string) string {
	// DSN format: user:password@tcp(host:port)/dbname?params
	parts := strings.Split(dsn, "/")
	if len(parts) < 2 {
		return ""
	}
	dbPart := parts[len(parts)-1]
	if idx := strings.Index(dbPart, "?"); idx != -1 {
		dbPart = dbPart[:idx]
	}
	return dbPart
}

func (a *MySQLAdapter) ListTablesQuery(databaseName string) (string, []any) {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = ? ORDER BY table_name`,
		[]any{databaseName}
}

func (a *MySQLAdapter) ListDatabasesQuery() (string, []any) {
	return "SHOW DATABASES", nil
}

func (a *MySQLAdapter) DescribeTableQuery(databaseName, tableName string) (string, []any) {
	return `SELECT column_name, column_type, is_nullable, column_key, column_default, extra
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position`, []any{databaseName, tableName}
}

func (a *MySQLAdapter) ScanColumn(rows *sql.Rows) (ColumnInfo, error) {
	var field, colType, isNullable, colKey string
	var colDefault, extra sql.NullString

	if err := rows.Scan(&field, &colType, &isNullable, &colKey, &colDefault, &extra); err != nil {
		return ColumnInfo{}, err
	}

	col := ColumnInfo{
		Field:   field,
		Type:    colType,
		Null:    isNullable,
		Key:     colKey,
		Default: "NULL",
	}
	if colDefault.Valid {
		col.Default = colDefault.String
	}
	if extra.Valid {
		col.Extra = extra.String
	}
	return col, nil
}

// RemoveStringsAndComments strips string literals and comments from SQL
// for safe multi-statement detection. MySQL-specific: supports # comments,
// backtick identifiers, and backslash escaping in strings.
func (a *MySQLAdapter) RemoveStringsAndComments(sql string) string {
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

		// Single-line comment starting with # (MySQL-specific)
		if sql[i] == '#' {
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

		// Single-quoted string
		if sql[i] == '\'' {
			i++
			for i < n {
				if sql[i] == '\'' {
					if i+1 < n && sql[i+1] == '\'' {
						i += 2 // Escaped quote
						continue
					}
					i++
					break
				}
				if sql[i] == '\\' && i+1 < n {
					i += 2 // Escaped character (MySQL-specific)
					continue
				}
				i++
			}
			result.WriteString("''") // Placeholder for string
			continue
		}

		// Double-quoted string (identifier in MySQL with ANSI_QUOTES, or string)
		if sql[i] == '"' {
			i++
			for i < n {
				if sql[i] == '"' {
					if i+1 < n && sql[i+1] == '"' {
						i += 2 // Escaped quote
						continue
					}
					i++
					break
				}
				if sql[i] == '\\' && i+1 < n {
					i += 2 // Escaped character (MySQL-specific)
					continue
				}
				i++
			}
			result.WriteString(`""`) // Placeholder for string
			continue
		}

		// Backtick-quoted identifier (MySQL-specific)
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

		result.WriteByte(sql[i])
		i++
	}

	return result.String()
}
