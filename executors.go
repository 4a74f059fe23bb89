package main

import (
	"fmt"
	"strings"
)

// queryDatabase executes a SELECT statement and renders the result as a
// Markdown table. A row cap is appended unless the statement already carries
// a LIMIT clause.
func (s *Server) queryDatabase(args map[string]any) (string, error) {
	sqlText, err := stringArg(args, "sql")
	if err != nil {
		return "", err
	}
	sqlText = strings.TrimSpace(sqlText)

	limit, err := intArg(args, "limit", DefaultRowLimit)
	if err != nil {
		return "", err
	}

	if err := validateStatementClass(sqlText, queryStatementClasses, ErrOnlySelectAllowed); err != nil {
		return "", err
	}

	if !hasLimitClause(sqlText) {
		sqlText = fmt.Sprintf("%s LIMIT %d", sqlText, limit)
	}

	db, err := s.conns.Acquire(s.ctx)
	if err != nil {
		return "", err
	}

	rows, err := db.QueryContext(s.ctx, sqlText)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return "", err
	}

	var records [][]string
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return "", fmt.Errorf("failed to scan row %d: %w", len(records)+1, err)
		}

		record := make([]string, len(columns))
		for i := range columns {
			record[i] = formatValue(values[i])
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return "", err
	}

	if len(records) == 0 {
		return "Query executed successfully. No rows returned.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Query: %s\n", sqlText)
	fmt.Fprintf(&b, "Rows returned: %d\n\n", len(records))
	b.WriteString(markdownTable(columns, records))
	return b.String(), nil
}

// executeSQL runs a single INSERT, UPDATE, or DELETE statement and reports
// the affected-row count. Each call commits immediately; there are no
// transactions spanning requests.
func (s *Server) executeSQL(args map[string]any) (string, error) {
	sqlText, err := stringArg(args, "sql")
	if err != nil {
		return "", err
	}
	sqlText = strings.TrimSpace(sqlText)

	if err := validateStatementClass(sqlText, execStatementClasses, ErrOnlyDMLAllowed); err != nil {
		return "", err
	}
	if err := validateSingleStatement(sqlText, s.adapter); err != nil {
		return "", err
	}

	db, err := s.conns.Acquire(s.ctx)
	if err != nil {
		return "", err
	}

	result, err := db.ExecContext(s.ctx, sqlText)
	if err != nil {
		return "", err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("SQL executed successfully. Affected rows: %d\nSQL: %s", affected, sqlText), nil
}

// createTable builds and executes a CREATE TABLE statement from the supplied
// name and column-definition fragment.
func (s *Server) createTable(args map[string]any) (string, error) {
	tableName, err := stringArg(args, "table_name")
	if err != nil {
		return "", err
	}
	columns, err := stringArg(args, "columns")
	if err != nil {
		return "", err
	}

	sqlText := fmt.Sprintf("CREATE TABLE %s (%s)", tableName, columns)

	db, err := s.conns.Acquire(s.ctx)
	if err != nil {
		return "", err
	}

	if _, err := db.ExecContext(s.ctx, sqlText); err != nil {
		return "", err
	}

	return fmt.Sprintf("Table '%s' created successfully.\nSQL: %s", tableName, sqlText), nil
}

// addColumn builds and executes an ALTER TABLE ... ADD COLUMN statement.
func (s *Server) addColumn(args map[string]any) (string, error) {
	tableName, err := stringArg(args, "table_name")
	if err != nil {
		return "", err
	}
	columnDefinition, err := stringArg(args, "column_definition")
	if err != nil {
		return "", err
	}

	sqlText := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", tableName, columnDefinition)

	db, err := s.conns.Acquire(s.ctx)
	if err != nil {
		return "", err
	}

	if _, err := db.ExecContext(s.ctx, sqlText); err != nil {
		return "", err
	}

	return fmt.Sprintf("Column added to table '%s' successfully.\nSQL: %s", tableName, sqlText), nil
}

// showTables lists the tables of the configured database, 1-indexed.
func (s *Server) showTables() (string, error) {
	db, err := s.conns.Acquire(s.ctx)
	if err != nil {
		return "", err
	}

	query, queryArgs := s.adapter.ListTablesQuery(s.databaseName)
	rows, err := db.QueryContext(s.ctx, query, queryArgs...)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	if len(tables) == 0 {
		return "No tables found in the database.", nil
	}

	return "Tables in database:\n" + numberedList(tables, nil), nil
}

// describeTable renders column metadata as a Markdown table. An unknown
// table yields a not-found message, not an error.
func (s *Server) describeTable(args map[string]any) (string, error) {
	tableName, err := stringArg(args, "table_name")
	if err != nil {
		return "", err
	}

	columns, err := s.tableColumns(s.databaseName, tableName)
	if err != nil {
		return "", err
	}

	if len(columns) == 0 {
		return fmt.Sprintf("Table '%s' not found or has no columns.", tableName), nil
	}

	records := make([][]string, len(columns))
	for i, col := range columns {
		records[i] = []string{col.Field, col.Type, col.Null, col.Key, col.Default, col.Extra}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Structure of table '%s':\n\n", tableName)
	b.WriteString(markdownTable([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}, records))
	return b.String(), nil
}

// showDatabases lists databases, 1-indexed, marking the configured one.
func (s *Server) showDatabases() (string, error) {
	db, err := s.conns.Acquire(s.ctx)
	if err != nil {
		return "", err
	}

	query, queryArgs := s.adapter.ListDatabasesQuery()
	rows, err := db.QueryContext(s.ctx, query, queryArgs...)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var databases []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", err
		}
		databases = append(databases, name)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	return "Available databases:\n" + numberedList(databases, func(name string) string {
		if name == s.databaseName {
			return " (current)"
		}
		return ""
	}), nil
}

// tableColumns fetches normalized column metadata for a table. Zero columns
// means the table does not exist (or genuinely has none).
func (s *Server) tableColumns(databaseName, tableName string) ([]ColumnInfo, error) {
	db, err := s.conns.Acquire(s.ctx)
	if err != nil {
		return nil, err
	}

	query, queryArgs := s.adapter.DescribeTableQuery(databaseName, tableName)
	rows, err := db.QueryContext(s.ctx, query, queryArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		col, err := s.adapter.ScanColumn(rows)
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return columns, nil
}
