package main

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// newSQLiteServer builds a server backed by an in-memory SQLite database.
// The connection manager caps the pool at one connection, so the memory
// database survives across calls.
func newSQLiteServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer(context.Background(), &SQLiteAdapter{}, ":memory:", nil, nil)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustExecuteTool(t *testing.T, run func() (string, error)) string {
	t.Helper()
	text, err := run()
	if err != nil {
		t.Fatalf("Tool execution failed: %v", err)
	}
	return text
}

func TestCreateTableAndShowTables(t *testing.T) {
	s := newSQLiteServer(t)

	empty := mustExecuteTool(t, s.showTables)
	if empty != "No tables found in the database." {
		t.Errorf("Expected no-tables message, got %q", empty)
	}

	created := mustExecuteTool(t, func() (string, error) {
		return s.createTable(map[string]any{
			"table_name": "users",
			"columns":    "id INTEGER PRIMARY KEY, name TEXT NOT NULL",
		})
	})
	if !strings.Contains(created, "Table 'users' created successfully.") {
		t.Errorf("Unexpected create_table output: %q", created)
	}
	if !strings.Contains(created, "SQL: CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL)") {
		t.Errorf("Expected output to echo the SQL, got %q", created)
	}

	listed := mustExecuteTool(t, s.showTables)
	want := "Tables in database:\n1. users\n"
	if listed != want {
		t.Errorf("Expected %q, got %q", want, listed)
	}
}

func TestExecuteSQLAndQueryDatabase(t *testing.T) {
	s := newSQLiteServer(t)

	mustExecuteTool(t, func() (string, error) {
		return s.createTable(map[string]any{
			"table_name": "users",
			"columns":    "id INTEGER PRIMARY KEY, name TEXT",
		})
	})

	inserted := mustExecuteTool(t, func() (string, error) {
		return s.executeSQL(map[string]any{
			"sql": "INSERT INTO users (id, name) VALUES (1, 'alice')",
		})
	})
	if !strings.Contains(inserted, "Affected rows: 1") {
		t.Errorf("Expected one affected row, got %q", inserted)
	}

	queried := mustExecuteTool(t, func() (string, error) {
		return s.queryDatabase(map[string]any{
			"sql": "SELECT id, name FROM users",
		})
	})
	if !strings.Contains(queried, "Rows returned: 1") {
		t.Errorf("Expected one returned row, got %q", queried)
	}
	if !strings.Contains(queried, "| id | name |") {
		t.Errorf("Expected Markdown header row, got %q", queried)
	}
	if !strings.Contains(queried, "| 1 | alice |") {
		t.Errorf("Expected data row, got %q", queried)
	}
	// The row cap was appended since the statement had no LIMIT.
	if !strings.Contains(queried, "LIMIT 100") {
		t.Errorf("Expected appended LIMIT clause in echoed query, got %q", queried)
	}
}

func TestQueryDatabase_NullRendering(t *testing.T) {
	s := newSQLiteServer(t)

	mustExecuteTool(t, func() (string, error) {
		return s.createTable(map[string]any{
			"table_name": "items",
			"columns":    "id INTEGER PRIMARY KEY, note TEXT",
		})
	})
	mustExecuteTool(t, func() (string, error) {
		return s.executeSQL(map[string]any{"sql": "INSERT INTO items (id) VALUES (7)"})
	})

	queried := mustExecuteTool(t, func() (string, error) {
		return s.queryDatabase(map[string]any{"sql": "SELECT id, note FROM items"})
	})
	if !strings.Contains(queried, "| 7 | NULL |") {
		t.Errorf("Expected NULL literal for absent value, got %q", queried)
	}
}

func TestQueryDatabase_NoRows(t *testing.T) {
	s := newSQLiteServer(t)

	mustExecuteTool(t, func() (string, error) {
		return s.createTable(map[string]any{
			"table_name": "empty_table",
			"columns":    "id INTEGER",
		})
	})

	queried := mustExecuteTool(t, func() (string, error) {
		return s.queryDatabase(map[string]any{"sql": "SELECT * FROM empty_table"})
	})
	if queried != "Query executed successfully. No rows returned." {
		t.Errorf("Expected fixed no-rows message, got %q", queried)
	}
}

func TestQueryDatabase_RespectsExistingLimit(t *testing.T) {
	s := newSQLiteServer(t)

	mustExecuteTool(t, func() (string, error) {
		return s.createTable(map[string]any{
			"table_name": "nums",
			"columns":    "n INTEGER",
		})
	})
	for _, stmt := range []string{
		"INSERT INTO nums (n) VALUES (1)",
		"INSERT INTO nums (n) VALUES (2)",
		"INSERT INTO nums (n) VALUES (3)",
	} {
		mustExecuteTool(t, func() (string, error) {
			return s.executeSQL(map[string]any{"sql": stmt})
		})
	}

	queried := mustExecuteTool(t, func() (string, error) {
		return s.queryDatabase(map[string]any{"sql": "SELECT n FROM nums LIMIT 2"})
	})
	if !strings.Contains(queried, "Rows returned: 2") {
		t.Errorf("Expected the statement's own LIMIT to hold, got %q", queried)
	}
	if strings.Contains(queried, "LIMIT 2 LIMIT") {
		t.Errorf("Row cap must not be appended twice: %q", queried)
	}

	capped := mustExecuteTool(t, func() (string, error) {
		return s.queryDatabase(map[string]any{"sql": "SELECT n FROM nums", "limit": float64(1)})
	})
	if !strings.Contains(capped, "Rows returned: 1") {
		t.Errorf("Expected limit override to cap rows, got %q", capped)
	}
}

func TestQueryDatabase_RejectsNonSelect(t *testing.T) {
	s := newSQLiteServer(t)

	_, err := s.queryDatabase(map[string]any{"sql": "DELETE FROM users"})
	if !errors.Is(err, ErrOnlySelectAllowed) {
		t.Errorf("Expected ErrOnlySelectAllowed, got: %v", err)
	}
}

func TestExecuteSQL_RejectsNonDML(t *testing.T) {
	s := newSQLiteServer(t)

	for _, stmt := range []string{
		"DROP TABLE users",
		"CREATE TABLE t (id INT)",
		"SELECT * FROM users",
	} {
		t.Run(stmt, func(t *testing.T) {
			_, err := s.executeSQL(map[string]any{"sql": stmt})
			if !errors.Is(err, ErrOnlyDMLAllowed) {
				t.Errorf("Expected ErrOnlyDMLAllowed, got: %v", err)
			}
		})
	}
}

func TestExecuteSQL_RejectsStackedStatements(t *testing.T) {
	s := newSQLiteServer(t)

	_, err := s.executeSQL(map[string]any{
		"sql": "INSERT INTO users VALUES (1, 'a'); DROP TABLE users",
	})
	if !errors.Is(err, ErrMultipleStatements) {
		t.Errorf("Expected ErrMultipleStatements, got: %v", err)
	}
}

func TestAddColumnAndDescribeTable(t *testing.T) {
	s := newSQLiteServer(t)

	mustExecuteTool(t, func() (string, error) {
		return s.createTable(map[string]any{
			"table_name": "users",
			"columns":    "id INTEGER PRIMARY KEY, name TEXT NOT NULL",
		})
	})

	added := mustExecuteTool(t, func() (string, error) {
		return s.addColumn(map[string]any{
			"table_name":        "users",
			"column_definition": "age INTEGER DEFAULT 0",
		})
	})
	if !strings.Contains(added, "Column added to table 'users' successfully.") {
		t.Errorf("Unexpected add_column output: %q", added)
	}

	described := mustExecuteTool(t, func() (string, error) {
		return s.describeTable(map[string]any{"table_name": "users"})
	})
	if !strings.Contains(described, "Structure of table 'users':") {
		t.Errorf("Expected structure heading, got %q", described)
	}
	if !strings.Contains(described, "| Field | Type | Null | Key | Default | Extra |") {
		t.Errorf("Expected metadata header row, got %q", described)
	}
	if !strings.Contains(described, "| id | INTEGER | YES | PRI | NULL |  |") {
		t.Errorf("Expected primary key row, got %q", described)
	}
	if !strings.Contains(described, "| name | TEXT | NO |  | NULL |  |") {
		t.Errorf("Expected NOT NULL column row, got %q", described)
	}
	if !strings.Contains(described, "| age | INTEGER | YES |  | 0 |  |") {
		t.Errorf("Expected added column with default, got %q", described)
	}
}

func TestDescribeTable_NotFound(t *testing.T) {
	s := newSQLiteServer(t)

	text := mustExecuteTool(t, func() (string, error) {
		return s.describeTable(map[string]any{"table_name": "missing"})
	})
	if text != "Table 'missing' not found or has no columns." {
		t.Errorf("Expected not-found message, got %q", text)
	}
}

func TestShowDatabases(t *testing.T) {
	s := newSQLiteServer(t)

	text := mustExecuteTool(t, s.showDatabases)
	if !strings.Contains(text, "Available databases:") {
		t.Errorf("Expected heading, got %q", text)
	}
	if !strings.Contains(text, "1. main") {
		t.Errorf("Expected the main database to be listed, got %q", text)
	}
}

func TestConnManager_ReleaseIdempotent(t *testing.T) {
	m := NewConnManager(&SQLiteAdapter{}, ":memory:")

	// Release before any Acquire must be a no-op.
	if err := m.Release(); err != nil {
		t.Errorf("Release on empty manager failed: %v", err)
	}

	if _, err := m.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := m.Release(); err != nil {
		t.Errorf("Release failed: %v", err)
	}
	if err := m.Release(); err != nil {
		t.Errorf("Second Release failed: %v", err)
	}
}

func TestConnManager_ReacquiresAfterRelease(t *testing.T) {
	m := NewConnManager(&SQLiteAdapter{}, ":memory:")

	db1, err := m.Acquire(context.Background())
	if err != nil {
		t.Fatalf("First Acquire failed: %v", err)
	}
	if db2, err := m.Acquire(context.Background()); err != nil || db2 != db1 {
		t.Errorf("Second Acquire should reuse the live handle (err: %v)", err)
	}

	if err := m.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	db3, err := m.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire after Release failed: %v", err)
	}
	if db3 == db1 {
		t.Error("Expected a fresh handle after Release")
	}
	m.Release()
}

func TestSQLiteRemoveStringsAndComments_NoHash(t *testing.T) {
	adapter := &SQLiteAdapter{}
	// # is NOT a comment in SQLite
	input := "SELECT # FROM users"
	result := adapter.RemoveStringsAndComments(input)
	if !strings.Contains(result, "#") {
		t.Errorf("# should not be treated as a comment in SQLite: %s", result)
	}
}

func TestSQLiteRemoveStringsAndComments_Identifiers(t *testing.T) {
	adapter := &SQLiteAdapter{}
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single-quoted string stripped",
			input:    "SELECT * FROM users WHERE name = 'a;b'",
			expected: "SELECT * FROM users WHERE name = ''",
		},
		{
			name:     "backtick identifier preserved",
			input:    "SELECT * FROM `table_name`",
			expected: "SELECT * FROM `table_name`",
		},
		{
			name:     "bracket identifier preserved",
			input:    "SELECT * FROM [table_name]",
			expected: "SELECT * FROM [table_name]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := adapter.RemoveStringsAndComments(tc.input)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}
