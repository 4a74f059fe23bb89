package main

// toolCatalog returns the fixed, ordered set of tool descriptors served by
// tools/list. The dispatch switch in handleCallTool must cover exactly these
// names; adding a tool means touching both places.
func toolCatalog() []Tool {
	return []Tool{
		{
			Name:        "query_database",
			Description: "Execute SELECT queries to retrieve data from database",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"sql": {
						Type:        "string",
						Description: "SQL SELECT query to execute",
					},
					"limit": {
						Type:        "integer",
						Description: "Maximum number of rows to return (default: 100)",
						Default:     DefaultRowLimit,
					},
				},
				Required: []string{"sql"},
			},
		},
		{
			Name:        "execute_sql",
			Description: "Execute INSERT, UPDATE, DELETE statements",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"sql": {
						Type:        "string",
						Description: "SQL statement to execute (INSERT, UPDATE, DELETE)",
					},
				},
				Required: []string{"sql"},
			},
		},
		{
			Name:        "create_table",
			Description: "Create a new table in the database",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"table_name": {
						Type:        "string",
						Description: "Name of the table to create",
					},
					"columns": {
						Type:        "string",
						Description: "Column definitions (e.g., 'id INT PRIMARY KEY AUTO_INCREMENT, name VARCHAR(100), email VARCHAR(255)')",
					},
				},
				Required: []string{"table_name", "columns"},
			},
		},
		{
			Name:        "add_column",
			Description: "Add a new column to an existing table",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"table_name": {
						Type:        "string",
						Description: "Name of the table to modify",
					},
					"column_definition": {
						Type:        "string",
						Description: "Column definition (e.g., 'age INT DEFAULT 0', 'created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP')",
					},
				},
				Required: []string{"table_name", "column_definition"},
			},
		},
		{
			Name:        "show_tables",
			Description: "List all tables in the database",
			InputSchema: InputSchema{
				Type:       "object",
				Properties: map[string]Property{},
			},
		},
		{
			Name:        "describe_table",
			Description: "Show the structure of a table (columns, types, etc.)",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"table_name": {
						Type:        "string",
						Description: "Name of the table to describe",
					},
				},
				Required: []string{"table_name"},
			},
		},
		{
			Name:        "show_databases",
			Description: "List all available databases",
			InputSchema: InputSchema{
				Type:       "object",
				Properties: map[string]Property{},
			},
		},
	}
}
