package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

func (s *Server) handleInitialize(params json.RawMessage) (any, *Error) {
	var initParams InitializeParams
	if params != nil {
		if err := json.Unmarshal(params, &initParams); err != nil {
			return nil, &Error{
				Code:    InvalidParams,
				Message: "Invalid initialize parameters",
				Data:    err.Error(),
			}
		}
	}

	s.initialized = true

	return &InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: ServerCapabilities{
			Tools:     &ToolsCapability{},
			Resources: &ResourcesCapability{},
		},
		ServerInfo: ServerInfo{
			Name:    s.adapter.ServerName(),
			Version: ServerVersion,
		},
	}, nil
}

func (s *Server) handleListTools() (any, *Error) {
	return &ListToolsResult{Tools: toolCatalog()}, nil
}

// handleCallTool routes a tool call to its executor. The tool set is closed:
// the switch below and toolCatalog enumerate the same seven names. Executor
// errors surface as -32000 envelopes naming the tool; they never cross this
// boundary as anything else.
func (s *Server) handleCallTool(params json.RawMessage) (any, *Error) {
	if params == nil {
		return nil, &Error{
			Code:    InvalidParams,
			Message: "Missing parameters",
		}
	}

	var callParams CallToolParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return nil, &Error{
			Code:    InvalidParams,
			Message: "Invalid parameters",
			Data:    err.Error(),
		}
	}

	if callParams.Name == "" {
		return nil, &Error{
			Code:    InvalidParams,
			Message: "Missing tool name",
		}
	}

	args := callParams.Arguments
	if args == nil {
		args = map[string]any{}
	}

	var text string
	var err error

	switch callParams.Name {
	case "query_database":
		text, err = s.queryDatabase(args)
	case "execute_sql":
		text, err = s.executeSQL(args)
	case "create_table":
		text, err = s.createTable(args)
	case "add_column":
		text, err = s.addColumn(args)
	case "show_tables":
		text, err = s.showTables()
	case "describe_table":
		text, err = s.describeTable(args)
	case "show_databases":
		text, err = s.showDatabases()
	default:
		return nil, &Error{
			Code:    ToolError,
			Message: fmt.Sprintf("Unknown tool: %s", callParams.Name),
		}
	}

	if err != nil {
		return nil, &Error{
			Code:    ToolError,
			Message: fmt.Sprintf("Error executing %s: %v", callParams.Name, err),
		}
	}

	return &CallToolResult{
		Content: []Content{{Type: "text", Text: text}},
	}, nil
}

func (s *Server) handleListResources() (any, *Error) {
	if s.databaseName == "" {
		return &ListResourcesResult{Resources: []Resource{}}, nil
	}

	db, err := s.conns.Acquire(s.ctx)
	if err != nil {
		return nil, &Error{
			Code:    InternalError,
			Message: fmt.Sprintf("Failed to list tables: %v", err),
		}
	}

	query, queryArgs := s.adapter.ListTablesQuery(s.databaseName)
	rows, err := db.QueryContext(s.ctx, query, queryArgs...)
	if err != nil {
		return nil, &Error{
			Code:    InternalError,
			Message: fmt.Sprintf("Failed to list tables: %v", err),
		}
	}
	defer rows.Close()

	var resources []Resource
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			logError("Failed to scan table name: %v", err)
			continue
		}
		resources = append(resources, Resource{
			URI:      fmt.Sprintf("%s://%s/%s/schema", s.adapter.URIScheme(), s.databaseName, tableName),
			Name:     fmt.Sprintf("Schema for table '%s'", tableName),
			MimeType: "application/json",
		})
	}

	if err := rows.Err(); err != nil {
		return nil, &Error{
			Code:    InternalError,
			Message: fmt.Sprintf("Error iterating tables: %v", err),
		}
	}

	return &ListResourcesResult{Resources: resources}, nil
}

func (s *Server) handleReadResource(params json.RawMessage) (any, *Error) {
	var readParams ReadResourceParams
	if err := json.Unmarshal(params, &readParams); err != nil {
		return nil, &Error{
			Code:    InvalidParams,
			Message: "Invalid parameters",
			Data:    err.Error(),
		}
	}

	// Parse URI: <scheme>://dbname/tablename/schema
	uri := readParams.URI
	prefix := s.adapter.URIScheme() + "://"
	if !strings.HasPrefix(uri, prefix) {
		return nil, &Error{
			Code:    InvalidParams,
			Message: fmt.Sprintf("Invalid resource URI: must start with %s", prefix),
		}
	}

	parts := strings.Split(strings.TrimPrefix(uri, prefix), "/")
	if len(parts) < 3 || parts[2] != "schema" {
		return nil, &Error{
			Code:    InvalidParams,
			Message: fmt.Sprintf("Invalid resource URI format: expected %sdbname/tablename/schema", prefix),
		}
	}

	dbName := parts[0]
	tableName := parts[1]

	columns, err := s.tableColumns(dbName, tableName)
	if err != nil {
		return nil, &Error{
			Code:    InternalError,
			Message: fmt.Sprintf("Failed to get schema: %v", err),
		}
	}

	schemaJSON, err := json.MarshalIndent(columns, "", "  ")
	if err != nil {
		return nil, &Error{
			Code:    InternalError,
			Message: fmt.Sprintf("Failed to marshal schema: %v", err),
		}
	}

	return &ReadResourceResult{
		Contents: []ResourceContent{
			{
				URI:      uri,
				MimeType: "application/json",
				Text:     string(schemaJSON),
			},
		},
	}, nil
}
