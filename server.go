package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Server handles MCP protocol over newline-delimited JSON. One request is
// fully processed (read, execute, write) before the next line is read.
type Server struct {
	adapter      DBAdapter
	conns        *ConnManager
	databaseName string
	in           io.Reader
	out          io.Writer
	initialized  bool
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewServer creates an MCP server for the given adapter and DSN. The database
// connection is not established here; it is created lazily on the first tool
// call that needs it.
func NewServer(ctx context.Context, adapter DBAdapter, dsn string, in io.Reader, out io.Writer) *Server {
	serverCtx, serverCancel := context.WithCancel(ctx)

	return &Server{
		adapter:      adapter,
		conns:        NewConnManager(adapter, dsn),
		databaseName: adapter.DatabaseName(dsn),
		in:           in,
		out:          out,
		ctx:          serverCtx,
		cancel:       serverCancel,
	}
}

// Run reads requests line by line until end-of-stream or cancellation.
func (s *Server) Run() error {
	reader := bufio.NewReader(s.in)

	for {
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// Process a trailing request that arrived without a newline.
				if trimmed := strings.TrimSpace(line); trimmed != "" {
					s.writeResponse(s.handleMessage([]byte(trimmed)))
				}
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.writeResponse(s.handleMessage([]byte(line)))
	}
}

func (s *Server) writeResponse(response *JSONRPCResponse) {
	if response == nil {
		return
	}
	responseBytes, err := json.Marshal(response)
	if err != nil {
		logError("Failed to marshal response: %v", err)
		return
	}
	fmt.Fprintln(s.out, string(responseBytes))
}

// handleMessage parses one input line. Lines that are not valid JSON are
// dropped without a response; that is deliberate, not an oversight.
func (s *Server) handleMessage(data []byte) *JSONRPCResponse {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logError("Skipping malformed input line: %v", err)
		return nil
	}

	if req.JSONRPC != "2.0" {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &Error{
				Code:    InvalidRequest,
				Message: "Invalid JSON-RPC version",
			},
		}
	}

	if req.Method == "" {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &Error{
				Code:    InvalidRequest,
				Message: "Missing method",
			},
		}
	}

	return s.handleRequest(&req)
}

// handleRequest routes by method. A panic in a handler is converted to a
// best-effort error envelope carrying the request id; it never terminates
// the process loop.
func (s *Server) handleRequest(req *JSONRPCRequest) (resp *JSONRPCResponse) {
	defer func() {
		if r := recover(); r != nil {
			logError("Recovered from panic in %s: %v", req.Method, r)
			resp = &JSONRPCResponse{
				JSONRPC: "2.0",
				ID:      req.ID,
				Error: &Error{
					Code:    InternalError,
					Message: fmt.Sprintf("Internal error: %v", r),
				},
			}
		}
	}()

	var result any
	var rpcErr *Error

	switch req.Method {
	case "initialize":
		result, rpcErr = s.handleInitialize(req.Params)
	case "initialized", "notifications/initialized":
		// Notification, no response needed
		return nil
	case "ping":
		result = map[string]any{}
	case "tools/list":
		result, rpcErr = s.handleListTools()
	case "tools/call":
		result, rpcErr = s.handleCallTool(req.Params)
	case "resources/list":
		result, rpcErr = s.handleListResources()
	case "resources/read":
		result, rpcErr = s.handleReadResource(req.Params)
	default:
		rpcErr = &Error{
			Code:    MethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
	}

	resp = &JSONRPCResponse{JSONRPC: "2.0", ID: req.ID}
	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	return resp
}

// Shutdown cancels in-flight work.
func (s *Server) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Close releases all resources. Safe to call more than once.
func (s *Server) Close() error {
	s.Shutdown()
	return s.conns.Release()
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[mcp-server] "+format+"\n", args...)
}
