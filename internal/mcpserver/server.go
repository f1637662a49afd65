// Package mcpserver exposes the library's lexer, parser, and symbolic
// operations as MCP tools, so an LLM client can tokenize, parse,
// differentiate, simplify, evaluate, and pretty-print expressions without
// shelling out to a CLI.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/symcalc/symcalc/internal/cache"
	"github.com/symcalc/symcalc/pkg/registry"
)

// Version is the current release version, reported in the MCP handshake.
const Version = "0.1.0"

// Server wraps the MCP server with the library's tool handlers.
type Server struct {
	mcp      *mcp.Server
	reg      *registry.Registry
	cache    *cache.Cache // nil disables memoization
	handlers map[string]mcp.ToolHandler
}

// NewServer creates an MCP server with every expression-tree tool
// registered, resolving Constant and Function tokens against reg. c may be
// nil to run without the memoization cache.
func NewServer(reg *registry.Registry, c *cache.Cache) *Server {
	srv := &Server{
		reg:      reg,
		cache:    c,
		handlers: make(map[string]mcp.ToolHandler),
	}

	srv.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "symcalc",
			Version: Version,
		},
		&mcp.ServerOptions{},
	)

	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server, for wiring a transport.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) addTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	s.mcp.AddTool(tool, handler)
	s.handlers[tool.Name] = handler
}

// CallTool invokes a tool handler directly by name, bypassing MCP transport
// — used by the package's tests.
func (s *Server) CallTool(ctx context.Context, name string, argsJSON json.RawMessage) (*mcp.CallToolResult, error) {
	handler, ok := s.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	if len(argsJSON) == 0 {
		argsJSON = json.RawMessage(`{}`)
	}
	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      name,
			Arguments: argsJSON,
		},
	}
	return handler(ctx, req)
}

// ToolNames returns all registered tool names in sorted order.
func (s *Server) ToolNames() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) registerTools() {
	s.registerTokenizeTool()
	s.registerParseTool()
	s.registerDifferentiateTool()
	s.registerSimplifyTool()
	s.registerEvaluateTool()
	s.registerPrettyPrintTool()
}

// --- response helpers ---

func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}
}

func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func getBoolArg(args map[string]any, key string) bool {
	v, ok := args[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		return false
	}
	return b
}

func getFloatMapArg(args map[string]any, key string) map[string]float64 {
	v, ok := args[key]
	if !ok {
		return nil
	}
	raw, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for k, rv := range raw {
		if f, ok := rv.(float64); ok {
			out[k] = f
		}
	}
	return out
}
