package mcpserver

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/symcalc/symcalc/internal/cache"
	"github.com/symcalc/symcalc/pkg/ast"
	"github.com/symcalc/symcalc/pkg/lexer"
	"github.com/symcalc/symcalc/pkg/parser"
)

func (s *Server) registerTokenizeTool() {
	s.addTool(&mcp.Tool{
		Name:        "tokenize",
		Description: "Tokenize an expression string into its lexer token stream (type and verbatim text per token). Useful for understanding why a given input parses the way it does.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"expression": {"type": "string", "description": "Expression text to tokenize"}
			},
			"required": ["expression"]
		}`),
	}, s.handleTokenize)
}

func (s *Server) handleTokenize(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	expr := getStringArg(args, "expression")
	tokens := lexer.Tokenize(expr, s.reg)

	type tok struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	out := make([]tok, len(tokens))
	for i, t := range tokens {
		out[i] = tok{Type: t.Type.String(), Text: t.Text}
	}
	return jsonResult(map[string]any{"tokens": out}), nil
}

func (s *Server) registerParseTool() {
	s.addTool(&mcp.Tool{
		Name:        "parse",
		Description: "Parse an expression string into its tree and return the tree's canonical pretty-printed form. An ill-formed expression comes back as its diagnostic message rather than an MCP-level error.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"expression": {"type": "string", "description": "Expression text to parse"}
			},
			"required": ["expression"]
		}`),
	}, s.handleParse)
}

func (s *Server) handleParse(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	expr := getStringArg(args, "expression")
	tree := parser.Parse(expr, s.reg)
	if e, ok := ast.AsError(tree); ok {
		return jsonResult(map[string]any{"error": e.Message}), nil
	}
	return jsonResult(map[string]any{"tree": tree.String()}), nil
}

func (s *Server) registerDifferentiateTool() {
	s.addTool(&mcp.Tool{
		Name:        "differentiate",
		Description: "Differentiate an expression with respect to a named variable. Set simplify=true to run one simplification pass on the resulting derivative tree before printing it.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"expression": {"type": "string", "description": "Expression text to differentiate"},
				"respect_to": {"type": "string", "description": "Variable name to differentiate with respect to"},
				"simplify": {"type": "boolean", "description": "Simplify the derivative once before returning it (default: false)"}
			},
			"required": ["expression", "respect_to"]
		}`),
	}, s.handleDifferentiate)
}

func (s *Server) handleDifferentiate(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	expr := getStringArg(args, "expression")
	respectTo := getStringArg(args, "respect_to")
	doSimplify := getBoolArg(args, "simplify")

	tree := parser.Parse(expr, s.reg)
	if e, ok := ast.AsError(tree); ok {
		return jsonResult(map[string]any{"error": e.Message}), nil
	}

	result, err := s.memoize("differentiate", []string{expr, respectTo, boolString(doSimplify)}, func() (string, error) {
		d := tree.Differentiate(respectTo)
		if doSimplify {
			d = d.Simplify()
		}
		return d.String(), nil
	})
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(map[string]any{"derivative": result}), nil
}

func (s *Server) registerSimplifyTool() {
	s.addTool(&mcp.Tool{
		Name:        "simplify",
		Description: "Apply the algebraic simplifier to an expression. By default this is a single bottom-up pass; set fixed_point=true to iterate until two consecutive passes agree.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"expression": {"type": "string", "description": "Expression text to simplify"},
				"fixed_point": {"type": "boolean", "description": "Iterate Simplify to a fixed point instead of one pass (default: false)"}
			},
			"required": ["expression"]
		}`),
	}, s.handleSimplify)
}

func (s *Server) handleSimplify(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	expr := getStringArg(args, "expression")
	fixedPoint := getBoolArg(args, "fixed_point")

	tree := parser.Parse(expr, s.reg)
	if e, ok := ast.AsError(tree); ok {
		return jsonResult(map[string]any{"error": e.Message}), nil
	}

	result, err := s.memoize("simplify", []string{expr, boolString(fixedPoint)}, func() (string, error) {
		if fixedPoint {
			return ast.SimplifyFixedPoint(tree).String(), nil
		}
		return tree.Simplify().String(), nil
	})
	if err != nil {
		return errResult(err.Error()), nil
	}
	return jsonResult(map[string]any{"simplified": result}), nil
}

func (s *Server) registerEvaluateTool() {
	s.addTool(&mcp.Tool{
		Name:        "evaluate",
		Description: "Numerically evaluate an expression given a mapping from variable names to real values. Undefined variables, unknown operators, and out-of-domain calls evaluate quietly to NaN rather than failing; NaN and infinite values are returned as the strings \"NaN\", \"+Inf\" or \"-Inf\".",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"expression": {"type": "string", "description": "Expression text to evaluate"},
				"variables": {"type": "object", "description": "Mapping from variable name to numeric value", "additionalProperties": {"type": "number"}}
			},
			"required": ["expression"]
		}`),
	}, s.handleEvaluate)
}

func (s *Server) handleEvaluate(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	expr := getStringArg(args, "expression")
	vars := getFloatMapArg(args, "variables")

	tree := parser.Parse(expr, s.reg)
	if e, ok := ast.AsError(tree); ok {
		return jsonResult(map[string]any{"error": e.Message}), nil
	}
	v := tree.Evaluate(vars)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		// JSON numbers cannot carry NaN or ±Inf, so those come back as text.
		return jsonResult(map[string]any{"value": strconv.FormatFloat(v, 'g', -1, 64)}), nil
	}
	return jsonResult(map[string]any{"value": v}), nil
}

func (s *Server) registerPrettyPrintTool() {
	s.addTool(&mcp.Tool{
		Name:        "pretty_print",
		Description: "Parse an expression and render it back through the pretty-printer, surfacing implicit-multiplication formatting without performing any differentiation or simplification.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"expression": {"type": "string", "description": "Expression text to print"}
			},
			"required": ["expression"]
		}`),
	}, s.handlePrettyPrint)
}

func (s *Server) handlePrettyPrint(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	expr := getStringArg(args, "expression")
	tree := parser.Parse(expr, s.reg)
	return jsonResult(map[string]any{"printed": tree.String()}), nil
}

// memoize runs compute through the cache when one is configured, falling
// back to a direct call otherwise (§5 — caching is a pure performance layer).
func (s *Server) memoize(operation string, parts []string, compute func() (string, error)) (string, error) {
	if s.cache == nil {
		return compute()
	}
	key := cache.Key(operation, parts...)
	return s.cache.GetOrCompute(key, compute)
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
