package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/symcalc/symcalc/pkg/registry"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	reg := registry.New()
	reg.Init()
	return NewServer(reg, nil)
}

func callText(t *testing.T, s *Server, tool string, args map[string]any) string {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("marshal args: %v", err)
	}
	result, err := s.CallTool(context.Background(), tool, argsJSON)
	if err != nil {
		t.Fatalf("CallTool(%s): %v", tool, err)
	}
	if len(result.Content) == 0 {
		t.Fatalf("CallTool(%s): empty content", tool)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): content is not TextContent: %#v", tool, result.Content[0])
	}
	return tc.Text
}

func TestToolNamesIncludesAllSix(t *testing.T) {
	s := testServer(t)
	names := s.ToolNames()
	want := []string{"differentiate", "evaluate", "parse", "pretty_print", "simplify", "tokenize"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ToolNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSimplifyTool(t *testing.T) {
	s := testServer(t)
	out := callText(t, s, "simplify", map[string]any{"expression": "x+0"})
	if !strings.Contains(out, `"simplified": "x"`) {
		t.Errorf("simplify(x+0) output = %s, want it to contain simplified=x", out)
	}
}

func TestDifferentiateTool(t *testing.T) {
	s := testServer(t)
	out := callText(t, s, "differentiate", map[string]any{
		"expression": "x^2",
		"respect_to": "x",
		"simplify":   true,
	})
	if !strings.Contains(out, `"derivative": "2x"`) {
		t.Errorf("differentiate(x^2) output = %s, want derivative=2x", out)
	}
}

func TestEvaluateTool(t *testing.T) {
	s := testServer(t)
	out := callText(t, s, "evaluate", map[string]any{
		"expression": "x+1",
		"variables":  map[string]any{"x": 2.0},
	})
	if !strings.Contains(out, `"value": 3`) {
		t.Errorf("evaluate(x+1, x=2) output = %s, want value=3", out)
	}
}
