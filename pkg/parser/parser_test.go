package parser

import (
	"testing"

	"github.com/symcalc/symcalc/pkg/ast"
	"github.com/symcalc/symcalc/pkg/registry"
)

func testRegistry() *registry.Registry {
	r := registry.New()
	r.Init()
	return r
}

func TestParseSimpleArithmetic(t *testing.T) {
	n := Parse("2+3*4", testRegistry())
	if got := n.Evaluate(nil); got != 14 {
		t.Errorf("Evaluate(2+3*4) = %v, want 14", got)
	}
}

func TestParseLeftAssociativePower(t *testing.T) {
	// a^b^c parses as (a^b)^c (§4.3, §9).
	n := Parse("2^3^2", testRegistry())
	if got := n.Evaluate(nil); got != 64 { // (2^3)^2 = 64, not 2^(3^2) = 512
		t.Errorf("Evaluate(2^3^2) = %v, want 64", got)
	}
}

func TestParseParenthesized(t *testing.T) {
	n := Parse("(2+3)*4", testRegistry())
	if got := n.Evaluate(nil); got != 20 {
		t.Errorf("Evaluate((2+3)*4) = %v, want 20", got)
	}
}

func TestParseFunctionCall(t *testing.T) {
	n := Parse("sin(0)", testRegistry())
	if got := n.Evaluate(nil); got != 0 {
		t.Errorf("Evaluate(sin(0)) = %v, want 0", got)
	}
}

func TestParseModulus(t *testing.T) {
	n := Parse("|-5|", testRegistry())
	fn, ok := n.(*ast.FunctionNode)
	if !ok || fn.ID != "abs" {
		t.Fatalf("expected abs Function node, got %#v", n)
	}
	if got := n.Evaluate(nil); got != 5 {
		t.Errorf("Evaluate(|-5|) = %v, want 5", got)
	}
}

func TestParseConstant(t *testing.T) {
	n := Parse("pi", testRegistry())
	c, ok := n.(*ast.ConstantNode)
	if !ok {
		t.Fatalf("expected Constant node, got %#v", n)
	}
	if c.Value < 3.14 || c.Value > 3.15 {
		t.Errorf("pi value = %v", c.Value)
	}
}

func TestParseEquals(t *testing.T) {
	n := Parse("x = 2", testRegistry())
	eq, ok := n.(*ast.EqualsNode)
	if !ok {
		t.Fatalf("expected Equals node, got %#v", n)
	}
	if eq.String() != "x = 2" {
		t.Errorf("String() = %q, want %q", eq.String(), "x = 2")
	}
}

func TestParseUnknownFunctionPoisonsArgument(t *testing.T) {
	n := Parse("frobnicate(x)", testRegistry())
	fn, ok := n.(*ast.FunctionNode)
	if !ok {
		t.Fatalf("expected Function node, got %#v", n)
	}
	if _, ok := ast.AsError(fn.Arg); !ok {
		t.Error("expected unknown function's argument to be poisoned with an Error")
	}
}

func TestParseErrorPropagatesWithoutFurtherConsumption(t *testing.T) {
	n := Parse("2+", testRegistry())
	if _, ok := ast.AsError(n); !ok {
		t.Errorf("expected Error node for trailing '+', got %#v", n)
	}
}

func TestParseMismatchedParenIsError(t *testing.T) {
	n := Parse("(2+3", testRegistry())
	if _, ok := ast.AsError(n); !ok {
		t.Errorf("expected Error node for unclosed '(', got %#v", n)
	}
}

func TestParseImplicitMultiplication(t *testing.T) {
	n := Parse("2x", testRegistry())
	if got := n.Evaluate(map[string]float64{"x": 3}); got != 6 {
		t.Errorf("Evaluate(2x, x=3) = %v, want 6", got)
	}
	if got := n.String(); got != "2x" {
		t.Errorf("String(2x) = %q, want %q", got, "2x")
	}
}

func TestParseImplicitMultiplicationWithFunction(t *testing.T) {
	n := Parse("2sin(0)", testRegistry())
	if got := n.Evaluate(nil); got != 0 {
		t.Errorf("Evaluate(2sin(0)) = %v, want 0", got)
	}
}
