package ast

import "math"

// lnCore is the natural-log dispatch rule the power-rule differentiation
// cases in §4.5 need (`ln(L)·L^R·R′`). It is independent of whatever
// function registry resolved the rest of the tree: the power rule is a
// core language rule, not a registry extension, so it must keep working
// even against a registry that never registered (or has shut down) "ln".
// pkg/registry's own "ln" entry implements the same contract and is what
// actually gets used when a user writes "ln(x)" in source text; this is
// the tree-construction-time rule, not the user-facing one.
type lnCore struct{}

func (lnCore) ID() string { return "ln" }

func (lnCore) Exec(x float64) float64 { return math.Log(x) }

func (lnCore) Differentiate(respectTo string, arg Node) Node {
	return NewOperator("/", arg.Differentiate(respectTo), arg)
}

func (lnCore) Simplify(arg Node) Node {
	simplified := arg.Simplify()
	if e, ok := AsError(simplified); ok {
		return e
	}
	if isNumberValue(simplified, 1) {
		return NewNumber(0)
	}
	if isNumberValue(simplified, math.E) {
		return NewNumber(1)
	}
	if c, ok := simplified.(*ConstantNode); ok && c.Name == "e" {
		return NewNumber(1)
	}
	return NewFunction("ln", lnCore{}, simplified)
}

func newLn(arg Node) Node {
	return NewFunction("ln", lnCore{}, arg)
}
