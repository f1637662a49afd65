package ast

import "fmt"

// EqualsNode represents an equation L = R. It has no numeric value of its
// own (§4.8) and no derivative rule; both are quiet no-ops per §4.8/§7.
type EqualsNode struct {
	Left, Right Node
}

// NewEquals constructs an Equals node, absorbing an Error child immediately.
func NewEquals(left, right Node) Node {
	if e, ok := firstError(left, right); ok {
		return e
	}
	return &EqualsNode{Left: left, Right: right}
}

func (n *EqualsNode) Differentiate(respectTo string) Node { return nan0() }

func (n *EqualsNode) Evaluate(env map[string]float64) float64 { return nan() }

func (n *EqualsNode) Simplify() Node {
	l, r := n.Left.Simplify(), n.Right.Simplify()
	if e, ok := firstError(l, r); ok {
		return e
	}
	return &EqualsNode{Left: l, Right: r}
}

func (n *EqualsNode) String() string {
	if e, ok := firstError(n.Left, n.Right); ok {
		return e.String()
	}
	return fmt.Sprintf("%s = %s", n.Left.String(), n.Right.String())
}

// nan0 returns a Number(NaN) node; Equals has no meaningful derivative, but
// every Node must return some Node from Differentiate.
func nan0() Node { return NewNumber(nan()) }
