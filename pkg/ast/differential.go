package ast

import "fmt"

// DifferentialNode is a symbolic stand-in for dV/dW of unspecified form,
// produced when differentiating a Variable with respect to a different
// variable (§3.1, GLOSSARY). It is a leaf: differentiating it further, or
// evaluating it, has no defined numeric meaning.
type DifferentialNode struct {
	Variable  string
	RespectTo string
	Order     int
}

// NewDifferential constructs a Differential node of the given order (≥ 1).
func NewDifferential(variable, respectTo string, order int) *DifferentialNode {
	return &DifferentialNode{Variable: variable, RespectTo: respectTo, Order: order}
}

// Differentiate raises the order by one, still with respect to the same
// variable (a second derivative of an unresolved relationship is itself
// unresolved, just higher-order).
func (n *DifferentialNode) Differentiate(respectTo string) Node {
	return NewDifferential(n.Variable, n.RespectTo, n.Order+1)
}

func (n *DifferentialNode) Evaluate(env map[string]float64) float64 { return nan() }

func (n *DifferentialNode) Simplify() Node {
	return NewDifferential(n.Variable, n.RespectTo, n.Order)
}

func (n *DifferentialNode) String() string {
	if n.Order == 1 {
		return fmt.Sprintf("d%s/d%s", n.Variable, n.RespectTo)
	}
	return fmt.Sprintf("d^%d%s/d%s^%d", n.Order, n.Variable, n.RespectTo, n.Order)
}
