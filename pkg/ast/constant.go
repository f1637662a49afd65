package ast

// ConstantNode is a named constant (e.g. "e", "pi") whose numeric value is
// resolved once, at construction, from whatever registry the caller
// consulted — the node itself holds no live reference back to it (§3.3).
type ConstantNode struct {
	Name  string
	Value float64
}

// NewConstant constructs a Constant node with its value already resolved.
// Callers (the parser) are responsible for looking the name up in a
// registry; an unknown name should be resolved to a quiet NaN before
// reaching here (§3.2).
func NewConstant(name string, value float64) *ConstantNode {
	return &ConstantNode{Name: name, Value: value}
}

func (n *ConstantNode) Differentiate(respectTo string) Node { return NewNumber(0) }

func (n *ConstantNode) Evaluate(env map[string]float64) float64 { return n.Value }

func (n *ConstantNode) Simplify() Node { return NewConstant(n.Name, n.Value) }

func (n *ConstantNode) String() string { return n.Name }

// Equal reports whether two nodes are both Constant nodes naming the same
// constant — used by the simplifier's squaring fold (§4.6.2).
func (n *ConstantNode) Equal(other Node) bool {
	o, ok := other.(*ConstantNode)
	return ok && o.Name == n.Name
}
