package ast

// VariableNode is a named-variable leaf.
type VariableNode struct {
	Name string
}

// NewVariable constructs a Variable node.
func NewVariable(name string) *VariableNode { return &VariableNode{Name: name} }

// Differentiate returns 1 when respectTo is this variable's own name,
// otherwise a first-order Differential node standing in for the unknown
// relationship between the two variables.
func (n *VariableNode) Differentiate(respectTo string) Node {
	if n.Name == respectTo {
		return NewNumber(1)
	}
	return NewDifferential(n.Name, respectTo, 1)
}

func (n *VariableNode) Evaluate(env map[string]float64) float64 {
	v, ok := env[n.Name]
	if !ok {
		return nan()
	}
	return v
}

func (n *VariableNode) Simplify() Node { return NewVariable(n.Name) }

func (n *VariableNode) String() string { return n.Name }

// Equal reports whether two nodes are both Variable nodes naming the same
// variable — used by the simplifier's squaring fold (§4.6.2).
func (n *VariableNode) Equal(other Node) bool {
	o, ok := other.(*VariableNode)
	return ok && o.Name == n.Name
}
