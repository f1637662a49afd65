// Package ast defines the expression tree: a tagged family of node variants,
// each exposing differentiation, evaluation, simplification, and printing.
package ast

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// nan is the universal failure value for Evaluate (§4.8, §7): undefined
// variables, unknown operators, and out-of-domain calls all surface as a
// quiet NaN rather than a Go error.
func nan() float64 { return math.NaN() }

// Node is the capability set every variant exposes. Operations are pure:
// they never mutate the receiver and always build a fresh tree.
type Node interface {
	Differentiate(respectTo string) Node
	Evaluate(env map[string]float64) float64
	Simplify() Node
	String() string
}

// FuncEntry is the dispatch contract a Function node needs from the
// function it was resolved against. It lives here, not in pkg/registry, so
// that ast has no dependency on registry — registry depends on ast instead
// and its entries satisfy this interface.
type FuncEntry interface {
	ID() string
	Exec(x float64) float64
	Differentiate(respectTo string, arg Node) Node
	Simplify(arg Node) Node
}

// Env is the variable bindings passed to Evaluate.
type Env map[string]float64

// AsError reports whether n is an Error node, returning it for convenience.
func AsError(n Node) (*ErrorNode, bool) {
	e, ok := n.(*ErrorNode)
	return e, ok
}

// firstError returns the first of the given nodes that is an Error node,
// implementing the error-absorption policy (§7): any symbolic operation
// whose recursion encounters an Error child returns that Error instead of
// further processing.
func firstError(nodes ...Node) (*ErrorNode, bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if e, ok := AsError(n); ok {
			return e, true
		}
	}
	return nil, false
}

// SimplifyFixedPoint repeatedly applies Simplify until two consecutive
// passes print identically, or until a bounded number of iterations is
// reached. Simplify itself always stays a single bottom-up pass (§4.6);
// this is the additive fixed-point variant spec.md §9 invites but does not
// require Simplify to become.
func SimplifyFixedPoint(n Node) Node {
	const maxPasses = 8
	cur := n
	prev := cur.String()
	for i := 0; i < maxPasses; i++ {
		next := cur.Simplify()
		nextStr := next.String()
		if nextStr == prev {
			return next
		}
		cur = next
		prev = nextStr
	}
	return cur
}

// EvaluateBatch evaluates n against every environment in envs concurrently.
// Safe because Evaluate never mutates n or any shared subtree (§5).
func EvaluateBatch(n Node, envs []map[string]float64) []float64 {
	out := make([]float64, len(envs))
	var g errgroup.Group
	for i, env := range envs {
		i, env := i, env
		g.Go(func() error {
			out[i] = n.Evaluate(env)
			return nil
		})
	}
	_ = g.Wait() // Evaluate never returns an error; Wait just joins the workers
	return out
}
