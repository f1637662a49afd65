package registry

import (
	"math"

	"github.com/symcalc/symcalc/pkg/ast"
)

// funcEntry is the concrete implementation of ast.FuncEntry backing every
// standard dispatch table entry (§4.4). diff and simp close over the
// entry itself so they can build further Function nodes referencing it
// (e.g. sec's derivative needs both tan(u) and sec(u)).
type funcEntry struct {
	id   string
	exec func(float64) float64
	diff func(e *funcEntry, respectTo string, arg ast.Node) ast.Node
	simp func(e *funcEntry, arg ast.Node) ast.Node
}

func (e *funcEntry) ID() string                    { return e.id }
func (e *funcEntry) Exec(x float64) float64        { return e.exec(x) }
func (e *funcEntry) Differentiate(respectTo string, arg ast.Node) ast.Node {
	return e.diff(e, respectTo, arg)
}
func (e *funcEntry) Simplify(arg ast.Node) ast.Node { return e.simp(e, arg) }

func call(e *funcEntry, arg ast.Node) ast.Node { return ast.NewFunction(e.id, e, arg) }

// defaultSimplify recursively simplifies the argument first, absorbs any
// resulting Error, and — since no narrower rule fired — returns f(argument)
// unchanged (§4.4's "If no rule fires" fallback).
func defaultSimplify(e *funcEntry, arg ast.Node) ast.Node {
	simplified := arg.Simplify()
	if err, ok := ast.AsError(simplified); ok {
		return err
	}
	return call(e, simplified)
}

func numberArg(n ast.Node) (float64, bool) {
	nn, ok := n.(*ast.NumberNode)
	if !ok {
		return 0, false
	}
	return nn.Value, true
}

// zeroOneSimplify implements the zero and one rows of the narrow reduction
// table keyed on the simplified argument (§4.4); log's ten row lives in its
// own simplify rule below. atZero/atOne are the replacement
// nodes to use when the argument simplifies to Number(0)/Number(1); either
// may be nil to mean "no rule at that point".
func zeroOneSimplify(atZero, atOne ast.Node) func(e *funcEntry, arg ast.Node) ast.Node {
	return func(e *funcEntry, arg ast.Node) ast.Node {
		simplified := arg.Simplify()
		if err, ok := ast.AsError(simplified); ok {
			return err
		}
		if v, ok := numberArg(simplified); ok {
			if atZero != nil && v == 0 {
				return atZero
			}
			if atOne != nil && v == 1 {
				return atOne
			}
		}
		return call(e, simplified)
	}
}

func simpleChainDiff(kernel func(u ast.Node) ast.Node) func(e *funcEntry, respectTo string, arg ast.Node) ast.Node {
	return func(e *funcEntry, respectTo string, arg ast.Node) ast.Node {
		uPrime := arg.Differentiate(respectTo)
		if err, ok := ast.AsError(uPrime); ok {
			return err
		}
		return ast.NewOperator("*", uPrime, kernel(arg))
	}
}

func negatedChainDiff(kernel func(u ast.Node) ast.Node) func(e *funcEntry, respectTo string, arg ast.Node) ast.Node {
	return func(e *funcEntry, respectTo string, arg ast.Node) ast.Node {
		uPrime := arg.Differentiate(respectTo)
		if err, ok := ast.AsError(uPrime); ok {
			return err
		}
		return ast.NewOperator("*", ast.NewNumber(-1), ast.NewOperator("*", uPrime, kernel(arg)))
	}
}

func squared(n ast.Node) ast.Node { return ast.NewOperator("^", n, ast.NewNumber(2)) }

// standardFunctions is the closed, well-known dispatch table (§4.4).
var standardFunctions = buildStandardFunctions()

func buildStandardFunctions() []ast.FuncEntry {
	sin := &funcEntry{id: "sin", exec: math.Sin}
	cos := &funcEntry{id: "cos", exec: math.Cos}
	tan := &funcEntry{id: "tan", exec: math.Tan}
	cot := &funcEntry{id: "cot", exec: func(x float64) float64 { return math.Cos(x) / math.Sin(x) }}
	sec := &funcEntry{id: "sec", exec: func(x float64) float64 { return 1 / math.Cos(x) }}
	csc := &funcEntry{id: "csc", exec: func(x float64) float64 { return 1 / math.Sin(x) }}
	sinh := &funcEntry{id: "sinh", exec: math.Sinh}
	cosh := &funcEntry{id: "cosh", exec: math.Cosh}
	tanh := &funcEntry{id: "tanh", exec: math.Tanh}
	coth := &funcEntry{id: "coth", exec: func(x float64) float64 { return math.Cosh(x) / math.Sinh(x) }}
	sech := &funcEntry{id: "sech", exec: func(x float64) float64 { return 1 / math.Cosh(x) }}
	csch := &funcEntry{id: "csch", exec: func(x float64) float64 { return 1 / math.Sinh(x) }}
	log10 := &funcEntry{id: "log", exec: math.Log10}
	ln := &funcEntry{id: "ln", exec: math.Log}
	exp := &funcEntry{id: "exp", exec: math.Exp}
	sqrtFn := &funcEntry{id: "sqrt", exec: math.Sqrt}
	absFn := &funcEntry{id: "abs", exec: math.Abs}

	sin.diff = simpleChainDiff(func(u ast.Node) ast.Node { return call(cos, u) })
	sin.simp = zeroOneSimplify(ast.NewNumber(0), nil)

	cos.diff = negatedChainDiff(func(u ast.Node) ast.Node { return call(sin, u) })
	cos.simp = zeroOneSimplify(ast.NewNumber(1), nil)

	tan.diff = simpleChainDiff(func(u ast.Node) ast.Node { return squared(call(sec, u)) })
	tan.simp = zeroOneSimplify(ast.NewNumber(0), nil)

	cot.diff = negatedChainDiff(func(u ast.Node) ast.Node { return squared(call(csc, u)) })
	cot.simp = defaultSimplify

	sec.diff = simpleChainDiff(func(u ast.Node) ast.Node {
		return ast.NewOperator("*", call(tan, u), call(sec, u))
	})
	sec.simp = zeroOneSimplify(ast.NewNumber(1), nil)

	csc.diff = negatedChainDiff(func(u ast.Node) ast.Node {
		return ast.NewOperator("*", call(cot, u), call(csc, u))
	})
	csc.simp = defaultSimplify

	sinh.diff = simpleChainDiff(func(u ast.Node) ast.Node { return call(cosh, u) })
	sinh.simp = zeroOneSimplify(ast.NewNumber(0), nil)

	cosh.diff = simpleChainDiff(func(u ast.Node) ast.Node { return call(sinh, u) })
	cosh.simp = zeroOneSimplify(ast.NewNumber(1), nil)

	tanh.diff = simpleChainDiff(func(u ast.Node) ast.Node { return squared(call(sech, u)) })
	tanh.simp = zeroOneSimplify(ast.NewNumber(0), nil)

	coth.diff = negatedChainDiff(func(u ast.Node) ast.Node { return squared(call(csch, u)) })
	coth.simp = defaultSimplify

	sech.diff = negatedChainDiff(func(u ast.Node) ast.Node {
		return ast.NewOperator("*", call(tanh, u), call(sech, u))
	})
	sech.simp = zeroOneSimplify(ast.NewNumber(1), nil)

	csch.diff = negatedChainDiff(func(u ast.Node) ast.Node {
		return ast.NewOperator("*", call(coth, u), call(csch, u))
	})
	csch.simp = defaultSimplify

	ln10 := ast.NewNumber(math.Log(10))
	log10.diff = func(e *funcEntry, respectTo string, arg ast.Node) ast.Node {
		uPrime := arg.Differentiate(respectTo)
		if err, ok := ast.AsError(uPrime); ok {
			return err
		}
		return ast.NewOperator("/", uPrime, ast.NewOperator("*", ln10, arg))
	}
	log10.simp = func(e *funcEntry, arg ast.Node) ast.Node {
		simplified := arg.Simplify()
		if err, ok := ast.AsError(simplified); ok {
			return err
		}
		if v, ok := numberArg(simplified); ok {
			if v == 1 {
				return ast.NewNumber(0)
			}
			if v == 10 {
				return ast.NewNumber(1)
			}
		}
		return call(log10, simplified)
	}

	ln.diff = func(e *funcEntry, respectTo string, arg ast.Node) ast.Node {
		uPrime := arg.Differentiate(respectTo)
		if err, ok := ast.AsError(uPrime); ok {
			return err
		}
		return ast.NewOperator("/", uPrime, arg)
	}
	ln.simp = func(e *funcEntry, arg ast.Node) ast.Node {
		simplified := arg.Simplify()
		if err, ok := ast.AsError(simplified); ok {
			return err
		}
		if v, ok := numberArg(simplified); ok {
			if v == 1 {
				return ast.NewNumber(0)
			}
			if v == math.E {
				return ast.NewNumber(1)
			}
		}
		if c, ok := simplified.(*ast.ConstantNode); ok && c.Name == "e" {
			return ast.NewNumber(1)
		}
		return call(ln, simplified)
	}

	exp.diff = simpleChainDiff(func(u ast.Node) ast.Node { return call(exp, u) })
	exp.simp = func(e *funcEntry, arg ast.Node) ast.Node {
		simplified := arg.Simplify()
		if err, ok := ast.AsError(simplified); ok {
			return err
		}
		if v, ok := numberArg(simplified); ok {
			if v == 0 {
				return ast.NewNumber(1)
			}
			if v == 1 {
				return ast.NewConstant("e", math.E)
			}
		}
		return call(exp, simplified)
	}

	sqrtFn.diff = func(e *funcEntry, respectTo string, arg ast.Node) ast.Node {
		uPrime := arg.Differentiate(respectTo)
		if err, ok := ast.AsError(uPrime); ok {
			return err
		}
		return ast.NewOperator("/", uPrime, ast.NewOperator("*", ast.NewNumber(2), call(sqrtFn, arg)))
	}
	sqrtFn.simp = func(e *funcEntry, arg ast.Node) ast.Node {
		simplified := arg.Simplify()
		if err, ok := ast.AsError(simplified); ok {
			return err
		}
		if v, ok := numberArg(simplified); ok && v >= 0 {
			r := math.Sqrt(v)
			if math.Abs(r-math.Round(r)) < 1e-9 {
				return ast.NewNumber(math.Round(r))
			}
		}
		return call(sqrtFn, simplified)
	}

	absFn.diff = func(e *funcEntry, respectTo string, arg ast.Node) ast.Node {
		uPrime := arg.Differentiate(respectTo)
		if err, ok := ast.AsError(uPrime); ok {
			return err
		}
		return ast.NewOperator("/", ast.NewOperator("*", arg, uPrime), call(absFn, arg))
	}
	absFn.simp = func(e *funcEntry, arg ast.Node) ast.Node {
		simplified := arg.Simplify()
		if err, ok := ast.AsError(simplified); ok {
			return err
		}
		if v, ok := numberArg(simplified); ok {
			if v < 0 {
				return ast.NewNumber(-v)
			}
			return ast.NewNumber(v)
		}
		return call(absFn, simplified)
	}

	return []ast.FuncEntry{
		sin, cos, tan, cot, sec, csc,
		sinh, cosh, tanh, coth, sech, csch,
		log10, ln, exp, sqrtFn, absFn,
	}
}
