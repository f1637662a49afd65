// Command exprdebug parses a single expression from argv and prints its
// tree structure, derivative, simplification, and evaluation — a one-shot
// debug aid, not an interactive REPL.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/symcalc/symcalc/pkg/ast"
	"github.com/symcalc/symcalc/pkg/lexer"
	"github.com/symcalc/symcalc/pkg/parser"
	"github.com/symcalc/symcalc/pkg/registry"
)

func main() {
	wrt := flag.String("wrt", "", "differentiate with respect to this variable")
	simplify := flag.Bool("simplify", false, "print the simplified tree")
	fixedPoint := flag.Bool("fixed-point", false, "simplify to a fixed point instead of one pass")
	env := flag.String("env", "", "comma-separated var=value pairs to evaluate against")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: exprdebug [flags] <expression>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	expr := flag.Arg(0)

	registry.Init()
	defer registry.Shutdown()
	reg := registry.Default()

	fmt.Println("=== TOKENS ===")
	for _, tok := range lexer.Tokenize(expr, reg) {
		fmt.Printf("  %s\n", tok)
	}

	tree := parser.Parse(expr, reg)
	fmt.Println("=== TREE ===")
	printTree(tree, 0)
	fmt.Printf("printed: %s\n", tree.String())

	if *wrt != "" {
		fmt.Printf("=== DERIVATIVE (wrt %s) ===\n", *wrt)
		d := tree.Differentiate(*wrt)
		printTree(d, 0)
		fmt.Printf("printed: %s\n", d.String())
	}

	if *simplify || *fixedPoint {
		fmt.Println("=== SIMPLIFIED ===")
		var s ast.Node
		if *fixedPoint {
			s = ast.SimplifyFixedPoint(tree)
		} else {
			s = tree.Simplify()
		}
		printTree(s, 0)
		fmt.Printf("printed: %s\n", s.String())
	}

	if *env != "" {
		fmt.Println("=== EVALUATE ===")
		fmt.Printf("%v\n", tree.Evaluate(parseEnv(*env)))
	}
}

func parseEnv(s string) map[string]float64 {
	out := map[string]float64{}
	for _, pair := range strings.Split(s, ",") {
		k, v, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			out[k] = f
		}
	}
	return out
}

// printTree dumps the tree's structural shape, one node per line, indented
// by depth — a debug-only view distinct from the String() pretty-printer.
func printTree(n ast.Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	switch v := n.(type) {
	case *ast.OperatorNode:
		fmt.Printf("%sOperator(%s)\n", prefix, v.Op)
		printTree(v.Left, indent+1)
		printTree(v.Right, indent+1)
	case *ast.FunctionNode:
		fmt.Printf("%sFunction(%s)\n", prefix, v.ID)
		printTree(v.Arg, indent+1)
	case *ast.EqualsNode:
		fmt.Printf("%sEquals\n", prefix)
		printTree(v.Left, indent+1)
		printTree(v.Right, indent+1)
	case *ast.NumberNode:
		fmt.Printf("%sNumber(%s)\n", prefix, v.String())
	case *ast.VariableNode:
		fmt.Printf("%sVariable(%s)\n", prefix, v.Name)
	case *ast.ConstantNode:
		fmt.Printf("%sConstant(%s)\n", prefix, v.Name)
	case *ast.DifferentialNode:
		fmt.Printf("%sDifferential(%s)\n", prefix, v.String())
	case *ast.ErrorNode:
		fmt.Printf("%sError(%s)\n", prefix, v.Message)
	default:
		fmt.Printf("%s%s\n", prefix, n.String())
	}
}
