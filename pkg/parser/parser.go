// Package parser builds an expression tree from a token stream via
// precedence-climbing recursive descent (§4.3).
package parser

import (
	"strconv"

	"github.com/symcalc/symcalc/pkg/ast"
	"github.com/symcalc/symcalc/pkg/lexer"
	"github.com/symcalc/symcalc/pkg/registry"
)

// Parser walks a token stream, resolving Constant and Function tokens
// against reg at construction time (§3.3 — nodes never keep a live
// registry link).
type Parser struct {
	tokens []lexer.Token
	pos    int
	reg    *registry.Registry
}

// Parse tokenizes input against reg's vocabulary and parses the result into
// an expression tree. There is no error return: a malformed expression
// yields an Error node in-band, per the tree's own error model (§7).
func Parse(input string, reg *registry.Registry) ast.Node {
	p := &Parser{tokens: lexer.Tokenize(input, reg), reg: reg}
	return p.parseEquals()
}

var eof = lexer.Token{Type: lexer.Unknown, Text: ""}

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return eof
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() lexer.Token {
	t := p.peek()
	p.pos++
	return t
}

// parseEquals is the lowest precedence level: Additive (= Additive)?.
func (p *Parser) parseEquals() ast.Node {
	left := p.parseAdditive()
	if _, ok := ast.AsError(left); ok {
		return left
	}
	if p.peek().Type != lexer.Equals {
		return left
	}
	p.advance()
	right := p.parseAdditive()
	if _, ok := ast.AsError(right); ok {
		return right
	}
	return ast.NewEquals(left, right)
}

func (p *Parser) parseAdditive() ast.Node {
	left := p.parseMultiplicative()
	if _, ok := ast.AsError(left); ok {
		return left
	}
	for p.peek().Type == lexer.Operator && (p.peek().Text == "+" || p.peek().Text == "-") {
		op := p.advance().Text
		right := p.parseMultiplicative()
		if _, ok := ast.AsError(right); ok {
			return right
		}
		left = ast.NewOperator(op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Node {
	left := p.parseExponentiation()
	if _, ok := ast.AsError(left); ok {
		return left
	}
	for {
		switch {
		case p.peek().Type == lexer.Operator && (p.peek().Text == "*" || p.peek().Text == "/"):
			op := p.advance().Text
			right := p.parseExponentiation()
			if _, ok := ast.AsError(right); ok {
				return right
			}
			left = ast.NewOperator(op, left, right)
		case p.startsImplicitFactor():
			// A primary immediately following another, with no intervening
			// operator, is implicit multiplication (e.g. "2x", "2sin(x)").
			right := p.parseExponentiation()
			if _, ok := ast.AsError(right); ok {
				return right
			}
			left = ast.NewOperator("*", left, right)
		default:
			return left
		}
	}
}

// startsImplicitFactor reports whether the next token can begin a Primary,
// which is what makes implicit multiplication possible at this point.
func (p *Parser) startsImplicitFactor() bool {
	tok := p.peek()
	switch tok.Type {
	case lexer.Number, lexer.Constant, lexer.Variable, lexer.Function:
		return true
	case lexer.ModulusDelimiter:
		// '|' alternates between opening and closing a modulus, as in the
		// lexer: after an odd number of earlier '|' tokens it closes one and
		// cannot start a factor.
		seen := 0
		for _, t := range p.tokens[:p.pos] {
			if t.Type == lexer.ModulusDelimiter {
				seen++
			}
		}
		return seen%2 == 0
	case lexer.Parenthesis:
		return tok.Text == "("
	default:
		return false
	}
}

func (p *Parser) parseExponentiation() ast.Node {
	left := p.parsePrimary()
	if _, ok := ast.AsError(left); ok {
		return left
	}
	for p.peek().Type == lexer.Operator && p.peek().Text == "^" {
		p.advance()
		right := p.parsePrimary()
		if _, ok := ast.AsError(right); ok {
			return right
		}
		left = ast.NewOperator("^", left, right)
	}
	return left
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.peek()
	switch tok.Type {
	case lexer.Number:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return ast.NewError("invalid number literal " + tok.Text)
		}
		return ast.NewNumber(v)

	case lexer.Constant:
		p.advance()
		return ast.NewConstant(tok.Text, p.reg.GetConstantValue(tok.Text))

	case lexer.Variable:
		p.advance()
		// A bare word immediately followed by '(' reads as a call attempt
		// even when the word never matched the Registry's Function
		// alternative at lex time (§4.2) — this is how an unrecognized
		// function identifier actually reaches Function-node construction
		// and triggers the unknown-function poisoning quirk (§3.2): a
		// *registered* function name would already have lexed as a
		// Function token and gone through the Function case below instead.
		if p.peek().Type == lexer.Parenthesis && p.peek().Text == "(" {
			return p.parseCallLike(tok.Text)
		}
		return ast.NewVariable(tok.Text)

	case lexer.Function:
		return p.parseCallLike(p.advance().Text)

	case lexer.ModulusDelimiter:
		return p.parseModulus()

	case lexer.Parenthesis:
		if tok.Text != "(" {
			return ast.NewError("unexpected ')'")
		}
		p.advance()
		inner := p.parseEquals()
		if _, ok := ast.AsError(inner); ok {
			return inner
		}
		closing := p.peek()
		if closing.Type != lexer.Parenthesis || closing.Text != ")" {
			return ast.NewError("expected ')'")
		}
		p.advance()
		return inner

	default:
		if tok.Text == "" {
			return ast.NewError("unexpected end of input")
		}
		return ast.NewError("unexpected token " + tok.Text)
	}
}

// parseCallLike parses the "(" expr ")" suffix of a call-shaped primary
// already past its identifier (id). It serves both a recognized Function
// token (§4.3's normal Function primary) and an unrecognized word
// immediately followed by '(' (§3.2's unknown-function poisoning quirk) —
// p.reg.GetFunction(id) naturally returns nil in the latter case, since an
// id that resolved to non-nil would have lexed as a Function token instead.
func (p *Parser) parseCallLike(id string) ast.Node {
	open := p.peek()
	if open.Type != lexer.Parenthesis || open.Text != "(" {
		return ast.NewError("expected '(' after function " + id)
	}
	p.advance()
	arg := p.parseEquals()
	if _, ok := ast.AsError(arg); ok {
		return arg
	}
	closing := p.peek()
	if closing.Type != lexer.Parenthesis || closing.Text != ")" {
		return ast.NewError("expected ')' after " + id + "'s argument")
	}
	p.advance()
	return ast.NewFunction(id, p.reg.GetFunction(id), arg)
}

func (p *Parser) parseModulus() ast.Node {
	p.advance() // opening |
	arg := p.parseEquals()
	if _, ok := ast.AsError(arg); ok {
		return arg
	}
	closing := p.peek()
	if closing.Type != lexer.ModulusDelimiter {
		return ast.NewError("expected closing '|'")
	}
	p.advance()
	return ast.NewFunction("abs", p.reg.GetFunction("abs"), arg)
}
