package lexer

import "testing"

type fakeNames struct {
	funcs  map[string]bool
	consts map[string]bool
}

func (f fakeNames) HasFunction(id string) bool   { return f.funcs[id] }
func (f fakeNames) HasConstant(name string) bool { return f.consts[name] }

var names = fakeNames{
	funcs:  map[string]bool{"sin": true, "cos": true, "ln": true},
	consts: map[string]bool{"pi": true, "e": true},
}

func typesOf(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func assertTypes(t *testing.T, got []Token, want []TokenType) {
	t.Helper()
	gotTypes := typesOf(got)
	if len(gotTypes) != len(want) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(want), len(gotTypes), got)
	}
	for i := range want {
		if gotTypes[i] != want[i] {
			t.Errorf("token[%d]: expected %s, got %s (%q)", i, want[i], gotTypes[i], got[i].Text)
		}
	}
}

func TestLexSimpleExpression(t *testing.T) {
	tokens := Tokenize("a + 3", names)
	assertTypes(t, tokens, []TokenType{Variable, Operator, Number})
}

func TestLexFunctionVsVariable(t *testing.T) {
	tokens := Tokenize("sin(x) + sinx", names)
	assertTypes(t, tokens, []TokenType{
		Function, Parenthesis, Variable, Parenthesis,
		Operator, Variable,
	})
	if tokens[2].Text != "x" {
		t.Errorf("expected sin's argument to be Variable(x), got %q", tokens[2].Text)
	}
	if tokens[5].Text != "sinx" {
		t.Errorf("expected trailing identifier to lex whole as Variable(sinx), got %q", tokens[5].Text)
	}
}

func TestLexConstant(t *testing.T) {
	tokens := Tokenize("pi * 2", names)
	assertTypes(t, tokens, []TokenType{Constant, Operator, Number})
}

func TestLexEqualsIsItsOwnType(t *testing.T) {
	tokens := Tokenize("x = 2", names)
	assertTypes(t, tokens, []TokenType{Variable, Equals, Number})
}

func TestUnaryMinusAbsorption(t *testing.T) {
	cases := []struct {
		name string
		expr string
		want []TokenType
	}{
		{"leading minus", "-3+x", []TokenType{Number, Operator, Variable}},
		{"parenthesized minus", "(-3)", []TokenType{Parenthesis, Number, Parenthesis}},
		{"after operator", "a*-3", []TokenType{Variable, Operator, Number}},
		{"inside modulus", "|-3|", []TokenType{ModulusDelimiter, Number, ModulusDelimiter}},
		{"after variable is not absorbed", "a-3", []TokenType{Variable, Operator, Number}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assertTypes(t, Tokenize(c.expr, names), c.want)
		})
	}
}

func TestUnaryMinusTokenTextCarriesSign(t *testing.T) {
	tokens := Tokenize("-3+x", names)
	if tokens[0].Text != "-3" {
		t.Errorf("expected absorbed sign in token text, got %q", tokens[0].Text)
	}
	tokens = Tokenize("a-3", names)
	if tokens[1].Text != "-" || tokens[2].Text != "3" {
		t.Errorf("expected separate '-' and '3', got %q %q", tokens[1].Text, tokens[2].Text)
	}
}
