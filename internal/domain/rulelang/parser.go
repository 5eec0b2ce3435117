// Package rulelang parses the textual rule language into resolved fuzzy rules.
//
//	if <input> is [hedge...] <term> [(and|or|not) <input> is [hedge...] <term>]... then <output> is [hedge...] <term>
//
// Tokens are separated by whitespace. Keywords, operators, and hedges are
// case-insensitive; variable and term names are matched exactly.
package rulelang

import (
	"fmt"
	"strings"

	"github.com/corey/fuzzy/internal/domain/fuzzy"
)

// Resolver looks up registered variables. *fuzzy.Engine satisfies it.
type Resolver interface {
	Input(name string) (*fuzzy.Variable, bool)
	Output(name string) (*fuzzy.Variable, bool)
}

// Parse resolves one rule against the registered variables.
func Parse(text string, vars Resolver) (fuzzy.Rule, error) {
	p := &parser{text: text, tokens: strings.Fields(text), vars: vars}
	rule, err := p.rule()
	if err != nil {
		return fuzzy.Rule{}, err
	}
	rule.Text = strings.Join(p.tokens, " ")
	return rule, nil
}

// ParseAll parses each text in order and stops at the first failure.
func ParseAll(texts []string, vars Resolver) ([]fuzzy.Rule, error) {
	rules := make([]fuzzy.Rule, 0, len(texts))
	for i, text := range texts {
		r, err := Parse(text, vars)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

type parser struct {
	text   string
	tokens []string
	pos    int
	vars   Resolver
}

func (p *parser) rule() (fuzzy.Rule, error) {
	if err := p.keyword("if"); err != nil {
		return fuzzy.Rule{}, err
	}

	var clauses []fuzzy.Clause
	for {
		c, err := p.clause()
		if err != nil {
			return fuzzy.Rule{}, err
		}
		tok, ok := p.peek()
		if !ok {
			return fuzzy.Rule{}, p.syntaxf("missing 'then'")
		}
		if op, err := fuzzy.OperatorFromName(strings.ToLower(tok)); err == nil {
			c.Op = op
			clauses = append(clauses, c)
			p.pos++
			continue
		}
		clauses = append(clauses, c)
		break
	}

	if err := p.keyword("then"); err != nil {
		return fuzzy.Rule{}, err
	}
	cons, err := p.consequent()
	if err != nil {
		return fuzzy.Rule{}, err
	}
	if tok, ok := p.peek(); ok {
		return fuzzy.Rule{}, p.syntaxf("unexpected %q after consequent", tok)
	}
	return fuzzy.NewRule(clauses, cons)
}

// clause parses "<input> is [hedge...] <term>".
func (p *parser) clause() (fuzzy.Clause, error) {
	name, err := p.next("input variable")
	if err != nil {
		return fuzzy.Clause{}, err
	}
	v, ok := p.vars.Input(name)
	if !ok {
		return fuzzy.Clause{}, fmt.Errorf("%w: input variable %q", fuzzy.ErrUnknownIdentifier, name)
	}
	hedge, term, err := p.predicate(v)
	if err != nil {
		return fuzzy.Clause{}, err
	}
	return fuzzy.Clause{Variable: name, Term: term, Hedge: hedge}, nil
}

// consequent parses "<output> is [hedge...] <term>".
func (p *parser) consequent() (fuzzy.Consequent, error) {
	name, err := p.next("output variable")
	if err != nil {
		return fuzzy.Consequent{}, err
	}
	v, ok := p.vars.Output(name)
	if !ok {
		return fuzzy.Consequent{}, fmt.Errorf("%w: output variable %q", fuzzy.ErrUnknownIdentifier, name)
	}
	hedge, term, err := p.predicate(v)
	if err != nil {
		return fuzzy.Consequent{}, err
	}
	return fuzzy.Consequent{Variable: name, Term: term, Hedge: hedge}, nil
}

// predicate parses "is [hedge...] <term>" against v. Each predicate starts
// a fresh hedge chain.
func (p *parser) predicate(v *fuzzy.Variable) (*fuzzy.Hedge, fuzzy.Membership, error) {
	if err := p.keyword("is"); err != nil {
		return nil, nil, err
	}
	var hedges []string
	for {
		tok, ok := p.peek()
		if !ok || !fuzzy.IsHedge(strings.ToLower(tok)) {
			break
		}
		hedges = append(hedges, strings.ToLower(tok))
		p.pos++
	}
	hedge, err := fuzzy.ChainHedges(hedges)
	if err != nil {
		return nil, nil, err
	}

	name, err := p.next("term")
	if err != nil {
		return nil, nil, err
	}
	term, ok := v.Term(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: term %q of variable %q", fuzzy.ErrUnknownIdentifier, name, v.Name())
	}
	return hedge, term, nil
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next(what string) (string, error) {
	tok, ok := p.peek()
	if !ok {
		return "", p.syntaxf("expected %s, got end of rule", what)
	}
	p.pos++
	return tok, nil
}

func (p *parser) keyword(kw string) error {
	tok, ok := p.peek()
	if !ok {
		return p.syntaxf("missing '%s'", kw)
	}
	if !strings.EqualFold(tok, kw) {
		return p.syntaxf("expected '%s', got %q", kw, tok)
	}
	p.pos++
	return nil
}

func (p *parser) syntaxf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at token %d in %q", fuzzy.ErrSyntax, fmt.Sprintf(format, args...), p.pos+1, p.text)
}
