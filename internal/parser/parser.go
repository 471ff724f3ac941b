// Package parser implements the FOL formula grammar: precedence
// lowest-to-highest <-> , -> (right-assoc), | (left), & (left), ! (unary),
// quantifiers (binding tightest after !), then atoms and parenthesized
// subformulas/subterms.
package parser

import (
	"fmt"

	"folproof/internal/formula"
	"folproof/internal/term"
)

type parser struct {
	lx   *lexer
	tok  token
	pErr error
}

// Parse consumes a formula string and returns its Formula tree, or a
// *ParseError naming the offending position and what was expected.
// Parsing is pure: the same string always yields the same tree.
func Parse(src string) (*formula.Formula, error) {
	p := &parser{lx: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	f, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, &ParseError{Position: p.tok.pos, Expected: "end of input"}
	}
	return f, nil
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) expect(k tokenKind, what string) error {
	if p.tok.kind != k {
		return &ParseError{Position: p.tok.pos, Expected: what}
	}
	return p.advance()
}

// <-> : left-associative chain of imp-level expressions.
func (p *parser) parseIff() (*formula.Formula, error) {
	left, err := p.parseImp()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokDArrow {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseImp()
		if err != nil {
			return nil, err
		}
		left = formula.Iff(left, right)
	}
	return left, nil
}

// -> : right-associative.
func (p *parser) parseImp() (*formula.Formula, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokArrow {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseImp()
		if err != nil {
			return nil, err
		}
		return formula.Imp(left, right), nil
	}
	return left, nil
}

// | : left-associative.
func (p *parser) parseOr() (*formula.Formula, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = formula.Or(left, right)
	}
	return left, nil
}

// & : left-associative.
func (p *parser) parseAnd() (*formula.Formula, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = formula.And(left, right)
	}
	return left, nil
}

// ! F | quantifier | primary
func (p *parser) parseUnary() (*formula.Formula, error) {
	switch p.tok.kind {
	case tokNot:
		if err := p.advance(); err != nil {
			return nil, err
		}
		sub, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return formula.Not(sub), nil
	case tokForall, tokExists:
		return p.parseQuant()
	default:
		return p.parsePrimary()
	}
}

func (p *parser) parseQuant() (*formula.Formula, error) {
	isForall := p.tok.kind == tokForall
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind != tokIdent {
		return nil, &ParseError{Position: p.tok.pos, Expected: "a bound variable name"}
	}
	v := p.tok.text
	if !isLowerIdent(v) {
		return nil, &ParseError{Position: p.tok.pos, Expected: "a variable (lowercase-led identifier)"}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	body, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if isForall {
		return formula.ForAll(v, body), nil
	}
	return formula.Exists(v, body), nil
}

// primary : '(' iff ')' | atom
func (p *parser) parsePrimary() (*formula.Formula, error) {
	if p.tok.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		f, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return f, nil
	}
	return p.parseAtom()
}

// atom : Name | Name '(' term (',' term)* ')'
func (p *parser) parseAtom() (*formula.Formula, error) {
	if p.tok.kind != tokIdent {
		return nil, &ParseError{Position: p.tok.pos, Expected: "a predicate name or '('"}
	}
	name := p.tok.text
	if !isUpperLetterIdent(name) {
		return nil, &ParseError{Position: p.tok.pos, Expected: "a predicate name beginning with an uppercase letter"}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []term.Term
	if p.tok.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for {
			t, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			args = append(args, t)
			if p.tok.kind == tokComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
	}
	return formula.Atom(formula.Literal{Polarity: true, Pred: name, Args: args}), nil
}

// term : var | const | name '(' term (',' term)* ')'
func (p *parser) parseTerm() (term.Term, error) {
	if p.tok.kind != tokIdent {
		return term.Term{}, &ParseError{Position: p.tok.pos, Expected: "a term"}
	}
	name := p.tok.text
	pos := p.tok.pos
	if err := p.advance(); err != nil {
		return term.Term{}, err
	}
	if isLowerIdent(name) && p.tok.kind == tokLParen {
		if err := p.advance(); err != nil {
			return term.Term{}, err
		}
		var args []term.Term
		for {
			t, err := p.parseTerm()
			if err != nil {
				return term.Term{}, err
			}
			args = append(args, t)
			if p.tok.kind == tokComma {
				if err := p.advance(); err != nil {
					return term.Term{}, err
				}
				continue
			}
			break
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return term.Term{}, err
		}
		return term.Func(name, args...), nil
	}
	if p.tok.kind == tokLParen {
		return term.Term{}, &ParseError{Position: pos, Expected: "a lowercase-led function name before '('"}
	}
	if isLowerIdent(name) {
		return term.Var(name), nil
	}
	return term.Const(name), nil
}

func isLowerIdent(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return r >= 'a' && r <= 'z'
}

// isUpperLetterIdent reports whether s begins strictly with an uppercase
// letter — the lexical class for predicate/relation names.
func isUpperLetterIdent(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return r >= 'A' && r <= 'Z'
}

// FormatError renders a reconstruction-friendly error message, the form the
// interactive shell surfaces ParseError to the user in.
func FormatError(err error) string {
	var pe *ParseError
	if e, ok := err.(*ParseError); ok {
		pe = e
	}
	if pe == nil {
		return err.Error()
	}
	return fmt.Sprintf("parse error at position %d: expected %s", pe.Position, pe.Expected)
}
