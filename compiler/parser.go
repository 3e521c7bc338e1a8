// Package compiler turns condition-language source text into an
// evaluable expression tree.
//
// The grammar, loosest binding first:
//
//	or      := and ("or" and)*
//	and     := unary ("and" unary)*
//	unary   := "not" unary | cmp
//	cmp     := primary (("==" | "!=" | "<" | "<=" | ">" | ">=") primary)?
//	primary := literal | call | field | "(" or ")"
//	call    := ident "(" (or ("," or)*)? ")"
//
// Every error returned by Parse belongs to the expr.ErrParse category.
package compiler

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/driftlog/sift/expr"
	"github.com/driftlog/sift/expr/function"
)

type parser struct {
	lex    *lexer
	tok    token
	logger *zap.Logger
}

// Parse compiles a condition expression.
func Parse(src string) (expr.Evaluator, error) {
	return ParseWithLogger(src, nil)
}

// ParseWithLogger is Parse with a diagnostics logger: any failure that
// makes the condition invalid is logged, fully formatted, before being
// returned.  A nil logger disables logging.
func ParseWithLogger(src string, logger *zap.Logger) (expr.Evaluator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &parser{lex: &lexer{src: src}, logger: logger}
	e, err := p.parse()
	if err != nil {
		logger.Error("invalid condition", zap.String("condition", src), zap.Error(err))
		return nil, err
	}
	return e, nil
}

func (p *parser) parse() (expr.Evaluator, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		return nil, p.syntaxErrorf("unexpected %q", p.tok.text)
	}
	return e, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) syntaxErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at position %d", expr.ErrParse, fmt.Sprintf(format, args...), p.tok.pos)
}

func (p *parser) parseOr() (expr.Evaluator, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokenIdent && p.tok.text == "or" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = expr.NewLogicalOr(lhs, rhs)
	}
	return lhs, nil
}

func (p *parser) parseAnd() (expr.Evaluator, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokenIdent && p.tok.text == "and" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = expr.NewLogicalAnd(lhs, rhs)
	}
	return lhs, nil
}

func (p *parser) parseUnary() (expr.Evaluator, error) {
	if p.tok.kind == tokenIdent && p.tok.text == "not" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.NewLogicalNot(e), nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (expr.Evaluator, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenOp {
		return lhs, nil
	}
	op := p.tok.text
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return expr.NewCompare(op, lhs, rhs), nil
}

func (p *parser) parsePrimary() (expr.Evaluator, error) {
	switch p.tok.kind {
	case tokenString:
		e := expr.NewLiteral(p.tok.text)
		return e, p.advance()
	case tokenNumber:
		f, err := strconv.ParseFloat(p.tok.text, 64)
		if err != nil {
			return nil, p.syntaxErrorf("malformed number %q", p.tok.text)
		}
		return expr.NewLiteral(f), p.advance()
	case tokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokenRParen {
			return nil, p.syntaxErrorf("expected )")
		}
		return e, p.advance()
	case tokenIdent:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch name {
		case "true":
			return expr.NewLiteral(true), nil
		case "false":
			return expr.NewLiteral(false), nil
		case "null":
			return expr.NewLiteral(nil), nil
		}
		if p.tok.kind == tokenLParen {
			return p.parseCall(name)
		}
		return expr.NewField(name), nil
	}
	return nil, p.syntaxErrorf("unexpected %q", p.tok.text)
}

// parseCall is entered with the current token on the opening paren.  It
// resolves the function and builds the call node; the bound arity
// validation happens in expr.NewCall against the descriptor.
func (p *parser) parseCall(name string) (expr.Evaluator, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []expr.Evaluator
	for p.tok.kind != tokenRParen {
		if len(args) > 0 {
			if p.tok.kind != tokenComma {
				return nil, p.syntaxErrorf("expected , or ) in call to %s", name)
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	d, err := function.New(name, len(args))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", expr.ErrParse, err)
	}
	return expr.NewCall(name, d, args)
}
