package parser

import (
	"github.com/pontaoski/pcpp/ast"
	"github.com/pontaoski/pcpp/errors"
	"github.com/pontaoski/pcpp/types"
)

const expressionExpected = "Variable name, literal value, or expression"

func (p *Parser) parseExpression(pos int) (ast.Expression, int, error) {
	tok, err := p.at(pos, expressionExpected)
	if err != nil {
		return nil, pos, err
	}

	switch {
	case tok.Kind == types.IDENT:
		return p.parseReference(pos)
	case types.IsLiteral(tok.Kind):
		return ast.Lit{Kind: tok.Kind, Text: tok.Lexeme}, pos + 1, nil
	case tok.Kind == types.CALL:
		call, pos, err := p.parseCall(pos)
		if err != nil {
			return nil, pos, err
		}
		return call, pos, nil
	case tok.Kind == types.LPAREN:
		return p.parseOperation(pos, false)
	}

	return nil, pos, p.fail(errors.UnexpectedToken{Expected: expressionExpected, Got: tok})
}

// parseCondExpression accepts only comparison and boolean operators at
// its head.
func (p *Parser) parseCondExpression(pos int) (ast.Expression, int, error) {
	return p.parseOperation(pos, true)
}

// parseReference handles a name and whatever accessor follows it.
func (p *Parser) parseReference(pos int) (ast.Expression, int, error) {
	name, next, err := p.expect(pos, types.IDENT)
	if err != nil {
		return nil, next, err
	}

	switch {
	case p.peekIs(next, types.LINDEX):
		index, next, err := p.parseSubscript(next)
		if err != nil {
			return nil, next, err
		}
		return ast.Index{Array: ast.NewID(name), Index: index}, next, nil
	case p.peekIs(next, types.PERIOD, types.ARROW):
		member, indirect, next, err := p.parseMember(pos)
		if err != nil {
			return nil, next, err
		}
		if indirect {
			return ast.IndirectField(member), next, nil
		}
		return ast.Field(member), next, nil
	}

	return ast.Var(ast.NewID(name)), next, nil
}

func (p *Parser) parseSubscript(pos int) (ast.Expression, int, error) {
	_, pos, err := p.expect(pos, types.LINDEX)
	if err != nil {
		return nil, pos, err
	}

	index, pos, err := p.parseExpression(pos)
	if err != nil {
		return nil, pos, err
	}

	_, pos, err = p.expect(pos, types.RINDEX)
	if err != nil {
		return nil, pos, err
	}

	return index, pos, nil
}

func (p *Parser) parseOperand(pos int, conditional bool) (ast.Expression, int, error) {
	if conditional {
		return p.parseCondExpression(pos)
	}
	return p.parseExpression(pos)
}

// parseOperation recognizes a fully bracketed operator application. In a
// conditional position the operator must be a conditional one. Operands of
// not/and/or are always conditional expressions, whatever the position.
func (p *Parser) parseOperation(pos int, conditional bool) (ast.Expression, int, error) {
	start := pos
	_, pos, err := p.expect(pos, types.LPAREN)
	if err != nil {
		return nil, pos, err
	}

	expected := "Expression operator"
	if conditional {
		expected = "Conditional operator"
	}

	op, err := p.at(pos, expected)
	if err != nil {
		return nil, pos, err
	}

	var expr ast.Expression
	switch {
	case !conditional && types.IsStepOperator(op.Kind):
		step, next, err := p.parseStep(start)
		if err != nil {
			return nil, next, err
		}
		return step, next, nil
	case types.IsUnaryOperator(op.Kind) || types.IsBinaryOperator(op.Kind):
		if conditional && !types.IsConditionalOperator(op.Kind) {
			return nil, pos, p.fail(errors.OperatorClassMismatch{Got: op})
		}
		sub := types.IsBooleanOperator(op.Kind)

		left, next, err := p.parseOperand(pos+1, sub)
		if err != nil {
			return nil, next, err
		}

		if types.IsUnaryOperator(op.Kind) {
			expr = ast.Unary{Op: op.Kind, Operand: left}
		} else {
			right, after, err := p.parseOperand(next, sub)
			if err != nil {
				return nil, after, err
			}
			expr = ast.Binary{Op: op.Kind, Left: left, Right: right}
			next = after
		}
		pos = next
	default:
		return nil, pos, p.fail(errors.UnexpectedToken{Expected: expected, Got: op})
	}

	_, pos, err = p.expect(pos, types.RPAREN)
	if err != nil {
		return nil, pos, err
	}

	return expr, pos, nil
}
