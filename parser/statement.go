package parser

import (
	"github.com/pontaoski/pcpp/ast"
	"github.com/pontaoski/pcpp/errors"
	"github.com/pontaoski/pcpp/types"
)

func (p *Parser) parseBody(pos int) (ast.Block, int, error) {
	_, pos, err := p.expect(pos, types.BEGIN)
	if err != nil {
		return nil, pos, err
	}

	block := ast.Block{}
	for {
		tok, err := p.at(pos, types.END.String())
		if err != nil {
			return nil, pos, err
		}
		if tok.Kind == types.END {
			return block, pos + 1, nil
		}

		stmt, next, err := p.parseStatement(pos)
		if err != nil {
			return nil, next, err
		}

		block = append(block, stmt)
		pos = next
	}
}

func (p *Parser) parseStatement(pos int) (ast.Statement, int, error) {
	tok, err := p.at(pos, "valid expression")
	if err != nil {
		return nil, pos, err
	}

	switch tok.Kind {
	case types.VDEF:
		decl, pos, err := p.parseVarDecl(pos, types.VDEF)
		if err != nil {
			return nil, pos, err
		}
		return ast.LocalVar{VarDecl: decl}, pos, nil
	case types.SET:
		return p.parseSet(pos)
	case types.WRITE:
		return p.parseWrite(pos)
	case types.READ:
		return p.parseRead(pos)
	case types.CALL:
		call, pos, err := p.parseCall(pos)
		if err != nil {
			return nil, pos, err
		}
		return ast.CallStatement{Call: call}, pos, nil
	case types.IF:
		return p.parseLoop(pos)
	case types.RETURN:
		return p.parseReturn(pos)
	case types.LPAREN:
		step, pos, err := p.parseStep(pos)
		if err != nil {
			return nil, pos, err
		}
		return ast.StepStatement{Step: step}, pos, nil
	case types.ASET:
		return p.parseElementAssignment(pos)
	case types.SSET:
		return p.parseFieldAssignment(pos)
	case types.BUILD:
		return p.parseBuild(pos)
	}

	return nil, pos, p.fail(errors.UnexpectedToken{Expected: "valid expression", Got: tok})
}

func (p *Parser) parseSet(pos int) (ast.Statement, int, error) {
	_, pos, err := p.expect(pos, types.SET)
	if err != nil {
		return nil, pos, err
	}

	name, pos, err := p.expect(pos, types.IDENT)
	if err != nil {
		return nil, pos, err
	}

	value, pos, err := p.parseExpression(pos)
	if err != nil {
		return nil, pos, err
	}

	return ast.Assignment{To: ast.NewID(name), Value: value}, pos, nil
}

func (p *Parser) parseWrite(pos int) (ast.Statement, int, error) {
	_, pos, err := p.expect(pos, types.WRITE)
	if err != nil {
		return nil, pos, err
	}

	value, pos, err := p.parseExpression(pos)
	if err != nil {
		return nil, pos, err
	}

	return ast.Write{Value: value}, pos, nil
}

func isIdent(k types.TokenKind) bool {
	return k == types.IDENT
}

func (p *Parser) parseRead(pos int) (ast.Statement, int, error) {
	_, pos, err := p.expect(pos, types.READ)
	if err != nil {
		return nil, pos, err
	}

	name, pos, err := p.expectFunc(pos, "Variable name", isIdent)
	if err != nil {
		return nil, pos, err
	}

	return ast.Read{Into: ast.NewID(name)}, pos, nil
}

// parseCall is shared by the call statement and call expressions.
func (p *Parser) parseCall(pos int) (ast.Call, int, error) {
	_, pos, err := p.expect(pos, types.CALL)
	if err != nil {
		return ast.Call{}, pos, err
	}

	name, pos, err := p.expectFunc(pos, "Procedure name", isIdent)
	if err != nil {
		return ast.Call{}, pos, err
	}

	_, pos, err = p.expect(pos, types.LPAREN)
	if err != nil {
		return ast.Call{}, pos, err
	}

	call := ast.Call{Procedure: ast.NewID(name)}
	for {
		tok, err := p.at(pos, types.RPAREN.String())
		if err != nil {
			return ast.Call{}, pos, err
		}
		if tok.Kind == types.RPAREN {
			return call, pos + 1, nil
		}

		arg, next, err := p.parseExpression(pos)
		if err != nil {
			return ast.Call{}, next, err
		}
		call.Arguments = append(call.Arguments, arg)

		pos = next
		if p.peekIs(pos, types.COMMA) {
			pos++
		}
	}
}

func (p *Parser) parseLoop(pos int) (ast.Statement, int, error) {
	_, pos, err := p.expect(pos, types.IF)
	if err != nil {
		return nil, pos, err
	}

	cond, pos, err := p.parseCondExpression(pos)
	if err != nil {
		return nil, pos, err
	}

	body, pos, err := p.parseBody(pos)
	if err != nil {
		return nil, pos, err
	}

	loop := ast.Loop{Condition: cond, Body: body}
	if !p.peekIs(pos, types.ELSE) {
		return loop, pos, nil
	}

	elseBody, pos, err := p.parseBody(pos + 1)
	if err != nil {
		return nil, pos, err
	}
	loop.Else = &elseBody

	return loop, pos, nil
}

func (p *Parser) parseReturn(pos int) (ast.Statement, int, error) {
	_, pos, err := p.expect(pos, types.RETURN)
	if err != nil {
		return nil, pos, err
	}

	if p.peekIs(pos, types.END) {
		return ast.Return{}, pos, nil
	}

	value, pos, err := p.parseExpression(pos)
	if err != nil {
		return nil, pos, err
	}

	return ast.Return{Value: value}, pos, nil
}

func (p *Parser) parseStep(pos int) (ast.Step, int, error) {
	_, pos, err := p.expect(pos, types.LPAREN)
	if err != nil {
		return ast.Step{}, pos, err
	}

	op, pos, err := p.expectFunc(pos, "Increment or decrement operator", types.IsStepOperator)
	if err != nil {
		return ast.Step{}, pos, err
	}

	target, pos, err := p.expectFunc(pos, "Variable name", isIdent)
	if err != nil {
		return ast.Step{}, pos, err
	}

	_, pos, err = p.expect(pos, types.RPAREN)
	if err != nil {
		return ast.Step{}, pos, err
	}

	return ast.Step{Op: op.Kind, Target: ast.NewID(target)}, pos, nil
}

func (p *Parser) parseElementAssignment(pos int) (ast.Statement, int, error) {
	_, pos, err := p.expect(pos, types.ASET)
	if err != nil {
		return nil, pos, err
	}

	name, pos, err := p.expect(pos, types.IDENT)
	if err != nil {
		return nil, pos, err
	}

	index, pos, err := p.parseSubscript(pos)
	if err != nil {
		return nil, pos, err
	}

	value, pos, err := p.parseExpression(pos)
	if err != nil {
		return nil, pos, err
	}

	return ast.ElementAssignment{Array: ast.NewID(name), Index: index, Value: value}, pos, nil
}

func isAccessor(k types.TokenKind) bool {
	return k == types.PERIOD || k == types.ARROW
}

func (p *Parser) parseFieldAssignment(pos int) (ast.Statement, int, error) {
	_, pos, err := p.expect(pos, types.SSET)
	if err != nil {
		return nil, pos, err
	}

	member, indirect, pos, err := p.parseMember(pos)
	if err != nil {
		return nil, pos, err
	}

	value, pos, err := p.parseExpression(pos)
	if err != nil {
		return nil, pos, err
	}

	if indirect {
		return ast.IndirectFieldAssignment{Member: member, Value: value}, pos, nil
	}
	return ast.FieldAssignment{Member: member, Value: value}, pos, nil
}

// parseMember recognizes `name . element` and `name -> element`.
func (p *Parser) parseMember(pos int) (ast.Member, bool, int, error) {
	of, pos, err := p.expect(pos, types.IDENT)
	if err != nil {
		return ast.Member{}, false, pos, err
	}

	accessor, pos, err := p.expectFunc(pos, "Period or Arrow", isAccessor)
	if err != nil {
		return ast.Member{}, false, pos, err
	}

	elem, pos, err := p.expect(pos, types.IDENT)
	if err != nil {
		return ast.Member{}, false, pos, err
	}

	return ast.Member{Of: ast.NewID(of), Element: ast.NewID(elem)}, accessor.Kind == types.ARROW, pos, nil
}

func (p *Parser) parseBuild(pos int) (ast.Statement, int, error) {
	_, pos, err := p.expect(pos, types.BUILD)
	if err != nil {
		return nil, pos, err
	}

	name, pos, err := p.expect(pos, types.IDENT)
	if err != nil {
		return nil, pos, err
	}

	_, pos, err = p.expect(pos, types.COLON)
	if err != nil {
		return nil, pos, err
	}

	ref, pos, err := p.expectFunc(pos, "Struct name", isIdent)
	if err != nil {
		return nil, pos, err
	}

	return ast.Build{Name: ast.NewID(name), Struct: ast.NewID(ref)}, pos, nil
}
