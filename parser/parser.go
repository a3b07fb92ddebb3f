package parser

import (
	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/pcpp/ast"
	"github.com/pontaoski/pcpp/diag"
	"github.com/pontaoski/pcpp/errors"
	"github.com/pontaoski/pcpp/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/pcpp", "parser")

// Parser recognizes a fully materialised token stream. Every rule takes
// the cursor it starts at and returns the cursor one past the last token
// it consumed; the parser itself holds no cursor.
type Parser struct {
	tokens   []types.Token
	reporter diag.Reporter

	// LenientEnd restores the legacy behaviour, where a stream that ends
	// cleanly between top-level declarations, before main, stops
	// translation without a diagnostic. An end anywhere else is still
	// reported.
	LenientEnd bool
}

func NewParser(tokens []types.Token, reporter diag.Reporter) *Parser {
	if reporter == nil {
		reporter = diag.Discard
	}
	return &Parser{tokens: tokens, reporter: reporter}
}

// fail reports err at the point it was detected and hands it back for
// the caller to propagate untouched.
func (p *Parser) fail(err error) error {
	p.reporter.Report(diag.Error, err)
	return err
}

// at bounds-checks pos before handing out the token there.
func (p *Parser) at(pos int, expected string) (types.Token, error) {
	if pos < 0 || pos >= len(p.tokens) {
		return types.Token{}, p.fail(errors.PrematureEnd{Expected: expected, Pos: len(p.tokens)})
	}
	return p.tokens[pos], nil
}

func (p *Parser) peekIs(pos int, k ...types.TokenKind) bool {
	if pos < 0 || pos >= len(p.tokens) {
		return false
	}
	for _, kind := range k {
		if p.tokens[pos].Kind == kind {
			return true
		}
	}
	return false
}

func (p *Parser) expect(pos int, kind types.TokenKind) (types.Token, int, error) {
	return p.expectFunc(pos, kind.String(), func(k types.TokenKind) bool {
		return k == kind
	})
}

func (p *Parser) expectFunc(pos int, expected string, ok func(types.TokenKind) bool) (types.Token, int, error) {
	tok, err := p.at(pos, expected)
	if err != nil {
		return tok, pos, err
	}
	if !ok(tok.Kind) {
		return tok, pos, p.fail(errors.UnexpectedToken{Expected: expected, Got: tok})
	}
	return tok, pos + 1, nil
}

type section struct {
	name    string
	keyword types.TokenKind
	parse   func(pos int) (ast.TopLevel, int, error)
}

// Parse recognizes a whole program. visit, if not nil, is called with each
// top-level declaration as soon as it has been recognized, so output can
// be produced before later declarations are looked at.
func (p *Parser) Parse(visit func(ast.TopLevel) error) (*ast.Program, error) {
	prog := &ast.Program{}
	pos := 0

	sections := []section{
		{"Global Variable Declaration", types.GDEF, p.parseGlobal},
		{"Struct Declaration", types.STRUCT, p.parseStruct},
		{"Procedure Declaration", types.PDEF, p.parseProcedure},
	}

	for _, s := range sections {
		for p.peekIs(pos, s.keyword) {
			tl, next, err := s.parse(pos)
			if err != nil {
				p.reporter.Report(diag.Note, errors.MalformedSection{Name: s.name})
				return prog, errors.MalformedSection{Name: s.name, Err: err}
			}
			pos = next

			switch decl := tl.(type) {
			case ast.GlobalVar:
				prog.Globals = append(prog.Globals, decl)
			case ast.StructDecl:
				prog.Structs = append(prog.Structs, decl)
			case ast.ProcDecl:
				prog.Procedures = append(prog.Procedures, decl)
			}

			if visit != nil {
				if err := visit(tl); err != nil {
					return prog, err
				}
			}
		}
	}

	if p.LenientEnd && pos >= len(p.tokens) {
		plog.Debugf("input ended before %s at position %d", types.MAIN, pos)
		return prog, errors.PrematureEnd{Expected: types.MAIN.String(), Pos: len(p.tokens)}
	}

	entry, next, err := p.parseEntry(pos)
	if err != nil {
		return prog, err
	}
	prog.Main = &entry
	if visit != nil {
		if err := visit(entry); err != nil {
			return prog, err
		}
	}

	prog.Trailing = len(p.tokens) - next
	if prog.Trailing > 0 {
		p.reporter.Report(diag.Warning, errors.TrailingContent{Count: prog.Trailing})
	}

	plog.Debugf("recognized %d globals, %d structs, %d procedures", len(prog.Globals), len(prog.Structs), len(prog.Procedures))
	return prog, nil
}

func (p *Parser) parseGlobal(pos int) (ast.TopLevel, int, error) {
	decl, pos, err := p.parseVarDecl(pos, types.GDEF)
	if err != nil {
		return nil, pos, err
	}
	return ast.GlobalVar{VarDecl: decl}, pos, nil
}

// parseVarDecl handles both global and local declarations; keyword tells
// which one is expected.
func (p *Parser) parseVarDecl(pos int, keyword types.TokenKind) (ast.VarDecl, int, error) {
	_, pos, err := p.expect(pos, keyword)
	if err != nil {
		return ast.VarDecl{}, pos, err
	}

	name, pos, err := p.expect(pos, types.IDENT)
	if err != nil {
		return ast.VarDecl{}, pos, err
	}

	kind, pos, err := p.parseTypeSpec(pos)
	if err != nil {
		return ast.VarDecl{}, pos, err
	}

	return ast.VarDecl{Name: ast.NewID(name), Kind: kind}, pos, nil
}

func (p *Parser) parseTypeSpec(pos int) (ast.Type, int, error) {
	tok, err := p.at(pos, "Type Specifier")
	if err != nil {
		return nil, pos, err
	}

	if tok.Kind != types.ARRAY {
		return p.parseScalar(pos)
	}

	elem, pos, err := p.parseScalar(pos + 1)
	if err != nil {
		return nil, pos, err
	}

	size, pos, err := p.expect(pos, types.INTLIT)
	if err != nil {
		return nil, pos, err
	}

	return ast.Array{Elem: elem, Size: size.Lexeme}, pos, nil
}

func (p *Parser) parseScalar(pos int) (ast.Scalar, int, error) {
	tok, pos, err := p.expectFunc(pos, "Type Specifier", types.IsVariableType)
	if err != nil {
		return 0, pos, err
	}

	s, _ := ast.ScalarOf(tok.Kind)
	return s, pos, nil
}

func (p *Parser) parseStruct(pos int) (ast.TopLevel, int, error) {
	_, pos, err := p.expect(pos, types.STRUCT)
	if err != nil {
		return nil, pos, err
	}

	name, pos, err := p.expect(pos, types.IDENT)
	if err != nil {
		return nil, pos, err
	}

	_, pos, err = p.expect(pos, types.BEGIN)
	if err != nil {
		return nil, pos, err
	}

	decl := ast.StructDecl{Name: ast.NewID(name)}
	for {
		tok, err := p.at(pos, types.END.String())
		if err != nil {
			return nil, pos, err
		}
		if tok.Kind == types.END {
			return decl, pos + 1, nil
		}

		elem, next, err := p.expect(pos, types.IDENT)
		if err != nil {
			return nil, next, err
		}

		kind, next, err := p.parseTypeSpec(next)
		if err != nil {
			return nil, next, err
		}

		decl.Elements = append(decl.Elements, ast.VarDecl{Name: ast.NewID(elem), Kind: kind})
		pos = next
	}
}

func (p *Parser) parseProcedure(pos int) (ast.TopLevel, int, error) {
	_, pos, err := p.expect(pos, types.PDEF)
	if err != nil {
		return nil, pos, err
	}

	name, pos, err := p.expect(pos, types.IDENT)
	if err != nil {
		return nil, pos, err
	}

	_, pos, err = p.expect(pos, types.LPAREN)
	if err != nil {
		return nil, pos, err
	}

	decl := ast.ProcDecl{Name: ast.NewID(name)}
	for {
		tok, err := p.at(pos, types.RPAREN.String())
		if err != nil {
			return nil, pos, err
		}
		if tok.Kind == types.RPAREN {
			pos++
			break
		}
		if !types.IsParameterType(tok.Kind) {
			return nil, pos, p.fail(errors.UnexpectedToken{Expected: types.RPAREN.String(), Got: tok})
		}

		param, next, err := p.parseParam(pos)
		if err != nil {
			return nil, next, err
		}
		decl.Params = append(decl.Params, param)

		pos = next
		if p.peekIs(pos, types.COMMA) {
			pos++
		}
	}

	if p.peekIs(pos, types.VOIDTYPE) {
		pos++
	} else if pos < len(p.tokens) && types.IsVariableType(p.tokens[pos].Kind) {
		ret, next, err := p.parseScalar(pos)
		if err != nil {
			return nil, next, err
		}
		decl.Returns = &ret
		pos = next
	}

	body, pos, err := p.parseBody(pos)
	if err != nil {
		return nil, pos, err
	}
	decl.Body = body

	plog.Debugf("procedure %s", decl)
	return decl, pos, nil
}

func (p *Parser) parseParam(pos int) (ast.Param, int, error) {
	tok, err := p.at(pos, "Parameter type")
	if err != nil {
		return ast.Param{}, pos, err
	}

	var kind ast.Type
	switch tok.Kind {
	case types.ARRAY:
		elem, next, err := p.parseScalar(pos + 1)
		if err != nil {
			return ast.Param{}, next, err
		}
		kind, pos = ast.Array{Elem: elem}, next
	case types.STRUCT:
		ref, next, err := p.expect(pos+1, types.IDENT)
		if err != nil {
			return ast.Param{}, next, err
		}
		kind, pos = ast.StructRef(ast.NewID(ref)), next
	default:
		s, next, err := p.parseScalar(pos)
		if err != nil {
			return ast.Param{}, next, err
		}
		kind, pos = s, next
	}

	name, pos, err := p.expect(pos, types.IDENT)
	if err != nil {
		return ast.Param{}, pos, err
	}

	return ast.Param{Name: ast.NewID(name), Kind: kind}, pos, nil
}

func (p *Parser) parseEntry(pos int) (ast.Entry, int, error) {
	_, pos, err := p.expect(pos, types.MAIN)
	if err != nil {
		return ast.Entry{}, pos, err
	}

	body, pos, err := p.parseBody(pos)
	if err != nil {
		return ast.Entry{}, pos, err
	}

	return ast.Entry{Body: body}, pos, nil
}
