// Package cpp renders recognized programs as C++ source text.
package cpp

import (
	"fmt"
	"io"
	"strings"

	"github.com/pontaoski/pcpp/ast"
	"github.com/pontaoski/pcpp/types"
)

const DefaultIndent = "   "

var preamble = []string{
	"#include <iostream>",
	"#include <string>",
	"using namespace std;",
}

var operators = map[types.TokenKind]string{
	types.ADD: "+",
	types.SUB: "-",
	types.MUL: "*",
	types.DIV: "/",
	types.REM: "%",
	types.EQ:  "==",
	types.NE:  "!=",
	types.LT:  "<",
	types.LE:  "<=",
	types.GT:  ">",
	types.GE:  ">=",
	types.AND: "&&",
	types.OR:  "||",
	types.NEG: "-",
	types.NOT: "!",
}

type section int

const (
	noSection section = iota
	globalSection
	structSection
	procedureSection
	entrySection
)

// Emitter writes C++ text in the order declarations are handed to it.
// Nothing is buffered, so whatever was written before a failure stays.
type Emitter struct {
	w       io.Writer
	indent  string
	section section
	err     error
}

func NewEmitter(w io.Writer, indent string) *Emitter {
	if indent == "" {
		indent = DefaultIndent
	}
	return &Emitter{w: w, indent: indent}
}

// Err returns the first write error, if any.
func (e *Emitter) Err() error {
	return e.err
}

func (e *Emitter) write(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *Emitter) line(level int, format string, args ...interface{}) {
	e.write(strings.Repeat(e.indent, level) + fmt.Sprintf(format, args...) + "\n")
}

func (e *Emitter) Preamble() {
	for _, l := range preamble {
		e.line(0, "%s", l)
	}
}

func (e *Emitter) enter(s section) {
	if e.section != s {
		e.write("\n")
		e.section = s
	}
}

func (e *Emitter) TopLevel(tl ast.TopLevel) {
	switch decl := tl.(type) {
	case ast.GlobalVar:
		e.enter(globalSection)
		e.line(0, "%s;", Declare(decl.VarDecl))
	case ast.StructDecl:
		e.enter(structSection)
		e.line(0, "struct %s", decl.Name.Name)
		e.line(0, "{")
		for _, elem := range decl.Elements {
			e.line(1, "%s;", Declare(elem))
		}
		e.line(0, "};")
	case ast.ProcDecl:
		e.enter(procedureSection)
		var params []string
		for _, param := range decl.Params {
			params = append(params, Param(param))
		}
		ret := "void"
		if decl.Returns != nil {
			ret = TypeName(*decl.Returns)
		}
		e.line(0, "%s %s(%s)", ret, decl.Name.Name, strings.Join(params, ", "))
		e.Block(decl.Body, 0)
	case ast.Entry:
		e.enter(entrySection)
		e.line(0, "int main()")
		e.Block(decl.Body, 0)
	default:
		panic("unhandled")
	}
}

// Program writes the preamble and every declaration of prog.
func (e *Emitter) Program(prog *ast.Program) error {
	e.Preamble()
	for _, g := range prog.Globals {
		e.TopLevel(g)
	}
	for _, s := range prog.Structs {
		e.TopLevel(s)
	}
	for _, p := range prog.Procedures {
		e.TopLevel(p)
	}
	if prog.Main != nil {
		e.TopLevel(*prog.Main)
	}
	return e.err
}

// Block writes braces at level and the statements one level deeper.
func (e *Emitter) Block(b ast.Block, level int) {
	e.line(level, "{")
	for _, stmt := range b {
		e.Statement(stmt, level+1)
	}
	e.line(level, "}")
}

func (e *Emitter) Statement(s ast.Statement, level int) {
	switch stmt := s.(type) {
	case ast.LocalVar:
		e.line(level, "%s;", Declare(stmt.VarDecl))
	case ast.Assignment:
		e.line(level, "%s = %s;", stmt.To.Name, Expression(stmt.Value))
	case ast.Write:
		e.line(level, "cout << %s << endl;", Expression(stmt.Value))
	case ast.Read:
		e.line(level, "cin >> %s;", stmt.Into.Name)
	case ast.CallStatement:
		e.line(level, "%s;", Expression(stmt.Call))
	case ast.Loop:
		// the source language's if repeats while its condition holds
		e.line(level, "while %s", Expression(stmt.Condition))
		e.Block(stmt.Body, level)
		if stmt.Else != nil {
			e.Block(*stmt.Else, level)
		}
	case ast.Return:
		if stmt.Value == nil {
			e.line(level, "return;")
		} else {
			e.line(level, "return %s;", Expression(stmt.Value))
		}
	case ast.StepStatement:
		e.line(level, "%s;", Expression(stmt.Step))
	case ast.ElementAssignment:
		e.line(level, "%s[%s] = %s;", stmt.Array.Name, Expression(stmt.Index), Expression(stmt.Value))
	case ast.FieldAssignment:
		e.line(level, "%s = %s;", member(stmt.Member), Expression(stmt.Value))
	case ast.IndirectFieldAssignment:
		e.line(level, "%s = %s;", member(stmt.Member), Expression(stmt.Value))
	case ast.Build:
		e.line(level, "%s;", Declare(ast.VarDecl{Name: stmt.Name, Kind: ast.StructRef(stmt.Struct)}))
	default:
		panic("unhandled")
	}
}

func TypeName(s ast.Scalar) string {
	switch s {
	case ast.Integer:
		return "long"
	case ast.Real:
		return "double"
	case ast.Text:
		return "string"
	case ast.Boolean:
		return "bool"
	}
	panic("unhandled")
}

// Declare renders a variable or struct element declaration without the
// terminating semicolon.
func Declare(d ast.VarDecl) string {
	switch kind := d.Kind.(type) {
	case ast.Scalar:
		return TypeName(kind) + " " + d.Name.Name
	case ast.Array:
		return fmt.Sprintf("%s %s[%s]", TypeName(kind.Elem), d.Name.Name, kind.Size)
	case ast.StructRef:
		return kind.Name + " " + d.Name.Name
	}
	panic("unhandled")
}

// Param renders one procedure parameter. Structs are passed by reference.
func Param(p ast.Param) string {
	switch kind := p.Kind.(type) {
	case ast.Scalar:
		return TypeName(kind) + " " + p.Name.Name
	case ast.Array:
		return fmt.Sprintf("%s %s[]", TypeName(kind.Elem), p.Name.Name)
	case ast.StructRef:
		return fmt.Sprintf("%s& %s", kind.Name, p.Name.Name)
	}
	panic("unhandled")
}

// both member forms share the value access operator
func member(m ast.Member) string {
	return m.Of.Name + "." + m.Element.Name
}

func Expression(e ast.Expression) string {
	switch expr := e.(type) {
	case ast.Var:
		return expr.Name
	case ast.Lit:
		return expr.Text
	case ast.Index:
		return fmt.Sprintf("%s[%s]", expr.Array.Name, Expression(expr.Index))
	case ast.Field:
		return member(ast.Member(expr))
	case ast.IndirectField:
		return member(ast.Member(expr))
	case ast.Call:
		var args []string
		for _, arg := range expr.Arguments {
			args = append(args, Expression(arg))
		}
		return fmt.Sprintf("%s(%s)", expr.Procedure.Name, strings.Join(args, ", "))
	case ast.Unary:
		return "(" + operators[expr.Op] + Expression(expr.Operand) + ")"
	case ast.Binary:
		return fmt.Sprintf("(%s %s %s)", Expression(expr.Left), operators[expr.Op], Expression(expr.Right))
	case ast.Step:
		op := "--"
		if expr.Increment() {
			op = "++"
		}
		if expr.Prefix() {
			return op + expr.Target.Name
		}
		return expr.Target.Name + op
	}
	panic("unhandled")
}
