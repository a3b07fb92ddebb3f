package ast

import "github.com/pontaoski/pcpp/types"

type Identifier struct {
	Name string
	Pos  int
}

func NewID(tok types.Token) Identifier {
	return Identifier{Name: tok.Lexeme, Pos: tok.Pos}
}

// Scalar is one of the four variable types of the source language.
type Scalar int

const (
	Integer Scalar = iota
	Real
	Text
	Boolean
)

func ScalarOf(k types.TokenKind) (Scalar, bool) {
	switch k {
	case types.INTTYPE:
		return Integer, true
	case types.REALTYPE:
		return Real, true
	case types.TEXTTYPE:
		return Text, true
	case types.BOOLTYPE:
		return Boolean, true
	}
	return 0, false
}

type Type interface {
	is_Type()
}

func (v Scalar) is_Type() {}

// Array is a fixed-size array. Size is the integer literal as written;
// it is empty for array parameters.
type Array struct {
	Elem Scalar
	Size string
}

func (v Array) is_Type() {}

type StructRef Identifier

func (v StructRef) is_Type() {}

type TopLevel interface {
	is_TopLevel()
}

type VarDecl struct {
	Name Identifier
	Kind Type
}

type GlobalVar struct {
	VarDecl
}

func (v GlobalVar) is_TopLevel() {}

type StructDecl struct {
	Name     Identifier
	Elements []VarDecl
}

func (v StructDecl) is_TopLevel() {}

type Param struct {
	Name Identifier
	Kind Type
}

type ProcDecl struct {
	Name   Identifier
	Params []Param
	// Returns is nil for void procedures.
	Returns *Scalar
	Body    Block
}

func (v ProcDecl) is_TopLevel() {}

type Entry struct {
	Body Block
}

func (v Entry) is_TopLevel() {}

type Block []Statement

type Statement interface {
	is_Statement()
}

type LocalVar struct {
	VarDecl
}

func (v LocalVar) is_Statement() {}

type Assignment struct {
	To    Identifier
	Value Expression
}

func (v Assignment) is_Statement() {}

type Write struct {
	Value Expression
}

func (v Write) is_Statement() {}

type Read struct {
	Into Identifier
}

func (v Read) is_Statement() {}

type CallStatement struct {
	Call
}

func (v CallStatement) is_Statement() {}

// Loop is the source language's "if": a pretest loop over Body. Else,
// when present, runs once after the loop exits.
type Loop struct {
	Condition Expression
	Body      Block
	Else      *Block
}

func (v Loop) is_Statement() {}

type Return struct {
	// Value is nil for a bare return.
	Value Expression
}

func (v Return) is_Statement() {}

type StepStatement struct {
	Step
}

func (v StepStatement) is_Statement() {}

type ElementAssignment struct {
	Array Identifier
	Index Expression
	Value Expression
}

func (v ElementAssignment) is_Statement() {}

type Member struct {
	Of      Identifier
	Element Identifier
}

type FieldAssignment struct {
	Member
	Value Expression
}

func (v FieldAssignment) is_Statement() {}

type IndirectFieldAssignment struct {
	Member
	Value Expression
}

func (v IndirectFieldAssignment) is_Statement() {}

type Build struct {
	Name   Identifier
	Struct Identifier
}

func (v Build) is_Statement() {}

type Expression interface {
	is_Expression()
}

type Var Identifier

func (v Var) is_Expression() {}

type Lit struct {
	Kind types.TokenKind
	Text string
}

func (v Lit) is_Expression() {}

type Index struct {
	Array Identifier
	Index Expression
}

func (v Index) is_Expression() {}

type Field Member

func (v Field) is_Expression() {}

type IndirectField Member

func (v IndirectField) is_Expression() {}

type Call struct {
	Procedure Identifier
	Arguments []Expression
}

func (v Call) is_Expression() {}

type Unary struct {
	Op      types.TokenKind
	Operand Expression
}

func (v Unary) is_Expression() {}

type Binary struct {
	Op    types.TokenKind
	Left  Expression
	Right Expression
}

func (v Binary) is_Expression() {}

// Step is an increment or decrement of a named variable. Op is one of
// INC, DEC, PREINC, PREDEC.
type Step struct {
	Op     types.TokenKind
	Target Identifier
}

func (v Step) is_Expression() {}

func (v Step) Prefix() bool {
	return v.Op == types.PREINC || v.Op == types.PREDEC
}

func (v Step) Increment() bool {
	return v.Op == types.INC || v.Op == types.PREINC
}

type Program struct {
	Globals    []GlobalVar
	Structs    []StructDecl
	Procedures []ProcDecl
	Main       *Entry
	// Trailing counts tokens left after the entry point.
	Trailing int
}
