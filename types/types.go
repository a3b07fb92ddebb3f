package types

import (
	"fmt"
)

//go:generate go run ../cmd/kindgen kinds.def kind_string.go types

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL

	BEGIN
	END
	MAIN

	INTLIT
	REALLIT
	TEXTLIT
	BOOLLIT
	IDENT

	GDEF
	PDEF
	VDEF
	SET
	ASET
	SSET
	BUILD
	CALL
	READ
	WRITE

	LPAREN
	RPAREN
	LINDEX
	RINDEX
	COMMA
	COLON
	PERIOD
	ARROW

	IF
	ELSE
	RETURN
	STRUCT
	ARRAY

	LT
	GT
	LE
	GE
	EQ
	NE
	AND
	OR
	NOT
	NEG

	ADD
	SUB
	MUL
	DIV
	REM
	INC
	DEC
	PREINC
	PREDEC

	INTTYPE
	REALTYPE
	TEXTTYPE
	BOOLTYPE
	VOIDTYPE
)

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

// Token is one valid lexeme. Pos is its index in the valid-token
// sequence and is what diagnostics report.
type Token struct {
	Kind     TokenKind
	Lexeme   string
	Pos      int
	Location Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s '%s' #%d", t.Kind, t.Lexeme, t.Pos)
}

func IsVariableType(k TokenKind) bool {
	switch k {
	case INTTYPE, REALTYPE, TEXTTYPE, BOOLTYPE:
		return true
	}
	return false
}

func IsParameterType(k TokenKind) bool {
	return IsVariableType(k) || k == ARRAY || k == STRUCT
}

func IsReturnType(k TokenKind) bool {
	return IsVariableType(k) || k == VOIDTYPE
}

func IsLiteral(k TokenKind) bool {
	switch k {
	case INTLIT, REALLIT, TEXTLIT, BOOLLIT:
		return true
	}
	return false
}

func IsBinaryOperator(k TokenKind) bool {
	switch k {
	case ADD, SUB, MUL, DIV, REM, EQ, NE, LT, LE, GT, GE, AND, OR:
		return true
	}
	return false
}

func IsUnaryOperator(k TokenKind) bool {
	return k == NEG || k == NOT
}

// IsConditionalOperator reports whether k may head a conditional
// expression: every comparison and boolean operator, no arithmetic.
func IsConditionalOperator(k TokenKind) bool {
	switch k {
	case NOT, EQ, NE, LT, LE, GT, GE, AND, OR:
		return true
	}
	return false
}

// IsBooleanOperator reports whether the operands of k must themselves be
// conditional expressions.
func IsBooleanOperator(k TokenKind) bool {
	switch k {
	case NOT, AND, OR:
		return true
	}
	return false
}

func IsStepOperator(k TokenKind) bool {
	switch k {
	case INC, DEC, PREINC, PREDEC:
		return true
	}
	return false
}

func IsArithmeticOperator(k TokenKind) bool {
	switch k {
	case ADD, SUB, MUL, DIV, REM, NEG:
		return true
	}
	return false
}
