package llvm

import (
	"strconv"

	"github.com/llir/llvm/ir/types"

	"github.com/pontaoski/pcpp/ast"
)

var (
	Integer = types.I64
	Real    = types.Double
	Boolean = types.I1
	Text    = types.NewPointer(types.I8)
)

func scalarType(s ast.Scalar) types.Type {
	switch s {
	case ast.Integer:
		return Integer
	case ast.Real:
		return Real
	case ast.Text:
		return Text
	case ast.Boolean:
		return Boolean
	}
	panic("unhandled")
}

// storageType is the type a declared variable occupies in memory.
func (g *generator) storageType(t ast.Type) (types.Type, error) {
	switch kind := t.(type) {
	case ast.Scalar:
		return scalarType(kind), nil
	case ast.Array:
		size, err := strconv.ParseUint(kind.Size, 10, 64)
		if err != nil {
			return nil, err
		}
		return types.NewArray(size, scalarType(kind.Elem)), nil
	case ast.StructRef:
		info, err := g.lookupStruct(ast.Identifier(kind))
		if err != nil {
			return nil, err
		}
		return info.typ, nil
	}
	panic("unhandled")
}

// paramType is the type a parameter is passed as. Arrays decay to a
// pointer to their first element, structs are passed by pointer.
func (g *generator) paramType(t ast.Type) (types.Type, error) {
	switch kind := t.(type) {
	case ast.Scalar:
		return scalarType(kind), nil
	case ast.Array:
		return types.NewPointer(scalarType(kind.Elem)), nil
	case ast.StructRef:
		info, err := g.lookupStruct(ast.Identifier(kind))
		if err != nil {
			return nil, err
		}
		return types.NewPointer(info.typ), nil
	}
	panic("unhandled")
}

func isInteger(t types.Type) bool {
	return t.Equal(Integer)
}

func isReal(t types.Type) bool {
	return t.Equal(Real)
}

func isBoolean(t types.Type) bool {
	return t.Equal(Boolean)
}

func isText(t types.Type) bool {
	return t.Equal(Text)
}

func isNumeric(t types.Type) bool {
	return isInteger(t) || isReal(t)
}

func typeName(t types.Type) string {
	switch {
	case isInteger(t):
		return "integer"
	case isReal(t):
		return "real"
	case isBoolean(t):
		return "boolean"
	case isText(t):
		return "text"
	case types.IsVoid(t):
		return "void"
	}
	return t.String()
}
