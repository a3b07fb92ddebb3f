package ast

import (
	"fmt"
	"strings"
)

func (s Scalar) String() string {
	switch s {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Text:
		return "text"
	case Boolean:
		return "boolean"
	}
	return fmt.Sprintf("Scalar(%d)", int(s))
}

func TypeToString(t Type) string {
	switch v := t.(type) {
	case Scalar:
		return v.String()
	case Array:
		if v.Size == "" {
			return "array " + v.Elem.String()
		}
		return fmt.Sprintf("array %s %s", v.Elem, v.Size)
	case StructRef:
		return "struct " + v.Name
	}

	panic("unhandled")
}

func (p ProcDecl) String() string {
	var params []string
	for _, param := range p.Params {
		params = append(params, TypeToString(param.Kind)+" "+param.Name.Name)
	}

	ret := "void"
	if p.Returns != nil {
		ret = p.Returns.String()
	}
	return fmt.Sprintf("pdef %s(%s) %s", p.Name.Name, strings.Join(params, ", "), ret)
}
