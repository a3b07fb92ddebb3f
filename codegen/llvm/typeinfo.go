package llvm

import (
	"bytes"
	"encoding/json"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/pcpp/ast"
	"github.com/pontaoski/pcpp/errors"
)

// TypeInfoName is the global holding the procedure signature table.
const TypeInfoName = "__pcpp_procs"

type typeInfo struct {
	Procedures map[string]string `json:"procedures"`
}

func newTypeInfo(procs []ast.ProcDecl) typeInfo {
	t := typeInfo{Procedures: map[string]string{}}
	for _, proc := range procs {
		t.Procedures[proc.Name.Name] = proc.String()
	}
	return t
}

func registerTypeInfoWithModule(t typeInfo, m *ir.Module) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}

	g := m.NewGlobalDef(TypeInfoName, constant.NewCharArray(append(data, 0)))
	g.Immutable = true
	return nil
}

// ReadTypeInfo returns the procedure signatures embedded in the LLVM IR
// file at path, keyed by procedure name.
func ReadTypeInfo(path string) (map[string]string, error) {
	m, err := asm.ParseFile(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return typeInfoOf(m)
}

func typeInfoOf(m *ir.Module) (map[string]string, error) {
	for _, g := range m.Globals {
		if g.Name() != TypeInfoName {
			continue
		}

		data, ok := g.Init.(*constant.CharArray)
		if !ok {
			return nil, errors.Unsupported{Construct: "Global " + TypeInfoName, Reason: "not a character array"}
		}

		var t typeInfo
		if err := json.Unmarshal(bytes.TrimRight(data.X, "\x00"), &t); err != nil {
			return nil, tracerr.Wrap(err)
		}
		return t.Procedures, nil
	}

	return nil, errors.UndefinedName{Name: TypeInfoName, What: "Global"}
}
