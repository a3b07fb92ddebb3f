package llvm

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

func zero32() constant.Constant {
	return constant.NewInt(types.I32, 0)
}

func getStructElm(b *ir.Block, t types.Type, v value.Value, idx int64) value.Value {
	return b.NewGetElementPtr(t, v, zero32(), constant.NewInt(types.I32, idx))
}

func addBuiltins(m *ir.Module) map[string]*ir.Func {
	ret := make(map[string]*ir.Func)

	funcs := []func(*ir.Module) (string, *ir.Func){
		addPrintf,
		addScanf,
	}
	for _, fn := range funcs {
		k, v := fn(m)
		ret[k] = v
	}

	return ret
}

func addPrintf(m *ir.Module) (string, *ir.Func) {
	fn := m.NewFunc("printf", types.I32, ir.NewParam("format", Text))
	fn.Sig.Variadic = true
	return "printf", fn
}

func addScanf(m *ir.Module) (string, *ir.Func) {
	fn := m.NewFunc("scanf", types.I32, ir.NewParam("format", Text))
	fn.Sig.Variadic = true
	return "scanf", fn
}

var writeFormats = map[string]string{
	"integer": "%ld\n",
	"real":    "%f\n",
	"boolean": "%d\n",
	"text":    "%s\n",
}

var readFormats = map[string]string{
	"integer": "%ld",
	"real":    "%lf",
	"boolean": "%ld",
}

func hash(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	return strconv.FormatUint(uint64(h.Sum32()), 10)
}

// text returns an i8* to a NUL-terminated copy of s. Each distinct string
// is defined once per module.
func (g *generator) text(s string) constant.Constant {
	if ptr, ok := g.strings[s]; ok {
		return ptr
	}

	data := constant.NewCharArrayFromString(s + "\x00")
	def := g.module.NewGlobalDef(fmt.Sprintf("_str_%s_%d", hash(s), len(g.strings)), data)
	def.Immutable = true

	ptr := constant.NewGetElementPtr(data.Typ, def, zero32(), zero32())
	g.strings[s] = ptr
	return ptr
}
