// Package llvm lowers a recognized program to LLVM IR.
package llvm

import (
	"fmt"
	"strconv"

	"github.com/coreos/pkg/capnslog"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/pontaoski/pcpp/ast"
	"github.com/pontaoski/pcpp/errors"
	tokens "github.com/pontaoski/pcpp/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/pcpp", "codegen/llvm")

// binding is a named storage location. Decayed arrays are parameters that
// hold a pointer to the first element instead of the array itself.
type binding struct {
	ptr     value.Value
	elem    types.Type
	kind    ast.Type
	decayed bool
}

type structInfo struct {
	typ    types.Type
	fields map[string]int
	kinds  []ast.Type
	elems  []types.Type
}

type procInfo struct {
	fn   *ir.Func
	decl ast.ProcDecl
}

type generator struct {
	module   *ir.Module
	names    []map[string]binding
	structs  map[string]*structInfo
	procs    map[string]procInfo
	builtins map[string]*ir.Func
	strings  map[string]constant.Constant

	fn     *ir.Func
	ret    types.Type
	cur    *ir.Block
	blocks int
}

func (g *generator) pushScope() {
	g.names = append(g.names, make(map[string]binding))
}

func (g *generator) popScope() {
	g.names = g.names[:len(g.names)-1]
}

func (g *generator) top() map[string]binding {
	return g.names[len(g.names)-1]
}

func (g *generator) lookup(id ast.Identifier) (binding, error) {
	for i := len(g.names) - 1; i >= 0; i-- {
		if b, ok := g.names[i][id.Name]; ok {
			return b, nil
		}
	}
	return binding{}, errors.UndefinedName{Name: id.Name, What: "Variable"}
}

func (g *generator) lookupStruct(id ast.Identifier) (*structInfo, error) {
	info, ok := g.structs[id.Name]
	if !ok {
		return nil, errors.UndefinedName{Name: id.Name, What: "Struct"}
	}
	return info, nil
}

// Generate lowers prog to a module. Procedures are declared before any
// body is lowered, so calls may refer to procedures declared later.
func Generate(prog *ast.Program) (*ir.Module, error) {
	g := &generator{
		module:  ir.NewModule(),
		structs: map[string]*structInfo{},
		procs:   map[string]procInfo{},
		strings: map[string]constant.Constant{},
	}
	g.pushScope()
	g.builtins = addBuiltins(g.module)

	for _, s := range prog.Structs {
		if err := g.declareStruct(s); err != nil {
			return nil, err
		}
	}
	for _, v := range prog.Globals {
		if err := g.declareGlobal(v); err != nil {
			return nil, err
		}
	}
	for _, p := range prog.Procedures {
		if err := g.declareProc(p); err != nil {
			return nil, err
		}
	}
	for _, p := range prog.Procedures {
		if err := g.defineProc(p); err != nil {
			return nil, err
		}
	}
	if prog.Main != nil {
		if err := g.defineMain(*prog.Main); err != nil {
			return nil, err
		}
	}

	if err := registerTypeInfoWithModule(newTypeInfo(prog.Procedures), g.module); err != nil {
		return nil, err
	}

	return g.module, nil
}

func (g *generator) declareStruct(s ast.StructDecl) error {
	info := &structInfo{fields: map[string]int{}}
	for idx, elem := range s.Elements {
		t, err := g.storageType(elem.Kind)
		if err != nil {
			return err
		}
		info.fields[elem.Name.Name] = idx
		info.kinds = append(info.kinds, elem.Kind)
		info.elems = append(info.elems, t)
	}

	info.typ = g.module.NewTypeDef(s.Name.Name, types.NewStruct(info.elems...))
	g.structs[s.Name.Name] = info
	return nil
}

// reserved reports whether name is already taken in the module's global
// namespace by the runtime or by the generator itself.
func (g *generator) reserved(name string) bool {
	if _, ok := g.builtins[name]; ok {
		return true
	}
	return name == "main" || name == TypeInfoName
}

func (g *generator) declareGlobal(v ast.GlobalVar) error {
	if g.reserved(v.Name.Name) {
		return errors.Unsupported{Construct: "Global " + v.Name.Name, Reason: "the name is reserved by the runtime"}
	}
	if _, ok := g.top()[v.Name.Name]; ok {
		return errors.Unsupported{Construct: "Global " + v.Name.Name, Reason: "the name is already declared"}
	}

	t, err := g.storageType(v.Kind)
	if err != nil {
		return err
	}

	def := g.module.NewGlobalDef(v.Name.Name, zeroValue(t))
	g.top()[v.Name.Name] = binding{ptr: def, elem: t, kind: v.Kind}
	return nil
}

func (g *generator) declareProc(p ast.ProcDecl) error {
	if g.reserved(p.Name.Name) {
		return errors.Unsupported{Construct: "Procedure " + p.Name.Name, Reason: "the name is reserved by the runtime"}
	}
	if _, ok := g.names[0][p.Name.Name]; ok {
		return errors.Unsupported{Construct: "Procedure " + p.Name.Name, Reason: "the name is already used by a global variable"}
	}
	if _, ok := g.procs[p.Name.Name]; ok {
		return errors.Unsupported{Construct: "Procedure " + p.Name.Name, Reason: "the name is already declared"}
	}

	var params []*ir.Param
	for _, param := range p.Params {
		t, err := g.paramType(param.Kind)
		if err != nil {
			return err
		}
		params = append(params, ir.NewParam(param.Name.Name, t))
	}

	var ret types.Type = types.Void
	if p.Returns != nil {
		ret = scalarType(*p.Returns)
	}

	g.procs[p.Name.Name] = procInfo{fn: g.module.NewFunc(p.Name.Name, ret, params...), decl: p}
	return nil
}

func (g *generator) defineProc(p ast.ProcDecl) error {
	info := g.procs[p.Name.Name]
	g.fn = info.fn
	g.ret = info.fn.Sig.RetType
	g.cur = info.fn.NewBlock("entry")

	g.pushScope()
	defer g.popScope()

	for i, param := range p.Params {
		arg := info.fn.Params[i]
		switch kind := param.Kind.(type) {
		case ast.StructRef:
			si, err := g.lookupStruct(ast.Identifier(kind))
			if err != nil {
				return err
			}
			g.top()[param.Name.Name] = binding{ptr: arg, elem: si.typ, kind: kind}
		default:
			slot := g.cur.NewAlloca(arg.Type())
			g.cur.NewStore(arg, slot)
			_, decayed := kind.(ast.Array)
			g.top()[param.Name.Name] = binding{ptr: slot, elem: arg.Type(), kind: kind, decayed: decayed}
		}
	}

	if err := g.block(p.Body); err != nil {
		return err
	}
	g.finish()

	plog.Debugf("lowered %s", p)
	return nil
}

func (g *generator) defineMain(e ast.Entry) error {
	g.fn = g.module.NewFunc("main", types.I32)
	g.ret = types.I32
	g.cur = g.fn.NewBlock("entry")

	if err := g.block(e.Body); err != nil {
		return err
	}
	g.finish()
	return nil
}

// finish terminates the last block of the current function with a return
// of the zero value.
func (g *generator) finish() {
	if g.cur.Term != nil {
		return
	}
	if types.IsVoid(g.ret) {
		g.cur.NewRet(nil)
		return
	}
	g.cur.NewRet(zeroValue(g.ret))
}

func zeroValue(t types.Type) constant.Constant {
	switch kind := t.(type) {
	case *types.IntType:
		return constant.NewInt(kind, 0)
	case *types.FloatType:
		return constant.NewFloat(kind, 0)
	case *types.PointerType:
		return constant.NewNull(kind)
	}
	return constant.NewZeroInitializer(t)
}

func (g *generator) newBlock(name string, n int) *ir.Block {
	return g.fn.NewBlock(fmt.Sprintf("%s.%d", name, n))
}

func (g *generator) block(b ast.Block) error {
	g.pushScope()
	defer g.popScope()

	for _, stmt := range b {
		if err := g.statement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) statement(s ast.Statement) error {
	switch stmt := s.(type) {
	case ast.LocalVar:
		t, err := g.storageType(stmt.Kind)
		if err != nil {
			return err
		}
		g.top()[stmt.Name.Name] = binding{ptr: g.cur.NewAlloca(t), elem: t, kind: stmt.Kind}
	case ast.Assignment:
		b, err := g.lookup(stmt.To)
		if err != nil {
			return err
		}
		if _, ok := b.kind.(ast.Scalar); !ok {
			return errors.Unsupported{Construct: "Assignment to " + stmt.To.Name, Reason: "only scalar variables can be assigned"}
		}
		return g.store(stmt.Value, b.ptr, b.elem)
	case ast.Write:
		return g.write(stmt.Value)
	case ast.Read:
		return g.read(stmt.Into)
	case ast.CallStatement:
		_, err := g.call(stmt.Call)
		return err
	case ast.Loop:
		return g.loop(stmt)
	case ast.Return:
		return g.returns(stmt)
	case ast.StepStatement:
		_, err := g.step(stmt.Step)
		return err
	case ast.ElementAssignment:
		ptr, elem, err := g.element(stmt.Array, stmt.Index)
		if err != nil {
			return err
		}
		return g.store(stmt.Value, ptr, elem)
	case ast.FieldAssignment:
		return g.storeMember(stmt.Member, stmt.Value)
	case ast.IndirectFieldAssignment:
		return g.storeMember(stmt.Member, stmt.Value)
	case ast.Build:
		info, err := g.lookupStruct(stmt.Struct)
		if err != nil {
			return err
		}
		g.top()[stmt.Name.Name] = binding{ptr: g.cur.NewAlloca(info.typ), elem: info.typ, kind: ast.StructRef(stmt.Struct)}
	default:
		panic("unhandled")
	}
	return nil
}

func (g *generator) store(e ast.Expression, ptr value.Value, elem types.Type) error {
	v, err := g.expression(e)
	if err != nil {
		return err
	}
	v, err = g.convert(v, elem, "Assignment")
	if err != nil {
		return err
	}
	g.cur.NewStore(v, ptr)
	return nil
}

func (g *generator) storeMember(m ast.Member, e ast.Expression) error {
	ptr, elem, kind, err := g.member(m)
	if err != nil {
		return err
	}
	if _, ok := kind.(ast.Scalar); !ok {
		return errors.Unsupported{Construct: "Assignment to " + m.Of.Name + "." + m.Element.Name, Reason: "only scalar elements can be assigned"}
	}
	return g.store(e, ptr, elem)
}

// convert makes v usable where a value of type to is expected. Integers
// widen to reals, and to the 32 bit status code returned from main.
func (g *generator) convert(v value.Value, to types.Type, construct string) (value.Value, error) {
	from := v.Type()
	switch {
	case from.Equal(to):
		return v, nil
	case isInteger(from) && isReal(to):
		return g.cur.NewSIToFP(v, Real), nil
	case isInteger(from) && to.Equal(types.I32):
		return g.cur.NewTrunc(v, types.I32), nil
	}
	return nil, errors.Unsupported{Construct: construct, Reason: fmt.Sprintf("cannot use %s as %s", typeName(from), typeName(to))}
}

func (g *generator) write(e ast.Expression) error {
	v, err := g.expression(e)
	if err != nil {
		return err
	}

	name := typeName(v.Type())
	format, ok := writeFormats[name]
	if !ok {
		return errors.Unsupported{Construct: "Write", Reason: "cannot print a value of type " + name}
	}
	if isBoolean(v.Type()) {
		v = g.cur.NewZExt(v, types.I32)
	}

	g.cur.NewCall(g.builtins["printf"], g.text(format), v)
	return nil
}

func (g *generator) read(into ast.Identifier) error {
	b, err := g.lookup(into)
	if err != nil {
		return err
	}
	if _, ok := b.kind.(ast.Scalar); !ok {
		return errors.Unsupported{Construct: "Read", Reason: into.Name + " is not a scalar variable"}
	}

	name := typeName(b.elem)
	format, ok := readFormats[name]
	if !ok {
		return errors.Unsupported{Construct: "Read", Reason: "cannot read a value of type " + name}
	}

	if !isBoolean(b.elem) {
		g.cur.NewCall(g.builtins["scanf"], g.text(format), b.ptr)
		return nil
	}

	tmp := g.cur.NewAlloca(Integer)
	g.cur.NewCall(g.builtins["scanf"], g.text(format), tmp)
	n := g.cur.NewLoad(Integer, tmp)
	g.cur.NewStore(g.cur.NewICmp(enum.IPredNE, n, constant.NewInt(types.I64, 0)), b.ptr)
	return nil
}

// loop lowers the source language's if, which repeats its body while the
// condition holds. The else body runs once the condition is false.
func (g *generator) loop(l ast.Loop) error {
	n := g.blocks
	g.blocks++

	cond := g.newBlock("loop.cond", n)
	body := g.newBlock("loop.body", n)
	exit := g.newBlock("loop.exit", n)

	g.cur.NewBr(cond)

	g.cur = cond
	c, err := g.expression(l.Condition)
	if err != nil {
		return err
	}
	if !isBoolean(c.Type()) {
		return errors.Unsupported{Construct: "Condition", Reason: "expected boolean, found " + typeName(c.Type())}
	}
	g.cur.NewCondBr(c, body, exit)

	g.cur = body
	if err := g.block(l.Body); err != nil {
		return err
	}
	if g.cur.Term == nil {
		g.cur.NewBr(cond)
	}

	g.cur = exit
	if l.Else != nil {
		return g.block(*l.Else)
	}
	return nil
}

func (g *generator) returns(r ast.Return) error {
	switch {
	case r.Value == nil && types.IsVoid(g.ret):
		g.cur.NewRet(nil)
	case r.Value == nil:
		g.cur.NewRet(zeroValue(g.ret))
	case types.IsVoid(g.ret):
		return errors.Unsupported{Construct: "Return", Reason: "procedure " + g.fn.Name() + " returns no value"}
	default:
		v, err := g.expression(r.Value)
		if err != nil {
			return err
		}
		v, err = g.convert(v, g.ret, "Return")
		if err != nil {
			return err
		}
		g.cur.NewRet(v)
	}

	// anything after a return is unreachable but still needs a block
	n := g.blocks
	g.blocks++
	g.cur = g.newBlock("after.return", n)
	return nil
}

func (g *generator) element(array ast.Identifier, index ast.Expression) (value.Value, types.Type, error) {
	b, err := g.lookup(array)
	if err != nil {
		return nil, nil, err
	}
	arr, ok := b.kind.(ast.Array)
	if !ok {
		return nil, nil, errors.Unsupported{Construct: "Indexing", Reason: array.Name + " is not an array"}
	}

	idx, err := g.expression(index)
	if err != nil {
		return nil, nil, err
	}
	if !isInteger(idx.Type()) {
		return nil, nil, errors.Unsupported{Construct: "Indexing", Reason: "index of " + array.Name + " is " + typeName(idx.Type())}
	}

	elem := scalarType(arr.Elem)
	if b.decayed {
		first := g.cur.NewLoad(b.elem, b.ptr)
		return g.cur.NewGetElementPtr(elem, first, idx), elem, nil
	}
	return g.cur.NewGetElementPtr(b.elem, b.ptr, constant.NewInt(types.I64, 0), idx), elem, nil
}

func (g *generator) member(m ast.Member) (value.Value, types.Type, ast.Type, error) {
	b, err := g.lookup(m.Of)
	if err != nil {
		return nil, nil, nil, err
	}
	ref, ok := b.kind.(ast.StructRef)
	if !ok {
		return nil, nil, nil, errors.Unsupported{Construct: "Element access", Reason: m.Of.Name + " is not a struct"}
	}
	info, err := g.lookupStruct(ast.Identifier(ref))
	if err != nil {
		return nil, nil, nil, err
	}

	idx, ok := info.fields[m.Element.Name]
	if !ok {
		return nil, nil, nil, errors.UndefinedName{Name: ref.Name + "." + m.Element.Name, What: "Element"}
	}

	return getStructElm(g.cur, info.typ, b.ptr, int64(idx)), info.elems[idx], info.kinds[idx], nil
}

func (g *generator) call(c ast.Call) (value.Value, error) {
	info, ok := g.procs[c.Procedure.Name]
	if !ok {
		return nil, errors.UndefinedName{Name: c.Procedure.Name, What: "Procedure"}
	}
	if len(c.Arguments) != len(info.decl.Params) {
		return nil, errors.Unsupported{
			Construct: "Call of " + c.Procedure.Name,
			Reason:    fmt.Sprintf("expected %d arguments, found %d", len(info.decl.Params), len(c.Arguments)),
		}
	}

	var args []value.Value
	for i, param := range info.decl.Params {
		arg, err := g.argument(param, c.Arguments[i])
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return g.cur.NewCall(info.fn, args...), nil
}

// argument evaluates e for param. Arrays and structs are passed by
// address, so they must be named directly.
func (g *generator) argument(param ast.Param, e ast.Expression) (value.Value, error) {
	construct := "Argument " + param.Name.Name

	if s, ok := param.Kind.(ast.Scalar); ok {
		v, err := g.expression(e)
		if err != nil {
			return nil, err
		}
		return g.convert(v, scalarType(s), construct)
	}

	name, ok := e.(ast.Var)
	if !ok {
		return nil, errors.Unsupported{Construct: construct, Reason: "expected the name of a " + ast.TypeToString(param.Kind)}
	}
	b, err := g.lookup(ast.Identifier(name))
	if err != nil {
		return nil, err
	}

	switch want := param.Kind.(type) {
	case ast.Array:
		got, ok := b.kind.(ast.Array)
		if !ok || got.Elem != want.Elem {
			return nil, errors.Unsupported{Construct: construct, Reason: name.Name + " is not an " + ast.TypeToString(want)}
		}
		if b.decayed {
			return g.cur.NewLoad(b.elem, b.ptr), nil
		}
		return g.cur.NewGetElementPtr(b.elem, b.ptr, constant.NewInt(types.I64, 0), constant.NewInt(types.I64, 0)), nil
	case ast.StructRef:
		got, ok := b.kind.(ast.StructRef)
		if !ok || got.Name != want.Name {
			return nil, errors.Unsupported{Construct: construct, Reason: name.Name + " is not a " + ast.TypeToString(want)}
		}
		return b.ptr, nil
	}
	panic("unhandled")
}

func (g *generator) step(s ast.Step) (value.Value, error) {
	b, err := g.lookup(s.Target)
	if err != nil {
		return nil, err
	}
	if _, ok := b.kind.(ast.Scalar); !ok || !isNumeric(b.elem) {
		return nil, errors.Unsupported{Construct: s.Op.String(), Reason: s.Target.Name + " is not numeric"}
	}

	old := g.cur.NewLoad(b.elem, b.ptr)
	var updated value.Value
	if isInteger(b.elem) {
		one := constant.NewInt(types.I64, 1)
		if s.Increment() {
			updated = g.cur.NewAdd(old, one)
		} else {
			updated = g.cur.NewSub(old, one)
		}
	} else {
		one := constant.NewFloat(types.Double, 1)
		if s.Increment() {
			updated = g.cur.NewFAdd(old, one)
		} else {
			updated = g.cur.NewFSub(old, one)
		}
	}
	g.cur.NewStore(updated, b.ptr)

	if s.Prefix() {
		return updated, nil
	}
	return old, nil
}

func (g *generator) expression(e ast.Expression) (value.Value, error) {
	switch expr := e.(type) {
	case ast.Var:
		b, err := g.lookup(ast.Identifier(expr))
		if err != nil {
			return nil, err
		}
		if _, ok := b.kind.(ast.Scalar); !ok {
			return nil, errors.Unsupported{Construct: "Expression", Reason: expr.Name + " is not a scalar variable"}
		}
		return g.cur.NewLoad(b.elem, b.ptr), nil
	case ast.Lit:
		return g.literal(expr)
	case ast.Index:
		ptr, elem, err := g.element(expr.Array, expr.Index)
		if err != nil {
			return nil, err
		}
		return g.cur.NewLoad(elem, ptr), nil
	case ast.Field:
		return g.loadMember(ast.Member(expr))
	case ast.IndirectField:
		return g.loadMember(ast.Member(expr))
	case ast.Call:
		v, err := g.call(expr)
		if err != nil {
			return nil, err
		}
		if types.IsVoid(v.Type()) {
			return nil, errors.Unsupported{Construct: "Call of " + expr.Procedure.Name, Reason: "procedure returns no value"}
		}
		return v, nil
	case ast.Unary:
		return g.unary(expr)
	case ast.Binary:
		return g.binary(expr)
	case ast.Step:
		return g.step(expr)
	}
	panic("unhandled")
}

func (g *generator) loadMember(m ast.Member) (value.Value, error) {
	ptr, elem, kind, err := g.member(m)
	if err != nil {
		return nil, err
	}
	if _, ok := kind.(ast.Scalar); !ok {
		return nil, errors.Unsupported{Construct: "Expression", Reason: m.Of.Name + "." + m.Element.Name + " is not a scalar element"}
	}
	return g.cur.NewLoad(elem, ptr), nil
}

func (g *generator) literal(l ast.Lit) (value.Value, error) {
	switch l.Kind {
	case tokens.INTLIT:
		n, err := strconv.ParseInt(l.Text, 10, 64)
		if err != nil {
			return nil, err
		}
		return constant.NewInt(types.I64, n), nil
	case tokens.REALLIT:
		f, err := strconv.ParseFloat(l.Text, 64)
		if err != nil {
			return nil, err
		}
		return constant.NewFloat(types.Double, f), nil
	case tokens.TEXTLIT:
		return g.text(l.Text[1 : len(l.Text)-1]), nil
	case tokens.BOOLLIT:
		return constant.NewBool(l.Text == "true"), nil
	}
	panic("unhandled")
}

func (g *generator) unary(u ast.Unary) (value.Value, error) {
	v, err := g.expression(u.Operand)
	if err != nil {
		return nil, err
	}

	switch {
	case u.Op == tokens.NOT && isBoolean(v.Type()):
		return g.cur.NewXor(v, constant.True), nil
	case u.Op == tokens.NEG && isInteger(v.Type()):
		return g.cur.NewSub(constant.NewInt(types.I64, 0), v), nil
	case u.Op == tokens.NEG && isReal(v.Type()):
		return g.cur.NewFSub(constant.NewFloat(types.Double, 0), v), nil
	}
	return nil, errors.Unsupported{Construct: u.Op.String(), Reason: "operand is " + typeName(v.Type())}
}

var (
	intPredicates = map[tokens.TokenKind]enum.IPred{
		tokens.EQ: enum.IPredEQ,
		tokens.NE: enum.IPredNE,
		tokens.LT: enum.IPredSLT,
		tokens.LE: enum.IPredSLE,
		tokens.GT: enum.IPredSGT,
		tokens.GE: enum.IPredSGE,
	}
	floatPredicates = map[tokens.TokenKind]enum.FPred{
		tokens.EQ: enum.FPredOEQ,
		tokens.NE: enum.FPredONE,
		tokens.LT: enum.FPredOLT,
		tokens.LE: enum.FPredOLE,
		tokens.GT: enum.FPredOGT,
		tokens.GE: enum.FPredOGE,
	}
)

func (g *generator) binary(bin ast.Binary) (value.Value, error) {
	l, err := g.expression(bin.Left)
	if err != nil {
		return nil, err
	}
	r, err := g.expression(bin.Right)
	if err != nil {
		return nil, err
	}

	mismatch := errors.Unsupported{
		Construct: bin.Op.String(),
		Reason:    fmt.Sprintf("operands are %s and %s", typeName(l.Type()), typeName(r.Type())),
	}

	switch {
	case tokens.IsBooleanOperator(bin.Op):
		if !isBoolean(l.Type()) || !isBoolean(r.Type()) {
			return nil, mismatch
		}
		if bin.Op == tokens.AND {
			return g.cur.NewAnd(l, r), nil
		}
		return g.cur.NewOr(l, r), nil
	case isBoolean(l.Type()) && isBoolean(r.Type()) && (bin.Op == tokens.EQ || bin.Op == tokens.NE):
		return g.cur.NewICmp(intPredicates[bin.Op], l, r), nil
	}

	if !isNumeric(l.Type()) || !isNumeric(r.Type()) {
		return nil, mismatch
	}

	if isInteger(l.Type()) && isInteger(r.Type()) {
		if pred, ok := intPredicates[bin.Op]; ok {
			return g.cur.NewICmp(pred, l, r), nil
		}
		switch bin.Op {
		case tokens.ADD:
			return g.cur.NewAdd(l, r), nil
		case tokens.SUB:
			return g.cur.NewSub(l, r), nil
		case tokens.MUL:
			return g.cur.NewMul(l, r), nil
		case tokens.DIV:
			return g.cur.NewSDiv(l, r), nil
		case tokens.REM:
			return g.cur.NewSRem(l, r), nil
		}
		panic("unhandled")
	}

	if isInteger(l.Type()) {
		l = g.cur.NewSIToFP(l, Real)
	}
	if isInteger(r.Type()) {
		r = g.cur.NewSIToFP(r, Real)
	}

	if pred, ok := floatPredicates[bin.Op]; ok {
		return g.cur.NewFCmp(pred, l, r), nil
	}
	switch bin.Op {
	case tokens.ADD:
		return g.cur.NewFAdd(l, r), nil
	case tokens.SUB:
		return g.cur.NewFSub(l, r), nil
	case tokens.MUL:
		return g.cur.NewFMul(l, r), nil
	case tokens.DIV:
		return g.cur.NewFDiv(l, r), nil
	case tokens.REM:
		return g.cur.NewFRem(l, r), nil
	}
	panic("unhandled")
}
