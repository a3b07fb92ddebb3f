package parser

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/alecthomas/repr"

	"github.com/pontaoski/pcpp/ast"
	"github.com/pontaoski/pcpp/diag"
	"github.com/pontaoski/pcpp/errors"
	"github.com/pontaoski/pcpp/lexer"
	"github.com/pontaoski/pcpp/types"
)

func tokenize(t *testing.T, src string) []types.Token {
	t.Helper()
	tokens, err := lexer.NewLexer(strings.NewReader(src), "test").Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	return tokens
}

func parse(t *testing.T, src string) (*ast.Program, *diag.Recorder, error) {
	t.Helper()
	rec := &diag.Recorder{}
	prog, err := NewParser(tokenize(t, src), rec).Parse(nil)
	return prog, rec, err
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, rec, err := parse(t, src)
	if err != nil {
		t.Fatalf("parse failed: %v\n%s", err, rec)
	}
	return prog
}

func TestParseProgram(t *testing.T) {
	prog := mustParse(t, `
gdef count integer
gdef names array text 8
struct point begin
	x real
	y real
	tags array integer 3
end
pdef move ( struct point p, real dx ) void
begin
	sset p . x (add p -> x dx)
end
pdef sum ( array integer xs integer n ) integer
begin
	vdef total integer
	vdef i integer
	set total 0
	set i 0
	if (lt i n) begin
		set total (add total xs[i])
		(addadd i)
	end
	return total
end
main begin
	build origin : point
	call move(origin, 1.5)
	read count
	write (neg count)
	aset names [0] "first"
	return
end
`)

	if len(prog.Globals) != 2 || len(prog.Structs) != 1 || len(prog.Procedures) != 2 || prog.Main == nil {
		t.Fatalf("unexpected program shape: %s", repr.String(prog, repr.Indent("  ")))
	}

	if arr, ok := prog.Globals[1].Kind.(ast.Array); !ok || arr.Elem != ast.Text || arr.Size != "8" {
		t.Errorf("names: got %s", repr.String(prog.Globals[1]))
	}

	point := prog.Structs[0]
	if point.Name.Name != "point" || len(point.Elements) != 3 {
		t.Fatalf("point: got %s", repr.String(point))
	}
	if _, ok := point.Elements[2].Kind.(ast.Array); !ok {
		t.Errorf("tags should be an array, got %s", repr.String(point.Elements[2]))
	}

	move := prog.Procedures[0]
	if move.Returns != nil || len(move.Params) != 2 {
		t.Fatalf("move: got %s", move)
	}
	if ref, ok := move.Params[0].Kind.(ast.StructRef); !ok || ref.Name != "point" {
		t.Errorf("move param 0: got %s", repr.String(move.Params[0]))
	}
	assign, ok := move.Body[0].(ast.FieldAssignment)
	if !ok {
		t.Fatalf("move body: got %s", repr.String(move.Body))
	}
	if _, ok := assign.Value.(ast.Binary).Left.(ast.IndirectField); !ok {
		t.Errorf("expected an indirect field read, got %s", repr.String(assign.Value))
	}

	sum := prog.Procedures[1]
	if sum.Returns == nil || *sum.Returns != ast.Integer {
		t.Errorf("sum should return integer: %s", sum)
	}
	loop, ok := sum.Body[4].(ast.Loop)
	if !ok || loop.Else != nil || len(loop.Body) != 2 {
		t.Fatalf("sum loop: got %s", repr.String(sum.Body[4]))
	}
	if _, ok := loop.Body[1].(ast.StepStatement); !ok {
		t.Errorf("expected a step statement, got %s", repr.String(loop.Body[1]))
	}

	main := prog.Main.Body
	if len(main) != 6 {
		t.Fatalf("main: got %s", repr.String(main))
	}
	call := main[1].(ast.CallStatement)
	if call.Procedure.Name != "move" || len(call.Arguments) != 2 {
		t.Errorf("call: got %s", repr.String(call))
	}
	if ret := main[5].(ast.Return); ret.Value != nil {
		t.Errorf("expected bare return, got %s", repr.String(ret))
	}
}

func TestBoundsSafety(t *testing.T) {
	tokens := tokenize(t, "gdef x integer")
	p := NewParser(tokens, nil)
	end := len(tokens)

	rules := map[string]func(pos int) error{
		"global":    func(pos int) error { _, _, err := p.parseGlobal(pos); return err },
		"struct":    func(pos int) error { _, _, err := p.parseStruct(pos); return err },
		"procedure": func(pos int) error { _, _, err := p.parseProcedure(pos); return err },
		"param":     func(pos int) error { _, _, err := p.parseParam(pos); return err },
		"entry":     func(pos int) error { _, _, err := p.parseEntry(pos); return err },
		"body":      func(pos int) error { _, _, err := p.parseBody(pos); return err },
		"statement": func(pos int) error { _, _, err := p.parseStatement(pos); return err },
		"call":      func(pos int) error { _, _, err := p.parseCall(pos); return err },
		"step":      func(pos int) error { _, _, err := p.parseStep(pos); return err },
		"expr":      func(pos int) error { _, _, err := p.parseExpression(pos); return err },
		"cond":      func(pos int) error { _, _, err := p.parseCondExpression(pos); return err },
		"typespec":  func(pos int) error { _, _, err := p.parseTypeSpec(pos); return err },
	}

	for name, rule := range rules {
		for _, pos := range []int{end, end + 1, end + 10} {
			err := rule(pos)
			var premature errors.PrematureEnd
			if !stderrors.As(err, &premature) {
				t.Errorf("%s at %d: expected PrematureEnd, got %v", name, pos, err)
				continue
			}
			if premature.Pos != end {
				t.Errorf("%s at %d: reported position %d", name, pos, premature.Pos)
			}
		}
	}
}

func TestTruncatedConstructsEndPrematurely(t *testing.T) {
	inputs := []string{
		"gdef",
		"gdef x",
		"gdef x array integer",
		"pdef f (",
		"pdef f ( integer",
		"main",
		"main begin",
		"main begin write",
		"main begin write (add 1",
		"main begin if (eq x 1) begin",
		"main begin call f(1,",
	}

	for _, input := range inputs {
		_, rec, err := parse(t, input)
		var premature errors.PrematureEnd
		if !stderrors.As(err, &premature) {
			t.Errorf("%q: expected PrematureEnd, got %v", input, err)
			continue
		}
		if rec.Count(diag.Error) != 1 {
			t.Errorf("%q: expected exactly one error, got %q", input, rec.String())
		}
	}
}

func TestBooleanOperatorsTakeConditionalOperands(t *testing.T) {
	prog := mustParse(t, "main begin write (and (eq x 1) (not (lt y 2))) end")
	write := prog.Main.Body[0].(ast.Write)
	and := write.Value.(ast.Binary)
	if and.Op != types.AND {
		t.Fatalf("got %s", repr.String(and))
	}
	if _, ok := and.Right.(ast.Unary); !ok {
		t.Errorf("expected not, got %s", repr.String(and.Right))
	}

	// plain operands are not accepted by boolean operators, even outside
	// of a condition
	for _, input := range []string{
		"main begin write (and x y) end",
		"main begin write (or true (eq x 1)) end",
		"main begin write (not x) end",
	} {
		_, rec, err := parse(t, input)
		var unexpected errors.UnexpectedToken
		if !stderrors.As(err, &unexpected) || unexpected.Expected != types.LPAREN.String() {
			t.Errorf("%q: expected a LeftBracket mismatch, got %v", input, err)
		}
		if rec.Count(diag.Error) != 1 {
			t.Errorf("%q: got %q", input, rec.String())
		}
	}

	// comparison operands stay plain expressions
	mustParse(t, "main begin if (eq (add x 1) xs[2]) begin end end")
}

func TestArithmeticInConditionIsAClassMismatch(t *testing.T) {
	for _, op := range []string{"add", "sub", "mul", "div", "rem", "neg"} {
		input := "main begin if (" + op + " x 1) begin write x end end"
		if op == "neg" {
			input = "main begin if (neg x) begin write x end end"
		}

		_, rec, err := parse(t, input)
		var mismatch errors.OperatorClassMismatch
		if !stderrors.As(err, &mismatch) {
			t.Errorf("%s: expected OperatorClassMismatch, got %v", op, err)
			continue
		}
		if mismatch.Got.Pos != 4 {
			t.Errorf("%s: reported at %d", op, mismatch.Got.Pos)
		}
		if rec.Count(diag.Error) != 1 {
			t.Errorf("%s: got %q", op, rec.String())
		}
	}

	// nested under and
	_, _, err := parse(t, "main begin if (and (eq x 1) (add x 1)) begin end end")
	var mismatch errors.OperatorClassMismatch
	if !stderrors.As(err, &mismatch) {
		t.Errorf("expected OperatorClassMismatch, got %v", err)
	}
}

func TestStepInsideExpression(t *testing.T) {
	prog := mustParse(t, "main begin write (add (addaddpre i) (subsub j)) end")
	bin := prog.Main.Body[0].(ast.Write).Value.(ast.Binary)

	pre := bin.Left.(ast.Step)
	post := bin.Right.(ast.Step)
	if !pre.Prefix() || !pre.Increment() || pre.Target.Name != "i" {
		t.Errorf("left: got %s", repr.String(pre))
	}
	if post.Prefix() || post.Increment() || post.Target.Name != "j" {
		t.Errorf("right: got %s", repr.String(post))
	}
}

func TestElseIsOptional(t *testing.T) {
	prog := mustParse(t, `main begin
		if (gt x 0) begin (subsub x) end else begin write "done" end
		if (gt x 0) begin (subsub x) end
	end`)

	first := prog.Main.Body[0].(ast.Loop)
	second := prog.Main.Body[1].(ast.Loop)
	if first.Else == nil || len(*first.Else) != 1 {
		t.Errorf("first: got %s", repr.String(first))
	}
	if second.Else != nil {
		t.Errorf("second: got %s", repr.String(second))
	}
}

func TestUnknownStatementIsRejected(t *testing.T) {
	_, rec, err := parse(t, "main begin x end")

	var unexpected errors.UnexpectedToken
	if !stderrors.As(err, &unexpected) {
		t.Fatalf("expected UnexpectedToken, got %v", err)
	}
	if unexpected.Expected != "valid expression" || unexpected.Got.Pos != 2 {
		t.Errorf("got %s", repr.String(unexpected))
	}
	expected := "Error: Identifier with value 'x' found in position 2. Expected to find valid expression"
	if rec.String() != expected {
		t.Errorf("got %q", rec.String())
	}
}

func TestSectionFailureWrapsRootCause(t *testing.T) {
	_, rec, err := parse(t, "gdef x integer gdef y 5 main begin end")

	var section errors.MalformedSection
	if !stderrors.As(err, &section) || section.Name != "Global Variable Declaration" {
		t.Fatalf("expected MalformedSection, got %v", err)
	}
	var unexpected errors.UnexpectedToken
	if !stderrors.As(err, &unexpected) || unexpected.Expected != "Type Specifier" {
		t.Fatalf("expected the root cause to be kept, got %v", err)
	}

	if rec.Count(diag.Error) != 1 || rec.Count(diag.Note) != 1 {
		t.Errorf("got %q", rec.String())
	}
}

func TestLaterDeclarationsAreNotAttempted(t *testing.T) {
	var seen []ast.TopLevel
	rec := &diag.Recorder{}
	tokens := tokenize(t, "pdef a () begin end pdef b ( text ) begin end pdef c () begin end main begin end")

	_, err := NewParser(tokens, rec).Parse(func(tl ast.TopLevel) error {
		seen = append(seen, tl)
		return nil
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(seen) != 1 || seen[0].(ast.ProcDecl).Name.Name != "a" {
		t.Errorf("got %s", repr.String(seen))
	}
	if rec.Count(diag.Error) != 1 {
		t.Errorf("got %q", rec.String())
	}
}

func TestTrailingTokens(t *testing.T) {
	prog, rec, err := parse(t, "main begin end stray")
	if err != nil {
		t.Fatal(err)
	}
	if prog.Trailing != 1 {
		t.Errorf("expected 1 trailing token, got %d", prog.Trailing)
	}
	if rec.Count(diag.Warning) != 1 || rec.Count(diag.Error) != 0 {
		t.Errorf("got %q", rec.String())
	}
}

func TestLenientEnd(t *testing.T) {
	tokens := tokenize(t, "gdef x integer")

	strict := &diag.Recorder{}
	_, err := NewParser(tokens, strict).Parse(nil)
	var premature errors.PrematureEnd
	if !stderrors.As(err, &premature) || strict.Count(diag.Error) != 1 {
		t.Errorf("strict: got %v, %q", err, strict.String())
	}

	lenient := &diag.Recorder{}
	p := NewParser(tokens, lenient)
	p.LenientEnd = true
	prog, err := p.Parse(nil)
	if !stderrors.As(err, &premature) {
		t.Errorf("lenient: expected PrematureEnd, got %v", err)
	}
	if len(lenient.Entries) != 0 {
		t.Errorf("lenient: expected no diagnostics, got %q", lenient.String())
	}
	if len(prog.Globals) != 1 {
		t.Errorf("lenient: the global should still be recognized")
	}
}

func TestLenientEndOnlyAtDeclarationBoundary(t *testing.T) {
	cases := []struct {
		src    string
		errors int
		notes  int
	}{
		{"", 0, 0},
		{"gdef x integer pdef f ( ) void begin end", 0, 0},
		{"gdef x", 1, 1},
		{"pdef f ( integer", 1, 1},
		{"main begin write", 1, 0},
	}

	for _, c := range cases {
		rec := &diag.Recorder{}
		p := NewParser(tokenize(t, c.src), rec)
		p.LenientEnd = true

		_, err := p.Parse(nil)
		var premature errors.PrematureEnd
		if !stderrors.As(err, &premature) {
			t.Errorf("%q: expected PrematureEnd, got %v", c.src, err)
		}
		if rec.Count(diag.Error) != c.errors || rec.Count(diag.Note) != c.notes {
			t.Errorf("%q: got diagnostics %q", c.src, rec.String())
		}
		if len(rec.Entries) > 0 && rec.Entries[0].Severity != diag.Error {
			t.Errorf("%q: the first diagnostic should be the error: %q", c.src, rec.String())
		}
	}
}
