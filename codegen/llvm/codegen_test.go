package llvm

import (
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/repr"

	"github.com/pontaoski/pcpp/ast"
	"github.com/pontaoski/pcpp/errors"
	"github.com/pontaoski/pcpp/lexer"
	"github.com/pontaoski/pcpp/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	tokens, err := lexer.NewLexer(strings.NewReader(src), "test").Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	prog, err := parser.NewParser(tokens, nil).Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func generate(t *testing.T, src string) string {
	t.Helper()
	prog := parse(t, src)
	m, err := Generate(prog)
	if err != nil {
		t.Fatalf("%s\n%s", err, repr.String(prog, repr.Indent("  ")))
	}
	return m.String()
}

const program = `
gdef total real
struct point begin
	x real
	y real
end
pdef shift ( struct point p, real dx ) void
begin
	sset p -> x (add p . x dx)
end
pdef sum ( array integer xs, integer n ) integer
begin
	vdef acc integer
	vdef i integer
	set acc 0
	set i 0
	if (lt i n) begin
		set acc (add acc xs[i])
		(addadd i)
	end
	return acc
end
main begin
	vdef xs array integer 4
	build origin : point
	aset xs [0] 3
	call shift(origin, 2)
	set total (mul call sum(xs, 4) 0.5)
	write total
	write "done"
	return 0
end
`

func TestGenerateProgram(t *testing.T) {
	out := generate(t, program)

	for _, want := range []string{
		"define i32 @main()",
		"%point = type { double, double }",
		"@total = global double",
		"define void @shift(",
		"define i64 @sum(",
		"@printf(",
		"loop.cond.0",
		"sitofp",
		"@" + TypeInfoName,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestEveryBlockTerminated(t *testing.T) {
	prog := parse(t, `pdef f ( integer n ) integer begin
		if (gt n 0) begin return n end
		return 0
	end
	main begin end`)

	m, err := Generate(prog)
	if err != nil {
		t.Fatal(err)
	}
	for _, fn := range m.Funcs {
		for _, b := range fn.Blocks {
			if b.Term == nil {
				t.Errorf("block %s of %s has no terminator", b.Name(), fn.Name())
			}
		}
	}
}

func TestTypeInfo(t *testing.T) {
	prog := parse(t, "pdef half ( integer n ) real begin return (div n 2.0) end main begin end")

	info := newTypeInfo(prog.Procedures)
	if info.Procedures["half"] != "pdef half(integer n) real" {
		t.Errorf("got %s", repr.String(info))
	}
}

func TestReadTypeInfo(t *testing.T) {
	m, err := Generate(parse(t, program))
	if err != nil {
		t.Fatal(err)
	}

	fi, err := ioutil.TempFile("", "*.ll")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fi.Name())
	if _, err := fi.WriteString(m.String()); err != nil {
		t.Fatal(err)
	}
	fi.Close()

	procs, err := ReadTypeInfo(fi.Name())
	if err != nil {
		t.Fatal(err)
	}
	if len(procs) != 2 || procs["shift"] != "pdef shift(struct point p, real dx) void" {
		t.Errorf("got %s", repr.String(procs))
	}
}

func TestTypeInfoMissing(t *testing.T) {
	m, err := Generate(parse(t, "main begin end"))
	if err != nil {
		t.Fatal(err)
	}
	m.Globals = nil

	if _, err := typeInfoOf(m); err == nil {
		t.Error("expected an error for a module without signatures")
	}
}

func TestGenerateErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"undefined variable", "main begin write y end", errors.UndefinedName{}},
		{"undefined procedure", "main begin call nope() end", errors.UndefinedName{}},
		{"undefined element", "struct s begin a integer end main begin build v : s write v . b end", errors.UndefinedName{}},
		{"read text", "main begin vdef t text read t end", errors.Unsupported{}},
		{"text arithmetic", `main begin write (add "a" 1) end`, errors.Unsupported{}},
		{"argument count", "pdef f ( integer n ) void begin end main begin call f() end", errors.Unsupported{}},
		{"reserved name", "pdef printf ( ) void begin end main begin end", errors.Unsupported{}},
		{"global named like a builtin", "gdef printf integer main begin write 1 end", errors.Unsupported{}},
		{"global declared twice", "gdef x integer gdef x real main begin end", errors.Unsupported{}},
		{"global named like a procedure", "gdef f integer pdef f ( ) void begin end main begin end", errors.Unsupported{}},
		{"procedure declared twice", "pdef f ( ) void begin end pdef f ( ) void begin end main begin end", errors.Unsupported{}},
	}

	for _, c := range cases {
		_, err := Generate(parse(t, c.src))
		switch c.want.(type) {
		case errors.UndefinedName:
			if _, ok := err.(errors.UndefinedName); !ok {
				t.Errorf("%s: expected an undefined name, got %v", c.name, err)
			}
		case errors.Unsupported:
			if _, ok := err.(errors.Unsupported); !ok {
				t.Errorf("%s: expected an unsupported construct, got %v", c.name, err)
			}
		}
	}
}
