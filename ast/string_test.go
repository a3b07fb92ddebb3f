package ast

import "testing"

func TestProcDeclString(t *testing.T) {
	ret := Real
	p := ProcDecl{
		Name: Identifier{Name: "area"},
		Params: []Param{
			{Name: Identifier{Name: "n"}, Kind: Integer},
			{Name: Identifier{Name: "xs"}, Kind: Array{Elem: Real}},
			{Name: Identifier{Name: "p"}, Kind: StructRef{Name: "point"}},
		},
		Returns: &ret,
	}

	expected := "pdef area(integer n, array real xs, struct point p) real"
	if p.String() != expected {
		t.Errorf("got %q", p.String())
	}

	p.Returns = nil
	p.Params = nil
	if p.String() != "pdef area() void" {
		t.Errorf("got %q", p.String())
	}
}

func TestTypeToString(t *testing.T) {
	cases := []struct {
		kind     Type
		expected string
	}{
		{Boolean, "boolean"},
		{Array{Elem: Text, Size: "4"}, "array text 4"},
		{StructRef{Name: "pair"}, "struct pair"},
	}

	for _, c := range cases {
		if got := TypeToString(c.kind); got != c.expected {
			t.Errorf("got %q, expected %q", got, c.expected)
		}
	}
}
