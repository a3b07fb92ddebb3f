package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type KindDecls struct {
	Kinds []*KindDecl `@@*`
}

type KindDecl struct {
	Name    string   `"kind" @Ident`
	Display string   `@String`
	Lexemes []string `( "=" @String ( "|" @String )* )?`
	I       struct{} `";"`
}

var defParser = participle.MustBuild(&KindDecls{}, participle.Unquote("String"))

func (k *KindDecls) validate() error {
	names := map[string]bool{}
	lexemes := map[string]string{}
	for _, decl := range k.Kinds {
		if names[decl.Name] {
			return fmt.Errorf("kind %s declared more than once", decl.Name)
		}
		names[decl.Name] = true

		for _, lexeme := range decl.Lexemes {
			if other, ok := lexemes[lexeme]; ok {
				return fmt.Errorf("lexeme %q used by both %s and %s", lexeme, other, decl.Name)
			}
			lexemes[lexeme] = decl.Name
		}
	}
	return nil
}

func GenerateKinds(pkgname string, k *KindDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by kindgen. DO NOT EDIT.")

	f.Var().Id("kindNames").Op("=").Map(Id("TokenKind")).String().Values(DictFunc(func(d Dict) {
		for _, decl := range k.Kinds {
			d[Id(decl.Name)] = Lit(decl.Display)
		}
	}))

	f.Func().Params(Id("t").Id("TokenKind")).Id("String").Params().String().Block(
		If(List(Id("name"), Id("ok")).Op(":=").Id("kindNames").Index(Id("t")), Id("ok")).Block(
			Return(Id("name")),
		),
		Return(Qual("fmt", "Sprintf").Call(Lit("TokenKind(%d)"), Int().Call(Id("t")))),
	)

	f.Comment("Lexemes maps every fixed spelling to its kind.")
	f.Var().Id("Lexemes").Op("=").Map(String()).Id("TokenKind").Values(DictFunc(func(d Dict) {
		for _, decl := range k.Kinds {
			for _, lexeme := range decl.Lexemes {
				d[Lit(lexeme)] = Id(decl.Name)
			}
		}
	}))

	return fmt.Sprintf("%#v", f)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: kindgen <kinds.def> <out.go> <package>")
		os.Exit(2)
	}

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	decls := KindDecls{}
	err = defParser.ParseBytes(inData, &decls)
	if err != nil {
		panic(err)
	}
	if err := decls.validate(); err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateKinds(pkgname, &decls)), 0o644)
	if err != nil {
		panic(err)
	}
}
