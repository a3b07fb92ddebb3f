// Package translator drives one translation: lexing, recognition and
// emission for the selected target.
package translator

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/pcpp/ast"
	"github.com/pontaoski/pcpp/codegen/cpp"
	"github.com/pontaoski/pcpp/codegen/llvm"
	"github.com/pontaoski/pcpp/diag"
	"github.com/pontaoski/pcpp/errors"
	"github.com/pontaoski/pcpp/lexer"
	"github.com/pontaoski/pcpp/parser"
	"github.com/pontaoski/pcpp/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/pcpp", "translator")

type Target string

const (
	CPP  Target = "cpp"
	LLVM Target = "llvm"
)

func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case "", CPP:
		return CPP, nil
	case LLVM:
		return LLVM, nil
	}
	return "", fmt.Errorf("unknown target %q, expected %s or %s", s, CPP, LLVM)
}

type Options struct {
	Indent     string
	Target     Target
	LenientEnd bool
	MaxTokens  int
}

type Outcome int

const (
	Translated Outcome = iota
	TranslatedWithTrailing
	Truncated
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Translated:
		return "Translated"
	case TranslatedWithTrailing:
		return "TranslatedWithTrailing"
	case Truncated:
		return "Truncated"
	case Failed:
		return "Failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Ok is true for the outcomes where the whole program was emitted.
func (o Outcome) Ok() bool {
	return o == Translated || o == TranslatedWithTrailing
}

type Result struct {
	Outcome  Outcome
	Trailing int
	Program  *ast.Program
}

// Source lexes r and translates the resulting tokens. An unterminated text
// literal fails the translation before anything is emitted.
func Source(r io.Reader, filename string, out io.Writer, rep diag.Reporter, opts Options) (Result, error) {
	if rep == nil {
		rep = diag.Discard
	}

	l := lexer.NewLexer(r, filename)
	l.Reporter = rep
	l.MaxTokens = opts.MaxTokens

	tokens, err := l.Tokenize()
	if err != nil {
		return Result{Outcome: Failed}, err
	}

	return Translate(tokens, out, rep, opts)
}

// Translate recognizes tokens and writes the translation to out. For the
// C++ target output is written as each top-level declaration is
// recognized, so a failure leaves everything before it in out. The LLVM
// target needs the whole program and writes nothing on failure.
func Translate(tokens []types.Token, out io.Writer, rep diag.Reporter, opts Options) (Result, error) {
	if rep == nil {
		rep = diag.Discard
	}

	p := parser.NewParser(tokens, rep)
	p.LenientEnd = opts.LenientEnd

	var (
		prog *ast.Program
		err  error
	)

	switch opts.Target {
	case "", CPP:
		e := cpp.NewEmitter(out, opts.Indent)
		e.Preamble()
		prog, err = p.Parse(func(tl ast.TopLevel) error {
			e.TopLevel(tl)
			return e.Err()
		})
		if err == nil {
			err = e.Err()
		}
	case LLVM:
		prog, err = p.Parse(nil)
		if err == nil {
			err = lower(prog, out, rep)
		}
	default:
		_, err = ParseTarget(string(opts.Target))
	}

	res := Result{Program: prog}
	if prog != nil {
		res.Trailing = prog.Trailing
	}

	if err != nil {
		res.Outcome = Failed
		if stderrors.As(err, &errors.PrematureEnd{}) {
			res.Outcome = Truncated
		}
		plog.Debugf("translation stopped: %v", err)
		return res, tracerr.Wrap(err)
	}

	res.Outcome = Translated
	if res.Trailing > 0 {
		res.Outcome = TranslatedWithTrailing
	}
	return res, nil
}

func lower(prog *ast.Program, out io.Writer, rep diag.Reporter) error {
	m, err := llvm.Generate(prog)
	if err != nil {
		rep.Report(diag.Error, err)
		return err
	}

	_, err = io.WriteString(out, m.String())
	return err
}
