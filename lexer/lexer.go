package lexer

import (
	"io"
	"regexp"

	"github.com/alecthomas/participle/lexer"
	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/pcpp/diag"
	"github.com/pontaoski/pcpp/errors"
	"github.com/pontaoski/pcpp/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/pcpp", "lexer")

// Unnamed groups are dropped by the participle lexer, named ones become
// token types. Stray catches any single character nothing else claims.
var definition = lexer.Must(lexer.Regexp(`(?P<Comment>COM\b[^\n]*)` +
	`|(?P<Text>"[^"]*")` +
	`|(?P<Unterminated>"[^"]*)` +
	`|(?P<Real>[0-9]+\.[0-9]+)` +
	`|(?P<Punct>->|[(),\[\]:.])` +
	`|(?P<Word>[^\s"(),\[\]:.>-]+)` +
	`|(\s+)` +
	`|(?P<Stray>\S)`))

var (
	symbols = definition.Symbols()

	intPattern   = regexp.MustCompile(`^[0-9]+$`)
	identPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	spaceRun     = regexp.MustCompile(`\s+`)
)

// DefaultMaxTokens is the legacy token budget.
const DefaultMaxTokens = 1024

type Lexer struct {
	reader   io.Reader
	filename string

	// MaxTokens caps the number of valid tokens; zero means no limit.
	MaxTokens int
	Reporter  diag.Reporter
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		reader:    reader,
		filename:  filename,
		MaxTokens: DefaultMaxTokens,
		Reporter:  diag.Discard,
	}
}

func (l *Lexer) span(tok lexer.Token) types.Span {
	from := types.Position{Line: tok.Pos.Line, Column: tok.Pos.Column, Filename: l.filename}
	to := from
	to.Column += len(tok.Value)
	return types.Span{From: from, To: to}
}

// Tokenize reads the whole input and returns the valid tokens, numbered
// in order. Invalid words are reported as warnings and skipped. An
// unterminated text literal stops tokenizing; the tokens read so far are
// returned together with the error.
func (l *Lexer) Tokenize() ([]types.Token, error) {
	lex, err := definition.Lex(l.reader)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	var tokens []types.Token
	push := func(kind types.TokenKind, lexeme string, tok lexer.Token) {
		tokens = append(tokens, types.Token{
			Kind:     kind,
			Lexeme:   lexeme,
			Pos:      len(tokens),
			Location: l.span(tok),
		})
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			return tokens, tracerr.Wrap(err)
		}
		if tok.Type == lexer.EOF {
			break
		}
		if l.MaxTokens > 0 && len(tokens) >= l.MaxTokens {
			plog.Warningf("token limit of %d reached, ignoring the rest of %s", l.MaxTokens, l.filename)
			break
		}

		switch tok.Type {
		case symbols["Comment"]:
			continue
		case symbols["Text"]:
			push(types.TEXTLIT, spaceRun.ReplaceAllString(tok.Value, " "), tok)
		case symbols["Unterminated"]:
			err := errors.UnterminatedText{Text: tok.Value, After: len(tokens)}
			l.Reporter.Report(diag.Error, err)
			return tokens, tracerr.Wrap(err)
		case symbols["Real"]:
			push(types.REALLIT, tok.Value, tok)
		case symbols["Punct"], symbols["Word"]:
			kind := classify(tok.Value)
			if kind == types.ILLEGAL {
				l.Reporter.Report(diag.Warning, errors.InvalidToken{Word: tok.Value, After: len(tokens)})
				continue
			}
			push(kind, tok.Value, tok)
		default:
			l.Reporter.Report(diag.Warning, errors.InvalidToken{Word: tok.Value, After: len(tokens)})
		}
	}

	plog.Debugf("%s: %d valid tokens", l.filename, len(tokens))
	return tokens, nil
}

func classify(word string) types.TokenKind {
	if kind, ok := types.Lexemes[word]; ok {
		return kind
	}

	switch {
	case intPattern.MatchString(word):
		return types.INTLIT
	case identPattern.MatchString(word):
		return types.IDENT
	}

	return types.ILLEGAL
}
