package errors

import (
	"fmt"

	"github.com/pontaoski/pcpp/types"
)

type UnexpectedToken struct {
	Expected string
	Got      types.Token
}

func (e UnexpectedToken) Error() string {
	return fmt.Sprintf("%s with value '%s' found in position %d. Expected to find %s", e.Got.Kind, e.Got.Lexeme, e.Got.Pos, e.Expected)
}

// PrematureEnd is returned when the token stream runs out while a
// construct is still expected. Pos is the stream length.
type PrematureEnd struct {
	Expected string
	Pos      int
}

func (e PrematureEnd) Error() string {
	return fmt.Sprintf("Unexpected end of input in position %d. Expected to find %s", e.Pos, e.Expected)
}

type OperatorClassMismatch struct {
	Got types.Token
}

func (e OperatorClassMismatch) Error() string {
	return fmt.Sprintf("Arithmetic operation used in place of conditional operation in position %d", e.Got.Pos)
}

// MalformedSection wraps the root cause of a failed top-level section.
type MalformedSection struct {
	Name string
	Err  error
}

func (e MalformedSection) Error() string {
	return fmt.Sprintf("Malformed content in %s section.", e.Name)
}

func (e MalformedSection) Unwrap() error {
	return e.Err
}

type InvalidToken struct {
	Word  string
	After int
}

func (e InvalidToken) Error() string {
	return fmt.Sprintf("Invalid token: %s found after token %d", e.Word, e.After)
}

type UnterminatedText struct {
	Text  string
	After int
}

func (e UnterminatedText) Error() string {
	return fmt.Sprintf("Non-terminated string: %s found after token %d", e.Text, e.After)
}

type TrailingContent struct {
	Count int
}

func (e TrailingContent) Error() string {
	return fmt.Sprintf("Invalid content found after main routine, %d additional tokens found", e.Count)
}

type UndefinedName struct {
	Name string
	What string
}

func (e UndefinedName) Error() string {
	return fmt.Sprintf("%s '%s' is not defined", e.What, e.Name)
}

type Unsupported struct {
	Construct string
	Reason    string
}

func (e Unsupported) Error() string {
	return fmt.Sprintf("%s is not supported by this target: %s", e.Construct, e.Reason)
}
