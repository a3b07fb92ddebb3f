// Package diag is the diagnostics channel of the translator. It is kept
// apart from the emitted program text and from the trace log.
package diag

import (
	"fmt"
	"io"
	"strings"
)

type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "Error"
	case Warning:
		return "Warning"
	case Note:
		return "Note"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Reporter receives one call per diagnostic, at the point the problem is
// detected.
type Reporter interface {
	Report(s Severity, err error)
}

type Writer struct {
	w      io.Writer
	counts map[Severity]int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, counts: map[Severity]int{}}
}

func (w *Writer) Report(s Severity, err error) {
	w.counts[s]++
	fmt.Fprintf(w.w, "%s: %s\n", s, err)
}

func (w *Writer) Count(s Severity) int {
	return w.counts[s]
}

type Entry struct {
	Severity Severity
	Err      error
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.Severity, e.Err)
}

// Recorder keeps every diagnostic in memory.
type Recorder struct {
	Entries []Entry
}

func (r *Recorder) Report(s Severity, err error) {
	r.Entries = append(r.Entries, Entry{s, err})
}

func (r *Recorder) Count(s Severity) int {
	n := 0
	for _, e := range r.Entries {
		if e.Severity == s {
			n++
		}
	}
	return n
}

func (r *Recorder) String() string {
	var lines []string
	for _, e := range r.Entries {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n")
}

// Tee forwards every diagnostic to each reporter in order.
type Tee []Reporter

func (t Tee) Report(s Severity, err error) {
	for _, r := range t {
		r.Report(s, err)
	}
}

// Discard drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Severity, error) {}
