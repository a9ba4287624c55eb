package report

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Severity distinguishes a fatal diagnostic from an advisory one.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) prefix() string {
	if s == Warning {
		return "WARNING"
	}
	return "ERROR"
}

// Reporter accumulates diagnostics for one tool invocation and writes
// them as spec.md §7's "ERROR,"/"WARNING," one-line messages. It is
// constructed once per run and passed by value or pointer to whatever
// needs it; nothing in this package keeps process-global state.
type Reporter struct {
	log      zerolog.Logger
	errors   int
	warnings int
}

// New builds a Reporter writing to w (typically os.Stderr). Passing nil
// defaults to os.Stderr. The underlying zerolog.Logger is configured
// with a bare ConsoleWriter that prints only the message field, so the
// wire format on disk/stderr is exactly spec.md §7's plain "ERROR, ..."
// line rather than zerolog's default JSON record.
func New(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.MessageFieldName},
	}
	return &Reporter{log: zerolog.New(console)}
}

// Errorf records and emits a fatal diagnostic.
func (r *Reporter) Errorf(format string, args ...any) {
	r.emit(Error, format, args...)
}

// Warningf records and emits an advisory diagnostic.
func (r *Reporter) Warningf(format string, args ...any) {
	r.emit(Warning, format, args...)
}

// Report records and emits err at the given severity, using err's own
// message text as the diagnostic (no format string duplication of an
// already-wrapped error chain).
func (r *Reporter) Report(sev Severity, err error) {
	if err == nil {
		return
	}
	r.emit(sev, "%s", err.Error())
}

func (r *Reporter) emit(sev Severity, format string, args ...any) {
	switch sev {
	case Warning:
		r.warnings++
	default:
		r.errors++
	}
	ev := r.log.Log()
	ev.Msgf(sev.prefix()+", "+format, args...)
}

// Errors returns the number of Error-severity diagnostics reported.
func (r *Reporter) Errors() int { return r.errors }

// Warnings returns the number of Warning-severity diagnostics reported.
func (r *Reporter) Warnings() int { return r.warnings }

// HasErrors reports whether any fatal diagnostic was recorded, the
// condition the CLI uses to pick a non-zero exit code (spec.md §6 "Exit
// code: 0 on success ... non-zero on usage or parse error").
func (r *Reporter) HasErrors() bool { return r.errors > 0 }

// Summary formats the trailing "<n> error(s), <m> warning(s)" line.
func (r *Reporter) Summary() string {
	return pluralize(r.errors, "error") + ", " + pluralize(r.warnings, "warning")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return itoa(n) + " " + noun + "s"
}

// itoa avoids pulling in strconv for a single non-negative int formatter
// used only by Summary; errors/warnings counts are always >= 0.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// ErrorKind classifies a reported error for callers that want to branch
// on spec.md §7's named kinds without string-matching messages.
type ErrorKind int

const (
	KindParse ErrorKind = iota
	KindType
	KindConfiguration
	KindOverflow
	KindUnderflow
	KindResourceExhaustion
)

// KindError pairs a Kind with an underlying cause for errors.As-style
// dispatch, e.g. distinguishing a ConfigurationError from a ParseError
// at the CLI boundary.
type KindError struct {
	Kind  ErrorKind
	Cause error
}

func (e *KindError) Error() string { return e.Cause.Error() }
func (e *KindError) Unwrap() error { return e.Cause }

// NewKindError wraps err as a KindError of the given kind.
func NewKindError(kind ErrorKind, err error) error {
	return &KindError{Kind: kind, Cause: err}
}

// AsKindError extracts the ErrorKind from err, if any.
func AsKindError(err error) (ErrorKind, bool) {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Kind, true
	}
	return 0, false
}
