package exception

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	emptyString     = ""
	unknownFile     = "<unknown>"
	unknownFunction = "<unknown>"
	unknownLine     = -1
	defaultKindName = "exception.Exception"
)

// Exception decorates a failure with the source location where it surfaced.
// All fields are fixed at construction.
type Exception struct {
	FileName  string
	Line      int
	Message   string
	TraceText string

	kind  string
	cause error
	trace Trace
}

// New builds an Exception from message, which may be an error or any other
// value, using details to find the location. It never panics; when no trace
// is available the location is "<unknown>" at line -1.
func New(message any, details Details) *Exception {
	e := &Exception{
		FileName: unknownFile,
		Line:     unknownLine,
		Message:  fmt.Sprint(message),
	}

	msgErr, _ := message.(error)
	detailsErr, trace := details.resolve()

	e.cause = msgErr
	if e.cause == nil {
		e.cause = detailsErr
	}
	e.trace = trace

	if f, ok := trace.Deepest(); ok {
		e.FileName = f.File
		e.Line = f.Line
	}

	switch {
	case detailsErr != nil:
		e.kind = fmt.Sprintf("%T", detailsErr)
	case details.Kind() == KindTrace && msgErr != nil:
		e.kind = fmt.Sprintf("%T", msgErr)
	case details.Kind() == KindTrace:
		e.kind = defaultKindName
	}

	if e.kind != emptyString && len(trace) > 0 {
		e.TraceText = e.kind + ": " + e.Message + "\n" + trace.String()
	}

	return e
}

// Raise returns an Exception located at its caller.
func Raise(message any) *Exception {
	return New(message, WithTrace(Capture(1)))
}

// Wrap decorates err with the deepest location recorded anywhere in its
// chain. Wrap(nil) is a nil *Exception; returned through an error interface
// it is non-nil, so every method tolerates a nil receiver.
func Wrap(err error) *Exception {
	if err == nil {
		return nil
	}
	return New(err, FromError(err))
}

func (e *Exception) Error() string {
	if e == nil {
		return emptyString
	}
	return e.String()
}

// String renders the one-line summary, followed by the traceback when one
// was captured.
func (e *Exception) String() string {
	if e == nil {
		return emptyString
	}
	var b strings.Builder
	b.WriteString("Error in [")
	b.WriteString(e.FileName)
	b.WriteString("] at line [")
	b.WriteString(strconv.Itoa(e.Line))
	b.WriteString("] | Message: ")
	b.WriteString(e.Message)
	if e.TraceText != emptyString {
		b.WriteString("\nTraceback:\n")
		b.WriteString(e.TraceText)
	}
	return b.String()
}

// GoString is the tagged debugging form used by %#v.
func (e *Exception) GoString() string {
	if e == nil {
		return "(*exception.Exception)(nil)"
	}
	return fmt.Sprintf("exception.Exception{file=%q, line=%d, message=%q}", e.FileName, e.Line, e.Message)
}

func (e *Exception) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// StackTrace returns the trace the location was taken from, so wrapping an
// Exception again keeps the innermost location.
func (e *Exception) StackTrace() Trace {
	if e == nil {
		return nil
	}
	return e.trace
}

// Location returns the file and line where the failure surfaced.
func (e *Exception) Location() (string, int) {
	if e == nil {
		return unknownFile, unknownLine
	}
	return e.FileName, e.Line
}
