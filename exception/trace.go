package exception

import (
	"runtime"
	"strconv"
	"strings"
)

const maxTraceDepth = 64

// Frame is a single resolved call frame.
type Frame struct {
	Function string
	File     string
	Line     int
}

// Trace is an ordered call stack: outermost caller first, the frame where the
// failure surfaced last.
type Trace []Frame

// Capture records the calling goroutine's stack. skip=0 makes the caller of
// Capture the deepest frame. Runtime frames are dropped.
func Capture(skip int) Trace {
	pcs := make([]uintptr, maxTraceDepth)
	// +2 skips runtime.Callers and Capture itself
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	var innermostFirst []Frame
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, "runtime.") {
			innermostFirst = append(innermostFirst, Frame{
				Function: f.Function,
				File:     f.File,
				Line:     f.Line,
			})
		}
		if !more {
			break
		}
	}

	t := make(Trace, len(innermostFirst))
	for i, f := range innermostFirst {
		t[len(t)-1-i] = f
	}
	return t
}

// Deepest returns the most recent frame, the one where the failure surfaced.
func (t Trace) Deepest() (Frame, bool) {
	if len(t) == 0 {
		return Frame{}, false
	}
	return t[len(t)-1], true
}

// String renders the trace deepest frame first, the way Go prints goroutine
// stacks.
func (t Trace) String() string {
	if len(t) == 0 {
		return emptyString
	}
	var b strings.Builder
	for i := len(t) - 1; i >= 0; i-- {
		f := t[i]
		fn := f.Function
		if fn == emptyString {
			fn = unknownFunction
		}
		b.WriteString(fn)
		b.WriteString("\n\t")
		b.WriteString(f.File)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.Line))
		b.WriteByte('\n')
	}
	return b.String()
}
