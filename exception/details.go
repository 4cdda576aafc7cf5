package exception

// Kind discriminates the Details variants.
type Kind int

const (
	// KindNone carries no trace information; the exception gets sentinel
	// location values.
	KindNone Kind = iota
	// KindTrace carries a trace captured at the error site.
	KindTrace
	// KindError takes location information from an error value.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTrace:
		return "trace"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Details tells New where to look for location information. The zero value
// is KindNone.
type Details struct {
	kind  Kind
	trace Trace
	err   error
}

// StackTracer is implemented by errors that remember where they were created.
type StackTracer interface {
	StackTrace() Trace
}

// NoDetails returns the KindNone variant.
func NoDetails() Details {
	return Details{}
}

// WithTrace wraps an already captured trace.
func WithTrace(t Trace) Details {
	return Details{kind: KindTrace, trace: t}
}

// Here captures a trace whose deepest frame is the caller of Here.
func Here() Details {
	return WithTrace(Capture(1))
}

// FromError takes location information from err.
func FromError(err error) Details {
	return Details{kind: KindError, err: err}
}

// Kind reports which variant d holds.
func (d Details) Kind() Kind {
	return d.kind
}

// resolve yields the error and the trace d points at.
func (d Details) resolve() (cause error, trace Trace) {
	switch d.kind {
	case KindTrace:
		return nil, d.trace
	case KindError:
		return d.err, deepestTrace(d.err)
	default:
		return nil, nil
	}
}

// deepestTrace walks err's chain and returns the trace of the innermost error
// that carries one. Joined errors are searched branch by branch and the first
// branch holding a trace wins.
func deepestTrace(err error) Trace {
	return deepestTraceAt(err, 0)
}

func deepestTraceAt(err error, depth int) Trace {
	if err == nil || depth >= maxTraceDepth {
		return nil
	}

	var inner Trace
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		inner = deepestTraceAt(u.Unwrap(), depth+1)
	case interface{ Unwrap() []error }:
		for _, branch := range u.Unwrap() {
			if inner = deepestTraceAt(branch, depth+1); len(inner) > 0 {
				break
			}
		}
	}
	if len(inner) > 0 {
		return inner
	}

	if st, ok := err.(StackTracer); ok {
		return st.StackTrace()
	}
	return nil
}
