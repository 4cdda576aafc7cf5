// Package exception attaches source-location context to errors.
//
// An Exception records the file and line of the deepest frame of a trace,
// a normalized message, and an optional rendered traceback. Where the trace
// comes from is chosen explicitly with Details:
//
//	exception.New("load failed", exception.NoDetails()) // <unknown> / -1
//	exception.New(err, exception.Here())                 // caller of Here
//	exception.New(err, exception.FromError(err))         // innermost traced error in err's chain
//
// Raise and Wrap cover the two common cases:
//
//	if cfg == nil {
//		return exception.Raise("config is nil")
//	}
//	...
//	return exception.Wrap(fmt.Errorf("query: %w", err))
package exception
