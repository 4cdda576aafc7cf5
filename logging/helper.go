package logging

import (
	stderrs "errors"
	"strings"

	smerrors "github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
)

// parseLevel parses a string log level into a zerolog.Level.
// Returns zerolog.NoLevel and an error if parsing fails.
func parseLevel(level string) (zerolog.Level, error) {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, err
	}
	return l, nil
}

// buildErrorChain walks an error's cause chain and returns:
//   - chain: outermost -> innermost error messages
//   - ops: operation identifiers for DetailedError links ("" if not available)
//   - root: the innermost error message
//   - rootOp: the innermost operation identifier if available
//
// The traversal prefers Station-Manager DetailedError.Cause() and then
// falls back to stdlib errors.Unwrap. It guards against excessive depth
// and repeated messages to avoid cycles.
func buildErrorChain(err error) (chain []string, ops []string, root string, rootOp string) {
	const maxDepth = 50
	visited := 0
	seen := map[string]bool{}

	for err != nil && visited < maxDepth {
		visited++

		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			chain = append(chain, dErr.Error())
			ops = append(ops, string(dErr.Op()))
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		ops = append(ops, "")
		err = stderrs.Unwrap(err)
	}

	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	if len(ops) > 0 {
		rootOp = ops[len(ops)-1]
	}
	return
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return ""
	}
	return strings.Join(chain, " -> ")
}

// locator is implemented by errors that know the source location where they
// surfaced, such as exception.Exception.
type locator interface {
	Location() (file string, line int)
}

// errorLocation returns the location of the first error in err's chain that
// records one.
func errorLocation(err error) (string, int, bool) {
	var l locator
	if !stderrs.As(err, &l) {
		return "", 0, false
	}
	file, line := l.Location()
	return file, line, true
}

// addErrorFields enriches e with the chain, root and location of err under
// keys prefixed by key.
func addErrorFields(e *zerolog.Event, key string, err error) {
	chain, ops, root, rootOp := buildErrorChain(err)
	if len(chain) > 0 {
		e.Strs(key+"_chain", chain)
		e.Str(key+"_root", root)
		e.Str(key+"_history", joinChain(chain))
		e.Strs(key+"_ops", ops)
		if rootOp != "" {
			e.Str(key+"_root_op", rootOp)
		}
	}
	if file, line, ok := errorLocation(err); ok {
		e.Str(key+"_file", file)
		e.Int(key+"_line", line)
	}
}

// logEventBuilder creates a log event for the given level on logger.
// In-flight events are counted so Close can wait for them. If the service is
// closed or the level is disabled, it returns a no-op LogEvent.
func logEventBuilder(s *Service, logger *zerolog.Logger, level zerolog.Level) LogEvent {
	if s == nil || logger == nil || !s.isInitialized.Load() {
		return newLogEvent(nil)
	}
	if logger.GetLevel() > level {
		return newLogEvent(nil)
	}

	// Acquire read lock to prevent Close() from running during log creation
	s.mu.RLock()

	// Double-check after acquiring lock
	if !s.isInitialized.Load() {
		s.mu.RUnlock()
		return newLogEvent(nil)
	}

	var event *zerolog.Event
	switch level {
	case zerolog.TraceLevel:
		event = logger.Trace()
	case zerolog.DebugLevel:
		event = logger.Debug()
	case zerolog.InfoLevel:
		event = logger.Info()
	case zerolog.WarnLevel:
		event = logger.Warn()
	case zerolog.ErrorLevel:
		event = logger.Error()
	}
	if event == nil {
		s.mu.RUnlock()
		return newLogEvent(nil)
	}

	s.activeOps.Add(1)
	s.wg.Add(1)
	s.mu.RUnlock()

	return newTrackedLogEvent(event, s)
}
