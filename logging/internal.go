package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logFileName stamps a per-run file name from t, e.g. 02_18_2026_10_30_45.log.
func logFileName(t time.Time) string {
	return t.Format(logFileTimeLayout) + logFileExt
}

func (s *Service) initializeFileWriter(dir string) *lumberjack.Logger {
	s.logFilePath = filepath.Join(dir, logFileName(s.clock()))

	return &lumberjack.Logger{
		Filename: s.logFilePath,
		MaxSize:  unrotatedMaxSizeMB,
	}
}

func (s *Service) consoleWriter() io.Writer {
	out := s.Console
	if out == nil {
		out = os.Stderr
	}
	if s.LoggingConfig.ConsoleFormat != ConsoleFormatPretty {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:           out,
		NoColor:       s.LoggingConfig.ConsoleNoColor,
		PartsOrder:    []string{TimestampFieldName, zerolog.LevelFieldName, LoggerFieldName, EventFieldName},
		FieldsExclude: []string{TimestampFieldName, LoggerFieldName, EventFieldName},
	}
}

func (s *Service) initializeWriters(dir string) []io.Writer {
	var writers []io.Writer

	if s.LoggingConfig.FileLogging {
		s.fileWriter = s.initializeFileWriter(dir)
		writers = append(writers, s.fileWriter)
	}
	if s.LoggingConfig.ConsoleLogging {
		writers = append(writers, s.consoleWriter())
	}

	return writers
}

// sinkGuard fans records out to the configured writers until it is closed.
// Writes after close are dropped so a late record cannot make lumberjack
// reopen the log file.
type sinkGuard struct {
	mu     sync.Mutex
	out    io.Writer
	file   *lumberjack.Logger
	closed bool
}

func newSinkGuard(file *lumberjack.Logger, writers ...io.Writer) *sinkGuard {
	return &sinkGuard{out: io.MultiWriter(writers...), file: file}
}

func (g *sinkGuard) Write(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return len(p), nil
	}
	return g.out.Write(p)
}

func (g *sinkGuard) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	if g.file == nil {
		return nil
	}
	return g.file.Close()
}

// timestampHook stamps every record with the current UTC time.
type timestampHook struct {
	now func() time.Time
}

func (h timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(TimestampFieldName, h.now().UTC().Format(time.RFC3339Nano))
}
