package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/utils"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Service owns the process-wide logging pipeline. Create one at startup,
// Initialize it, and hand it (or loggers obtained from it) to the code that
// needs to log.
type Service struct {
	// WorkingDir anchors a relative LogDir. Defaults to the process working
	// directory.
	WorkingDir    string
	LoggingConfig *LoggingConfig
	// Console receives console records. Defaults to os.Stderr.
	Console io.Writer
	// Clock defaults to time.Now.
	Clock func() time.Time

	logger        atomic.Pointer[zerolog.Logger]
	isInitialized atomic.Bool
	fileWriter    *lumberjack.Logger
	sink          *sinkGuard
	logFilePath   string

	named     map[string]Logger
	mu        sync.RWMutex
	wg        sync.WaitGroup
	activeOps atomic.Int64
}

// NewService returns a Service for cfg, or for DefaultLoggingConfig when cfg
// is nil.
func NewService(cfg *LoggingConfig) *Service {
	if cfg == nil {
		def := DefaultLoggingConfig()
		cfg = &def
	}
	return &Service{LoggingConfig: cfg}
}

// Initialize creates the log directory, stamps the log file name and builds
// the logger. Calling it again on an initialized Service does nothing.
func (s *Service) Initialize() error {
	const op errors.Op = "logging.Service.Initialize"
	if s == nil {
		return errors.New(op).Msg(errMsgNilService)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isInitialized.Load() {
		return nil
	}

	if err := validateConfig(s.LoggingConfig); err != nil {
		return err
	}

	if s.WorkingDir == emptyString {
		wd, err := os.Getwd()
		if err != nil {
			return errors.New(op).Err(err).Msg(errMsgWorkingDir)
		}
		s.WorkingDir = wd
	}

	dir := s.LoggingConfig.LogDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.WorkingDir, dir)
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return errors.New(op).Err(err).Msg(errMsgCreateDir)
	}

	level, err := parseLevel(s.LoggingConfig.Level)
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgBadLevel)
	}

	writers := s.initializeWriters(dir)
	s.sink = newSinkGuard(s.fileWriter, writers...)

	logger := zerolog.New(s.sink).Level(level).Hook(timestampHook{now: s.clock})
	s.logger.Store(&logger)
	s.named = make(map[string]Logger)

	s.isInitialized.Store(true)
	return nil
}

// LogFilePath is the file this Service writes to; empty when file logging is
// disabled or before Initialize.
func (s *Service) LogFilePath() string {
	if s == nil {
		return emptyString
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logFilePath
}

// Logger returns the handle for a logical name. Only the base name of a path
// is used, and an empty name falls back to the executable name. Handles are
// created once per name and shared afterwards.
func (s *Service) Logger(name string) Logger {
	if s == nil || !s.isInitialized.Load() {
		return &noopLogger{}
	}
	name = loggerName(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isInitialized.Load() {
		return &noopLogger{}
	}
	if l, ok := s.named[name]; ok {
		return l
	}

	child := s.logger.Load().With().Str(LoggerFieldName, name).Logger()
	l := &contextLogger{logger: &child, parent: s}
	s.named[name] = l
	return l
}

// Close waits (bounded by ShutdownTimeoutMS) for in-flight records, then
// releases the log file. It is safe to call more than once; records started
// after Close are dropped.
func (s *Service) Close() error {
	const op errors.Op = "logging.Service.Close"
	if s == nil {
		return nil
	}

	s.mu.Lock()
	if !s.isInitialized.Load() {
		s.mu.Unlock()
		return nil
	}
	s.isInitialized.Store(false)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	timeout := time.Duration(s.LoggingConfig.ShutdownTimeoutMS) * time.Millisecond
	select {
	case <-done:
	case <-time.After(timeout):
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Store(nil)
	s.named = nil
	if err := s.sink.Close(); err != nil {
		return errors.New(op).Err(err).Msg(errMsgCloseFile)
	}
	return nil
}

// DebugWith returns a LogEvent for structured Debug-level logging on the
// unnamed root logger.
func (s *Service) DebugWith() LogEvent {
	return logEventBuilder(s, s.rootLogger(), zerolog.DebugLevel)
}

// InfoWith returns a LogEvent for structured Info-level logging.
// Example: svc.InfoWith().Str("model", name).Msg("model loaded")
func (s *Service) InfoWith() LogEvent {
	return logEventBuilder(s, s.rootLogger(), zerolog.InfoLevel)
}

// WarnWith returns a LogEvent for structured Warn-level logging.
func (s *Service) WarnWith() LogEvent {
	return logEventBuilder(s, s.rootLogger(), zerolog.WarnLevel)
}

// ErrorWith returns a LogEvent for structured Error-level logging.
// Example: svc.ErrorWith().Err(err).Str("stage", "retrieval").Msg("search failed")
func (s *Service) ErrorWith() LogEvent {
	return logEventBuilder(s, s.rootLogger(), zerolog.ErrorLevel)
}

// With returns a LogContext for creating a child logger with pre-populated fields.
func (s *Service) With() LogContext {
	if s == nil || !s.isInitialized.Load() {
		return &noopLogContext{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	logger := s.logger.Load()
	if !s.isInitialized.Load() || logger == nil {
		return &noopLogContext{}
	}
	return &logContext{
		context: logger.With(),
		service: s,
	}
}

func (s *Service) rootLogger() *zerolog.Logger {
	if s == nil {
		return nil
	}
	return s.logger.Load()
}

func (s *Service) clock() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// loggerName reduces name to its base, falling back to the executable name.
func loggerName(name string) string {
	if name != emptyString {
		return filepath.Base(name)
	}
	exe, err := utils.ExecName(true)
	if err != nil || exe == emptyString {
		return DefaultLoggerName
	}
	return exe
}
