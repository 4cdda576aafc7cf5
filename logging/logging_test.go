package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.February, 18, 10, 30, 45, 0, time.FixedZone("CET", 3600))

// Helper function to create a valid logging config
func validLoggingConfig() *LoggingConfig {
	cfg := DefaultLoggingConfig()
	cfg.ShutdownTimeoutMS = 20
	return &cfg
}

// newTestService builds and initializes a Service writing to a temp dir and
// an in-memory console.
func newTestService(t *testing.T, cfg *LoggingConfig) (*Service, *bytes.Buffer) {
	t.Helper()
	var console bytes.Buffer
	svc := NewService(cfg)
	svc.WorkingDir = t.TempDir()
	svc.Console = &console
	svc.Clock = func() time.Time { return fixedNow }
	require.NoError(t, svc.Initialize())
	t.Cleanup(func() { _ = svc.Close() })
	return svc, &console
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestService_Initialize(t *testing.T) {
	t.Run("successful initialization", func(t *testing.T) {
		svc, _ := newTestService(t, validLoggingConfig())
		assert.True(t, svc.isInitialized.Load())
		assert.NotNil(t, svc.logger.Load())
		assert.NotNil(t, svc.fileWriter)
	})

	t.Run("nil service", func(t *testing.T) {
		var svc *Service
		err := svc.Initialize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), errMsgNilService)
	})

	t.Run("nil config", func(t *testing.T) {
		svc := &Service{WorkingDir: t.TempDir()}
		err := svc.Initialize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), errMsgNilConfig)
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := validLoggingConfig()
		cfg.Level = "chatty"
		svc := NewService(cfg)
		svc.WorkingDir = t.TempDir()
		err := svc.Initialize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), errMsgConfigInvalid)
		assert.False(t, svc.isInitialized.Load())
	})

	t.Run("invalid console format", func(t *testing.T) {
		cfg := validLoggingConfig()
		cfg.ConsoleFormat = "xml"
		svc := NewService(cfg)
		svc.WorkingDir = t.TempDir()
		require.Error(t, svc.Initialize())
	})

	t.Run("no channels", func(t *testing.T) {
		cfg := validLoggingConfig()
		cfg.ConsoleLogging = false
		cfg.FileLogging = false
		svc := NewService(cfg)
		svc.WorkingDir = t.TempDir()
		err := svc.Initialize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), errMsgNoChannels)
	})

	t.Run("multiple initialize calls", func(t *testing.T) {
		svc, _ := newTestService(t, validLoggingConfig())
		first := svc.LogFilePath()

		svc.Clock = func() time.Time { return fixedNow.Add(time.Hour) }
		require.NoError(t, svc.Initialize())
		assert.Equal(t, first, svc.LogFilePath())
	})

	t.Run("creates log directory", func(t *testing.T) {
		svc, _ := newTestService(t, validLoggingConfig())
		info, err := os.Stat(filepath.Join(svc.WorkingDir, "logs"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("existing log directory", func(t *testing.T) {
		wd := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(wd, "logs"), 0o755))
		svc := NewService(validLoggingConfig())
		svc.WorkingDir = wd
		require.NoError(t, svc.Initialize())
		require.NoError(t, svc.Close())
	})

	t.Run("directory creation failure", func(t *testing.T) {
		wd := t.TempDir()
		blocker := filepath.Join(wd, "logs")
		require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

		svc := NewService(validLoggingConfig())
		svc.WorkingDir = wd
		err := svc.Initialize()
		require.Error(t, err)

		var pathErr *fs.PathError
		assert.True(t, errors.As(err, &pathErr))
		assert.False(t, svc.isInitialized.Load())
	})

	t.Run("console only", func(t *testing.T) {
		cfg := validLoggingConfig()
		cfg.FileLogging = false
		svc, _ := newTestService(t, cfg)
		assert.Nil(t, svc.fileWriter)
		assert.Empty(t, svc.LogFilePath())
	})
}

func TestLogFilePath(t *testing.T) {
	svc, _ := newTestService(t, validLoggingConfig())

	want := filepath.Join(svc.WorkingDir, "logs", "02_18_2026_10_30_45.log")
	assert.Equal(t, want, svc.LogFilePath())
	assert.Equal(t, svc.LogFilePath(), svc.LogFilePath())
}

func TestLogFileName_DiffersAcrossSeconds(t *testing.T) {
	a := logFileName(fixedNow)
	b := logFileName(fixedNow.Add(time.Second))
	assert.NotEqual(t, a, b)
	assert.Equal(t, "02_18_2026_10_30_46.log", b)
}

func TestSeparateServicesInDifferentSeconds(t *testing.T) {
	wd := t.TempDir()
	paths := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		now := fixedNow.Add(time.Duration(i) * time.Second)
		svc := NewService(validLoggingConfig())
		svc.WorkingDir = wd
		svc.Console = &bytes.Buffer{}
		svc.Clock = func() time.Time { return now }
		require.NoError(t, svc.Initialize())
		paths = append(paths, svc.LogFilePath())
		require.NoError(t, svc.Close())
	}
	assert.NotEqual(t, paths[0], paths[1])
}

func TestRecordFormat(t *testing.T) {
	svc, console := newTestService(t, validLoggingConfig())

	svc.Logger("/srv/app/retriever.go").InfoWith().Str("query", "llm agents").Int("hits", 3).Msg("search complete")

	lines := readLines(t, svc.LogFilePath())
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "search complete", entry[EventFieldName])
	assert.Equal(t, "retriever.go", entry[LoggerFieldName])
	assert.Equal(t, "llm agents", entry["query"])
	assert.Equal(t, float64(3), entry["hits"])
	assert.Equal(t, "2026-02-18T09:30:45Z", entry[TimestampFieldName])

	// the console receives the identical line
	assert.Equal(t, lines[0]+"\n", console.String())
}

func TestLevelThreshold(t *testing.T) {
	svc, console := newTestService(t, validLoggingConfig())
	log := svc.Logger("threshold")

	log.DebugWith().Msg("hidden")
	log.InfoWith().Msg("shown")
	log.WarnWith().Msg("warned")
	log.ErrorWith().Msg("failed")

	out := console.String()
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 3, strings.Count(out, "\n"))

	lines := readLines(t, svc.LogFilePath())
	assert.Len(t, lines, 3)
}

func TestDebugLevelConfigured(t *testing.T) {
	cfg := validLoggingConfig()
	cfg.Level = "debug"
	svc, console := newTestService(t, cfg)

	svc.DebugWith().Msg("visible")
	assert.Contains(t, console.String(), `"level":"debug"`)
}

func TestLogger_CachedPerName(t *testing.T) {
	svc, _ := newTestService(t, validLoggingConfig())

	a := svc.Logger("pipeline")
	b := svc.Logger("pipeline")
	c := svc.Logger("/other/dir/pipeline")
	d := svc.Logger("ingest")

	assert.Same(t, a, b)
	assert.Same(t, a, c)
	assert.NotSame(t, a, d)
}

func TestLogger_DefaultName(t *testing.T) {
	svc, console := newTestService(t, validLoggingConfig())

	svc.Logger("").InfoWith().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(console.Bytes(), &entry))
	assert.Equal(t, loggerName(""), entry[LoggerFieldName])
	assert.NotEmpty(t, entry[LoggerFieldName])
}

func TestMsgfAndSend(t *testing.T) {
	svc, console := newTestService(t, validLoggingConfig())

	svc.InfoWith().Msgf("loaded %d documents", 12)
	svc.InfoWith().Str("k", "v").Send()

	dec := json.NewDecoder(console)
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "loaded 12 documents", first[EventFieldName])
	assert.Equal(t, "", second[EventFieldName])
	assert.Equal(t, "v", second["k"])
}

func TestWithContextLogger(t *testing.T) {
	svc, console := newTestService(t, validLoggingConfig())

	req := svc.Logger("api").With().Str("request_id", "r-1").Logger()
	req.InfoWith().Msg("handled")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(console.Bytes(), &entry))
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "api", entry[LoggerFieldName])
	assert.Contains(t, entry, TimestampFieldName)
}

func TestDict(t *testing.T) {
	svc, console := newTestService(t, validLoggingConfig())

	svc.InfoWith().Dict("model", func(e LogEvent) {
		e.Str("name", "gpt").Float64("temperature", 0.2)
	}).Msg("configured")

	assert.Contains(t, console.String(), `"model":{"name":"gpt","temperature":0.2}`)
}

func TestPrettyConsole(t *testing.T) {
	cfg := validLoggingConfig()
	cfg.ConsoleFormat = ConsoleFormatPretty
	cfg.ConsoleNoColor = true
	svc, console := newTestService(t, cfg)

	svc.Logger("pretty").InfoWith().Str("k", "v").Msg("hello world")

	out := console.String()
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, "k=v")
	assert.NotContains(t, out, `"event"`)

	// the file keeps the JSON record
	lines := readLines(t, svc.LogFilePath())
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"event":"hello world"`)
}

func TestUninitializedIsNoop(t *testing.T) {
	svc := NewService(nil)
	assert.NotPanics(t, func() {
		svc.InfoWith().Str("k", "v").Msg("dropped")
		svc.Logger("x").ErrorWith().Msg("dropped")
		svc.With().Str("a", "b").Logger().InfoWith().Msg("dropped")
	})
	assert.Empty(t, svc.LogFilePath())
}

func TestConcurrentLogging(t *testing.T) {
	cfg := validLoggingConfig()
	cfg.ConsoleLogging = false
	svc, _ := newTestService(t, cfg)

	const goroutines = 20
	const iterations = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			log := svc.Logger("worker")
			for j := 0; j < iterations; j++ {
				log.InfoWith().Int("id", id).Int("iteration", j).Msg("tick")
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, readLines(t, svc.LogFilePath()), goroutines*iterations)
	assert.Zero(t, svc.activeOps.Load())
}

func TestDefaultLoggingConfig_Valid(t *testing.T) {
	cfg := DefaultLoggingConfig()
	require.NoError(t, validateConfig(&cfg))
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "logs", cfg.LogDir)
}
