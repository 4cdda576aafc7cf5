package logging

const (
	ConsoleFormatJSON   = "json"
	ConsoleFormatPretty = "pretty"
)

// LoggingConfig controls where and how records are written.
type LoggingConfig struct {
	// Level is the minimum severity written to either sink.
	Level string `yaml:"level" validate:"required,oneof=trace debug info warn error"`
	// LogDir is created under the service's working directory when relative.
	LogDir         string `yaml:"log_dir" validate:"required"`
	ConsoleLogging bool   `yaml:"console_logging"`
	FileLogging    bool   `yaml:"file_logging"`
	// ConsoleFormat "json" writes the same line as the file; "pretty" uses a
	// human-readable console layout.
	ConsoleFormat  string `yaml:"console_format" validate:"omitempty,oneof=json pretty"`
	ConsoleNoColor bool   `yaml:"console_no_color"`
	// ShutdownTimeoutMS bounds how long Close waits for in-flight records.
	ShutdownTimeoutMS int `yaml:"shutdown_timeout_ms" validate:"gte=0"`
}

// DefaultLoggingConfig writes info and above to logs/ and to the console.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:             "info",
		LogDir:            "logs",
		ConsoleLogging:    true,
		FileLogging:       true,
		ConsoleFormat:     ConsoleFormatJSON,
		ShutdownTimeoutMS: 100,
	}
}
