package logging

const (
	// DefaultLoggerName is used when neither a name nor the executable name
	// is available.
	DefaultLoggerName = "analystkit"

	// EventFieldName carries the log message.
	EventFieldName = "event"
	// TimestampFieldName carries the ISO-8601 UTC time of the record.
	TimestampFieldName = "timestamp"
	// LoggerFieldName carries the logical logger name.
	LoggerFieldName = "logger"

	// logFileTimeLayout renders MM_DD_YYYY_HH_MM_SS.
	logFileTimeLayout = "01_02_2006_15_04_05"
	logFileExt        = ".log"

	// lumberjack counts in megabytes; this is large enough that the file is
	// never rotated.
	unrotatedMaxSizeMB = 1 << 20

	emptyString = ""
)

const (
	errMsgNilConfig     = "Logging config is nil."
	errMsgNilService    = "Logger service is nil."
	errMsgConfigInvalid = "Logging configuration is invalid."
	errMsgNoChannels    = "No logging channels enabled."
	errMsgBadLevel      = "Logging level could not be parsed."
	errMsgWorkingDir    = "Working directory could not be determined."
	errMsgCreateDir     = "Log directory could not be created."
	errMsgCloseFile     = "Log file could not be closed."
)
