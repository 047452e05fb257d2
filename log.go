//go:build !ios && !android && (amd64 || arm64)

package ffdecode

import "github.com/obinnaokechukwu/ffdecode/avutil"

// LogLevel represents FFmpeg log levels.
type LogLevel int32

// Log level constants matching FFmpeg's AV_LOG_* values.
const (
	LogQuiet   LogLevel = -8 // Print no output
	LogPanic   LogLevel = 0  // Something went really wrong, crash
	LogFatal   LogLevel = 8  // Something went wrong, exit now
	LogError   LogLevel = 16 // Something went wrong, recovery possible
	LogWarning LogLevel = 24 // Something unexpected but recovery possible
	LogInfo    LogLevel = 32 // Standard information
	LogVerbose LogLevel = 40 // Detailed information
	LogDebug   LogLevel = 48 // Stuff for debugging
	LogTrace   LogLevel = 56 // Extremely verbose debugging
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch {
	case l <= LogQuiet:
		return "quiet"
	case l <= LogPanic:
		return "panic"
	case l <= LogFatal:
		return "fatal"
	case l <= LogError:
		return "error"
	case l <= LogWarning:
		return "warning"
	case l <= LogInfo:
		return "info"
	case l <= LogVerbose:
		return "verbose"
	case l <= LogDebug:
		return "debug"
	default:
		return "trace"
	}
}

// ParseLogLevel maps a name produced by String back to a level.
func ParseLogLevel(name string) (LogLevel, bool) {
	for _, l := range []LogLevel{LogQuiet, LogPanic, LogFatal, LogError, LogWarning, LogInfo, LogVerbose, LogDebug, LogTrace} {
		if l.String() == name {
			return l, true
		}
	}
	return 0, false
}

// SetLogLevel sets how much FFmpeg itself prints to stderr.
// Init must have succeeded.
func SetLogLevel(level LogLevel) error {
	return avutil.LogSetLevel(int32(level))
}

// GetLogLevel returns FFmpeg's current log level.
func GetLogLevel() (LogLevel, error) {
	l, err := avutil.LogGetLevel()
	return LogLevel(l), err
}
