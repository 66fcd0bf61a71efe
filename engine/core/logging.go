package core

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// LogLevel is the renderer's backend-agnostic severity scale. It is wider
// than charmbracelet/log's own Level type because the renderer distinguishes
// performance warnings from ordinary warnings and needs a CRITICAL tier
// above ERROR for programmer-error / backend-affinity violations.
type LogLevel int

const (
	LogLevelTrace LogLevel = iota
	LogLevelDebug
	LogLevelInformation
	LogLevelPerformanceWarning
	LogLevelWarning
	LogLevelCritical
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelTrace:
		return "TRACE"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInformation:
		return "INFORMATION"
	case LogLevelPerformanceWarning:
		return "PERFORMANCE_WARNING"
	case LogLevelWarning:
		return "WARNING"
	case LogLevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	if singleton == nil {
		once.Do(
			func() {
				l := log.NewWithOptions(os.Stderr, log.Options{
					ReportCaller:    true,
					ReportTimestamp: true,
					TimeFormat:      time.RFC3339,
					Prefix:          "RAL 🖼️ ",
				})
				l.SetLevel(log.DebugLevel)
				singleton = &logger{l}
			})
	}
	return singleton
}

func LogTrace(msg string, args ...interface{}) {
	getLogger().Debugf("[trace] "+msg, args...)
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogPerformanceWarn(msg string, args ...interface{}) {
	getLogger().Warnf("[performance] "+msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

// LogCritical reports programmer errors and backend-affinity violations.
// These never panic - the renderer logs and no-ops rather than aborting.
func LogCritical(msg string, args ...interface{}) {
	getLogger().Errorf("[critical] "+msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}

// Log dispatches to the severity-appropriate wrapper above, for callers
// (such as the Vulkan debug report callback) that only have a LogLevel
// value in hand rather than knowing the severity at the call site.
func Log(level LogLevel, msg string, args ...interface{}) {
	switch level {
	case LogLevelTrace:
		LogTrace(msg, args...)
	case LogLevelDebug:
		LogDebug(msg, args...)
	case LogLevelInformation:
		LogInfo(msg, args...)
	case LogLevelPerformanceWarning:
		LogPerformanceWarn(msg, args...)
	case LogLevelWarning:
		LogWarn(msg, args...)
	case LogLevelCritical:
		LogCritical(msg, args...)
	default:
		LogInfo(msg, args...)
	}
}
