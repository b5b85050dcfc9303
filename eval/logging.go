package eval

import (
	"fmt"
	"io"

	"github.com/lyraproj/issue/issue"
)

type (
	LogLevel string

	Logger interface {
		Logf(level LogLevel, format string, args ...interface{})

		LogIssue(issue issue.Reported)
	}

	stdlog struct {
		out   io.Writer
		err   io.Writer
		debug bool
	}

	LogEntry struct {
		level   LogLevel
		message string
	}

	ArrayLogger struct {
		entries []*LogEntry
	}
)

const (
	ALERT   = LogLevel(`alert`)
	CRIT    = LogLevel(`crit`)
	DEBUG   = LogLevel(`debug`)
	EMERG   = LogLevel(`emerg`)
	ERR     = LogLevel(`err`)
	INFO    = LogLevel(`info`)
	NOTICE  = LogLevel(`notice`)
	WARNING = LogLevel(`warning`)
)

func Debug(logger Logger, format string, args ...interface{}) {
	logger.Logf(DEBUG, format, args...)
}

func Err(logger Logger, format string, args ...interface{}) {
	logger.Logf(ERR, format, args...)
}

func Info(logger Logger, format string, args ...interface{}) {
	logger.Logf(INFO, format, args...)
}

func Warning(logger Logger, format string, args ...interface{}) {
	logger.Logf(WARNING, format, args...)
}

// NewStdLogger returns a Logger that writes debug, info and notice entries to out and everything
// else to err. Debug entries are discarded unless debug is true.
func NewStdLogger(out, err io.Writer, debug bool) Logger {
	return &stdlog{out, err, debug}
}

func (l *stdlog) Logf(level LogLevel, format string, args ...interface{}) {
	if level == DEBUG && !l.debug {
		return
	}
	w := l.writerFor(level)
	fmt.Fprintf(w, `%s: `, level)
	fmt.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}

func (l *stdlog) writerFor(level LogLevel) io.Writer {
	switch level {
	case DEBUG, INFO, NOTICE:
		return l.out
	default:
		return l.err
	}
}

func (l *stdlog) LogIssue(i issue.Reported) {
	fmt.Fprintf(l.writerFor(levelOf(i)), "%s: %s\n", levelOf(i), i.Error())
}

func NewArrayLogger() *ArrayLogger {
	return &ArrayLogger{make([]*LogEntry, 0, 16)}
}

// Entries returns the messages that were logged with the given level.
func (l *ArrayLogger) Entries(level LogLevel) (result []string) {
	result = make([]string, 0, 8)
	for _, entry := range l.entries {
		if entry.level == level {
			result = append(result, entry.message)
		}
	}
	return
}

func (l *ArrayLogger) Logf(level LogLevel, format string, args ...interface{}) {
	l.entries = append(l.entries, &LogEntry{level, fmt.Sprintf(format, args...)})
}

func (l *ArrayLogger) LogIssue(i issue.Reported) {
	l.entries = append(l.entries, &LogEntry{levelOf(i), i.Error()})
}

func levelOf(i issue.Reported) LogLevel {
	switch i.Severity() {
	case issue.SEVERITY_ERROR:
		return ERR
	case issue.SEVERITY_WARNING, issue.SEVERITY_DEPRECATION:
		return WARNING
	default:
		return INFO
	}
}
