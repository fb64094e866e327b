package logger

import (
	"io"

	"course_activity_report/internal/infra/config"

	"github.com/sirupsen/logrus"
)

const serviceName = "course-activity-report"

// Logger hands out component-scoped entries that share one output,
// level and format.
type Logger struct {
	root *logrus.Logger
	base *logrus.Entry
}

// New builds the reporter logger. Every entry carries the service name and,
// once configured, the platform account the run reports on.
func New(cfg *config.AppConfig, out io.Writer) *Logger {
	root := logrus.New()
	root.SetOutput(out)
	root.SetFormatter(formatterFor(cfg.Environment))

	level, ok := levelFrom(cfg.LogLevel)
	root.SetLevel(level)

	fields := logrus.Fields{"service": serviceName}
	if cfg.Credentials.AccountName != "" {
		fields["account"] = cfg.Credentials.AccountName
	}
	l := &Logger{root: root, base: root.WithFields(fields)}

	if !ok {
		l.base.WithField("log_level", cfg.LogLevel).Warn("Unknown LOG_LEVEL, falling back to info.")
	}
	return l
}

// Component returns an entry tagged with the component name.
func (l *Logger) Component(name string) *logrus.Entry {
	return l.base.WithField("component", name)
}

// Level is the effective level after fallback.
func (l *Logger) Level() logrus.Level {
	return l.root.GetLevel()
}

func levelFrom(name string) (logrus.Level, bool) {
	if name == "" {
		return logrus.InfoLevel, true
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel, false
	}
	return level, true
}

// Deployed environments are shipped to a log collector; everything else is
// read by a person at a terminal.
func formatterFor(environment string) logrus.Formatter {
	switch environment {
	case "production", "staging":
		return &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyTime: "ts",
			},
		}
	default:
		return &logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  "15:04:05",
			QuoteEmptyFields: true,
		}
	}
}
