package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// cronLogger routes messages from cron job wrappers into the scheduler's
// logrus entry.
type cronLogger struct {
	entry *logrus.Entry
}

var _ cron.Logger = cronLogger{}

func newCronLogger(entry *logrus.Entry) cronLogger {
	return cronLogger{entry: entry.WithField("source", "cron")}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fieldsOf(keysAndValues)).Info(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fieldsOf(keysAndValues)).WithError(err).Error(msg)
}

func fieldsOf(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
