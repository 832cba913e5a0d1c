package nuget

import (
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"
)

// leveledLogger routes retryablehttp's key/value logging into logrus.
// Request-level chatter goes to debug so normal runs stay quiet.
type leveledLogger struct{}

var _ retryablehttp.LeveledLogger = leveledLogger{}

func newLeveledLogger() retryablehttp.LeveledLogger {
	return leveledLogger{}
}

func (leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	withFields(keysAndValues).Warn("[nuget] " + msg)
}

func (leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	withFields(keysAndValues).Warn("[nuget] " + msg)
}

func (leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	withFields(keysAndValues).Debug("[nuget] " + msg)
}

func (leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	withFields(keysAndValues).Debug("[nuget] " + msg)
}

func withFields(keysAndValues []interface{}) *logger.Entry {
	fields := make(logger.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return logger.WithFields(fields)
}
