package core

import (
	"github.com/netkat-io/netkat-core/logger"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogrusAdapter struct {
	*logrus.Logger
}

type logrusEntryAdapter struct {
	*logrus.Entry
}

func logrusLevel(l logger.Level) logrus.Level {
	switch l {
	case logger.LevelError:
		return logrus.ErrorLevel
	case logger.LevelWarn:
		return logrus.WarnLevel
	case logger.LevelDebug:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// NewLogger builds the tool's logger from the configuration: logrus at
// the configured level, writing to stderr or to a size-rotated file.
func NewLogger(conf *Config) logger.Logger {
	l := logrus.New()
	l.SetLevel(logrusLevel(conf.LogLevel))
	if conf.LogFile != "" {
		l.SetOutput(&lumberjack.Logger{
			Filename:   conf.LogFile,
			MaxSize:    conf.LogMaxMB,
			MaxBackups: conf.LogBackups,
		})
	}
	return LogrusAdapter{Logger: l}
}

func (l LogrusAdapter) Logf(level logger.Level, format string, args ...any) {
	l.Logger.Logf(logrusLevel(level), format, args...)
}

func (l LogrusAdapter) Log(level logger.Level, args ...any) {
	l.Logger.Log(logrusLevel(level), args...)
}

func (l LogrusAdapter) With(field string, value any) logger.Logger {
	return logrusEntryAdapter{Entry: l.Logger.WithField(field, value)}
}

func (l LogrusAdapter) WithFields(fields map[string]any) logger.Logger {
	return logrusEntryAdapter{Entry: l.Logger.WithFields(fields)}
}

func (l logrusEntryAdapter) Logf(level logger.Level, format string, args ...any) {
	l.Entry.Logf(logrusLevel(level), format, args...)
}

func (l logrusEntryAdapter) Log(level logger.Level, args ...any) {
	l.Entry.Log(logrusLevel(level), args...)
}

func (l logrusEntryAdapter) With(field string, value any) logger.Logger {
	return logrusEntryAdapter{Entry: l.Entry.WithField(field, value)}
}

func (l logrusEntryAdapter) WithFields(fields map[string]any) logger.Logger {
	return logrusEntryAdapter{Entry: l.Entry.WithFields(fields)}
}

var _ logger.Logger = (*LogrusAdapter)(nil)
