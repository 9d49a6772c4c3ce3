package logger

import (
	"fmt"
	"strconv"
	"strings"
)

type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var levelNames = map[Level]string{
	LevelError: "error",
	LevelWarn:  "warn",
	LevelInfo:  "info",
	LevelDebug: "debug",
}

func (l Level) MarshalText() (text []byte, err error) {
	name, ok := levelNames[l]
	if !ok {
		return nil, fmt.Errorf("unexpected logger.Level: %d", l)
	}
	return []byte(name), nil
}

func (l Level) String() string {
	name, ok := levelNames[l]
	if !ok {
		return strconv.FormatInt(int64(l), 10)
	}
	return name
}

func (l *Level) UnmarshalText(text []byte) error {
	for level, name := range levelNames {
		if strings.EqualFold(string(text), name) {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("unknown log level: %s", string(text))
}

type Logger interface {
	With(field string, value any) Logger
	WithFields(fields map[string]any) Logger
	Logf(level Level, format string, args ...any)
	Log(level Level, args ...any)
	Errorf(format string, args ...any)
	Error(args ...any)
	Warnf(format string, args ...any)
	Warn(args ...any)
	Infof(format string, args ...any)
	Info(args ...any)
	Debugf(format string, args ...any)
	Debug(args ...any)
}
