package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/perarneng/gmailday/pkg/interfaces"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type ColorLogger struct {
	out      io.Writer
	minLevel Level
}

func New(out io.Writer, minLevel Level) *ColorLogger {
	return &ColorLogger{
		out:      out,
		minLevel: minLevel,
	}
}

func (l *ColorLogger) log(level Level, name, message string, colorFunc func(...interface{}) string) {
	if level < l.minLevel {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.out, "%s %s %s\n", timestamp, colorFunc(name), message)
}

func (l *ColorLogger) Info(message string) {
	l.log(LevelInfo, "INFO", message, color.New(color.FgGreen).SprintFunc())
}

func (l *ColorLogger) Error(message string) {
	l.log(LevelError, "ERROR", message, color.New(color.FgRed).SprintFunc())
}

func (l *ColorLogger) Warn(message string) {
	l.log(LevelWarn, "WARN", message, color.New(color.FgYellow).SprintFunc())
}

func (l *ColorLogger) Debug(message string) {
	l.log(LevelDebug, "DEBUG", message, color.New(color.FgCyan).SprintFunc())
}

var _ interfaces.Logger = (*ColorLogger)(nil)
