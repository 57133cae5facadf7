package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors log entries to stdout so an operator tailing the
// process sees the same lines that go to the per-server log file.
type ConsoleHook struct {
	out      io.Writer
	minLevel logrus.Level
}

func NewConsoleHook() *ConsoleHook {
	return &ConsoleHook{
		out:      os.Stdout,
		minLevel: logrus.DebugLevel,
	}
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.out.Write(line)
	return err
}

func (h *ConsoleHook) Levels() []logrus.Level {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, level := range logrus.AllLevels {
		if level <= h.minLevel {
			levels = append(levels, level)
		}
	}
	return levels
}
