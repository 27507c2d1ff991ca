package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// newLogger builds the process logger. The TUI owns the terminal, so it logs
// text to a file; serve mode logs JSON to stderr.
func newLogger(serve bool, logFile string) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	if serve {
		logger.SetFormatter(new(logrus.JSONFormatter))
		logger.SetOutput(os.Stderr)
		return logger, nopCloser{}, nil
	}

	if logFile == "" {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	logger.SetOutput(file)
	return logger, file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
