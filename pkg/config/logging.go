package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// NewLogger builds a logrus logger at the configured level writing to w.
func NewLogger(c Log, w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	logger := log.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	return logger, nil
}

// NewFileLogger writes to the configured log file. The terminal UI uses it so
// log lines never land on the screen it draws. The returned closer releases
// the file.
func NewFileLogger(c Log) (*log.Logger, io.Closer, error) {
	if c.File == "" {
		logger, err := NewLogger(c, io.Discard)
		return logger, io.NopCloser(nil), err
	}
	if err := os.MkdirAll(filepath.Dir(c.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("config: log directory: %w", err)
	}
	f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("config: log file: %w", err)
	}
	logger, err := NewLogger(c, f)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}
