package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config controls where and how much the run logs
type Config struct {
	Level   string
	Verbose bool
	// File is opened in append mode; empty disables file logging
	File    string
	Console io.Writer
}

// New builds the run logger. The returned close func releases the log file.
func New(cfg Config) (*logrus.Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level, cfg.Verbose)
	if err != nil {
		return nil, nil, err
	}

	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}

	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	closeFn := func() error { return nil }
	if cfg.File == "" {
		log.SetOutput(console)
		return log, closeFn, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
	}
	log.SetOutput(io.MultiWriter(console, file))

	return log, file.Close, nil
}

// ParseLevel maps the accepted level names onto logrus levels; verbose forces debug.
func ParseLevel(name string, verbose bool) (logrus.Level, error) {
	if verbose {
		return logrus.DebugLevel, nil
	}

	switch strings.ToUpper(name) {
	case "", "INFO":
		return logrus.InfoLevel, nil
	case "DEBUG":
		return logrus.DebugLevel, nil
	case "WARN", "WARNING":
		return logrus.WarnLevel, nil
	case "ERROR":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("unknown log level: %s", name)
	}
}
