package config

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// ApplyLogging configures the global logrus logger.
func (c *Config) ApplyLogging(out io.Writer) error {
	level := c.Logging.Level
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(lvl)

	switch c.Logging.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Logging.Format)
	}
	if out != nil {
		log.SetOutput(out)
	}
	return nil
}
