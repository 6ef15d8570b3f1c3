package conf

import (
	"fmt"

	"pvdcrypt/internal/flog"
)

type Log struct {
	Level string `yaml:"level"`
}

func (l *Log) setDefaults() {
	if l.Level == "" {
		l.Level = "info"
	}
}

func (l *Log) validate() []error {
	if _, err := flog.ParseLevel(l.Level); err != nil {
		return []error{fmt.Errorf("log.level: %v", err)}
	}
	return nil
}

// FlogLevel returns the parsed level; call after validation.
func (l *Log) FlogLevel() flog.Level {
	lvl, _ := flog.ParseLevel(l.Level)
	return lvl
}
