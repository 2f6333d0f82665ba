package level

import (
	"errors"
	"fmt"
)

// Sentinel errors, wrapped by ConfigError
var (
	ErrNoKeys         = errors.New("level has no expected keys")
	ErrDistractorPool = errors.New("distractor policy cannot produce distinct keys")
	ErrLayout         = errors.New("invalid layout")
	ErrShape          = errors.New("unknown shape")
	ErrDifficulty     = errors.New("unknown difficulty")
)

// ConfigError reports a level rejected at initialization
type ConfigError struct {
	Level  string
	Field  string
	Reason string
	Err    error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	name := e.Level
	if name == "" {
		name = "<unnamed>"
	}
	if e.Reason == "" {
		return fmt.Sprintf("level %s: %s: %v", name, e.Field, e.Err)
	}
	return fmt.Sprintf("level %s: %s: %v: %s", name, e.Field, e.Err, e.Reason)
}

// Unwrap exposes the sentinel for errors.Is
func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(lvl *PuzzleLevel, field string, err error, reason string) *ConfigError {
	return &ConfigError{Level: lvl.Name, Field: field, Reason: reason, Err: err}
}
