package app

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrFetch         = errors.New("fetch error")
	ErrParse         = errors.New("parse error")
	ErrWrite         = errors.New("write error")
	ErrPublish       = errors.New("publish error")
)

// ConfigurationError lists the required settings that were not provided.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("API credentials not found in environment variables: %s", strings.Join(e.Missing, ", "))
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
