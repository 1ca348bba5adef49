package cliconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultDestination is the endpoint used when none is configured.
const DefaultDestination = "http://localhost:2000"

// DefaultResource is the bundled resource sent by send-resource without arguments.
const DefaultResource = "login"

// Config holds CLI configuration for beacon.
type Config struct {
	// Destination is kept as entered; it is validated per send, not here.
	Destination string `flag:"destination"`

	// BundleDir overrides the embedded resource bundle with a directory.
	BundleDir string `flag:"bundle-dir" validate:"omitempty,dir"`

	// HTTPTimeout of zero keeps the HTTP client's default (no timeout).
	HTTPTimeout time.Duration `flag:"timeout" validate:"gte=0"`

	LogLevel  string `flag:"log-level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat string `flag:"log-format" validate:"omitempty,oneof=console json"`

	Preview bool `flag:"preview"`

	DebounceDelay time.Duration `flag:"debounce" validate:"gt=0"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Destination:   DefaultDestination,
		LogLevel:      "info",
		LogFormat:     "console",
		DebounceDelay: 100 * time.Millisecond,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("flag"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			switch fe.Tag() {
			case "dir":
				return fmt.Errorf("%s: %q is not a directory", fe.Field(), fe.Value())
			case "oneof":
				return fmt.Errorf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
			case "gte":
				return fmt.Errorf("%s must not be negative", fe.Field())
			case "gt":
				return fmt.Errorf("%s must be positive", fe.Field())
			default:
				return fmt.Errorf("%s: failed %s validation", fe.Field(), fe.Tag())
			}
		}
		return err
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
