package gateway

import "fmt"

// GenerationError is the uniform failure for any provider call: network
// errors, provider errors, empty replies, and replies that fail to parse as
// the expected structure. The adapter never partially succeeds.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ConfigError reports a missing AI credential at call time. It is distinct
// from GenerationError so callers can answer with a configuration status
// rather than a provider failure.
type ConfigError struct {
	Op string
}

func (e *ConfigError) Error() string {
	return e.Op + ": AI provider credential not configured"
}
