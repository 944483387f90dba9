package flatten

import "fmt"

// ConfigError is raised before any processing for bad settings.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DecodeError means the source file could not be read as MIDI.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode %v: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// OverflowError is only returned in strict mode, when more notes sounded at
// once than there were voices.
type OverflowError struct {
	Voices          int
	MaxSimultaneous int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("more than %d simultaneous notes detected (peak %d), consider strategy drop_excess or increasing max voices", e.Voices, e.MaxSimultaneous)
}
