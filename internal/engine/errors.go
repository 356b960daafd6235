package engine

import "fmt"

// ConfigError reports a run parameter or input grid that was rejected before
// any generation was computed.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ComputationError reports a tile that failed while computing a generation.
// Generation is the generation that was being produced.
type ComputationError struct {
	Generation int
	TX, TY     int
	Err        error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("generation %d, tile (%d,%d): %v", e.Generation, e.TX, e.TY, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }
