package services

import "fmt"

// GenerationError means the external provider call failed or its input was
// unusable. Nothing is written to history when one is returned.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
