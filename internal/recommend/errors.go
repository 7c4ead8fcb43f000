package recommend

import "fmt"

// ValidationError reports a preference record that cannot produce a usable
// prompt. It is returned before any model invocation.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("preference record invalid: %s must not be empty", e.Field)
}
