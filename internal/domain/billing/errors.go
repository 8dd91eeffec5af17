package billing

import "fmt"

// ProviderError wraps a failed provider call. Transient from the caller's
// point of view: the same request may succeed on retry, so handlers answer
// it with 502 rather than 500.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("payment provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
