package domain

import "fmt"

// DiscoveryError means the project root could not be read at all. It is the
// only scanner-side failure that aborts a whole Validate call.
type DiscoveryError struct {
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovering files under %s: %v", e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }
