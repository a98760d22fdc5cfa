package engine

import "fmt"

// wrapf builds an error that wraps sentinel with a formatted message, so
// callers can errors.Is against the package's sentinels while still
// getting a specific message.
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
