package federation

import (
	"errors"
	"fmt"
)

var (
	// ErrTransient marks failures that may succeed if attempted again, such as timeouts, unreachable
	// servers and 5xx responses.
	ErrTransient = errors.New("transient delivery failure")
	// ErrPermanent marks failures that will not go away by retrying.
	ErrPermanent = errors.New("permanent delivery failure")

	ErrRejected    = fmt.Errorf("%w: rejected by remote server", ErrPermanent)
	ErrMissingKey  = fmt.Errorf("%w: no usable key material", ErrPermanent)
	ErrUnsupported = fmt.Errorf("%w: unsupported object", ErrPermanent)
)

// IsTransient reports whether err should be retried. Errors are considered transient unless they are
// explicitly marked as permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrPermanent)
}
