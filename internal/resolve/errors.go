package resolve

import (
	"errors"
	"fmt"
)

// Side names the endpoint a failure is attributed to.
type Side string

const (
	SideOrigin      Side = "origin"
	SideDestination Side = "destination"
)

var (
	// ErrNoMatch reports that the geocoding service found nothing for an
	// address.
	ErrNoMatch = errors.New("no geocoding match")

	// ErrNoDistance reports that every distance tier produced an invalid
	// (zero or negative) value.
	ErrNoDistance = errors.New("no valid distance")
)

// ResolutionError attributes a failure to one side of the resolution.
// Routing-layer failures never surface this way; they are recovered by
// the geodesic fallback.
type ResolutionError struct {
	Side  Side
	Token string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s %q: %v", e.Side, e.Token, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
