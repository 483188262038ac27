package nonmetric

import (
	"errors"
	"fmt"

	"github.com/jizhihang/NonMetricSpaceLib/lc"
	"github.com/jizhihang/NonMetricSpaceLib/parambag"
)

var (
	// ErrInvalidK reports a non-positive k. No function in this module
	// returns it; query constructors accept k as given.
	ErrInvalidK = errors.New("k must be positive")
	// ErrInvalidRadius reports a negative range radius. No function in this
	// module returns it; query constructors accept the radius as given.
	ErrInvalidRadius = errors.New("radius must be non-negative")
	// ErrConfiguration is returned when a parameter bag is malformed:
	// missing a required key or holding a value of the wrong kind.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrBuildInvariant is returned when a build detects its own internal
	// invariant was broken, rather than a reachable user-triggerable state.
	ErrBuildInvariant = errors.New("index build invariant violated")
)

// translateError normalizes errors surfacing from the lc/multiindex/
// parambag packages into the small public taxonomy above, preserving the
// original error via Unwrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var missing *parambag.ErrMissingParam
	if errors.As(err, &missing) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var invalid *parambag.ErrInvalidParam
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var unknownStrategy *lc.ErrUnknownStrategy
	if errors.As(err, &unknownStrategy) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var invariant *lc.ErrInvariantViolation
	if errors.As(err, &invariant) {
		return fmt.Errorf("%w: %w", ErrBuildInvariant, err)
	}

	return err
}
