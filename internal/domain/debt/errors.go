package debt

import "errors"

var (
	ErrMissingRange      = errors.New("start and end dates are required")
	ErrUnknownPolicy     = errors.New("unknown paid-status policy")
	ErrNoOutstandingDebt = errors.New("member has no outstanding debt in range")
)
