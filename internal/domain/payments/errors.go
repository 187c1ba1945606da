package payments

import "errors"

var (
	ErrInvalidRange  = errors.New("start date must not be after end date")
	ErrInvalidAmount = errors.New("amount must be a positive integer")
)
