package members

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrNameRequired   = errors.New("member name is required")
)
