package core

import "errors"

var (
	// ErrShapeMismatch reports incompatible array shapes or ranks.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrInvalidConfiguration reports rejected construction parameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrDomainViolation reports a parameter outside its mathematical domain.
	ErrDomainViolation = errors.New("domain violation")
)
