package rig

import "github.com/pkg/errors"

var (
	// ErrPreconditionFailed is returned by plane-dependent queries when no reference plane is configured.
	ErrPreconditionFailed = errors.New("operation requires a reference plane")

	// ErrInvalidArgument is returned by the loaders when given a nil target, limit, preset or sensitivity.
	ErrInvalidArgument = errors.New("invalid argument")
)
