package service

import "errors"

// ErrMissingDependency is returned by constructors given a nil collaborator.
var ErrMissingDependency = errors.New("missing dependency")
