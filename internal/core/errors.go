package core

import "errors"

// Registry failures.
var (
	ErrDuplicateProvider = errors.New("provider already registered")
	ErrProviderNotFound  = errors.New("provider not registered")
	ErrUnknownProvider   = errors.New("unknown provider")
)
