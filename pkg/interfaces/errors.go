package interfaces

import "errors"

// Error kinds. Concrete errors wrap one of these so callers can use errors.Is.
var (
	ErrConfig = errors.New("config error")
	ErrAuth   = errors.New("auth error")
	ErrRemote = errors.New("remote error")
	ErrIO     = errors.New("io error")
)
