package database

import "errors"

// ErrNotReady indicates the store could not be reached.
var ErrNotReady = errors.New("database not ready")
