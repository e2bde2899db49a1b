package app

import "errors"

var ErrMissingStore = errors.New("app: every store is required")
