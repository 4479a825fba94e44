package usage

import "errors"

// ErrLimitReached indicates the user has spent their parse allowance
// for the current window.
var ErrLimitReached = errors.New("usage limit reached")
