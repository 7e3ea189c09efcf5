package validate

import "errors"

var ErrMaxDepthExceeded = errors.New("max ref depth exceeded")

// Internal signal for the MaxErrors cutoff. Never escapes Validate: the
// truncated mismatch list is a normal result, not a failure.
var errTooManyMismatches = errors.New("mismatch limit reached")
