package pipeline

import "errors"

// ErrSourceUnavailable is fatal: the source could not produce any items
// (network, auth, or rate-limit exhaustion). It surfaces unchanged to
// the caller; no report is produced.
var ErrSourceUnavailable = errors.New("source unavailable")
