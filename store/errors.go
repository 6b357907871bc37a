package store

import "errors"

// ErrDocNotFound indicates the target document does not exist in the
// collection. Callers decide whether that is fatal.
var ErrDocNotFound = errors.New("document not found")
