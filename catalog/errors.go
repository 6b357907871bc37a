package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound means no product matched the requested id.
var ErrNotFound = errors.New("product not found")

// FetchError wraps a store failure during a catalog read.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch products: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }
