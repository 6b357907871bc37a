package blog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means GetBySlug matched no post.
	ErrNotFound = errors.New("post not found")
	// ErrUnpublished means the slug matched a post that is not publicly
	// visible.
	ErrUnpublished = errors.New("post not published")
)

// FetchError wraps a store failure during a read. No partial result
// accompanies it.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch posts: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// MutationError wraps a store failure during create/update/delete.
type MutationError struct {
	Op  string
	Err error
}

func (e *MutationError) Error() string { return fmt.Sprintf("%s post: %v", e.Op, e.Err) }
func (e *MutationError) Unwrap() error { return e.Err }

// ValidationError rejects a create/update request before any store call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
