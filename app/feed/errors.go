package feed

import (
	"fmt"
)

// AdaptationError reports a post that cannot be represented in any
// output format, typically because a mandatory field is missing.
type AdaptationError struct {
	PostID string
	Reason string
}

func (e *AdaptationError) Error() string {
	if e.PostID == "" {
		return fmt.Sprintf("cannot adapt post: %s", e.Reason)
	}
	return fmt.Sprintf("cannot adapt post %s: %s", e.PostID, e.Reason)
}

// EncodingError reports input an encoder refuses to serialize, such as
// an item without a GUID.
type EncodingError struct {
	Format Format
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode %s feed: %s", e.Format, e.Reason)
}

// ValidationError reports a constructor argument that violates the
// format contract before any serialization happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// GenerationError wraps a collaborator failure that aborted an
// artifact. The cause keeps the endpoint and parameters of the failed
// call.
type GenerationError struct {
	Artifact string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate %s: %v", e.Artifact, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
