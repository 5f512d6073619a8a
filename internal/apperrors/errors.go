// Package apperrors defines the error taxonomy of the image resolver.
//
// Validation and throttling errors are surfaced to the caller as distinct
// responses. Provider, storage, fetch and relevance errors stay inside the
// attempt loop: they are retried and finally downgraded to the placeholder.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input rejected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// ThrottledError reports that the caller exceeded its request window.
type ThrottledError struct {
	RetryAfterSeconds int
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %ds", e.RetryAfterSeconds)
}

// ProviderError reports a failed or unusable generation/search call.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// StorageError reports a failed object upload. Uploads are upserts, so a
// StorageError is always safe to retry.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage put %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// FetchError reports a failed download of a remote candidate.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrNotRelevant is returned when no candidate passed the relevance filter.
var ErrNotRelevant = errors.New("no relevant candidate")

// NotRelevantError carries the candidate count that was rejected.
type NotRelevantError struct {
	Rejected int
}

func (e *NotRelevantError) Error() string {
	return fmt.Sprintf("%v (%d rejected)", ErrNotRelevant, e.Rejected)
}

func (e *NotRelevantError) Is(target error) bool { return target == ErrNotRelevant }

// IsRetryable reports whether err should advance the attempt loop rather
// than abort it.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var (
		validation *ValidationError
		throttled  *ThrottledError
	)
	if errors.As(err, &validation) || errors.As(err, &throttled) {
		return false
	}
	return true
}
