package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrLinkNotFound    = errors.New("link not found")
	ErrBlockNotFound   = errors.New("content block not found")
	ErrInvalidIndex    = errors.New("invalid index")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUploadFailure   = errors.New("upload failed")
)

// IndexError reports a move outside the bounds of a collection.
type IndexError struct {
	From, To, Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid index: move %d -> %d in collection of %d", e.From, e.To, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// ValidationError describes a rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UploadError wraps a storage failure. Uploads are safe to retry.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

func (e *UploadError) Is(target error) bool {
	return target == ErrUploadFailure
}

func (e *UploadError) Retryable() bool { return true }
