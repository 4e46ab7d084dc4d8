package usecase

import "errors"

// Operation outcomes the HTTP layer maps onto responses. ErrNotFound covers
// both truly absent posts and posts the requester may not view, so the
// existence of someone else's draft never leaks. ErrForbidden is only
// returned for mutation attempts on a post the requester can see exists.
var (
	ErrNotFound        = errors.New("post not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("authentication required")
	ErrValidation      = errors.New("validation failed")
)
