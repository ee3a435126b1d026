package services

import "errors"

// Define common service errors
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists") // duplicate company for owner, duplicate application dedupe key
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrPreconditionFailed = errors.New("precondition failed") // e.g. applying to an unapproved or expired job
	ErrInternal           = errors.New("internal error")
)
