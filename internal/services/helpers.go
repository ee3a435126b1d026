package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"faculty-jobs-api/internal/notify"
	"faculty-jobs-api/internal/policy"
	"faculty-jobs-api/internal/storage"
)

// mapRepoError translates storage errors into service errors, wrapping the
// operation context for logs.
func mapRepoError(err error, operation string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%w: %s", ErrAlreadyExists, operation)
	default:
		return fmt.Errorf("%w: %s: %v", ErrInternal, operation, err)
	}
}

// mapPolicyError translates policy denials into service errors.
func mapPolicyError(err error) error {
	switch {
	case errors.Is(err, policy.ErrUnauthenticated):
		return ErrUnauthenticated
	case errors.Is(err, policy.ErrEmailNotVerified):
		return ErrEmailNotVerified
	case errors.Is(err, policy.ErrLockedField):
		return fmt.Errorf("%w: %v", ErrPreconditionFailed, err)
	default:
		return ErrPermissionDenied
	}
}

const notifyTimeout = 5 * time.Second

// sendNotification fires a best-effort notification after the workflow
// transition has committed. The call is bounded by a timeout and a failure is
// only logged; production wiring decorates the notifier with notify.Async so
// requests do not wait on delivery.
func sendNotification(notifier notify.Notifier, to string, kind notify.Kind, data map[string]string) {
	if notifier == nil || to == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if ok := notifier.Send(ctx, to, kind, data); !ok {
		log.Printf("Notification %s to %s failed", kind, to)
	}
}
