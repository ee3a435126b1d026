package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"faculty-jobs-api/internal/auth"
	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/notify"
	"faculty-jobs-api/internal/policy"
	"faculty-jobs-api/internal/storage"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
)

type userService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewUserService creates a new instance of UserService.
func NewUserService(store storage.Store, notifier notify.Notifier) UserService {
	return &userService{store: store, notifier: notifier}
}

// Sync upserts the user record from the verified principal. On first sign-in
// a seeker record is created; later calls refresh the verification flag from
// the fresh claims. Role is never taken from claims after creation — only the
// elevation workflow changes it.
func (s *userService) Sync(ctx context.Context, p auth.Principal) (*models.User, error) {
	if p.Anonymous() {
		return nil, ErrUnauthenticated
	}

	user, err := s.store.Users().GetByID(ctx, p.UID)
	if errors.Is(err, storage.ErrNotFound) {
		created, err := s.store.Users().Create(ctx, &models.User{
			ID:            p.UID,
			DisplayName:   displayNameFromEmail(p.Email),
			Email:         p.Email,
			Role:          models.RoleSeeker,
			EmailVerified: p.EmailVerified,
		})
		if err != nil {
			if errors.Is(err, storage.ErrConflict) {
				// Concurrent first sign-in; the other request won.
				return s.store.Users().GetByID(ctx, p.UID)
			}
			log.Printf("UserService: Error creating user %s: %v", p.UID, err)
			return nil, mapRepoError(err, "creating user")
		}
		log.Printf("User %s created on first sign-in", p.UID)
		return created, nil
	}
	if err != nil {
		return nil, mapRepoError(err, "fetching user")
	}

	if user.EmailVerified != p.EmailVerified {
		verified := p.EmailVerified
		user, err = s.store.Users().Update(ctx, &dto.UpdateUserRequest{ID: p.UID, EmailVerified: &verified})
		if err != nil {
			return nil, mapRepoError(err, "syncing user verification state")
		}
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.User, error) {
	if p.Anonymous() {
		return nil, ErrUnauthenticated
	}
	if p.UID != id && !p.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "fetching user")
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, p auth.Principal, req *dto.UpdateUserRequest) (*models.User, error) {
	if p.Anonymous() {
		return nil, ErrUnauthenticated
	}
	// Profile edits are self-service only; role and verification flags are
	// stripped regardless of what the caller sent.
	req.ID = p.UID
	req.Role = nil
	req.EmailVerified = nil

	user, err := s.store.Users().Update(ctx, req)
	if err != nil {
		log.Printf("UserService: Error updating profile for %s: %v", p.UID, err)
		return nil, mapRepoError(err, "updating user profile")
	}
	return user, nil
}

// Delete removes the user and cascades to owned companies, posted jobs, and
// submitted applications.
func (s *userService) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	if err := policy.CanDeleteUser(p, id); err != nil {
		log.Printf("UserService: Delete of %s denied for %s: %v", id, p.UID, err)
		return mapPolicyError(err)
	}
	if err := s.store.Users().Delete(ctx, id); err != nil {
		return mapRepoError(err, "deleting user")
	}
	log.Printf("User %s deleted by %s", id, p.UID)
	return nil
}

// ResendVerification asks the notifier to send a fresh verification mail. No
// state changes; verification itself completes at the identity provider.
func (s *userService) ResendVerification(ctx context.Context, p auth.Principal) error {
	if p.Anonymous() {
		return ErrUnauthenticated
	}
	if p.EmailVerified {
		return ErrPreconditionFailed
	}
	sendNotification(s.notifier, p.Email, notify.KindVerifyEmail, map[string]string{"uid": p.UID.String()})
	return nil
}

func displayNameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
