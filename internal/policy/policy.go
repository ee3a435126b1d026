// Package policy holds the pure authorization predicates evaluated in front
// of every workflow mutation. Functions here take the request principal plus
// the facts they need and return nil or a typed denial; they never touch
// storage and have no side effects.
package policy

import (
	"errors"

	"faculty-jobs-api/internal/auth"
	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated means the request carried no verified credential.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrEmailNotVerified means a verified-only action was attempted by an
	// unverified principal.
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrDenied means a role or ownership check failed.
	ErrDenied = errors.New("permission denied")
	// ErrLockedField means an edit touched a field frozen by approval.
	ErrLockedField = errors.New("field locked after approval")
)

// RequireVerified gates actions reserved for verified users.
func RequireVerified(p auth.Principal) error {
	if p.Anonymous() {
		return ErrUnauthenticated
	}
	if !p.EmailVerified {
		return ErrEmailNotVerified
	}
	return nil
}

// CanCreateCompany allows any verified user; the one-company-per-owner rule
// is enforced atomically at the store.
func CanCreateCompany(p auth.Principal) error {
	return RequireVerified(p)
}

// CanUpdateCompany restricts edits to the owner. Once the company is
// approved, only phone and address stay mutable.
func CanUpdateCompany(p auth.Principal, company *models.Company, req *dto.UpdateCompanyRequest) error {
	if p.Anonymous() {
		return ErrUnauthenticated
	}
	if p.UID != company.OwnerUID {
		return ErrDenied
	}
	if company.Status == models.CompanyStatusApproved {
		locked := req.Name != nil || req.Website != nil || req.InstituteType != nil ||
			req.HREmail != nil || req.ProofDocs != nil
		if locked {
			return ErrLockedField
		}
	}
	return nil
}

// CanCreateJob requires a verified employer posting under their own approved
// company.
func CanCreateJob(p auth.Principal, company *models.Company) error {
	if err := RequireVerified(p); err != nil {
		return err
	}
	if p.Role != models.RoleEmployer || p.UID != company.OwnerUID {
		return ErrDenied
	}
	if company.Status != models.CompanyStatusApproved {
		return ErrDenied
	}
	return nil
}

// CanUpdateJob restricts edits to the poster while the posting is pending.
func CanUpdateJob(p auth.Principal, job *models.Job) error {
	if p.Anonymous() {
		return ErrUnauthenticated
	}
	if p.UID != job.PosterUID {
		return ErrDenied
	}
	return nil
}

// CanApply requires a verified seeker.
func CanApply(p auth.Principal) error {
	if err := RequireVerified(p); err != nil {
		return err
	}
	if p.Role != models.RoleSeeker {
		return ErrDenied
	}
	return nil
}

// CanModerate gates company/job approval and the pending queues.
func CanModerate(p auth.Principal) error {
	if p.Anonymous() {
		return ErrUnauthenticated
	}
	if !p.IsAdmin() {
		return ErrDenied
	}
	return nil
}

// CanUpdateApplicationStatus allows admins and the job's poster.
func CanUpdateApplicationStatus(p auth.Principal, job *models.Job) error {
	if err := RequireVerified(p); err != nil {
		return err
	}
	if p.IsAdmin() {
		return nil
	}
	if p.Role == models.RoleEmployer && p.UID == job.PosterUID {
		return nil
	}
	return ErrDenied
}

// CanViewApplication allows the applicant, the job's poster, and admins.
func CanViewApplication(p auth.Principal, application *models.Application, job *models.Job) error {
	if p.Anonymous() {
		return ErrUnauthenticated
	}
	if p.IsAdmin() || p.UID == application.ApplicantUID || p.UID == job.PosterUID {
		return nil
	}
	return ErrDenied
}

// CanDeleteUser allows self-deletion and admin deletion.
func CanDeleteUser(p auth.Principal, targetUID uuid.UUID) error {
	if p.Anonymous() {
		return ErrUnauthenticated
	}
	if p.IsAdmin() || p.UID == targetUID {
		return nil
	}
	return ErrDenied
}
