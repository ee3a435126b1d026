package policy

import (
	"testing"

	"faculty-jobs-api/internal/auth"
	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func principal(role models.Role, verified bool) auth.Principal {
	return auth.Principal{UID: uuid.New(), Email: "user@example.edu", EmailVerified: verified, Role: role}
}

func TestRequireVerified(t *testing.T) {
	assert.ErrorIs(t, RequireVerified(auth.Principal{}), ErrUnauthenticated)
	assert.ErrorIs(t, RequireVerified(principal(models.RoleSeeker, false)), ErrEmailNotVerified)
	assert.NoError(t, RequireVerified(principal(models.RoleSeeker, true)))
}

func TestCanUpdateCompany(t *testing.T) {
	owner := principal(models.RoleEmployer, true)
	stranger := principal(models.RoleEmployer, true)
	name := "Renamed"
	phone := "+91 1234567890"

	pending := &models.Company{OwnerUID: owner.UID, Status: models.CompanyStatusPending}
	approved := &models.Company{OwnerUID: owner.UID, Status: models.CompanyStatusApproved}

	tests := []struct {
		name    string
		p       auth.Principal
		company *models.Company
		req     *dto.UpdateCompanyRequest
		want    error
	}{
		{"anonymous", auth.Principal{}, pending, &dto.UpdateCompanyRequest{}, ErrUnauthenticated},
		{"stranger", stranger, pending, &dto.UpdateCompanyRequest{}, ErrDenied},
		{"owner edits pending name", owner, pending, &dto.UpdateCompanyRequest{Name: &name}, nil},
		{"owner edits approved name", owner, approved, &dto.UpdateCompanyRequest{Name: &name}, ErrLockedField},
		{"owner edits approved phone", owner, approved, &dto.UpdateCompanyRequest{Phone: &phone}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanUpdateCompany(tt.p, tt.company, tt.req)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestCanCreateJob(t *testing.T) {
	owner := principal(models.RoleEmployer, true)
	approved := &models.Company{OwnerUID: owner.UID, Status: models.CompanyStatusApproved}
	pending := &models.Company{OwnerUID: owner.UID, Status: models.CompanyStatusPending}

	assert.NoError(t, CanCreateJob(owner, approved))
	assert.ErrorIs(t, CanCreateJob(owner, pending), ErrDenied)
	assert.ErrorIs(t, CanCreateJob(principal(models.RoleSeeker, true), approved), ErrDenied)
	assert.ErrorIs(t, CanCreateJob(principal(models.RoleEmployer, false), approved), ErrEmailNotVerified)

	notOwner := principal(models.RoleEmployer, true)
	assert.ErrorIs(t, CanCreateJob(notOwner, approved), ErrDenied)
}

func TestCanApply(t *testing.T) {
	assert.NoError(t, CanApply(principal(models.RoleSeeker, true)))
	assert.ErrorIs(t, CanApply(principal(models.RoleSeeker, false)), ErrEmailNotVerified)
	assert.ErrorIs(t, CanApply(principal(models.RoleEmployer, true)), ErrDenied)
	assert.ErrorIs(t, CanApply(principal(models.RoleAdmin, true)), ErrDenied)
	assert.ErrorIs(t, CanApply(auth.Principal{}), ErrUnauthenticated)
}

func TestCanModerate(t *testing.T) {
	assert.NoError(t, CanModerate(principal(models.RoleAdmin, true)))
	assert.ErrorIs(t, CanModerate(principal(models.RoleEmployer, true)), ErrDenied)
	assert.ErrorIs(t, CanModerate(auth.Principal{}), ErrUnauthenticated)
}

func TestCanUpdateApplicationStatus(t *testing.T) {
	poster := principal(models.RoleEmployer, true)
	job := &models.Job{PosterUID: poster.UID}

	assert.NoError(t, CanUpdateApplicationStatus(poster, job))
	assert.NoError(t, CanUpdateApplicationStatus(principal(models.RoleAdmin, true), job))
	assert.ErrorIs(t, CanUpdateApplicationStatus(principal(models.RoleEmployer, true), job), ErrDenied)
	assert.ErrorIs(t, CanUpdateApplicationStatus(principal(models.RoleSeeker, true), job), ErrDenied)
}

func TestCanViewApplication(t *testing.T) {
	applicant := principal(models.RoleSeeker, true)
	poster := principal(models.RoleEmployer, true)
	application := &models.Application{ApplicantUID: applicant.UID}
	job := &models.Job{PosterUID: poster.UID}

	assert.NoError(t, CanViewApplication(applicant, application, job))
	assert.NoError(t, CanViewApplication(poster, application, job))
	assert.NoError(t, CanViewApplication(principal(models.RoleAdmin, true), application, job))
	assert.ErrorIs(t, CanViewApplication(principal(models.RoleSeeker, true), application, job), ErrDenied)
}

func TestCanDeleteUser(t *testing.T) {
	self := principal(models.RoleSeeker, true)
	assert.NoError(t, CanDeleteUser(self, self.UID))
	assert.NoError(t, CanDeleteUser(principal(models.RoleAdmin, true), self.UID))
	assert.ErrorIs(t, CanDeleteUser(principal(models.RoleSeeker, true), self.UID), ErrDenied)
	assert.ErrorIs(t, CanDeleteUser(auth.Principal{}, self.UID), ErrUnauthenticated)
}
