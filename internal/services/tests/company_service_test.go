package services_test

import (
	"context"
	"testing"

	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/notify"
	"faculty-jobs-api/internal/services"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompanyRequest() *dto.CreateCompanyRequest {
	return &dto.CreateCompanyRequest{
		Name:          "Institute of Science",
		InstituteType: "research_institute",
		HREmail:       "hr@iisc.example",
		Address:       "Research Park, Bangalore",
		ProofDocs:     []string{"docs/registration.pdf"},
	}
}

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PendingByDefault", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedSeeker(t, "owner@example.edu")

		company, err := env.companies.Create(ctx, owner, newCompanyRequest())
		require.NoError(t, err)
		assert.Equal(t, models.CompanyStatusPending, company.Status)
		assert.Equal(t, owner.UID, company.OwnerUID)
	})

	t.Run("UnverifiedEmail_Denied", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedUser(t, "unverified@example.edu", models.RoleSeeker, false)

		_, err := env.companies.Create(ctx, owner, newCompanyRequest())
		assert.ErrorIs(t, err, services.ErrEmailNotVerified)
	})

	t.Run("SecondCompanyForOwner_Conflict", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedSeeker(t, "owner@example.edu")

		_, err := env.companies.Create(ctx, owner, newCompanyRequest())
		require.NoError(t, err)

		_, err = env.companies.Create(ctx, owner, newCompanyRequest())
		assert.ErrorIs(t, err, services.ErrAlreadyExists)
	})
}

func TestCompanyService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ElevatesOwnerAndAudits", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedSeeker(t, "owner@example.edu")
		admin := env.seedAdmin(t)

		company, err := env.companies.Create(ctx, owner, newCompanyRequest())
		require.NoError(t, err)

		approved, err := env.companies.Approve(ctx, admin, company.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CompanyStatusApproved, approved.Status)

		ownerRecord, err := env.store.Users().GetByID(ctx, owner.UID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleEmployer, ownerRecord.Role)

		entries, err := env.store.AuditLogs().List(ctx, &dto.ListAuditLogsRequest{Limit: 10})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, models.AuditCompanyApproved, entries[0].Action)
		assert.Equal(t, admin.UID, entries[0].ActorUID)
		assert.Equal(t, company.ID, entries[0].TargetID)

		sent := env.recorder.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, notify.KindCompanyApproved, sent[0].Kind)
		assert.Equal(t, owner.Email, sent[0].To)
	})

	t.Run("AlreadyApproved_PreconditionFailed", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedSeeker(t, "owner@example.edu")
		admin := env.seedAdmin(t)

		company, err := env.companies.Create(ctx, owner, newCompanyRequest())
		require.NoError(t, err)
		_, err = env.companies.Approve(ctx, admin, company.ID)
		require.NoError(t, err)

		_, err = env.companies.Approve(ctx, admin, company.ID)
		assert.ErrorIs(t, err, services.ErrPreconditionFailed)
	})

	t.Run("NonAdmin_Denied", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedSeeker(t, "owner@example.edu")

		company, err := env.companies.Create(ctx, owner, newCompanyRequest())
		require.NoError(t, err)

		_, err = env.companies.Approve(ctx, owner, company.ID)
		assert.ErrorIs(t, err, services.ErrPermissionDenied)
	})

	t.Run("MissingCompany_NotFound", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.seedAdmin(t)

		_, err := env.companies.Approve(ctx, admin, uuid.New())
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}

func TestCompanyService_Reject(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	owner := env.seedSeeker(t, "owner@example.edu")
	admin := env.seedAdmin(t)

	company, err := env.companies.Create(ctx, owner, newCompanyRequest())
	require.NoError(t, err)

	rejected, err := env.companies.Reject(ctx, admin, company.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CompanyStatusRejected, rejected.Status)

	// Rejection never elevates the owner.
	ownerRecord, err := env.store.Users().GetByID(ctx, owner.UID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeeker, ownerRecord.Role)

	// Terminal: no second transition.
	_, err = env.companies.Approve(ctx, admin, company.ID)
	assert.ErrorIs(t, err, services.ErrPreconditionFailed)

	sent := env.recorder.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, notify.KindCompanyRejected, sent[0].Kind)
}

func TestCompanyService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerEditsWhilePending", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedSeeker(t, "owner@example.edu")

		company, err := env.companies.Create(ctx, owner, newCompanyRequest())
		require.NoError(t, err)

		updated, err := env.companies.Update(ctx, owner, &dto.UpdateCompanyRequest{
			ID:   company.ID,
			Name: ptrString("Institute of Advanced Science"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Institute of Advanced Science", updated.Name)
	})

	t.Run("NonOwner_Denied", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.seedSeeker(t, "owner@example.edu")
		other := env.seedSeeker(t, "other@example.edu")

		company, err := env.companies.Create(ctx, owner, newCompanyRequest())
		require.NoError(t, err)

		_, err = env.companies.Update(ctx, other, &dto.UpdateCompanyRequest{
			ID:    company.ID,
			Phone: ptrString("+91 1234567890"),
		})
		assert.ErrorIs(t, err, services.ErrPermissionDenied)
	})

	t.Run("ApprovedCompany_OnlyPhoneAndAddressMutable", func(t *testing.T) {
		env := newTestEnv(t)
		owner, company := env.seedApprovedEmployer(t, "owner@example.edu")

		// Phone and address stay editable.
		updated, err := env.companies.Update(ctx, owner, &dto.UpdateCompanyRequest{
			ID:      company.ID,
			Phone:   ptrString("+91 1234567890"),
			Address: ptrString("2 Campus Way"),
		})
		require.NoError(t, err)
		assert.Equal(t, "2 Campus Way", updated.Address)

		// Identity fields are frozen after approval.
		_, err = env.companies.Update(ctx, owner, &dto.UpdateCompanyRequest{
			ID:   company.ID,
			Name: ptrString("Renamed Institute"),
		})
		assert.ErrorIs(t, err, services.ErrPreconditionFailed)
	})
}

func TestCompanyService_ListPending(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.seedAdmin(t)

	for _, email := range []string{"a@example.edu", "b@example.edu"} {
		owner := env.seedSeeker(t, email)
		_, err := env.companies.Create(ctx, owner, newCompanyRequest())
		require.NoError(t, err)
	}

	pending, err := env.companies.ListPending(ctx, admin, &dto.ListCompaniesByStatusRequest{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	seeker := env.seedSeeker(t, "nosy@example.edu")
	_, err = env.companies.ListPending(ctx, seeker, &dto.ListCompaniesByStatusRequest{Limit: 10})
	assert.ErrorIs(t, err, services.ErrPermissionDenied)
}
