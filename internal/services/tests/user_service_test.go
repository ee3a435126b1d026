package services_test

import (
	"context"
	"testing"

	"faculty-jobs-api/internal/auth"
	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/notify"
	"faculty-jobs-api/internal/services"
	"faculty-jobs-api/internal/storage"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstSignIn_CreatesSeeker", func(t *testing.T) {
		env := newTestEnv(t)
		p := auth.Principal{UID: uuid.New(), Email: "new@example.edu", EmailVerified: true, Role: models.RoleSeeker}

		user, err := env.users.Sync(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, p.UID, user.ID)
		assert.Equal(t, "new", user.DisplayName)
		assert.Equal(t, models.RoleSeeker, user.Role)
		assert.True(t, user.EmailVerified)
	})

	t.Run("RepeatSignIn_ReturnsExistingRecord", func(t *testing.T) {
		env := newTestEnv(t)
		p := auth.Principal{UID: uuid.New(), Email: "repeat@example.edu", EmailVerified: true, Role: models.RoleSeeker}

		first, err := env.users.Sync(ctx, p)
		require.NoError(t, err)

		second, err := env.users.Sync(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("VerificationFlag_RefreshedFromClaims", func(t *testing.T) {
		env := newTestEnv(t)
		p := auth.Principal{UID: uuid.New(), Email: "verify@example.edu", EmailVerified: false, Role: models.RoleSeeker}

		user, err := env.users.Sync(ctx, p)
		require.NoError(t, err)
		assert.False(t, user.EmailVerified)

		p.EmailVerified = true
		user, err = env.users.Sync(ctx, p)
		require.NoError(t, err)
		assert.True(t, user.EmailVerified)
	})

	t.Run("ClaimRoleIgnored_AfterElevation", func(t *testing.T) {
		env := newTestEnv(t)
		employer, _ := env.seedApprovedEmployer(t, "owner@example.edu")

		// A stale token still carrying the seeker role must not downgrade
		// the stored record.
		stale := employer
		stale.Role = models.RoleSeeker
		user, err := env.users.Sync(ctx, stale)
		require.NoError(t, err)
		assert.Equal(t, models.RoleEmployer, user.Role)
	})

	t.Run("Anonymous_Unauthenticated", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.users.Sync(ctx, authPrincipalZero())
		assert.ErrorIs(t, err, services.ErrUnauthenticated)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seeker := env.seedSeeker(t, "seeker@example.edu")
	other := env.seedSeeker(t, "other@example.edu")
	admin := env.seedAdmin(t)

	self, err := env.users.GetByID(ctx, seeker, seeker.UID)
	require.NoError(t, err)
	assert.Equal(t, seeker.UID, self.ID)

	asAdmin, err := env.users.GetByID(ctx, admin, seeker.UID)
	require.NoError(t, err)
	assert.Equal(t, seeker.UID, asAdmin.ID)

	_, err = env.users.GetByID(ctx, other, seeker.UID)
	assert.ErrorIs(t, err, services.ErrPermissionDenied)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seeker := env.seedSeeker(t, "seeker@example.edu")

	role := models.RoleAdmin
	verified := false
	updated, err := env.users.UpdateProfile(ctx, seeker, &dto.UpdateUserRequest{
		ID:            uuid.New(), // ignored, the principal's own record is edited
		DisplayName:   ptrString("Dr. Seeker"),
		Role:          &role,
		EmailVerified: &verified,
	})
	require.NoError(t, err)
	assert.Equal(t, seeker.UID, updated.ID)
	assert.Equal(t, "Dr. Seeker", updated.DisplayName)

	// Role and verification smuggled into the request must not stick.
	assert.Equal(t, models.RoleSeeker, updated.Role)
	assert.True(t, updated.EmailVerified)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	deadline := jobDeadline()

	t.Run("AdminDeletesEmployer_Cascades", func(t *testing.T) {
		env := newTestEnv(t)
		employer, company := env.seedApprovedEmployer(t, "owner@example.edu")
		job := env.seedApprovedJob(t, employer, deadline)
		seeker := env.seedSeeker(t, "seeker@example.edu")
		admin := env.seedAdmin(t)

		_, err := env.applications.Apply(ctx, seeker, newApplicationRequest(job.ID))
		require.NoError(t, err)

		require.NoError(t, env.users.Delete(ctx, admin, employer.UID))

		_, err = env.store.Companies().GetByID(ctx, company.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = env.store.Jobs().GetByID(ctx, job.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		// The seeker's application went down with the job.
		mine, err := env.applications.ListMine(ctx, seeker, &dto.ListApplicationsByApplicantRequest{Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, mine)
	})

	t.Run("ApplicantDeleted_CounterStaysMonotonic", func(t *testing.T) {
		env := newTestEnv(t)
		employer, _ := env.seedApprovedEmployer(t, "owner@example.edu")
		job := env.seedApprovedJob(t, employer, deadline)
		seeker := env.seedSeeker(t, "seeker@example.edu")

		_, err := env.applications.Apply(ctx, seeker, newApplicationRequest(job.ID))
		require.NoError(t, err)

		require.NoError(t, env.users.Delete(ctx, seeker, seeker.UID))

		// The application row is gone but the submission counter records
		// history, not live rows.
		byJob, err := env.applications.ListByJob(ctx, employer, &dto.ListApplicationsByJobRequest{JobID: job.ID, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, byJob)

		stored, err := env.store.Jobs().GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stored.ApplicationCount)
	})

	t.Run("SelfDelete_Allowed", func(t *testing.T) {
		env := newTestEnv(t)
		seeker := env.seedSeeker(t, "seeker@example.edu")

		require.NoError(t, env.users.Delete(ctx, seeker, seeker.UID))
		_, err := env.store.Users().GetByID(ctx, seeker.UID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Stranger_Denied", func(t *testing.T) {
		env := newTestEnv(t)
		seeker := env.seedSeeker(t, "seeker@example.edu")
		other := env.seedSeeker(t, "other@example.edu")

		err := env.users.Delete(ctx, other, seeker.UID)
		assert.ErrorIs(t, err, services.ErrPermissionDenied)
	})
}

func TestUserService_ResendVerification(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	unverified := env.seedUser(t, "unverified@example.edu", models.RoleSeeker, false)
	require.NoError(t, env.users.ResendVerification(ctx, unverified))

	sent := env.recorder.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, notify.KindVerifyEmail, sent[0].Kind)
	assert.Equal(t, unverified.Email, sent[0].To)

	verified := env.seedSeeker(t, "verified@example.edu")
	err := env.users.ResendVerification(ctx, verified)
	assert.ErrorIs(t, err, services.ErrPreconditionFailed)
}
