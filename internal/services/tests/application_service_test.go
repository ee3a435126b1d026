package services_test

import (
	"context"
	"testing"
	"time"

	"faculty-jobs-api/internal/auth"
	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/notify"
	"faculty-jobs-api/internal/services"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplicationRequest(jobID uuid.UUID) *dto.CreateApplicationRequest {
	return &dto.CreateApplicationRequest{
		JobID:       jobID,
		ResumePath:  "resumes/candidate.pdf",
		CoverLetter: ptrString("I am a strong fit for this position."),
	}
}

func TestApplicationService_Apply(t *testing.T) {
	ctx := context.Background()
	deadline := time.Now().Add(30 * 24 * time.Hour)

	t.Run("Success_CounterAuditAndHRNotice", func(t *testing.T) {
		env := newTestEnv(t)
		employer, company := env.seedApprovedEmployer(t, "owner@example.edu")
		job := env.seedApprovedJob(t, employer, deadline)
		seeker := env.seedSeeker(t, "seeker@example.edu")
		env.recorder.Reset()

		application, err := env.applications.Apply(ctx, seeker, newApplicationRequest(job.ID))
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusSubmitted, application.Status)
		assert.Equal(t, seeker.UID, application.ApplicantUID)

		stored, err := env.store.Jobs().GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stored.ApplicationCount)

		entries, err := env.store.AuditLogs().List(ctx, &dto.ListAuditLogsRequest{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, models.AuditApplicationSubmitted, entries[0].Action)
		assert.Equal(t, application.ID, entries[0].TargetID)

		sent := env.recorder.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, notify.KindApplicationReceived, sent[0].Kind)
		assert.Equal(t, company.HREmail, sent[0].To)
	})

	t.Run("Duplicate_Conflict", func(t *testing.T) {
		env := newTestEnv(t)
		employer, _ := env.seedApprovedEmployer(t, "owner@example.edu")
		job := env.seedApprovedJob(t, employer, deadline)
		seeker := env.seedSeeker(t, "seeker@example.edu")

		_, err := env.applications.Apply(ctx, seeker, newApplicationRequest(job.ID))
		require.NoError(t, err)

		_, err = env.applications.Apply(ctx, seeker, newApplicationRequest(job.ID))
		assert.ErrorIs(t, err, services.ErrAlreadyExists)

		// The failed attempt must not bump the counter.
		stored, err := env.store.Jobs().GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stored.ApplicationCount)
	})

	t.Run("DeadlinePassed_PreconditionFailed", func(t *testing.T) {
		env := newTestEnv(t)
		employer, _ := env.seedApprovedEmployer(t, "owner@example.edu")
		job := env.seedApprovedJob(t, employer, time.Now().Add(time.Minute))
		seeker := env.seedSeeker(t, "seeker@example.edu")

		past := time.Now().Add(-time.Hour)
		_, err := env.store.Jobs().Update(ctx, &dto.UpdateJobRequest{ID: job.ID, LastDate: &past})
		require.NoError(t, err)

		_, err = env.applications.Apply(ctx, seeker, newApplicationRequest(job.ID))
		assert.ErrorIs(t, err, services.ErrPreconditionFailed)
	})

	t.Run("PendingJob_PreconditionFailed", func(t *testing.T) {
		env := newTestEnv(t)
		employer, _ := env.seedApprovedEmployer(t, "owner@example.edu")
		seeker := env.seedSeeker(t, "seeker@example.edu")

		job, err := env.jobs.Create(ctx, employer, newJobRequest(deadline))
		require.NoError(t, err)

		_, err = env.applications.Apply(ctx, seeker, newApplicationRequest(job.ID))
		assert.ErrorIs(t, err, services.ErrPreconditionFailed)
	})

	t.Run("EmployerRole_Denied", func(t *testing.T) {
		env := newTestEnv(t)
		employer, _ := env.seedApprovedEmployer(t, "owner@example.edu")
		job := env.seedApprovedJob(t, employer, deadline)

		_, err := env.applications.Apply(ctx, employer, newApplicationRequest(job.ID))
		assert.ErrorIs(t, err, services.ErrPermissionDenied)
	})

	t.Run("UnverifiedSeeker_Denied", func(t *testing.T) {
		env := newTestEnv(t)
		employer, _ := env.seedApprovedEmployer(t, "owner@example.edu")
		job := env.seedApprovedJob(t, employer, deadline)
		seeker := env.seedUser(t, "unverified@example.edu", models.RoleSeeker, false)

		_, err := env.applications.Apply(ctx, seeker, newApplicationRequest(job.ID))
		assert.ErrorIs(t, err, services.ErrEmailNotVerified)
	})
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	deadline := time.Now().Add(30 * 24 * time.Hour)

	setup := func(t *testing.T) (*testEnv, auth.Principal, auth.Principal, *models.Application) {
		env := newTestEnv(t)
		employer, _ := env.seedApprovedEmployer(t, "owner@example.edu")
		job := env.seedApprovedJob(t, employer, deadline)
		seeker := env.seedSeeker(t, "seeker@example.edu")
		application, err := env.applications.Apply(ctx, seeker, newApplicationRequest(job.ID))
		require.NoError(t, err)
		env.recorder.Reset()
		return env, employer, seeker, application
	}

	t.Run("Poster_MovesThroughReview", func(t *testing.T) {
		env, employer, seeker, application := setup(t)

		reviewed, err := env.applications.UpdateStatus(ctx, employer, &dto.UpdateApplicationStatusRequest{
			ID:     application.ID,
			Status: models.ApplicationStatusReviewed,
		})
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusReviewed, reviewed.Status)

		shortlisted, err := env.applications.UpdateStatus(ctx, employer, &dto.UpdateApplicationStatusRequest{
			ID:     application.ID,
			Status: models.ApplicationStatusShortlisted,
			Notes:  ptrString("Strong systems background."),
		})
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusShortlisted, shortlisted.Status)

		entries, err := env.store.AuditLogs().List(ctx, &dto.ListAuditLogsRequest{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, models.AuditApplicationStatusChanged, entries[0].Action)
		assert.Equal(t, string(models.ApplicationStatusReviewed), entries[0].Metadata["previousStatus"])
		assert.Equal(t, string(models.ApplicationStatusShortlisted), entries[0].Metadata["newStatus"])

		sent := env.recorder.Sent()
		require.Len(t, sent, 2)
		assert.Equal(t, notify.KindApplicationStatusChanged, sent[0].Kind)
		assert.Equal(t, seeker.Email, sent[0].To)
	})

	t.Run("TerminalStatus_NoFurtherTransitions", func(t *testing.T) {
		env, employer, _, application := setup(t)

		_, err := env.applications.UpdateStatus(ctx, employer, &dto.UpdateApplicationStatusRequest{
			ID:     application.ID,
			Status: models.ApplicationStatusRejected,
		})
		require.NoError(t, err)

		_, err = env.applications.UpdateStatus(ctx, employer, &dto.UpdateApplicationStatusRequest{
			ID:     application.ID,
			Status: models.ApplicationStatusOffered,
		})
		assert.ErrorIs(t, err, services.ErrPreconditionFailed)
	})

	t.Run("Applicant_CannotReviewOwnApplication", func(t *testing.T) {
		env, _, seeker, application := setup(t)

		_, err := env.applications.UpdateStatus(ctx, seeker, &dto.UpdateApplicationStatusRequest{
			ID:     application.ID,
			Status: models.ApplicationStatusReviewed,
		})
		assert.ErrorIs(t, err, services.ErrPermissionDenied)
	})

	t.Run("Admin_MayReview", func(t *testing.T) {
		env, _, _, application := setup(t)
		admin := env.seedAdmin(t)

		offered, err := env.applications.UpdateStatus(ctx, admin, &dto.UpdateApplicationStatusRequest{
			ID:     application.ID,
			Status: models.ApplicationStatusOffered,
		})
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusOffered, offered.Status)
	})
}

func TestApplicationService_Visibility(t *testing.T) {
	ctx := context.Background()
	deadline := time.Now().Add(30 * 24 * time.Hour)

	env := newTestEnv(t)
	employer, _ := env.seedApprovedEmployer(t, "owner@example.edu")
	job := env.seedApprovedJob(t, employer, deadline)
	seeker := env.seedSeeker(t, "seeker@example.edu")
	stranger := env.seedSeeker(t, "stranger@example.edu")

	application, err := env.applications.Apply(ctx, seeker, newApplicationRequest(job.ID))
	require.NoError(t, err)

	for _, p := range []auth.Principal{seeker, employer} {
		got, err := env.applications.GetByID(ctx, p, application.ID)
		require.NoError(t, err)
		assert.Equal(t, application.ID, got.ID)
	}

	_, err = env.applications.GetByID(ctx, stranger, application.ID)
	assert.ErrorIs(t, err, services.ErrPermissionDenied)

	mine, err := env.applications.ListMine(ctx, seeker, &dto.ListApplicationsByApplicantRequest{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	byJob, err := env.applications.ListByJob(ctx, employer, &dto.ListApplicationsByJobRequest{JobID: job.ID, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byJob, 1)

	_, err = env.applications.ListByJob(ctx, stranger, &dto.ListApplicationsByJobRequest{JobID: job.ID, Limit: 10})
	assert.ErrorIs(t, err, services.ErrPermissionDenied)
}
