package services_test

import (
	"context"
	"testing"

	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/services"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_Stats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	employer, _ := env.seedApprovedEmployer(t, "owner@example.edu")
	approved := env.seedApprovedJob(t, employer, jobDeadline())
	_, err := env.jobs.Create(ctx, employer, newJobRequest(jobDeadline()))
	require.NoError(t, err)

	seeker := env.seedSeeker(t, "seeker@example.edu")
	_, err = env.applications.Apply(ctx, seeker, newApplicationRequest(approved.ID))
	require.NoError(t, err)

	admin := env.seedAdmin(t)
	stats, err := env.admin.Stats(ctx, admin)
	require.NoError(t, err)

	// Owner, the seeker, and an admin per seed helper call.
	assert.Equal(t, int64(5), stats.Users)
	assert.Equal(t, int64(1), stats.Companies)
	assert.Equal(t, int64(1), stats.ApprovedJobs)
	assert.Equal(t, int64(1), stats.PendingJobs)
	assert.Equal(t, int64(1), stats.Applications)

	_, err = env.admin.Stats(ctx, seeker)
	assert.ErrorIs(t, err, services.ErrPermissionDenied)
}

func TestAdminService_ListAuditLogs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.seedAdmin(t)

	owner := env.seedSeeker(t, "owner@example.edu")
	company, err := env.companies.Create(ctx, owner, newCompanyRequest())
	require.NoError(t, err)
	_, err = env.companies.Approve(ctx, admin, company.ID)
	require.NoError(t, err)

	logs, err := env.admin.ListAuditLogs(ctx, admin, &dto.ListAuditLogsRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditCompanyApproved, logs[0].Action)

	_, err = env.admin.ListAuditLogs(ctx, owner, &dto.ListAuditLogsRequest{Limit: 10})
	assert.ErrorIs(t, err, services.ErrPermissionDenied)
}
