package services_test

import (
	"context"
	"testing"
	"time"

	"faculty-jobs-api/internal/auth"
	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/notify"
	"faculty-jobs-api/internal/services"
	"faculty-jobs-api/internal/storage/memory"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// testEnv wires the services against the in-memory store and a recording
// notifier so workflow side effects can be asserted.
type testEnv struct {
	store        *memory.Store
	recorder     *notify.Recorder
	users        services.UserService
	companies    services.CompanyService
	jobs         services.JobService
	applications services.ApplicationService
	admin        services.AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	recorder := &notify.Recorder{}
	return &testEnv{
		store:        store,
		recorder:     recorder,
		users:        services.NewUserService(store, recorder),
		companies:    services.NewCompanyService(store, recorder),
		jobs:         services.NewJobService(store, recorder),
		applications: services.NewApplicationService(store, recorder),
		admin:        services.NewAdminService(store, nil),
	}
}

// seedUser inserts a user record and returns the matching principal, as the
// auth middleware would build it from token claims.
func (e *testEnv) seedUser(t *testing.T, email string, role models.Role, verified bool) auth.Principal {
	t.Helper()
	uid := uuid.New()
	_, err := e.store.Users().Create(context.Background(), &models.User{
		ID:            uid,
		DisplayName:   email,
		Email:         email,
		Role:          role,
		EmailVerified: verified,
	})
	require.NoError(t, err)
	return auth.Principal{UID: uid, Email: email, EmailVerified: verified, Role: role}
}

func (e *testEnv) seedAdmin(t *testing.T) auth.Principal {
	return e.seedUser(t, "admin@example.edu", models.RoleAdmin, true)
}

func (e *testEnv) seedSeeker(t *testing.T, email string) auth.Principal {
	return e.seedUser(t, email, models.RoleSeeker, true)
}

// seedApprovedEmployer creates a user, registers a company, and approves it,
// returning the employer principal (with the elevated role claim) and company.
func (e *testEnv) seedApprovedEmployer(t *testing.T, email string) (auth.Principal, *models.Company) {
	t.Helper()
	ctx := context.Background()
	owner := e.seedUser(t, email, models.RoleSeeker, true)
	admin := e.seedAdmin(t)

	company, err := e.companies.Create(ctx, owner, &dto.CreateCompanyRequest{
		Name:          "Test University",
		InstituteType: "university",
		HREmail:       "hr@" + email,
		Address:       "1 Campus Way",
		ProofDocs:     []string{"docs/accreditation.pdf"},
	})
	require.NoError(t, err)

	approved, err := e.companies.Approve(ctx, admin, company.ID)
	require.NoError(t, err)
	require.Equal(t, models.CompanyStatusApproved, approved.Status)

	// Fresh sign-in after elevation carries the employer role claim.
	owner.Role = models.RoleEmployer
	return owner, approved
}

// seedApprovedJob posts a job for the employer and approves it.
func (e *testEnv) seedApprovedJob(t *testing.T, employer auth.Principal, lastDate time.Time) *models.Job {
	t.Helper()
	ctx := context.Background()
	admin := e.seedAdmin(t)

	job, err := e.jobs.Create(ctx, employer, newJobRequest(lastDate))
	require.NoError(t, err)

	approved, err := e.jobs.Approve(ctx, admin, job.ID)
	require.NoError(t, err)
	return approved
}

// jobDeadline is a safely-future application deadline.
func jobDeadline() time.Time { return time.Now().Add(30 * 24 * time.Hour) }

func newJobRequest(lastDate time.Time) *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:          "Assistant Professor of Computer Science",
		Department:     "Computer Science",
		Level:          "assistant_professor",
		InstituteType:  "university",
		EmploymentType: "full_time",
		City:           "Pune",
		State:          "Maharashtra",
		Country:        "India",
		Currency:       "INR",
		Qualifications: []string{"PhD in Computer Science"},
		Skills:         []string{"distributed systems", "teaching"},
		Description:    "Tenure-track position covering systems courses and research supervision.",
		LastDate:       lastDate,
		ApplyMode:      "internal",
	}
}

// authPrincipalZero is the anonymous principal an unauthenticated request carries.
func authPrincipalZero() auth.Principal { return auth.Principal{} }

func ptrString(s string) *string { return &s }

func ptrInt64(i int64) *int64 { return &i }
