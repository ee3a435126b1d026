package services_test

import (
	"context"
	"testing"
	"time"

	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// searchFixture seeds four approved jobs with distinct deadlines, salaries,
// departments, and locations, plus one pending job that search must never
// surface. Jobs are returned in creation order.
func searchFixture(t *testing.T, env *testEnv) []*models.Job {
	t.Helper()
	ctx := context.Background()
	employer, _ := env.seedApprovedEmployer(t, "owner@example.edu")
	admin := env.seedAdmin(t)

	specs := []struct {
		title    string
		dept     string
		level    string
		empType  string
		city     string
		state    string
		deadline time.Duration
		min, max *int64
	}{
		{"Assistant Professor of Computer Science", "Computer Science", "assistant_professor", "full_time", "Pune", "Maharashtra", 10 * 24 * time.Hour, ptrInt64(500000), ptrInt64(900000)},
		{"Professor of Mathematics", "Mathematics", "professor", "full_time", "Mumbai", "Maharashtra", 5 * 24 * time.Hour, ptrInt64(800000), ptrInt64(1200000)},
		{"Lecturer in Physics", "Physics", "lecturer", "part_time", "Delhi", "Delhi", 20 * 24 * time.Hour, nil, nil},
		{"Associate Professor of Computer Science", "Computer Science", "associate_professor", "full_time", "Pune", "Maharashtra", 15 * 24 * time.Hour, ptrInt64(300000), ptrInt64(900000)},
	}

	jobs := make([]*models.Job, 0, len(specs))
	for _, spec := range specs {
		req := newJobRequest(time.Now().Add(spec.deadline))
		req.Title = spec.title
		req.Department = spec.dept
		req.Level = spec.level
		req.EmploymentType = spec.empType
		req.City = spec.city
		req.State = spec.state
		req.MinSalary = spec.min
		req.MaxSalary = spec.max

		job, err := env.jobs.Create(ctx, employer, req)
		require.NoError(t, err)
		approved, err := env.jobs.Approve(ctx, admin, job.ID)
		require.NoError(t, err)
		jobs = append(jobs, approved)
	}

	// A pending posting that must stay invisible to search.
	pending, err := env.jobs.Create(ctx, employer, newJobRequest(time.Now().Add(30*24*time.Hour)))
	require.NoError(t, err)
	require.Equal(t, models.JobStatusPending, pending.Status)

	return jobs
}

func resultIDs(jobs []models.Job) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(jobs))
	for i := range jobs {
		ids = append(ids, jobs[i].ID)
	}
	return ids
}

func TestJobService_Search_ApprovedOnly(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seeded := searchFixture(t, env)

	results, total, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(len(seeded)), total)
	require.Len(t, results, len(seeded))
	for i := range results {
		assert.Equal(t, models.JobStatusApproved, results[i].Status)
	}
}

func TestJobService_Search_Filters(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seeded := searchFixture(t, env)

	t.Run("Department", func(t *testing.T) {
		results, total, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{Department: "Computer Science"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.ElementsMatch(t, []uuid.UUID{seeded[0].ID, seeded[3].ID}, resultIDs(results))
	})

	t.Run("Combined", func(t *testing.T) {
		results, total, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{
			Department:     "Computer Science",
			Level:          "assistant_professor",
			Location:       "pune",
			EmploymentType: "full_time",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, results, 1)
		assert.Equal(t, seeded[0].ID, results[0].ID)
	})

	t.Run("RecentWindow", func(t *testing.T) {
		// Everything in the fixture was just created, so the tightest
		// window still matches all of it.
		_, total, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{PostedWithin: "24h"})
		require.NoError(t, err)
		assert.Equal(t, int64(len(seeded)), total)
	})
}

func TestJobService_Search_Sorting(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seeded := searchFixture(t, env)

	t.Run("Newest", func(t *testing.T) {
		results, _, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{SortBy: "newest"})
		require.NoError(t, err)
		want := []uuid.UUID{seeded[3].ID, seeded[2].ID, seeded[1].ID, seeded[0].ID}
		assert.Equal(t, want, resultIDs(results))
	})

	t.Run("Deadline", func(t *testing.T) {
		results, _, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{SortBy: "deadline"})
		require.NoError(t, err)
		want := []uuid.UUID{seeded[1].ID, seeded[0].ID, seeded[3].ID, seeded[2].ID}
		assert.Equal(t, want, resultIDs(results))
	})

	t.Run("SalaryHigh_TiebreakByCreation", func(t *testing.T) {
		// Jobs 0 and 3 share the same max salary; the earlier posting
		// must come first. Absent salaries sort last.
		results, _, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{SortBy: "salary_high"})
		require.NoError(t, err)
		want := []uuid.UUID{seeded[1].ID, seeded[0].ID, seeded[3].ID, seeded[2].ID}
		assert.Equal(t, want, resultIDs(results))
	})

	t.Run("SalaryLow", func(t *testing.T) {
		// An absent minimum sorts as zero, ahead of every priced posting.
		results, _, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{SortBy: "salary_low"})
		require.NoError(t, err)
		want := []uuid.UUID{seeded[2].ID, seeded[3].ID, seeded[0].ID, seeded[1].ID}
		assert.Equal(t, want, resultIDs(results))
	})
}

func TestJobService_Search_Pagination(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seeded := searchFixture(t, env)

	full, total, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{SortBy: "deadline", Limit: 100})
	require.NoError(t, err)
	require.Equal(t, int64(len(seeded)), total)

	page1, total1, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{SortBy: "deadline", Page: 1, Limit: 2})
	require.NoError(t, err)
	page2, total2, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{SortBy: "deadline", Page: 2, Limit: 2})
	require.NoError(t, err)

	// Every page reports the full match count.
	assert.Equal(t, total, total1)
	assert.Equal(t, total, total2)

	// Pages are disjoint and contiguous slices of the full ordering.
	require.Len(t, page1, 2)
	require.Len(t, page2, 2)
	assert.Equal(t, resultIDs(full[:2]), resultIDs(page1))
	assert.Equal(t, resultIDs(full[2:4]), resultIDs(page2))
	for _, a := range page1 {
		for _, b := range page2 {
			assert.NotEqual(t, a.ID, b.ID)
		}
	}

	// Past the last page comes back empty, not an error.
	page3, _, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{SortBy: "deadline", Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page3)

	t.Run("LimitCappedAt100", func(t *testing.T) {
		req := &dto.SearchJobsRequest{Limit: 500}
		results, _, err := env.jobs.Search(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 100, req.Limit)
		assert.Len(t, results, len(seeded))
	})

	t.Run("PageClampedToFirst", func(t *testing.T) {
		zero, _, err := env.jobs.Search(ctx, &dto.SearchJobsRequest{SortBy: "deadline", Page: 0, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, resultIDs(page1), resultIDs(zero))
	})
}
