package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"faculty-jobs-api/config"
	"faculty-jobs-api/internal/api/routes"
	"faculty-jobs-api/internal/app"
	"faculty-jobs-api/internal/auth"
	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/notify"
	"faculty-jobs-api/internal/services"
	"faculty-jobs-api/internal/storage/memory"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	store  *memory.Store
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	recorder := &notify.Recorder{}
	validate := validator.New()

	application := &app.Application{
		Config:             &config.Config{JWT: config.JWTConfig{Secret: testJWTSecret}},
		Validator:          validate,
		UserService:        services.NewUserService(store, recorder),
		CompanyService:     services.NewCompanyService(store, recorder),
		JobService:         services.NewJobService(store, recorder),
		ApplicationService: services.NewApplicationService(store, recorder),
		AdminService:       services.NewAdminService(store, nil),
	}

	router := gin.New()
	routes.RegisterRoutes(router, application)
	return &testServer{router: router, store: store}
}

// seedUser inserts a user record and returns a principal whose token claims
// match it.
func (s *testServer) seedUser(t *testing.T, email string, role models.Role) auth.Principal {
	t.Helper()
	uid := uuid.New()
	_, err := s.store.Users().Create(context.Background(), &models.User{
		ID:            uid,
		DisplayName:   email,
		Email:         email,
		Role:          role,
		EmailVerified: true,
	})
	require.NoError(t, err)
	return auth.Principal{UID: uid, Email: email, EmailVerified: true, Role: role}
}

func (s *testServer) do(t *testing.T, method, path string, p *auth.Principal, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if p != nil {
		token, err := generateTestToken(*p, testJWTSecret, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func companyBody() map[string]any {
	return map[string]any{
		"name":           "Institute of Science",
		"institute_type": "research_institute",
		"hr_email":       "hr@iisc.example",
		"address":        "Research Park, Bangalore",
		"proof_docs":     []string{"docs/registration.pdf"},
	}
}

func jobBody() map[string]any {
	return map[string]any{
		"title":           "Assistant Professor of Computer Science",
		"department":      "Computer Science",
		"level":           "assistant_professor",
		"institute_type":  "university",
		"employment_type": "full_time",
		"city":            "Pune",
		"state":           "Maharashtra",
		"country":         "India",
		"currency":        "INR",
		"qualifications":  []string{"PhD in Computer Science"},
		"description":     "Tenure-track position covering systems courses and research supervision.",
		"last_date":       time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339),
		"apply_mode":      "internal",
	}
}

// TestModerationWorkflow walks the full lifecycle over HTTP: company
// registration, approval, job posting, job approval, public visibility, and
// an application submission with its dedupe conflict.
func TestModerationWorkflow(t *testing.T) {
	s := setupTestServer(t)

	owner := s.seedUser(t, "owner@example.edu", models.RoleSeeker)
	admin := s.seedUser(t, "admin@example.edu", models.RoleAdmin)
	seeker := s.seedUser(t, "seeker@example.edu", models.RoleSeeker)

	// Register a company; it lands pending.
	w := s.do(t, http.MethodPost, "/api/v1/companies", &owner, companyBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	company := decode[dto.CompanyResponse](t, w)
	assert.Equal(t, "pending", company.Status)

	// A non-admin cannot approve it.
	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/companies/%s/approve", company.ID), &owner, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/companies/%s/approve", company.ID), &admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "approved", decode[dto.CompanyResponse](t, w).Status)

	// The owner signs in again; the fresh token carries the employer role.
	employer := owner
	employer.Role = models.RoleEmployer

	w = s.do(t, http.MethodPost, "/api/v1/jobs", &employer, jobBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	job := decode[dto.JobResponse](t, w)
	assert.Equal(t, "pending", job.Status)

	// Pending jobs are invisible to the public.
	w = s.do(t, http.MethodGet, "/api/v1/jobs/"+job.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/admin/jobs/%s/approve", job.ID), &admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Now public, and searchable.
	w = s.do(t, http.MethodGet, "/api/v1/jobs/"+job.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode[dto.JobResponse](t, w).ViewCount)

	w = s.do(t, http.MethodGet, "/api/v1/jobs?q=professor", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.JobListResponse](t, w)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Jobs, 1)

	// The seeker applies once; the second attempt conflicts.
	applyBody := map[string]any{"resume_path": "resumes/candidate.pdf"}
	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/applications", job.ID), &seeker, applyBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "submitted", decode[dto.ApplicationResponse](t, w).Status)

	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/applications", job.ID), &seeker, applyBody)
	assert.Equal(t, http.StatusConflict, w.Code)
}

// TestValidationErrorShape checks that a request failing validation on
// several fields reports only the first offending one.
func TestValidationErrorShape(t *testing.T) {
	s := setupTestServer(t)
	owner := s.seedUser(t, "owner@example.edu", models.RoleSeeker)

	body := companyBody()
	body["name"] = "X"                // below min=2
	body["hr_email"] = "not-an-email" // fails email
	w := s.do(t, http.MethodPost, "/api/v1/companies", &owner, body)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	resp := decode[struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}](t, w)
	require.Len(t, resp.Details, 1)
	assert.Contains(t, resp.Details, "Name")
}

func TestAuthRequired(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/companies", nil, companyBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/applications/mine", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthCheck(t *testing.T) {
	s := setupTestServer(t)
	w := s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
