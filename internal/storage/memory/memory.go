// Package memory provides an in-memory storage.Store used by tests and local
// development. It enforces the same invariants as the postgres implementation:
// the dedupe index check-and-insert is atomic under the store lock, counter
// bumps are atomic increments, and iteration order is deterministic.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/storage"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
)

// Store implements storage.Store with mutex-guarded maps.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users        map[uuid.UUID]models.User
	companies    map[uuid.UUID]models.Company
	ownerIndex   map[uuid.UUID]uuid.UUID // owner uid -> company id
	jobs         map[uuid.UUID]models.Job
	jobOrder     []uuid.UUID // insertion order, tiebreak for sorts
	applications map[uuid.UUID]models.Application
	appOrder     []uuid.UUID
	dedupeIndex  map[string]uuid.UUID // dedupe key -> application id
	auditLogs    []models.AuditLog
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]models.User),
		companies:    make(map[uuid.UUID]models.Company),
		ownerIndex:   make(map[uuid.UUID]uuid.UUID),
		jobs:         make(map[uuid.UUID]models.Job),
		applications: make(map[uuid.UUID]models.Application),
		dedupeIndex:  make(map[string]uuid.UUID),
	}
}

// Compile-time check to ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

func (s *Store) Users() storage.UserRepository               { return &userRepo{s} }
func (s *Store) Companies() storage.CompanyRepository        { return &companyRepo{s} }
func (s *Store) Jobs() storage.JobRepository                 { return &jobRepo{s} }
func (s *Store) Applications() storage.ApplicationRepository { return &applicationRepo{s} }
func (s *Store) AuditLogs() storage.AuditLogRepository       { return &auditLogRepo{s} }

// RunInTx serializes transactions against each other. Mutations are applied
// directly; there is no rollback, which is sufficient for the happy-path and
// precondition-failure flows the workflow engine exercises (preconditions are
// validated before any write).
func (s *Store) RunInTx(ctx context.Context, fn func(storage.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

// --- users ---

type userRepo struct{ s *Store }

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.users[user.ID]; exists {
		return nil, storage.ErrConflict
	}
	now := time.Now()
	u := *user
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.users[u.ID] = u
	return &u, nil
}

func (r *userRepo) Update(ctx context.Context, req *dto.UpdateUserRequest) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[req.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if req.DisplayName != nil {
		u.DisplayName = *req.DisplayName
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.EmailVerified != nil {
		u.EmailVerified = *req.EmailVerified
	}
	u.UpdatedAt = time.Now()
	r.s.users[u.ID] = u
	return &u, nil
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.s.users, id)

	// Cascade: owned company, posted jobs, submitted applications.
	if companyID, ok := r.s.ownerIndex[id]; ok {
		delete(r.s.companies, companyID)
		delete(r.s.ownerIndex, id)
	}
	for jobID, job := range r.s.jobs {
		if job.PosterUID == id {
			r.s.deleteJobLocked(jobID)
		}
	}
	for appID, app := range r.s.applications {
		if app.ApplicantUID == id {
			r.s.deleteApplicationLocked(appID)
		}
	}
	return nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

// deleteJobLocked removes a job and cascades to its applications. Caller holds mu.
func (s *Store) deleteJobLocked(jobID uuid.UUID) {
	delete(s.jobs, jobID)
	s.jobOrder = removeID(s.jobOrder, jobID)
	for appID, app := range s.applications {
		if app.JobID == jobID {
			s.deleteApplicationLocked(appID)
		}
	}
}

// deleteApplicationLocked removes an application and its dedupe index entry. Caller holds mu.
func (s *Store) deleteApplicationLocked(appID uuid.UUID) {
	if app, ok := s.applications[appID]; ok {
		delete(s.dedupeIndex, app.DedupeKey)
		delete(s.applications, appID)
		s.appOrder = removeID(s.appOrder, appID)
	}
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// --- companies ---

type companyRepo struct{ s *Store }

func (r *companyRepo) Create(ctx context.Context, req *dto.CreateCompanyRequest) (*models.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.ownerIndex[req.OwnerUID]; exists {
		return nil, storage.ErrConflict
	}
	now := time.Now()
	c := models.Company{
		ID:            uuid.New(),
		Name:          req.Name,
		Website:       req.Website,
		InstituteType: req.InstituteType,
		HREmail:       req.HREmail,
		Address:       req.Address,
		Phone:         req.Phone,
		ProofDocs:     append([]string(nil), req.ProofDocs...),
		OwnerUID:      req.OwnerUID,
		Status:        models.CompanyStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.s.companies[c.ID] = c
	r.s.ownerIndex[c.OwnerUID] = c.ID
	return &c, nil
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &c, nil
}

func (r *companyRepo) GetByOwner(ctx context.Context, ownerUID uuid.UUID) (*models.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	companyID, ok := r.s.ownerIndex[ownerUID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := r.s.companies[companyID]
	return &c, nil
}

func (r *companyRepo) Update(ctx context.Context, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[req.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Website != nil {
		c.Website = req.Website
	}
	if req.InstituteType != nil {
		c.InstituteType = *req.InstituteType
	}
	if req.HREmail != nil {
		c.HREmail = *req.HREmail
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.ProofDocs != nil {
		c.ProofDocs = append([]string(nil), (*req.ProofDocs)...)
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	c.UpdatedAt = time.Now()
	r.s.companies[c.ID] = c
	return &c, nil
}

func (r *companyRepo) ListByStatus(ctx context.Context, req *dto.ListCompaniesByStatusRequest) ([]models.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var matched []models.Company
	for _, c := range r.s.companies {
		if c.Status == req.Status {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})
	return paginate(matched, req.Limit, req.Offset), nil
}

func (r *companyRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.companies)), nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return append([]T{}, items[offset:end]...)
}
