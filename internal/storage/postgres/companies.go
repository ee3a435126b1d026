// internal/storage/postgres/companies.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/storage"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CompanyRepo implements the storage.CompanyRepository interface using PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// Compile-time check to ensure CompanyRepo implements CompanyRepository
var _ storage.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, website, institute_type, hr_email, address, phone, proof_docs, owner_uid, status, created_at, updated_at`

func scanCompany(row pgx.Row) (*models.Company, error) {
	var c models.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Website,
		&c.InstituteType,
		&c.HREmail,
		&c.Address,
		&c.Phone,
		&c.ProofDocs,
		&c.OwnerUID,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create saves a new company profile in pending state. The unique index on
// owner_uid enforces at most one company per owner.
func (r *CompanyRepo) Create(ctx context.Context, req *dto.CreateCompanyRequest) (*models.Company, error) {
	query := fmt.Sprintf(`
		INSERT INTO companies (id, name, website, institute_type, hr_email, address, phone, proof_docs, owner_uid, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s
	`, companyColumns)

	created, err := scanCompany(r.db.QueryRow(ctx, query,
		uuid.New(),
		req.Name,
		req.Website,
		req.InstituteType,
		req.HREmail,
		req.Address,
		req.Phone,
		req.ProofDocs,
		req.OwnerUID,
		models.CompanyStatusPending,
	))
	if err != nil {
		if isUniqueViolation(err) {
			log.Printf("Error creating company: owner %s already has one: %v\n", req.OwnerUID, err)
			return nil, fmt.Errorf("failed to create company: %w", storage.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			log.Printf("Error creating company: invalid owner %s: %v\n", req.OwnerUID, err)
			return nil, fmt.Errorf("failed to create company: invalid owner: %w", storage.ErrConflict)
		}
		log.Printf("Error creating company: %v\n", err)
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

// GetByID retrieves a company by its ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE id = $1`, companyColumns)

	company, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning company by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get company by ID %s: %w", id, err)
	}
	return company, nil
}

// GetByOwner retrieves the company owned by the given user.
func (r *CompanyRepo) GetByOwner(ctx context.Context, ownerUID uuid.UUID) (*models.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE owner_uid = $1`, companyColumns)

	company, err := scanCompany(r.db.QueryRow(ctx, query, ownerUID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning company by owner %s: %v\n", ownerUID, err)
		return nil, fmt.Errorf("failed to get company by owner %s: %w", ownerUID, err)
	}
	return company, nil
}

// Update modifies an existing company based on non-nil fields in the request DTO.
func (r *CompanyRepo) Update(ctx context.Context, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	var setClauses []string
	args := []interface{}{}
	argID := 1

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		argID++
	}

	if req.Name != nil {
		appendSet("name", *req.Name)
	}
	if req.Website != nil {
		appendSet("website", *req.Website)
	}
	if req.InstituteType != nil {
		appendSet("institute_type", *req.InstituteType)
	}
	if req.HREmail != nil {
		appendSet("hr_email", *req.HREmail)
	}
	if req.Address != nil {
		appendSet("address", *req.Address)
	}
	if req.Phone != nil {
		appendSet("phone", *req.Phone)
	}
	if req.ProofDocs != nil {
		appendSet("proof_docs", *req.ProofDocs)
	}
	if req.Status != nil {
		appendSet("status", *req.Status)
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields provided for update on company %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE companies
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argID, companyColumns)

	updated, err := scanCompany(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating company %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update company %s: %w", req.ID, err)
	}
	return updated, nil
}

// ListByStatus retrieves companies with the given status, oldest first so the
// moderation queue is processed in submission order.
func (r *CompanyRepo) ListByStatus(ctx context.Context, req *dto.ListCompaniesByStatusRequest) ([]models.Company, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM companies
		WHERE status = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, companyColumns)

	rows, err := r.db.Query(ctx, query, req.Status, req.Limit, req.Offset)
	if err != nil {
		log.Printf("Error querying companies by status %s: %v\n", req.Status, err)
		return nil, fmt.Errorf("failed to query companies by status: %w", err)
	}
	defer rows.Close()

	companies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Company])
	if err != nil {
		log.Printf("Error scanning companies by status %s: %v\n", req.Status, err)
		return nil, fmt.Errorf("failed to scan companies by status: %w", err)
	}
	if companies == nil {
		companies = []models.Company{}
	}
	return companies, nil
}

// Count returns the total number of companies.
func (r *CompanyRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return count, nil
}
