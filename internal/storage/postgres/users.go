// internal/storage/postgres/users.go
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

// UserRepo implements the storage.UserRepository interface using PostgreSQL.
type UserRepo struct {
	db Querier
}

// Compile-time check to ensure UserRepo implements UserRepository
var _ storage.UserRepository = (*UserRepo)(nil)

const userColumns = `id, display_name, email, role, email_verified, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.DisplayName,
		&u.Email,
		&u.Role,
		&u.EmailVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning user by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return user, nil
}

// Create saves a new user record.
func (r *UserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (id, display_name, email, role, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s
	`, userColumns)

	created, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID,
		user.DisplayName,
		user.Email,
		user.Role,
		user.EmailVerified,
	))
	if err != nil {
		if isUniqueViolation(err) {
			log.Printf("Error creating user %s: duplicate: %v\n", user.ID, err)
			return nil, fmt.Errorf("failed to create user: %w", storage.ErrConflict)
		}
		log.Printf("Error creating user: %v\n", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// Update modifies an existing user based on non-nil fields in the request DTO.
func (r *UserRepo) Update(ctx context.Context, req *dto.UpdateUserRequest) (*models.User, error) {
	var setClauses []string
	args := []interface{}{}
	argID := 1

	if req.DisplayName != nil {
		args = append(args, *req.DisplayName)
		setClauses = append(setClauses, fmt.Sprintf("display_name = $%d", argID))
		argID++
	}
	if req.Role != nil {
		args = append(args, *req.Role)
		setClauses = append(setClauses, fmt.Sprintf("role = $%d", argID))
		argID++
	}
	if req.EmailVerified != nil {
		args = append(args, *req.EmailVerified)
		setClauses = append(setClauses, fmt.Sprintf("email_verified = $%d", argID))
		argID++
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields provided for update on user %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argID, userColumns)

	updated, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating user %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update user %s: %w", req.ID, err)
	}
	return updated, nil
}

// Delete removes a user. Owned companies, jobs, and applications cascade at
// the schema level.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting user %s: %v\n", id, err)
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Count returns the total number of users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
