package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Role Enum ---
type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Role: value is not string or []byte")
		}
	}
	v := Role(strVal)
	switch v {
	case RoleSeeker, RoleEmployer, RoleAdmin:
		*r = v
		return nil
	default:
		return fmt.Errorf("invalid Role value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Company Status Enum ---
type CompanyStatus string

const (
	CompanyStatusPending  CompanyStatus = "pending"
	CompanyStatusApproved CompanyStatus = "approved"
	CompanyStatusRejected CompanyStatus = "rejected"
)

// Scan implements the sql.Scanner interface for CompanyStatus
func (cs *CompanyStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan CompanyStatus: value is not string or []byte")
		}
	}
	v := CompanyStatus(strVal)
	switch v {
	case CompanyStatusPending, CompanyStatusApproved, CompanyStatusRejected:
		*cs = v
		return nil
	default:
		return fmt.Errorf("invalid CompanyStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for CompanyStatus
func (cs CompanyStatus) Value() (driver.Value, error) {
	return string(cs), nil
}

// --- Job Status Enum ---
type JobStatus string

const (
	JobStatusPending  JobStatus = "pending"
	JobStatusApproved JobStatus = "approved"
	JobStatusRejected JobStatus = "rejected"
	JobStatusExpired  JobStatus = "expired"
)

// Scan implements the sql.Scanner interface for JobStatus
func (js *JobStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan JobStatus: value is not string or []byte")
		}
	}
	v := JobStatus(strVal)
	switch v {
	case JobStatusPending, JobStatusApproved, JobStatusRejected, JobStatusExpired:
		*js = v
		return nil
	default:
		return fmt.Errorf("invalid JobStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for JobStatus
func (js JobStatus) Value() (driver.Value, error) {
	return string(js), nil
}

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusReviewed    ApplicationStatus = "reviewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusOffered     ApplicationStatus = "offered"
	// Withdrawn exists in stored data but no workflow transition reaches it yet.
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

// Scan implements the sql.Scanner interface for ApplicationStatus
func (as *ApplicationStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan ApplicationStatus: value is not string or []byte")
		}
	}
	v := ApplicationStatus(strVal)
	switch v {
	case ApplicationStatusSubmitted, ApplicationStatusReviewed, ApplicationStatusShortlisted,
		ApplicationStatusRejected, ApplicationStatusOffered, ApplicationStatusWithdrawn:
		*as = v
		return nil
	default:
		return fmt.Errorf("invalid ApplicationStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (as ApplicationStatus) Value() (driver.Value, error) {
	return string(as), nil
}

// --- Apply Mode Enum ---
type ApplyMode string

const (
	ApplyModeInternal ApplyMode = "internal"
	ApplyModeExternal ApplyMode = "external"
)

// Scan implements the sql.Scanner interface for ApplyMode
func (am *ApplyMode) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan ApplyMode: value is not string or []byte")
		}
	}
	v := ApplyMode(strVal)
	switch v {
	case ApplyModeInternal, ApplyModeExternal:
		*am = v
		return nil
	default:
		return fmt.Errorf("invalid ApplyMode value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for ApplyMode
func (am ApplyMode) Value() (driver.Value, error) {
	return string(am), nil
}

// --- Audit Action Enum ---
type AuditAction string

const (
	AuditCompanyApproved          AuditAction = "company_approved"
	AuditCompanyRejected          AuditAction = "company_rejected"
	AuditJobApproved              AuditAction = "job_approved"
	AuditJobRejected              AuditAction = "job_rejected"
	AuditApplicationSubmitted     AuditAction = "application_submitted"
	AuditApplicationStatusChanged AuditAction = "application_status_changed"
)

// User is an identity subject. Role starts as seeker and is elevated to
// employer exactly once, when an owned company is approved.
type User struct {
	ID            uuid.UUID `json:"id" db:"id"`
	DisplayName   string    `json:"display_name" db:"display_name"`
	Email         string    `json:"email" db:"email"`
	Role          Role      `json:"role" db:"role"`
	EmailVerified bool      `json:"email_verified" db:"email_verified"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Company is an institution profile. At most one per owner.
type Company struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	Website       *string       `json:"website,omitempty" db:"website"`
	InstituteType string        `json:"institute_type" db:"institute_type"`
	HREmail       string        `json:"hr_email" db:"hr_email"`
	Address       string        `json:"address" db:"address"`
	Phone         *string       `json:"phone,omitempty" db:"phone"`
	ProofDocs     []string      `json:"proof_docs" db:"proof_docs"`
	OwnerUID      uuid.UUID     `json:"owner_uid" db:"owner_uid"`
	Status        CompanyStatus `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// Job is a position posting owned by an approved company.
type Job struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Department       string     `json:"department" db:"department"`
	Level            string     `json:"level" db:"level"`
	InstituteType    string     `json:"institute_type" db:"institute_type"`
	EmploymentType   string     `json:"employment_type" db:"employment_type"`
	City             string     `json:"city" db:"city"`
	State            string     `json:"state" db:"state"`
	Country          string     `json:"country" db:"country"`
	MinSalary        *int64     `json:"min_salary,omitempty" db:"min_salary"`
	MaxSalary        *int64     `json:"max_salary,omitempty" db:"max_salary"`
	Currency         string     `json:"currency" db:"currency"`
	Qualifications   []string   `json:"qualifications" db:"qualifications"`
	Skills           []string   `json:"skills" db:"skills"`
	Responsibilities []string   `json:"responsibilities" db:"responsibilities"`
	Description      string     `json:"description" db:"description"`
	Requirements     *string    `json:"requirements,omitempty" db:"requirements"`
	LastDate         time.Time  `json:"last_date" db:"last_date"`
	ApplyMode        ApplyMode  `json:"apply_mode" db:"apply_mode"`
	ApplyURL         *string    `json:"apply_url,omitempty" db:"apply_url"`
	CompanyID        uuid.UUID  `json:"company_id" db:"company_id"`
	PosterUID        uuid.UUID  `json:"poster_uid" db:"poster_uid"`
	Status           JobStatus  `json:"status" db:"status"`
	ApprovedBy       *uuid.UUID `json:"approved_by,omitempty" db:"approved_by"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	ViewCount        int64      `json:"view_count" db:"view_count"`
	ApplicationCount int64      `json:"application_count" db:"application_count"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// Application is a seeker's submission to a job. DedupeKey is unique across
// all applications and derives from (job, applicant).
type Application struct {
	ID           uuid.UUID         `json:"id" db:"id"`
	JobID        uuid.UUID         `json:"job_id" db:"job_id"`
	ApplicantUID uuid.UUID         `json:"applicant_uid" db:"applicant_uid"`
	ResumePath   string            `json:"resume_path" db:"resume_path"`
	CoverLetter  *string           `json:"cover_letter,omitempty" db:"cover_letter"`
	Status       ApplicationStatus `json:"status" db:"status"`
	Notes        *string           `json:"notes,omitempty" db:"notes"`
	DedupeKey    string            `json:"-" db:"dedupe_key"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

// DedupeKey builds the deterministic composite key enforcing one application
// per (job, applicant) pair.
func DedupeKey(jobID, applicantUID uuid.UUID) string {
	return jobID.String() + ":" + applicantUID.String()
}

// AuditLog is an append-only record of a privileged mutation.
type AuditLog struct {
	ID         uuid.UUID         `json:"id" db:"id"`
	ActorUID   uuid.UUID         `json:"actor_uid" db:"actor_uid"`
	Action     AuditAction       `json:"action" db:"action"`
	TargetType string            `json:"target_type" db:"target_type"`
	TargetID   uuid.UUID         `json:"target_id" db:"target_id"`
	Metadata   map[string]string `json:"metadata" db:"metadata"`
	Timestamp  time.Time         `json:"timestamp" db:"timestamp"`
}
