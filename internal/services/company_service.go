package services

import (
	"context"
	"fmt"
	"log"

	"faculty-jobs-api/internal/auth"
	"faculty-jobs-api/internal/models"
	"faculty-jobs-api/internal/notify"
	"faculty-jobs-api/internal/policy"
	"faculty-jobs-api/internal/storage"
	"faculty-jobs-api/internal/transport/dto"

	"github.com/google/uuid"
)

type companyService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewCompanyService creates a new instance of CompanyService.
func NewCompanyService(store storage.Store, notifier notify.Notifier) CompanyService {
	return &companyService{store: store, notifier: notifier}
}

func (s *companyService) Create(ctx context.Context, p auth.Principal, req *dto.CreateCompanyRequest) (*models.Company, error) {
	if err := policy.CanCreateCompany(p); err != nil {
		return nil, mapPolicyError(err)
	}

	req.OwnerUID = p.UID
	company, err := s.store.Companies().Create(ctx, req)
	if err != nil {
		log.Printf("CompanyService: Error creating company for owner %s: %v", p.UID, err)
		return nil, mapRepoError(err, "creating company")
	}

	log.Printf("Company %s created by %s, awaiting moderation", company.ID, p.UID)
	return company, nil
}

func (s *companyService) GetByOwner(ctx context.Context, p auth.Principal) (*models.Company, error) {
	if p.Anonymous() {
		return nil, ErrUnauthenticated
	}
	company, err := s.store.Companies().GetByOwner(ctx, p.UID)
	if err != nil {
		return nil, mapRepoError(err, "fetching company by owner")
	}
	return company, nil
}

func (s *companyService) Update(ctx context.Context, p auth.Principal, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.store.Companies().GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, "fetching company for update")
	}

	if err := policy.CanUpdateCompany(p, company, req); err != nil {
		log.Printf("CompanyService: Update on company %s denied for %s: %v", req.ID, p.UID, err)
		return nil, mapPolicyError(err)
	}

	updated, err := s.store.Companies().Update(ctx, req)
	if err != nil {
		log.Printf("CompanyService: Error updating company %s: %v", req.ID, err)
		return nil, mapRepoError(err, "updating company")
	}
	return updated, nil
}

// Approve transitions a pending company to approved and elevates the owner to
// employer. The status change, role elevation, and audit entry commit as one
// unit.
func (s *companyService) Approve(ctx context.Context, p auth.Principal, companyID uuid.UUID) (*models.Company, error) {
	if err := policy.CanModerate(p); err != nil {
		return nil, mapPolicyError(err)
	}

	var approved *models.Company
	var ownerEmail string
	err := s.store.RunInTx(ctx, func(tx storage.Store) error {
		company, err := tx.Companies().GetByID(ctx, companyID)
		if err != nil {
			return mapRepoError(err, "fetching company for approval")
		}
		if company.Status != models.CompanyStatusPending {
			return fmt.Errorf("%w: company is %s, only pending companies can be approved", ErrPreconditionFailed, company.Status)
		}

		owner, err := tx.Users().GetByID(ctx, company.OwnerUID)
		if err != nil {
			return mapRepoError(err, "fetching company owner for approval")
		}
		ownerEmail = owner.Email

		status := models.CompanyStatusApproved
		approved, err = tx.Companies().Update(ctx, &dto.UpdateCompanyRequest{ID: companyID, Status: &status})
		if err != nil {
			return mapRepoError(err, "approving company")
		}

		// One-time elevation; downgrades are not supported.
		if owner.Role != models.RoleAdmin {
			role := models.RoleEmployer
			if _, err := tx.Users().Update(ctx, &dto.UpdateUserRequest{ID: owner.ID, Role: &role}); err != nil {
				return mapRepoError(err, "elevating company owner role")
			}
		}

		_, err = tx.AuditLogs().Append(ctx, &models.AuditLog{
			ActorUID:   p.UID,
			Action:     models.AuditCompanyApproved,
			TargetType: "company",
			TargetID:   companyID,
			Metadata:   map[string]string{"ownerUid": company.OwnerUID.String()},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Company %s approved by admin %s", companyID, p.UID)
	sendNotification(s.notifier, ownerEmail, notify.KindCompanyApproved, map[string]string{"companyName": approved.Name})
	return approved, nil
}

// Reject transitions a pending company to rejected. Terminal.
func (s *companyService) Reject(ctx context.Context, p auth.Principal, companyID uuid.UUID) (*models.Company, error) {
	if err := policy.CanModerate(p); err != nil {
		return nil, mapPolicyError(err)
	}

	var rejected *models.Company
	var ownerEmail string
	err := s.store.RunInTx(ctx, func(tx storage.Store) error {
		company, err := tx.Companies().GetByID(ctx, companyID)
		if err != nil {
			return mapRepoError(err, "fetching company for rejection")
		}
		if company.Status != models.CompanyStatusPending {
			return fmt.Errorf("%w: company is %s, only pending companies can be rejected", ErrPreconditionFailed, company.Status)
		}

		if owner, err := tx.Users().GetByID(ctx, company.OwnerUID); err == nil {
			ownerEmail = owner.Email
		}

		status := models.CompanyStatusRejected
		rejected, err = tx.Companies().Update(ctx, &dto.UpdateCompanyRequest{ID: companyID, Status: &status})
		if err != nil {
			return mapRepoError(err, "rejecting company")
		}

		_, err = tx.AuditLogs().Append(ctx, &models.AuditLog{
			ActorUID:   p.UID,
			Action:     models.AuditCompanyRejected,
			TargetType: "company",
			TargetID:   companyID,
			Metadata:   map[string]string{"ownerUid": company.OwnerUID.String()},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Company %s rejected by admin %s", companyID, p.UID)
	sendNotification(s.notifier, ownerEmail, notify.KindCompanyRejected, map[string]string{"companyName": rejected.Name})
	return rejected, nil
}

func (s *companyService) ListPending(ctx context.Context, p auth.Principal, req *dto.ListCompaniesByStatusRequest) ([]models.Company, error) {
	if err := policy.CanModerate(p); err != nil {
		return nil, mapPolicyError(err)
	}
	req.Status = models.CompanyStatusPending
	companies, err := s.store.Companies().ListByStatus(ctx, req)
	if err != nil {
		log.Printf("CompanyService: Error listing pending companies: %v", err)
		return nil, mapRepoError(err, "listing pending companies")
	}
	return companies, nil
}
