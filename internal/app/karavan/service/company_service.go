package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/repository"
	"karavan/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CompanyService struct {
	companyRepo repository.CompanyRepository
	productRepo repository.ProductRepository
	validate    *validator.Validate
}

func NewCompanyService(companyRepo repository.CompanyRepository, productRepo repository.ProductRepository) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		productRepo: productRepo,
		validate:    validator.New(),
	}
}

func (s *CompanyService) CreateCompany(ctx context.Context, req *entity.CreateCompanyRequest) (*entity.Company, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	company := &entity.Company{
		ID:          uuid.New(),
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return company, nil
}

func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) GetAllCompanies(ctx context.Context) ([]entity.Company, error) {
	companies, err := s.companyRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

func (s *CompanyService) UpdateCompany(ctx context.Context, id uuid.UUID, req *entity.UpdateCompanyRequest) (*entity.Company, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.ContactName != nil {
		company.ContactName = *req.ContactName
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	company.UpdatedAt = time.Now()

	if err := s.companyRepo.Update(ctx, company); err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	return company, nil
}

// DeleteCompany removes the company and every product that belongs to it.
func (s *CompanyService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCompany(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.DeleteByCompanyID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete company products: %w", err)
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return ErrCompanyNotFound
		}
		return fmt.Errorf("failed to delete company: %w", err)
	}

	logger.Info().Str("company_id", id.String()).Msg("company deleted with its products")

	return nil
}
