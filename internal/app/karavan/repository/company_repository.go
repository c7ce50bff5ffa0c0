package repository

import (
	"context"
	"errors"

	"karavan/internal/app/karavan/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
)

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a company repository backed by GORM.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	result := r.db.WithContext(ctx).Create(company)
	return result.Error
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	result := r.db.WithContext(ctx).First(&company, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, result.Error
	}

	return &company, nil
}

func (r *companyRepository) GetAll(ctx context.Context) ([]entity.Company, error) {
	var companies []entity.Company
	result := r.db.WithContext(ctx).Order("name ASC").Find(&companies)

	if result.Error != nil {
		return nil, result.Error
	}

	return companies, nil
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	result := r.db.WithContext(ctx).Model(&entity.Company{}).Where("id = ?", company.ID).Updates(map[string]interface{}{
		"name":         company.Name,
		"contact_name": company.ContactName,
		"phone":        company.Phone,
		"email":        company.Email,
		"address":      company.Address,
		"updated_at":   company.UpdatedAt,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}

	return nil
}

func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Company{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}

	return nil
}
