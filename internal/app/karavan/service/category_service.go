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

const categoryCacheTTL = time.Hour

// CategoryService manages categories and category groups.
// The full category list is cached in Redis; every write invalidates it.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cache        CategoryCache // optional, may be nil
	validate     *validator.Validate
}

func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	cache CategoryCache,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        cache,
		validate:     validator.New(),
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.GroupID != nil {
		if _, err := s.GetGroup(ctx, *req.GroupID); err != nil {
			return nil, err
		}
	}

	category := &entity.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		GroupID:   req.GroupID,
		CreatedAt: time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCache(ctx)

	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCategories(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetCategories(ctx, categories, categoryCacheTTL); err != nil {
			logger.Warn().Err(err).Msg("failed to cache categories")
		}
	}

	return categories, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.GroupID != nil {
		if _, err := s.GetGroup(ctx, *req.GroupID); err != nil {
			return nil, err
		}
		category.GroupID = req.GroupID
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCache(ctx)

	return category, nil
}

// DeleteCategory removes the category; products that referenced it keep
// existing with a cleared category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.ClearCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to detach products from category: %w", err)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCache(ctx)

	return nil
}

func (s *CategoryService) CreateGroup(ctx context.Context, req *entity.CreateCategoryGroupRequest) (*entity.CategoryGroup, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	group := &entity.CategoryGroup{
		ID:        uuid.New(),
		Name:      req.Name,
		SortOrder: req.SortOrder,
		CreatedAt: time.Now(),
	}

	if err := s.categoryRepo.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create category group: %w", err)
	}

	return group, nil
}

func (s *CategoryService) GetGroup(ctx context.Context, id uuid.UUID) (*entity.CategoryGroup, error) {
	group, err := s.categoryRepo.GetGroupByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryGroupNotFound) {
			return nil, ErrCategoryGroupNotFound
		}
		return nil, fmt.Errorf("failed to get category group: %w", err)
	}
	return group, nil
}

func (s *CategoryService) GetAllGroups(ctx context.Context) ([]entity.CategoryGroup, error) {
	groups, err := s.categoryRepo.GetAllGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list category groups: %w", err)
	}
	return groups, nil
}

func (s *CategoryService) UpdateGroup(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryGroupRequest) (*entity.CategoryGroup, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	group, err := s.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.SortOrder != nil {
		group.SortOrder = *req.SortOrder
	}

	if err := s.categoryRepo.UpdateGroup(ctx, group); err != nil {
		if errors.Is(err, repository.ErrCategoryGroupNotFound) {
			return nil, ErrCategoryGroupNotFound
		}
		return nil, fmt.Errorf("failed to update category group: %w", err)
	}

	return group, nil
}

// DeleteGroup removes a group; its categories survive ungrouped.
func (s *CategoryService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetGroup(ctx, id); err != nil {
		return err
	}

	if err := s.categoryRepo.DeleteGroup(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryGroupNotFound) {
			return ErrCategoryGroupNotFound
		}
		return fmt.Errorf("failed to delete category group: %w", err)
	}

	s.invalidateCache(ctx)

	return nil
}

func (s *CategoryService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate category cache")
	}
}
