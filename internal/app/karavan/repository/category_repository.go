package repository

import (
	"context"
	"errors"
	"fmt"

	"karavan/internal/app/karavan/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryGroupNotFound = errors.New("category group not found")
)

type categoryRepository struct {
	db PgxPool
}

// NewCategoryRepository creates a repository for categories and category groups.
func NewCategoryRepository(db PgxPool) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, group_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, category.ID, category.Name, category.GroupID, category.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	query := `SELECT id, name, group_id, created_at FROM categories WHERE id = $1`

	var category entity.Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.GroupID,
		&category.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return &category, nil
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	query := `SELECT id, name, group_id, created_at FROM categories ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []entity.Category
	for rows.Next() {
		var category entity.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.GroupID, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	query := `UPDATE categories SET name = $2, group_id = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, category.ID, category.Name, category.GroupID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (r *categoryRepository) CreateGroup(ctx context.Context, group *entity.CategoryGroup) error {
	query := `
		INSERT INTO category_groups (id, name, sort_order, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, group.ID, group.Name, group.SortOrder, group.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category group: %w", err)
	}

	return nil
}

func (r *categoryRepository) GetGroupByID(ctx context.Context, id uuid.UUID) (*entity.CategoryGroup, error) {
	query := `SELECT id, name, sort_order, created_at FROM category_groups WHERE id = $1`

	var group entity.CategoryGroup
	err := r.db.QueryRow(ctx, query, id).Scan(&group.ID, &group.Name, &group.SortOrder, &group.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryGroupNotFound
		}
		return nil, fmt.Errorf("failed to get category group by id: %w", err)
	}

	return &group, nil
}

func (r *categoryRepository) GetAllGroups(ctx context.Context) ([]entity.CategoryGroup, error) {
	query := `SELECT id, name, sort_order, created_at FROM category_groups ORDER BY sort_order ASC, name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query category groups: %w", err)
	}
	defer rows.Close()

	var groups []entity.CategoryGroup
	for rows.Next() {
		var group entity.CategoryGroup
		if err := rows.Scan(&group.ID, &group.Name, &group.SortOrder, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category group: %w", err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category groups: %w", err)
	}

	return groups, nil
}

func (r *categoryRepository) UpdateGroup(ctx context.Context, group *entity.CategoryGroup) error {
	query := `UPDATE category_groups SET name = $2, sort_order = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, group.ID, group.Name, group.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to update category group: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrCategoryGroupNotFound
	}

	return nil
}

// DeleteGroup detaches the group's categories and removes the group in one
// transaction, so a failed delete never leaves categories detached.
func (r *categoryRepository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete group transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE categories SET group_id = NULL WHERE group_id = $1`, id); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to detach categories from group: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM category_groups WHERE id = $1`, id)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to delete category group: %w", err)
	}

	if tag.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return ErrCategoryGroupNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete group transaction: %w", err)
	}

	return nil
}
