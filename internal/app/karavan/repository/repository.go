package repository

import (
	"context"

	"karavan/internal/app/karavan/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the raw-SQL repositories need.
// Satisfied by *pgxpool.Pool in production and by pgxmock pools in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ProductRepository persists catalog products in PostgreSQL.
// List and Count push filtering, normalized search and the
// favorites-first ordering into the query itself.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCompanyID(ctx context.Context, companyID uuid.UUID) error
	ClearCategory(ctx context.Context, categoryID uuid.UUID) error
	List(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)
	Count(ctx context.Context, filter entity.ProductFilter) (int64, error)
}

type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	GetAll(ctx context.Context) ([]entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateGroup(ctx context.Context, group *entity.CategoryGroup) error
	GetGroupByID(ctx context.Context, id uuid.UUID) (*entity.CategoryGroup, error)
	GetAllGroups(ctx context.Context) ([]entity.CategoryGroup, error)
	UpdateGroup(ctx context.Context, group *entity.CategoryGroup) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error
}

// RateSnapshotRepository stores exactly one exchange-rate snapshot;
// every successful fetch overwrites it.
type RateSnapshotRepository interface {
	GetLatest(ctx context.Context) (*entity.ExchangeRateSnapshot, error)
	Upsert(ctx context.Context, snapshot *entity.ExchangeRateSnapshot) error
}

type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	GetByID(ctx context.Context, id string) (*entity.Package, error)
	GetAll(ctx context.Context) ([]entity.Package, error)
	Update(ctx context.Context, pkg *entity.Package) error
	Delete(ctx context.Context, id string) error
}

type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	GetAll(ctx context.Context) ([]entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	Delete(ctx context.Context, id string) error
}
