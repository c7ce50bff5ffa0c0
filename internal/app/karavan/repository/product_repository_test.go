package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"karavan/internal/app/karavan/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProductRepositoryTestSuite drives the GORM repository against sqlmock.
type ProductRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  ProductRepository
	sqlDB *sql.DB
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryTestSuite))
}

func (s *ProductRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewProductRepository(s.db)
}

func (s *ProductRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func productRows(products ...*entity.Product) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "name_normalized", "search_text", "brand", "description",
		"image_url", "company_id", "category_id", "list_price", "currency",
		"discounted_price", "list_price_try", "discounted_price_try",
		"is_favorite", "created_at", "updated_at",
	})
	for _, p := range products {
		rows.AddRow(
			p.ID, p.Name, p.NameNormalized, p.SearchText, p.Brand, p.Description,
			p.ImageURL, p.CompanyID, p.CategoryID, p.ListPrice, p.Currency,
			p.DiscountedPrice, p.ListPriceTRY, p.DiscountedPriceTRY,
			p.IsFavorite, p.CreatedAt, p.UpdatedAt,
		)
	}
	return rows
}

// ===================== GetByID Tests =====================

func (s *ProductRepositoryTestSuite) TestGetByID_Success() {
	ctx := context.Background()

	product := &entity.Product{
		ID:           uuid.New(),
		Name:         "Güneş Paneli",
		CompanyID:    uuid.New(),
		ListPrice:    100,
		Currency:     "USD",
		ListPriceTRY: 4150,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
		WillReturnRows(productRows(product))

	// Act
	result, err := s.repo.GetByID(ctx, product.ID)

	// Assert
	s.NoError(err)
	s.Equal(product.ID, result.ID)
	s.Equal(4150.0, result.ListPriceTRY)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	result, err := s.repo.GetByID(ctx, uuid.New())

	// Assert
	s.ErrorIs(err, ErrProductNotFound)
	s.Nil(result)
}

// ===================== List Tests =====================

func (s *ProductRepositoryTestSuite) TestList_OrdersFavoritesFirst() {
	ctx := context.Background()

	favorite := &entity.Product{ID: uuid.New(), Name: "Akü", NameNormalized: "aku", IsFavorite: true}
	regular := &entity.Product{ID: uuid.New(), Name: "Panel", NameNormalized: "panel"}

	s.mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY is_favorite DESC`)).
		WillReturnRows(productRows(favorite, regular))

	// Act
	products, err := s.repo.List(ctx, entity.ProductFilter{Page: 1, Limit: 50})

	// Assert
	s.NoError(err)
	s.Len(products, 2)
	s.True(products[0].IsFavorite)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestList_SearchUsesNormalizedColumn() {
	ctx := context.Background()

	// A diacritic query must hit the folded search_text column.
	s.mock.ExpectQuery(regexp.QuoteMeta(`search_text LIKE $1`)).
		WithArgs("%aku%", sqlmock.AnyArg()).
		WillReturnRows(productRows())

	// Act
	_, err := s.repo.List(ctx, entity.ProductFilter{Search: "AKÜ", Page: 1, Limit: 50})

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestList_CompanyAndFavoriteFilters() {
	ctx := context.Background()
	companyID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`company_id = $1 AND is_favorite = $2`)).
		WillReturnRows(productRows())

	// Act
	_, err := s.repo.List(ctx, entity.ProductFilter{
		CompanyID:      &companyID,
		OnlyFavorites:  true,
		SkipPagination: true,
	})

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Count Tests =====================

func (s *ProductRepositoryTestSuite) TestCount_Success() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	// Act
	count, err := s.repo.Count(ctx, entity.ProductFilter{})

	// Assert
	s.NoError(err)
	s.Equal(int64(42), count)
}

// ===================== Update Tests =====================

func (s *ProductRepositoryTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	product := &entity.Product{ID: uuid.New(), Name: "Panel"}

	// Act
	err := s.repo.Update(ctx, product)

	// Assert
	s.ErrorIs(err, ErrProductNotFound)
}

// ===================== Delete Tests =====================

func (s *ProductRepositoryTestSuite) TestDelete_Success() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products" WHERE company_id = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.DeleteByCompanyID(ctx, uuid.New())

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestDelete_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products" WHERE id = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Delete(ctx, uuid.New())

	// Assert
	s.ErrorIs(err, ErrProductNotFound)
}

// ===================== ClearCategory Tests =====================

func (s *ProductRepositoryTestSuite) TestClearCategory_Success() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "category_id"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.ClearCategory(ctx, uuid.New())

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}
