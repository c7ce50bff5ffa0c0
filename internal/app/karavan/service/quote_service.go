package service

import (
	"context"
	"errors"
	"fmt"

	"karavan/internal/app/karavan/entity"
	"karavan/internal/app/karavan/repository"
	"karavan/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

// QuoteService builds customer offers. Each line freezes the product name
// and its effective TRY price (discounted when available) at quote time, so
// later catalog edits never change an issued quote.
type QuoteService struct {
	quoteRepo   repository.QuoteRepository
	productRepo repository.ProductRepository
	validate    *validator.Validate
}

func NewQuoteService(quoteRepo repository.QuoteRepository, productRepo repository.ProductRepository) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		productRepo: productRepo,
		validate:    validator.New(),
	}
}

func (s *QuoteService) CreateQuote(ctx context.Context, req *entity.CreateQuoteRequest) (*entity.Quote, error) {
	quote, err := s.buildQuote(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	metrics.RecordQuoteCreated(metrics.ServiceName)

	return quote, nil
}

func (s *QuoteService) GetQuote(ctx context.Context, id string) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return quote, nil
}

func (s *QuoteService) GetAllQuotes(ctx context.Context) ([]entity.Quote, error) {
	quotes, err := s.quoteRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return quotes, nil
}

// UpdateQuote rebuilds the quote from the request, repricing every line
// against the current catalog.
func (s *QuoteService) UpdateQuote(ctx context.Context, id string, req *entity.CreateQuoteRequest) (*entity.Quote, error) {
	existing, err := s.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}

	quote, err := s.buildQuote(ctx, req)
	if err != nil {
		return nil, err
	}

	quote.ID = existing.ID
	quote.CreatedAt = existing.CreatedAt

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}

	return quote, nil
}

func (s *QuoteService) DeleteQuote(ctx context.Context, id string) error {
	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	return nil
}

func (s *QuoteService) buildQuote(ctx context.Context, req *entity.CreateQuoteRequest) (*entity.Quote, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var total float64
	items := make([]entity.QuoteItem, 0, len(req.Items))

	for _, line := range req.Items {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
			}
			return nil, fmt.Errorf("failed to check product: %w", err)
		}

		unitPrice := product.ListPriceTRY
		if product.DiscountedPriceTRY != nil {
			unitPrice = *product.DiscountedPriceTRY
		}

		lineTotal := unitPrice * float64(line.Quantity)
		total += lineTotal

		items = append(items, entity.QuoteItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Quantity:     line.Quantity,
			UnitPriceTRY: unitPrice,
			LineTotalTRY: lineTotal,
		})
	}

	return &entity.Quote{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
		Items:         items,
		TotalTRY:      total,
	}, nil
}
