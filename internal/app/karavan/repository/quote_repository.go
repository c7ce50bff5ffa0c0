package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"karavan/internal/app/karavan/entity"
	"karavan/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrQuoteNotFound = errors.New("quote not found")
)

type quoteRepository struct {
	collection *mongo.Collection
}

// NewQuoteRepository creates the quote repository and its created_at index.
func NewQuoteRepository(db *mongo.Database) QuoteRepository {
	collection := db.Collection("quotes")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("created_at_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// the index may already exist, keep going
		logger.Warn().Err(err).Msg("failed to create index on quotes.created_at")
	}

	return &quoteRepository{collection: collection}
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	quote.CreatedAt = time.Now()
	quote.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, quote)
	if err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		quote.ID = oid
	}

	return nil
}

func (r *quoteRepository) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrQuoteNotFound
	}

	var quote entity.Quote
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&quote)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	return &quote, nil
}

func (r *quoteRepository) GetAll(ctx context.Context) ([]entity.Quote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find quotes: %w", err)
	}
	defer cursor.Close(ctx)

	var quotes []entity.Quote
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, fmt.Errorf("failed to decode quotes: %w", err)
	}

	return quotes, nil
}

func (r *quoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	quote.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"customer_name":  quote.CustomerName,
			"customer_email": quote.CustomerEmail,
			"customer_phone": quote.CustomerPhone,
			"notes":          quote.Notes,
			"items":          quote.Items,
			"total_try":      quote.TotalTRY,
			"updated_at":     quote.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": quote.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrQuoteNotFound
	}

	return nil
}

func (r *quoteRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrQuoteNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrQuoteNotFound
	}

	return nil
}
