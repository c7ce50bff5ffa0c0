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
	ErrPackageNotFound = errors.New("package not found")
)

type packageRepository struct {
	collection *mongo.Collection
}

// NewPackageRepository creates the package repository and its name index.
func NewPackageRepository(db *mongo.Database) PackageRepository {
	collection := db.Collection("packages")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("name_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// the index may already exist, keep going
		logger.Warn().Err(err).Msg("failed to create index on packages.name")
	}

	return &packageRepository{collection: collection}
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.Package) error {
	pkg.CreatedAt = time.Now()
	pkg.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, pkg)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		pkg.ID = oid
	}

	return nil
}

func (r *packageRepository) GetByID(ctx context.Context, id string) (*entity.Package, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPackageNotFound
	}

	var pkg entity.Package
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&pkg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return &pkg, nil
}

func (r *packageRepository) GetAll(ctx context.Context) ([]entity.Package, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find packages: %w", err)
	}
	defer cursor.Close(ctx)

	var packages []entity.Package
	if err := cursor.All(ctx, &packages); err != nil {
		return nil, fmt.Errorf("failed to decode packages: %w", err)
	}

	return packages, nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *entity.Package) error {
	pkg.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":        pkg.Name,
			"description": pkg.Description,
			"products":    pkg.Products,
			"supplies":    pkg.Supplies,
			"total_try":   pkg.TotalTRY,
			"updated_at":  pkg.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": pkg.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrPackageNotFound
	}

	return nil
}

// Delete removes the package document; embedded product and supply lines go with it.
func (r *packageRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPackageNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrPackageNotFound
	}

	return nil
}
