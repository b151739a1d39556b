package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luxoria/luxoria_backend/models"
)

// ErrTokenizationAlreadyRequested is returned when tokenization was already
// requested for the asset.
var ErrTokenizationAlreadyRequested = errors.New("tokenization already requested for this asset")

type AssetRepository struct {
	collection *mongo.Collection
}

func NewAssetRepository(db *mongo.Database) *AssetRepository {
	return &AssetRepository{collection: db.Collection("assets")}
}

func (r *AssetRepository) Insert(ctx context.Context, asset *models.Asset) (primitive.ObjectID, error) {
	now := time.Now()
	asset.CreatedAt = now
	asset.UpdatedAt = now
	if asset.TokenizationStatus == "" {
		asset.TokenizationStatus = models.TokenizationStatusPending
	}

	result, err := r.collection.InsertOne(ctx, asset)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *AssetRepository) ListBySeller(ctx context.Context, sellerID primitive.ObjectID, limit, offset int64) ([]models.Asset, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"sellerId": sellerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// MarkTokenizationRequested records a tokenization request for the asset.
// The on-ledger minting itself is handled by the external XRPL service.
func (r *AssetRepository) MarkTokenizationRequested(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "tokenizationStatus": models.TokenizationStatusPending},
		bson.M{"$set": bson.M{
			"tokenizationStatus":      models.TokenizationStatusRequested,
			"tokenizationRequestedAt": now,
			"updatedAt":               now,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return mongo.ErrNoDocuments
		}
		return ErrTokenizationAlreadyRequested
	}
	return nil
}
