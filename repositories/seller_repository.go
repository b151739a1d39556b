package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luxoria/luxoria_backend/models"
)

// ErrDuplicateWallet is returned when a seller with the wallet address
// already exists.
var ErrDuplicateWallet = errors.New("seller with this wallet address already exists")

type SellerRepository struct {
	collection *mongo.Collection
}

func NewSellerRepository(db *mongo.Database) *SellerRepository {
	return &SellerRepository{collection: db.Collection("sellers")}
}

// FindByWallet returns the seller owning the wallet address, or
// mongo.ErrNoDocuments.
func (r *SellerRepository) FindByWallet(ctx context.Context, wallet string) (*models.Seller, error) {
	var seller models.Seller
	err := r.collection.FindOne(ctx, bson.M{"walletAddress": wallet}).Decode(&seller)
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

// Insert creates a new seller row. Relies on the unique index on
// walletAddress to reject concurrent duplicate registrations.
func (r *SellerRepository) Insert(ctx context.Context, seller *models.Seller) (primitive.ObjectID, error) {
	now := time.Now()
	seller.CreatedAt = now
	seller.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, seller)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateWallet
		}
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}
