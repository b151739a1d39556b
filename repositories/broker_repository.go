package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luxoria/luxoria_backend/models"
)

type BrokerRepository struct {
	collection *mongo.Collection
}

func NewBrokerRepository(db *mongo.Database) *BrokerRepository {
	return &BrokerRepository{collection: db.Collection("brokers")}
}

func (r *BrokerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Broker, error) {
	var broker models.Broker
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&broker)
	if err != nil {
		return nil, err
	}
	return &broker, nil
}

func (r *BrokerRepository) FindByReferralCode(ctx context.Context, code string) (*models.Broker, error) {
	var broker models.Broker
	err := r.collection.FindOne(ctx, bson.M{"referralCode": code}).Decode(&broker)
	if err != nil {
		return nil, err
	}
	return &broker, nil
}

func (r *BrokerRepository) FindByWallet(ctx context.Context, wallet string) (*models.Broker, error) {
	var broker models.Broker
	err := r.collection.FindOne(ctx, bson.M{"walletAddress": wallet}).Decode(&broker)
	if err != nil {
		return nil, err
	}
	return &broker, nil
}

func (r *BrokerRepository) Insert(ctx context.Context, broker *models.Broker) (primitive.ObjectID, error) {
	now := time.Now()
	broker.CreatedAt = now
	broker.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, broker)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// IncrementReferredSellers atomically bumps the broker's referred-seller
// counter after a new seller registration.
func (r *BrokerRepository) IncrementReferredSellers(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"referredSellersCount": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	return err
}

// AddSaleTotals atomically adds a recorded sale to the broker's aggregate
// counters. Concurrent sale recordings for the same broker are safe because
// the increment happens on the database side.
func (r *BrokerRepository) AddSaleTotals(ctx context.Context, id primitive.ObjectID, saleUSD, commissionUSD float64) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{
			"totalSalesUSD":      saleUSD,
			"totalCommissionUSD": commissionUSD,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	return err
}

// TopByCommission returns the all-time leaderboard, ranked by aggregate
// commission totals on the broker documents.
func (r *BrokerRepository) TopByCommission(ctx context.Context, limit, offset int64) ([]models.LeaderboardEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "totalCommissionUSD", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.LeaderboardEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Rank = int(offset) + i + 1
	}
	return entries, nil
}
