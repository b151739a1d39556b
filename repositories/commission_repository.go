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

var (
	// ErrDuplicateTransaction is returned when a commission with the same
	// transaction hash was already recorded. Callers retrying a sale must
	// not produce a second commission row.
	ErrDuplicateTransaction = errors.New("a commission for this transaction hash already exists")

	// ErrCommissionNotFound is returned when no commission matches the id
	ErrCommissionNotFound = errors.New("commission not found")

	// ErrCommissionAlreadyPaid is returned when marking a commission paid
	// that is not pending anymore.
	ErrCommissionAlreadyPaid = errors.New("commission has already been paid")
)

// CommissionStatusTotals aggregates commissions per status for the admin
// dashboard.
type CommissionStatusTotals struct {
	Status   string  `json:"status" bson:"_id"`
	Count    int     `json:"count" bson:"count"`
	TotalUSD float64 `json:"totalUSD" bson:"totalUSD"`
}

type CommissionRepository struct {
	collection *mongo.Collection
}

func NewCommissionRepository(db *mongo.Database) *CommissionRepository {
	return &CommissionRepository{collection: db.Collection("commissions")}
}

// Insert creates a commission row. The unique sparse index on
// transactionHash turns a retried sale into ErrDuplicateTransaction.
func (r *CommissionRepository) Insert(ctx context.Context, commission *models.Commission) (primitive.ObjectID, error) {
	commission.CreatedAt = time.Now()
	commission.Status = models.CommissionStatusPending

	result, err := r.collection.InsertOne(ctx, commission)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateTransaction
		}
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *CommissionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Commission, error) {
	var commission models.Commission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&commission)
	if err != nil {
		return nil, err
	}
	return &commission, nil
}

func (r *CommissionRepository) FindByTransactionHash(ctx context.Context, hash string) (*models.Commission, error) {
	var commission models.Commission
	err := r.collection.FindOne(ctx, bson.M{"transactionHash": hash}).Decode(&commission)
	if err != nil {
		return nil, err
	}
	return &commission, nil
}

// ListByBroker returns a broker's commissions, newest first. An empty
// status lists all.
func (r *CommissionRepository) ListByBroker(ctx context.Context, brokerID primitive.ObjectID, status string, limit, offset int64) ([]models.Commission, error) {
	filter := bson.M{"brokerId": brokerID}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter, limit, offset)
}

// List returns commissions across all brokers, newest first
func (r *CommissionRepository) List(ctx context.Context, status string, limit, offset int64) ([]models.Commission, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter, limit, offset)
}

func (r *CommissionRepository) list(ctx context.Context, filter bson.M, limit, offset int64) ([]models.Commission, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var commissions []models.Commission
	if err := cursor.All(ctx, &commissions); err != nil {
		return nil, err
	}
	return commissions, nil
}

// MarkPaid transitions a commission from pending to paid. The transition is
// guarded by the status filter so it can only happen once.
func (r *CommissionRepository) MarkPaid(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.CommissionStatusPending},
		bson.M{"$set": bson.M{
			"status": models.CommissionStatusPaid,
			"paidAt": now,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing row from one that was already paid
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrCommissionNotFound
		}
		return ErrCommissionAlreadyPaid
	}
	return nil
}

// ActiveSellerCount counts distinct sellers with at least one recorded
// commission for the broker.
func (r *CommissionRepository) ActiveSellerCount(ctx context.Context, brokerID primitive.ObjectID) (int, error) {
	sellers, err := r.collection.Distinct(ctx, "sellerId", bson.M{"brokerId": brokerID})
	if err != nil {
		return 0, err
	}
	return len(sellers), nil
}

// TotalsSince builds a windowed leaderboard by aggregating commissions
// created after the cutoff, grouped per broker.
func (r *CommissionRepository) TotalsSince(ctx context.Context, since time.Time, limit, offset int64) ([]models.LeaderboardEntry, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":                "$brokerId",
			"totalSalesUSD":      bson.M{"$sum": "$saleAmountUSD"},
			"totalCommissionUSD": bson.M{"$sum": "$commissionUSD"},
			"salesCount":         bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalCommissionUSD", Value: -1}}}},
		{{Key: "$skip", Value: offset}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "brokers",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "broker",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"fullName":     bson.M{"$first": "$broker.fullName"},
			"referralCode": bson.M{"$first": "$broker.referralCode"},
		}}},
		{{Key: "$project", Value: bson.M{"broker": 0}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
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

// StatusTotals aggregates commission counts and amounts per status
func (r *CommissionRepository) StatusTotals(ctx context.Context) ([]CommissionStatusTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      "$status",
			"count":    bson.M{"$sum": 1},
			"totalUSD": bson.M{"$sum": "$commissionUSD"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var totals []CommissionStatusTotals
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	return totals, nil
}
