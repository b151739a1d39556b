package controllers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/luxoria/luxoria_backend/models"
	"github.com/luxoria/luxoria_backend/repositories"
)

// Store interfaces consumed by the controllers. The mongo-backed
// implementations live in the repositories package; tests substitute
// in-memory fakes.

type SellerStore interface {
	FindByWallet(ctx context.Context, wallet string) (*models.Seller, error)
	Insert(ctx context.Context, seller *models.Seller) (primitive.ObjectID, error)
}

type BrokerStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Broker, error)
	FindByReferralCode(ctx context.Context, code string) (*models.Broker, error)
	FindByWallet(ctx context.Context, wallet string) (*models.Broker, error)
	Insert(ctx context.Context, broker *models.Broker) (primitive.ObjectID, error)
	IncrementReferredSellers(ctx context.Context, id primitive.ObjectID) error
	AddSaleTotals(ctx context.Context, id primitive.ObjectID, saleUSD, commissionUSD float64) error
	TopByCommission(ctx context.Context, limit, offset int64) ([]models.LeaderboardEntry, error)
}

type CommissionStore interface {
	Insert(ctx context.Context, commission *models.Commission) (primitive.ObjectID, error)
	FindByTransactionHash(ctx context.Context, hash string) (*models.Commission, error)
	ListByBroker(ctx context.Context, brokerID primitive.ObjectID, status string, limit, offset int64) ([]models.Commission, error)
	List(ctx context.Context, status string, limit, offset int64) ([]models.Commission, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID) error
	ActiveSellerCount(ctx context.Context, brokerID primitive.ObjectID) (int, error)
	TotalsSince(ctx context.Context, since time.Time, limit, offset int64) ([]models.LeaderboardEntry, error)
	StatusTotals(ctx context.Context) ([]repositories.CommissionStatusTotals, error)
}

type ClickStore interface {
	Insert(ctx context.Context, click *models.ReferralClick) error
}

type AssetStore interface {
	Insert(ctx context.Context, asset *models.Asset) (primitive.ObjectID, error)
	ListBySeller(ctx context.Context, sellerID primitive.ObjectID, limit, offset int64) ([]models.Asset, error)
	MarkTokenizationRequested(ctx context.Context, id primitive.ObjectID) error
}
