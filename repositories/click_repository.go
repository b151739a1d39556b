package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luxoria/luxoria_backend/models"
)

type ClickRepository struct {
	collection *mongo.Collection
}

func NewClickRepository(db *mongo.Database) *ClickRepository {
	return &ClickRepository{collection: db.Collection("referralClicks")}
}

// Insert appends one referral click. The log is append-only; clicks are
// never updated or deleted by the application.
func (r *ClickRepository) Insert(ctx context.Context, click *models.ReferralClick) error {
	if click.ClickedAt.IsZero() {
		click.ClickedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, click)
	return err
}
