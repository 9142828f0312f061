package statusRepo

import (
	"context"
	"fmt"
	"time"

	"ingcap/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoStatusRepo struct {
	coll *mongo.Collection
}

// NewMongoStatusRepo returns a StatusCheckRepository on the "status_checks" collection.
func NewMongoStatusRepo(db *mongo.Database) StatusCheckRepository {
	return &mongoStatusRepo{coll: db.Collection("status_checks")}
}

func (r *mongoStatusRepo) Create(ctx context.Context, check *models.StatusCheck) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, check); err != nil {
		return fmt.Errorf("error creating status check: %w", err)
	}
	return nil
}

func (r *mongoStatusRepo) GetAll(ctx context.Context, limit int) ([]models.StatusCheck, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding status checks: %w", err)
	}
	defer cursor.Close(ctx)

	checks := []models.StatusCheck{}
	if err := cursor.All(ctx, &checks); err != nil {
		return nil, fmt.Errorf("error decoding status checks: %w", err)
	}
	return checks, nil
}
