package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ingcap/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const collectionName = "bookings"

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository on the "bookings" collection of db.
func NewMongoBookingRepo(ctx context.Context, db *mongo.Database, logger *zap.Logger) BookingRepository {
	repo := &MongoBookingRepo{coll: db.Collection(collectionName)}
	if err := repo.ensureIndexes(ctx); err != nil {
		logger.Warn("booking repository: index creation failed", zap.Error(err))
	}
	return repo
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking %s: %w", booking.ID, err)
	}
	return nil
}

// UpdateDelivery sets the notification outcome. Only bookings still in the saved
// status match, so a record is finalised at most once.
func (r *MongoBookingRepo) UpdateDelivery(ctx context.Context, id string, update models.DeliveryUpdate) error {
	if !models.StatusSaved.CanTransitionTo(update.Status) {
		return fmt.Errorf("booking %s: cannot move to %q: %w", id, update.Status, ErrStatusTransition)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": update.Status}
	if update.EmailError != "" {
		set["email_error"] = update.EmailError
	}
	if update.EmailSentTime != nil {
		set["email_sent_time"] = update.EmailSentTime.UTC()
	}
	if len(update.Recipients) > 0 {
		set["emails_sent"] = update.Recipients
	}

	filter := bson.M{"id": id, "status": models.StatusSaved}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error checking booking %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrBookingNotFound)
	}
	return fmt.Errorf("booking %s: %w", id, ErrStatusTransition)
}

// GetByID retrieves a booking by its id.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s: %w", id, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

// ListRecent returns up to limit bookings sorted by timestamp, newest first.
func (r *MongoBookingRepo) ListRecent(ctx context.Context, limit int) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, bson.M{}, opts)
}

// ListByDate returns bookings requested for date in one of the given statuses.
func (r *MongoBookingRepo) ListByDate(ctx context.Context, date string, statuses []models.BookingStatus) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	return r.find(ctx, filter, options.Find())
}

// Ping verifies the underlying client is reachable.
func (r *MongoBookingRepo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
