package repository

import (
	"context"
	"fmt"

	"rumahstay/pkg/config"
	"rumahstay/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	BookingsCollectionName = "bookings"
)

// BookingReader gives the catalog service read access to the bookings
// collection for rendering availability calendars.
type BookingReader interface {
	FindOccupiedByProperty(ctx context.Context, propertyID string) ([]model.Booking, error)
}

type mongoBookingReader struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingReader(cfg *config.Config) BookingReader {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingReader{
		cfg:        cfg,
		collection: db.Collection(BookingsCollectionName),
	}
}

func (r *mongoBookingReader) FindOccupiedByProperty(ctx context.Context, propertyID string) ([]model.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"property_id":    propertyID,
		"booking_status": bson.M{"$in": []string{model.BookingStatusPending, model.BookingStatusConfirmed}},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for property [%s]: %w", propertyID, err)
	}
	defer cursor.Close(ctx)

	var bookings []model.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}
