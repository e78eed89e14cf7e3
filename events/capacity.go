package events

import (
	"context"
	"errors"

	"invitra/db"
	"invitra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrEventFull is returned when a reservation attempt finds no free spot.
var ErrEventFull = errors.New("event has no available spots")

// spotStore is the slice of the events collection the accounting code
// touches. *mongo.Collection satisfies it; tests substitute a fake.
type spotStore interface {
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

var eventsStore = func() spotStore { return db.EventsCollection }

// clampSpots bounds current+delta to [0, total].
func clampSpots(current, delta, total int) int {
	n := current + delta
	if n < 0 {
		return 0
	}
	if n > total {
		return total
	}
	return n
}

// AdjustSpots applies a signed delta to an event's available spots in one
// atomic update, clamped to [0, totalSpots]. The clamp runs server-side as
// an aggregation pipeline, so concurrent adjustments never interleave a
// stale read with the write. A missing event is a no-op: the second return
// is false and no error is raised, so a stats refresh can never fail an
// otherwise successful reservation write.
func AdjustSpots(ctx context.Context, eventID string, delta int) (int, bool, error) {
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"availableSpots": bson.M{
				"$max": bson.A{0, bson.M{
					"$min": bson.A{"$totalSpots", bson.M{
						"$add": bson.A{"$availableSpots", delta},
					}},
				}},
			},
		}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Event
	err := eventsStore().FindOneAndUpdate(ctx, bson.M{"eventid": eventID}, pipeline, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return updated.AvailableSpots, true, nil
}

// ReserveSpot consumes one unit of capacity. The decrement is guarded by an
// availableSpots > 0 filter in the same update, so two concurrent
// reservations against a single remaining spot cannot both succeed.
// Returns the remaining spot count.
func ReserveSpot(ctx context.Context, eventID string) (int, error) {
	filter := bson.M{
		"eventid":        eventID,
		"availableSpots": bson.M{"$gt": 0},
	}
	update := bson.M{"$inc": bson.M{"availableSpots": -1}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Event
	err := eventsStore().FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		// Either the event is gone or it is full; look it up to tell apart.
		count, lookupErr := eventsStore().CountDocuments(ctx, bson.M{"eventid": eventID})
		if lookupErr != nil {
			return 0, lookupErr
		}
		if count > 0 {
			return 0, ErrEventFull
		}
		return 0, mongo.ErrNoDocuments
	}
	if err != nil {
		return 0, err
	}
	return updated.AvailableSpots, nil
}

// ReleaseSpot restores one unit of capacity, clamped to totalSpots.
func ReleaseSpot(ctx context.Context, eventID string) (int, bool, error) {
	return AdjustSpots(ctx, eventID, 1)
}
