package events

import (
	"context"
	"errors"
	"testing"

	"invitra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeSpotStore records the queries the accounting code issues and replays
// canned results.
type fakeSpotStore struct {
	result    *mongo.SingleResult
	count     int64
	countErr  error
	gotFilter interface{}
	gotUpdate interface{}
	counted   bool
}

func (f *fakeSpotStore) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult {
	f.gotFilter = filter
	f.gotUpdate = update
	return f.result
}

func (f *fakeSpotStore) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	f.counted = true
	return f.count, f.countErr
}

func withFakeStore(t *testing.T, f *fakeSpotStore) {
	t.Helper()
	orig := eventsStore
	eventsStore = func() spotStore { return f }
	t.Cleanup(func() { eventsStore = orig })
}

func resultWithEvent(event models.Event) *mongo.SingleResult {
	return mongo.NewSingleResultFromDocument(event, nil, nil)
}

func resultNoDocuments() *mongo.SingleResult {
	return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
}

func TestAdjustSpotsReturnsUpdatedCount(t *testing.T) {
	fake := &fakeSpotStore{result: resultWithEvent(models.Event{
		EventID: "e1", TotalSpots: 50, AvailableSpots: 49,
	})}
	withFakeStore(t, fake)

	spots, found, err := AdjustSpots(context.Background(), "e1", -1)
	if err != nil {
		t.Fatalf("AdjustSpots: %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	if spots != 49 {
		t.Errorf("spots = %d, want 49", spots)
	}

	filter, ok := fake.gotFilter.(bson.M)
	if !ok || filter["eventid"] != "e1" {
		t.Errorf("filter = %v, want eventid e1", fake.gotFilter)
	}
	// the clamp must run server-side as a pipeline, not a plain $set
	if _, ok := fake.gotUpdate.(bson.A); !ok {
		t.Errorf("update = %T, want aggregation pipeline (bson.A)", fake.gotUpdate)
	}
}

// A missing event is a silent no-op, never an error.
func TestAdjustSpotsMissingEventIsNoOp(t *testing.T) {
	fake := &fakeSpotStore{result: resultNoDocuments()}
	withFakeStore(t, fake)

	spots, found, err := AdjustSpots(context.Background(), "ghost", 1)
	if err != nil {
		t.Fatalf("AdjustSpots: %v", err)
	}
	if found {
		t.Error("found = true, want false for a missing event")
	}
	if spots != 0 {
		t.Errorf("spots = %d, want 0", spots)
	}
}

func TestReserveSpotGuardsDecrement(t *testing.T) {
	fake := &fakeSpotStore{result: resultWithEvent(models.Event{
		EventID: "e1", TotalSpots: 50, AvailableSpots: 0,
	})}
	withFakeStore(t, fake)

	spots, err := ReserveSpot(context.Background(), "e1")
	if err != nil {
		t.Fatalf("ReserveSpot: %v", err)
	}
	if spots != 0 {
		t.Errorf("spots = %d, want 0", spots)
	}

	// the decrement must carry the availableSpots > 0 guard in the same
	// update, so concurrent takers of the last spot cannot both succeed
	filter, ok := fake.gotFilter.(bson.M)
	if !ok {
		t.Fatalf("filter = %T, want bson.M", fake.gotFilter)
	}
	guard, ok := filter["availableSpots"].(bson.M)
	if !ok {
		t.Fatal("filter has no availableSpots guard")
	}
	if guard["$gt"] != 0 {
		t.Errorf("guard = %v, want $gt 0", guard)
	}
}

func TestReserveSpotFullEvent(t *testing.T) {
	fake := &fakeSpotStore{result: resultNoDocuments(), count: 1}
	withFakeStore(t, fake)

	_, err := ReserveSpot(context.Background(), "e1")
	if !errors.Is(err, ErrEventFull) {
		t.Errorf("err = %v, want ErrEventFull", err)
	}
	if !fake.counted {
		t.Error("full-vs-missing disambiguation lookup never ran")
	}
}

func TestReserveSpotMissingEvent(t *testing.T) {
	fake := &fakeSpotStore{result: resultNoDocuments(), count: 0}
	withFakeStore(t, fake)

	_, err := ReserveSpot(context.Background(), "ghost")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("err = %v, want mongo.ErrNoDocuments", err)
	}
}

func TestReserveSpotLookupFailure(t *testing.T) {
	boom := errors.New("connection reset")
	fake := &fakeSpotStore{result: resultNoDocuments(), countErr: boom}
	withFakeStore(t, fake)

	_, err := ReserveSpot(context.Background(), "e1")
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
