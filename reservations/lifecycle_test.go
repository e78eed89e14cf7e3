package reservations

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"invitra/models"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestStatusDelta(t *testing.T) {
	tests := []struct {
		old  string
		new  string
		want int
	}{
		{models.StatusPending, models.StatusCancelled, 1},
		{models.StatusCancelled, models.StatusPending, -1},
		{models.StatusPending, models.StatusAttended, 0},
		{models.StatusAttended, models.StatusCancelled, 0},
		{models.StatusCancelled, models.StatusCancelled, 0},
		{models.StatusAttended, models.StatusPending, 0},
		{models.StatusPending, models.StatusPending, 0},
	}

	for _, tt := range tests {
		if got := statusDelta(tt.old, tt.new); got != tt.want {
			t.Errorf("statusDelta(%s, %s) = %d, want %d", tt.old, tt.new, got, tt.want)
		}
	}
}

func TestDeleteDelta(t *testing.T) {
	if got := deleteDelta(models.StatusPending); got != 1 {
		t.Errorf("deleteDelta(pending) = %d, want 1", got)
	}
	if got := deleteDelta(models.StatusAttended); got != 0 {
		t.Errorf("deleteDelta(attended) = %d, want 0", got)
	}
	if got := deleteDelta(models.StatusCancelled); got != 0 {
		t.Errorf("deleteDelta(cancelled) = %d, want 0", got)
	}
}

// Walks the full lifecycle of one reservation against a 50-spot event:
// create, cancel, reinstate, delete.
func TestLifecycleSpotWalk(t *testing.T) {
	const total = 50
	spots := total

	clamp := func(n int) int {
		if n < 0 {
			return 0
		}
		if n > total {
			return total
		}
		return n
	}

	// create takes one spot
	spots = clamp(spots - 1)
	if spots != 49 {
		t.Fatalf("after create: spots = %d, want 49", spots)
	}

	// cancel gives it back
	spots = clamp(spots + statusDelta(models.StatusPending, models.StatusCancelled))
	if spots != 50 {
		t.Fatalf("after cancel: spots = %d, want 50", spots)
	}

	// reinstate takes it again
	spots = clamp(spots + statusDelta(models.StatusCancelled, models.StatusPending))
	if spots != 49 {
		t.Fatalf("after reinstate: spots = %d, want 49", spots)
	}

	// deleting the pending reservation restores it
	spots = clamp(spots + deleteDelta(models.StatusPending))
	if spots != 50 {
		t.Fatalf("after delete: spots = %d, want 50", spots)
	}
}

// Only a genuinely absent reservation is a 404; a failing store must
// surface as a server error, not "not found".
func TestLookupStatusCode(t *testing.T) {
	if got := lookupStatusCode(mongo.ErrNoDocuments); got != http.StatusNotFound {
		t.Errorf("lookupStatusCode(ErrNoDocuments) = %d, want %d", got, http.StatusNotFound)
	}
	wrapped := fmt.Errorf("reservation lookup: %w", mongo.ErrNoDocuments)
	if got := lookupStatusCode(wrapped); got != http.StatusNotFound {
		t.Errorf("lookupStatusCode(wrapped ErrNoDocuments) = %d, want %d", got, http.StatusNotFound)
	}
	if got := lookupStatusCode(errors.New("connection reset")); got != http.StatusInternalServerError {
		t.Errorf("lookupStatusCode(store failure) = %d, want %d", got, http.StatusInternalServerError)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{models.StatusPending, models.StatusAttended, models.StatusCancelled} {
		if !validStatus(s) {
			t.Errorf("validStatus(%s) = false, want true", s)
		}
	}
	for _, s := range []string{"", "confirmed", "PENDING"} {
		if validStatus(s) {
			t.Errorf("validStatus(%q) = true, want false", s)
		}
	}
}
