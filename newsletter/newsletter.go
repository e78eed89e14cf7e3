package newsletter

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"invitra/db"
	"invitra/mailer"
	"invitra/models"
	"invitra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Broadcast sends the announcement to every subscriber concurrently and
// waits for all sends to settle. The batch is all-or-nothing: a single
// failed send fails the whole broadcast and no partial count is reported.
func Broadcast(event models.Event, subs []models.Reservation, send func(mailer.Message) error) (int, error) {
	var wg sync.WaitGroup
	errs := make([]error, len(subs))

	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub models.Reservation) {
			defer wg.Done()
			errs[i] = send(mailer.NewsletterMessage(sub, event))
		}(i, sub)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return 0, fmt.Errorf("send to %s failed: %w", subs[i].Email, err)
		}
	}
	return len(subs), nil
}

func subscribers(ctx context.Context) ([]models.Reservation, error) {
	cursor, err := db.ReservationsCollection.Find(ctx, bson.M{"newsletter": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []models.Reservation
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func broadcastForEvent(ctx context.Context, eventID string) (int, int, error) {
	var event models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return http.StatusNotFound, 0, fmt.Errorf("event not found")
	}
	if err != nil {
		return http.StatusInternalServerError, 0, err
	}

	subs, err := subscribers(ctx)
	if err != nil {
		return http.StatusInternalServerError, 0, err
	}

	count, err := Broadcast(event, subs, mailer.Send)
	if err != nil {
		return http.StatusInternalServerError, 0, err
	}
	return http.StatusOK, count, nil
}

// SendNewsletter handles POST /api/admin/newsletter/send with a JSON body.
func SendNewsletter(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		EventID string `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.EventID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	code, count, err := broadcastForEvent(r.Context(), input.EventID)
	if err != nil {
		if code == http.StatusNotFound {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		log.Printf("Error sending newsletter for event %s: %v", input.EventID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":   true,
		"sentCount": count,
		"message":   fmt.Sprintf("Newsletter sent to %d subscribers", count),
	})
}

// SendNewsletterForEvent is the path-keyed variant. It carries the same
// admin gate as SendNewsletter: the ungated duplicate of earlier revisions
// was an authorization hole.
func SendNewsletterForEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	code, count, err := broadcastForEvent(r.Context(), eventID)
	if err != nil {
		if code == http.StatusNotFound {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		log.Printf("Error sending newsletter for event %s: %v", eventID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": fmt.Sprintf("Newsletter sent to %d subscribers", count),
	})
}
