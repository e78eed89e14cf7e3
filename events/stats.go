package events

import (
	"context"
	"net/http"
	"time"

	"invitra/db"
	"invitra/models"
	"invitra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func computeEventStats(events []models.Event, now time.Time) models.EventStats {
	stats := models.EventStats{Total: len(events)}
	for _, e := range events {
		if !e.Date.Before(now) {
			stats.Upcoming++
		}
	}
	stats.Past = stats.Total - stats.Upcoming
	return stats
}

// GetEventStats backs the dashboard counters.
func GetEventStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.EventsCollection.Find(context.TODO(), bson.M{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(context.TODO())

	var events []models.Event
	if err = cursor.All(context.TODO(), &events); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, computeEventStats(events, time.Now().UTC()))
}
