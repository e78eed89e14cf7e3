package reservations

import (
	"context"
	"net/http"

	"invitra/db"
	"invitra/models"
	"invitra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func computeReservationStats(reservations []models.Reservation) models.ReservationStats {
	stats := models.ReservationStats{Total: len(reservations)}
	for _, r := range reservations {
		switch r.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusAttended:
			stats.Attended++
		case models.StatusCancelled:
			stats.Cancelled++
		}
		if r.Newsletter {
			stats.Newsletter++
		}
	}
	return stats
}

// GetReservationStats backs the dashboard counters.
func GetReservationStats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.ReservationsCollection.Find(context.TODO(), bson.M{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(context.TODO())

	var reservations []models.Reservation
	if err = cursor.All(context.TODO(), &reservations); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, computeReservationStats(reservations))
}
