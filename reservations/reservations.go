package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"invitra/db"
	"invitra/events"
	"invitra/live"
	"invitra/models"
	"invitra/mq"
	"invitra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateReservation is the public booking endpoint. The capacity unit is
// taken first with a guarded atomic decrement; only then is the
// reservation document written. If that write fails, the unit is released
// again so the two writes cannot drift apart.
func CreateReservation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		EventID    string `json:"eventId"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
		Newsletter bool   `json:"newsletter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.EventID == "" || input.Name == "" || input.Email == "" {
		http.Error(w, "eventId, name and email are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	remaining, err := events.ReserveSpot(ctx, input.EventID)
	if errors.Is(err, events.ErrEventFull) {
		http.Error(w, "Event has no available spots", http.StatusConflict)
		return
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("Error reserving spot on event %s: %v", input.EventID, err)
		http.Error(w, "Error saving reservation", http.StatusInternalServerError)
		return
	}

	res := models.Reservation{
		ReservationID: utils.GetUUID(),
		EventID:       input.EventID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Newsletter:    input.Newsletter,
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if _, err := db.ReservationsCollection.InsertOne(ctx, res); err != nil {
		log.Printf("Error inserting reservation: %v", err)
		// give the taken spot back
		if _, _, relErr := events.ReleaseSpot(context.Background(), input.EventID); relErr != nil {
			log.Printf("Failed to release spot on event %s after insert failure: %v", input.EventID, relErr)
		}
		http.Error(w, "Error saving reservation", http.StatusInternalServerError)
		return
	}

	live.BroadcastSpots(input.EventID, remaining)

	// Invitation delivery is asynchronous; a failure there leaves the
	// reservation confirmed but uninvited until an admin resends.
	go mq.Emit("reservation-created", models.Index{
		EntityType: "reservation", EntityId: res.ReservationID, Method: "POST",
	})

	utils.RespondWithJSON(w, http.StatusCreated, res)
}

func GetReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sortOrder := bson.D{{Key: "createdAt", Value: -1}}
	cursor, err := db.ReservationsCollection.Find(context.TODO(), bson.M{}, options.Find().SetSort(sortOrder))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(context.TODO())

	reservations := []models.Reservation{}
	if err = cursor.All(context.TODO(), &reservations); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, reservations)
}

func GetReservationsByEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	sortOrder := bson.D{{Key: "createdAt", Value: -1}}
	cursor, err := db.ReservationsCollection.Find(context.TODO(), bson.M{"eventid": eventID}, options.Find().SetSort(sortOrder))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(context.TODO())

	reservations := []models.Reservation{}
	if err = cursor.All(context.TODO(), &reservations); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, reservations)
}

// lookupStatusCode maps a reservation lookup error to the response code:
// only a genuinely absent document is a 404, store failures are 500.
func lookupStatusCode(err error) int {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// setStatus applies one transition and its capacity effect.
func setStatus(ctx context.Context, reservationID, newStatus string) (int, error) {
	var res models.Reservation
	err := db.ReservationsCollection.FindOne(ctx, bson.M{"reservationid": reservationID}).Decode(&res)
	if err != nil {
		return lookupStatusCode(err), err
	}

	_, err = db.ReservationsCollection.UpdateOne(
		ctx,
		bson.M{"reservationid": reservationID},
		bson.M{"$set": bson.M{"status": newStatus}},
	)
	if err != nil {
		return http.StatusInternalServerError, err
	}

	if delta := statusDelta(res.Status, newStatus); delta != 0 {
		spots, found, err := events.AdjustSpots(ctx, res.EventID, delta)
		if err != nil {
			return http.StatusInternalServerError, err
		}
		if found {
			live.BroadcastSpots(res.EventID, spots)
		}
	}
	return http.StatusOK, nil
}

// SetReservationStatus handles PUT /api/admin/reservations/:reservationid/status.
func SetReservationStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservationID := ps.ByName("reservationid")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || !validStatus(input.Status) {
		http.Error(w, "status must be one of pending, attended, cancelled", http.StatusBadRequest)
		return
	}

	if code, err := setStatus(r.Context(), reservationID, input.Status); err != nil {
		if code == http.StatusNotFound {
			http.Error(w, "Reservation not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating reservation %s: %v", reservationID, err)
		http.Error(w, "Error updating reservation", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// ConfirmAttendance is the QR confirmation target: it marks the
// reservation attended.
func ConfirmAttendance(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservationID := ps.ByName("reservationid")

	if code, err := setStatus(r.Context(), reservationID, models.StatusAttended); err != nil {
		if code == http.StatusNotFound {
			http.Error(w, "Reservation not found", http.StatusNotFound)
			return
		}
		log.Printf("Error confirming attendance %s: %v", reservationID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Attendance confirmed"})
}

// DeleteReservation removes the document; a pending reservation gives its
// capacity unit back.
func DeleteReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservationID := ps.ByName("reservationid")
	ctx := r.Context()

	var res models.Reservation
	err := db.ReservationsCollection.FindOne(ctx, bson.M{"reservationid": reservationID}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Reservation not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := db.ReservationsCollection.DeleteOne(ctx, bson.M{"reservationid": reservationID}); err != nil {
		log.Printf("Error deleting reservation %s: %v", reservationID, err)
		http.Error(w, "Error deleting reservation", http.StatusInternalServerError)
		return
	}

	if delta := deleteDelta(res.Status); delta != 0 {
		spots, found, err := events.AdjustSpots(ctx, res.EventID, delta)
		if err != nil {
			log.Printf("Error restoring spot on event %s: %v", res.EventID, err)
		} else if found {
			live.BroadcastSpots(res.EventID, spots)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
