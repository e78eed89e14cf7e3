package invites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"invitra/db"
	"invitra/mailer"
	"invitra/models"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func loadReservationAndEvent(ctx context.Context, reservationID string) (models.Reservation, models.Event, error) {
	var res models.Reservation
	err := db.ReservationsCollection.FindOne(ctx, bson.M{"reservationid": reservationID}).Decode(&res)
	if err != nil {
		return res, models.Event{}, fmt.Errorf("reservation lookup: %w", err)
	}

	var event models.Event
	err = db.EventsCollection.FindOne(ctx, bson.M{"eventid": res.EventID}).Decode(&event)
	if err != nil {
		return res, event, fmt.Errorf("event lookup: %w", err)
	}
	return res, event, nil
}

// Deliver renders the invitation and emails it to the reservation holder.
func Deliver(ctx context.Context, reservationID string) error {
	res, event, err := loadReservationAndEvent(ctx, reservationID)
	if err != nil {
		return err
	}

	pdf, err := RenderPDF(res, event)
	if err != nil {
		return err
	}

	return mailer.Send(mailer.InvitationMessage(res, event, pdf))
}

// GetInvitationPDF serves the rendered invitation for an admin download.
func GetInvitationPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservationID := ps.ByName("reservationid")

	res, event, err := loadReservationAndEvent(r.Context(), reservationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "Reservation not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pdf, err := RenderPDF(res, event)
	if err != nil {
		log.Printf("Error generating invitation %s: %v", reservationID, err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="invitation-`+reservationID+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// SendInvitation re-sends the invitation email for a reservation. The route
// is admin-gated: the unauthenticated resend of earlier revisions was an
// authorization hole.
func SendInvitation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		ReservationID string `json:"reservationId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ReservationID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := Deliver(r.Context(), input.ReservationID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.Error(w, "Reservation not found", http.StatusNotFound)
			return
		}
		log.Printf("Error sending invitation %s: %v", input.ReservationID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true})
}
