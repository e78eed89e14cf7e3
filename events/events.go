package events

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"slices"
	"time"

	"invitra/db"
	"invitra/models"
	"invitra/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var eventpicUploadPath = "./static/eventpic"

// GetEvents lists events sorted by date, most recent first. With
// ?upcoming=true only events dated today or later are returned, soonest
// first.
func GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	sortOrder := bson.D{{Key: "date", Value: -1}}

	if r.URL.Query().Get("upcoming") == "true" {
		filter["date"] = bson.M{"$gte": time.Now().UTC()}
		sortOrder = bson.D{{Key: "date", Value: 1}}
	}

	cursor, err := db.EventsCollection.Find(context.TODO(), filter, options.Find().SetSort(sortOrder))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(context.TODO())

	events := []models.Event{}
	if err = cursor.All(context.TODO(), &events); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, events)
}

func GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("eventid")

	var event models.Event
	err := db.EventsCollection.FindOne(context.TODO(), bson.M{"eventid": id}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, event)
}

// validateEvent checks the required fields before any write.
func validateEvent(event *models.Event) error {
	if event.Title == "" {
		return errors.New("title is required")
	}
	if event.Description == "" {
		return errors.New("description is required")
	}
	if event.Date.IsZero() {
		return errors.New("date is required")
	}
	if event.Time == "" {
		return errors.New("time is required")
	}
	if event.Location == "" {
		return errors.New("location is required")
	}
	if event.TotalSpots <= 0 {
		return errors.New("totalSpots must be a positive number")
	}
	if event.Category != "" && !slices.Contains(models.EventCategories, event.Category) {
		return errors.New("unknown category")
	}
	return nil
}

func CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Parse multipart form
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	if r.FormValue("event") == "" {
		http.Error(w, "Missing event data", http.StatusBadRequest)
		return
	}

	var event models.Event
	if err := json.Unmarshal([]byte(r.FormValue("event")), &event); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if err := validateEvent(&event); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event.EventID = utils.GenerateID(14)
	event.CreatedAt = time.Now().UTC()
	event.Date = event.Date.UTC()
	event.AvailableSpots = event.TotalSpots

	// Optional event picture
	imageFile, header, err := r.FormFile("image")
	if err != nil && err != http.ErrMissingFile {
		http.Error(w, "Error retrieving image file", http.StatusBadRequest)
		return
	}
	if imageFile != nil {
		defer imageFile.Close()
		if !utils.ValidateImageFileType(w, header) {
			return
		}
		fileName, err := utils.SaveEventImage(imageFile, eventpicUploadPath, event.EventID)
		if err != nil {
			log.Printf("Error saving event image: %v", err)
			http.Error(w, "Error saving image", http.StatusInternalServerError)
			return
		}
		event.Image = fileName
	}

	result, err := db.EventsCollection.InsertOne(context.TODO(), event)
	if err != nil || result.InsertedID == nil {
		log.Printf("Error inserting event into MongoDB: %v", err)
		http.Error(w, "Error saving event", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, event)
}

// editableEventFields are the keys an administrator may overwrite.
// availableSpots is deliberately included: the dashboard can force the
// counter directly, bypassing the delta-based accounting.
var editableEventFields = map[string]bool{
	"title":          true,
	"description":    true,
	"date":           true,
	"time":           true,
	"location":       true,
	"category":       true,
	"totalSpots":     true,
	"availableSpots": true,
	"image":          true,
}

func EditEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	if eventID == "" {
		http.Error(w, "Missing event ID", http.StatusBadRequest)
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updateFields := bson.M{}
	for key, val := range body {
		if !editableEventFields[key] {
			continue
		}
		if key == "date" {
			dateStr, ok := val.(string)
			if !ok {
				http.Error(w, "date must be a string", http.StatusBadRequest)
				return
			}
			parsed, err := time.Parse(time.RFC3339, dateStr)
			if err != nil {
				http.Error(w, "Invalid date format", http.StatusBadRequest)
				return
			}
			updateFields[key] = parsed.UTC()
			continue
		}
		updateFields[key] = val
	}

	if len(updateFields) == 0 {
		http.Error(w, "No valid fields to update", http.StatusBadRequest)
		return
	}

	result, err := db.EventsCollection.UpdateOne(
		context.TODO(),
		bson.M{"eventid": eventID},
		bson.M{"$set": updateFields},
	)
	if err != nil {
		log.Printf("Error updating event %s: %v", eventID, err)
		http.Error(w, "Error updating event", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// DeleteEvent removes the event document. Reservations that reference it
// are left in place and resolve to not-found on lookup.
func DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	result, err := db.EventsCollection.DeleteOne(context.TODO(), bson.M{"eventid": eventID})
	if err != nil {
		log.Printf("Error deleting event %s: %v", eventID, err)
		http.Error(w, "Error deleting event", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
