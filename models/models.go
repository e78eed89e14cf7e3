package models

import "time"

// Reservation statuses
const (
	StatusPending   = "pending"
	StatusAttended  = "attended"
	StatusCancelled = "cancelled"
)

// EventCategories is the fixed label set an event may carry.
var EventCategories = []string{"conference", "workshop", "concert", "meetup", "exhibition", "other"}

type Event struct {
	EventID        string    `json:"eventid" bson:"eventid"`
	Title          string    `json:"title" bson:"title"`
	Description    string    `json:"description" bson:"description"`
	Date           time.Time `json:"date" bson:"date"`
	Time           string    `json:"time" bson:"time"`
	Location       string    `json:"location" bson:"location"`
	Category       string    `json:"category" bson:"category"`
	TotalSpots     int       `json:"totalSpots" bson:"totalSpots"`
	AvailableSpots int       `json:"availableSpots" bson:"availableSpots"`
	Image          string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

type Reservation struct {
	ReservationID string    `json:"reservationid" bson:"reservationid"`
	EventID       string    `json:"eventid" bson:"eventid"`
	Name          string    `json:"name" bson:"name"`
	Email         string    `json:"email" bson:"email"`
	Phone         string    `json:"phone" bson:"phone"`
	Newsletter    bool      `json:"newsletter" bson:"newsletter"`
	Status        string    `json:"status" bson:"status"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

type Admin struct {
	UserID    string    `json:"userid" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password"`
	LastLogin time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
}

type EventStats struct {
	Total    int `json:"total"`
	Upcoming int `json:"upcoming"`
	Past     int `json:"past"`
}

type ReservationStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Attended   int `json:"attended"`
	Cancelled  int `json:"cancelled"`
	Newsletter int `json:"newsletter"`
}

// Index is the message shape published on the delivery queue.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
}
