package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// SpotsUpdate is pushed to every dashboard watching an event whenever its
// available-spot counter changes.
type SpotsUpdate struct {
	Type           string `json:"type"`
	EventID        string `json:"eventId"`
	AvailableSpots int    `json:"availableSpots"`
}

// HandleWS subscribes a client to capacity updates for one event.
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[eventID] = append(subscribers[eventID], conn)
	mu.Unlock()

	for {
		// Keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	mu.Lock()
	conns := subscribers[eventID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[eventID] = newList
	mu.Unlock()

	conn.Close()
}

// BroadcastSpots pushes the new available-spot count to all subscribers of
// the event. Dead connections are dropped.
func BroadcastSpots(eventID string, availableSpots int) {
	data, err := json.Marshal(SpotsUpdate{
		Type:           "spots",
		EventID:        eventID,
		AvailableSpots: availableSpots,
	})
	if err != nil {
		log.Printf("Failed to marshal spots update: %v", err)
		return
	}
	broadcast(eventID, data)
}

func broadcast(key string, val []byte) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[key]
	newList := conns[:0]

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, val); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[key] = newList
}
