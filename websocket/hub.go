package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// BookingEvent is pushed to each recipient currently connected. Delivery is
// best effort; a recipient without an open socket simply misses the event.
type BookingEvent struct {
	Type       string      `json:"type"`
	BookingID  uuid.UUID   `json:"booking_id"`
	Message    string      `json:"message"`
	OccurredAt time.Time   `json:"occurred_at"`
	Recipients []uuid.UUID `json:"-"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan BookingEvent, 64)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case event := <-Broadcast:
			deliver(event)
		}
	}
}

func deliver(event BookingEvent) {
	var dead []uuid.UUID

	clientsMu.RLock()
	for _, recipient := range event.Recipients {
		conn, ok := clients[recipient]
		if !ok {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Error sending event to client %s: %v", recipient, err)
			conn.Close()
			dead = append(dead, recipient)
		}
	}
	clientsMu.RUnlock()

	if len(dead) > 0 {
		clientsMu.Lock()
		for _, id := range dead {
			delete(clients, id)
		}
		clientsMu.Unlock()
	}
}

// PushBookingEvent queues a lifecycle event without blocking the caller.
func PushBookingEvent(eventType string, bookingID uuid.UUID, message string, recipients ...uuid.UUID) {
	event := BookingEvent{
		Type:       eventType,
		BookingID:  bookingID,
		Message:    message,
		OccurredAt: time.Now(),
		Recipients: recipients,
	}
	select {
	case Broadcast <- event:
	default:
		log.Printf("⚠️ Notification hub backlogged, dropping %s event for booking %s", eventType, bookingID)
	}
}
