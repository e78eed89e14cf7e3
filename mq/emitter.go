package mq

import (
	"context"
	"encoding/json"
	"log"

	"invitra/invites"
	"invitra/models"
	"invitra/rdx"
)

const invitationChannel = "invitation-events"

// Emit publishes a delivery request to Redis. Publishing failures are
// logged and swallowed: a reservation must never fail because its
// invitation could not be queued.
func Emit(eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), invitationChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event to Redis: %v", eventName, err)
	}
}

// StartInvitationWorker consumes delivery requests and sends the rendered
// invitation by email. There is no retry: a failed delivery leaves the
// reservation confirmed but uninvited until an admin issues a resend.
func StartInvitationWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, invitationChannel)
	ch := sub.Channel()

	log.Println("[InvitationWorker] Listening for delivery requests...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[InvitationWorker] Failed to parse event: %v", err)
			continue
		}
		if event.EntityType != "reservation" {
			continue
		}

		if err := invites.Deliver(ctx, event.EntityId); err != nil {
			log.Printf("[InvitationWorker] Delivery failed for reservation %s: %v", event.EntityId, err)
		} else {
			log.Printf("[InvitationWorker] Invitation sent for reservation %s", event.EntityId)
		}
	}
}
