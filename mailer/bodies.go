package mailer

import (
	"fmt"

	"invitra/models"
)

// InvitationMessage builds the email carrying a rendered invitation PDF.
func InvitationMessage(res models.Reservation, event models.Event, pdf []byte) Message {
	body := fmt.Sprintf(
		"Hello %s,\n\nHere is your invitation for the event %q taking place on %s at %s, %s.\n\nYou will find your invitation attached.\n\nSee you there!",
		res.Name, event.Title, event.Date.Format("02 Jan 2006"), event.Time, event.Location,
	)
	return Message{
		To:      res.Email,
		Subject: "Your invitation: " + event.Title,
		Body:    body,
		Attachments: []Attachment{{
			Filename: "invitation-" + res.ReservationID + ".pdf",
			Content:  pdf,
		}},
	}
}

// NewsletterMessage announces a new event to one subscriber.
func NewsletterMessage(sub models.Reservation, event models.Event) Message {
	body := fmt.Sprintf(
		"Hello %s,\n\nWe are happy to announce a new event: %q taking place on %s at %s, %s.\n\nBook your spot now on our site.\n\nSee you soon!",
		sub.Name, event.Title, event.Date.Format("02 Jan 2006"), event.Time, event.Location,
	)
	return Message{
		To:      sub.Email,
		Subject: "New event: " + event.Title,
		Body:    body,
	}
}
