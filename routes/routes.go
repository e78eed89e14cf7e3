package routes

import (
	"net/http"

	"invitra/auth"
	"invitra/events"
	"invitra/invites"
	"invitra/live"
	"invitra/middleware"
	"invitra/newsletter"
	"invitra/ratelim"
	"invitra/reservations"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/eventpic/*filepath", http.Dir("static/eventpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", auth.Logout)
}

func AddEventRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/events", rl.Limit(events.GetEvents))
	router.GET("/api/events/event/:eventid", rl.Limit(events.GetEvent))
	router.POST("/api/admin/events", middleware.Authenticate(events.CreateEvent))
	router.PUT("/api/admin/events/event/:eventid", middleware.Authenticate(events.EditEvent))
	router.DELETE("/api/admin/events/event/:eventid", middleware.Authenticate(events.DeleteEvent))
	router.GET("/api/admin/stats/events", middleware.Authenticate(events.GetEventStats))
}

func AddReservationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/reservations", rl.Limit(reservations.CreateReservation))
	router.GET("/api/admin/reservations", middleware.Authenticate(reservations.GetReservations))
	router.GET("/api/admin/reservations/event/:eventid", middleware.Authenticate(reservations.GetReservationsByEvent))
	router.PUT("/api/admin/reservations/:reservationid/status", middleware.Authenticate(reservations.SetReservationStatus))
	router.DELETE("/api/admin/reservations/:reservationid", middleware.Authenticate(reservations.DeleteReservation))
	router.GET("/api/admin/confirm/:reservationid", middleware.Authenticate(reservations.ConfirmAttendance))
	router.GET("/api/admin/stats/reservations", middleware.Authenticate(reservations.GetReservationStats))
}

func AddInvitationRoutes(router *httprouter.Router) {
	router.GET("/api/admin/invitations/:reservationid", middleware.Authenticate(invites.GetInvitationPDF))
	router.POST("/api/admin/invitations/send", middleware.Authenticate(invites.SendInvitation))
}

func AddNewsletterRoutes(router *httprouter.Router) {
	router.POST("/api/admin/newsletter/send", middleware.Authenticate(newsletter.SendNewsletter))
	router.POST("/api/admin/newsletter/event/:eventid", middleware.Authenticate(newsletter.SendNewsletterForEvent))
}

func AddLiveRoutes(router *httprouter.Router) {
	router.GET("/ws/events/:eventid", live.HandleWS)
}
