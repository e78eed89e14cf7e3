package reservations

import "invitra/models"

// statusDelta is the capacity effect of a status transition. A pending or
// attended reservation holds exactly one unit of its event's capacity;
// cancelled holds none. Only two transitions move the counter: cancelling
// a pending reservation frees a spot, reinstating a cancelled one takes a
// spot back.
func statusDelta(oldStatus, newStatus string) int {
	switch {
	case oldStatus == models.StatusPending && newStatus == models.StatusCancelled:
		return 1
	case oldStatus == models.StatusCancelled && newStatus == models.StatusPending:
		return -1
	default:
		return 0
	}
}

// deleteDelta is the capacity effect of removing a reservation outright.
func deleteDelta(status string) int {
	if status == models.StatusPending {
		return 1
	}
	return 0
}

func validStatus(s string) bool {
	return s == models.StatusPending || s == models.StatusAttended || s == models.StatusCancelled
}
