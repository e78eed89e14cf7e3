package invites

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"invitra/models"
)

func sampleData() (models.Reservation, models.Event) {
	res := models.Reservation{
		ReservationID: "r-123",
		EventID:       "e-456",
		Name:          "Jordan Rivera",
		Email:         "jordan@example.com",
		Status:        models.StatusPending,
	}
	event := models.Event{
		EventID:    "e-456",
		Title:      "Product Launch",
		Date:       time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		Time:       "19:00",
		Location:   "Grand Hall",
		TotalSpots: 100,
	}
	return res, event
}

func TestBuildQRPayload(t *testing.T) {
	res, event := sampleData()

	data, err := BuildQRPayload(res, event)
	if err != nil {
		t.Fatalf("BuildQRPayload: %v", err)
	}

	var payload QRPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}

	if payload.ID != "r-123" {
		t.Errorf("ID = %q, want r-123", payload.ID)
	}
	if payload.Name != "Jordan Rivera" {
		t.Errorf("Name = %q, want Jordan Rivera", payload.Name)
	}
	if payload.Event != "Product Launch" {
		t.Errorf("Event = %q, want Product Launch", payload.Event)
	}
	if payload.Date != "2026-09-20" {
		t.Errorf("Date = %q, want 2026-09-20", payload.Date)
	}
	if payload.Time != "19:00" {
		t.Errorf("Time = %q, want 19:00", payload.Time)
	}
	if payload.Location != "Grand Hall" {
		t.Errorf("Location = %q, want Grand Hall", payload.Location)
	}
	want := "/api/admin/confirm/r-123"
	if !strings.HasSuffix(payload.ConfirmationURL, want) {
		t.Errorf("ConfirmationURL = %q, want suffix %q", payload.ConfirmationURL, want)
	}
}

func TestRenderPDF(t *testing.T) {
	res, event := sampleData()

	pdf, err := RenderPDF(res, event)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("RenderPDF returned an empty document")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Errorf("document does not start with PDF magic bytes, got %q", pdf[:8])
	}
}
