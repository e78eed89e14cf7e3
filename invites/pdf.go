package invites

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"invitra/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// QRPayload is the JSON embedded in the invitation QR code. Door staff scan
// it to reach the attendance-confirmation endpoint.
type QRPayload struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Event           string `json:"event"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Location        string `json:"location"`
	ConfirmationURL string `json:"confirmationUrl"`
}

func appURL() string {
	if u := os.Getenv("APP_URL"); u != "" {
		return u
	}
	return "http://localhost:4000"
}

func BuildQRPayload(res models.Reservation, event models.Event) ([]byte, error) {
	payload := QRPayload{
		ID:              res.ReservationID,
		Name:            res.Name,
		Event:           event.Title,
		Date:            event.Date.Format("2006-01-02"),
		Time:            event.Time,
		Location:        event.Location,
		ConfirmationURL: appURL() + "/api/admin/confirm/" + res.ReservationID,
	}
	return json.Marshal(payload)
}

// RenderPDF produces the personalized invitation document.
func RenderPDF(res models.Reservation, event models.Event) ([]byte, error) {
	qrData, err := BuildQRPayload(res, event)
	if err != nil {
		return nil, err
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 24)
	pdf.CellFormat(0, 15, "Invitation", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, event.Title, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, "Date: "+event.Date.Format("02 Jan 2006"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Time: "+event.Time, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Location: "+event.Location, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Reserved for: "+res.Name, "", 1, "C", false, 0, "")
	pdf.Ln(8)

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 80, pdf.GetY(), 50, 50, false, imgOpts, 0, "")
	pdf.SetY(pdf.GetY() + 55)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, "Present this QR code at the event entrance.", "", 1, "C", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 8, "This invitation is personal and cannot be transferred.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
