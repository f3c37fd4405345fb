package backend

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/example/frontdesk/internal/dashboard"
)

// roomRecord is the wire shape of a room snapshot entry.
type roomRecord struct {
	ID            string   `json:"id"`
	Number        string   `json:"number"`
	Status        string   `json:"status"`
	Floor         int      `json:"floor"`
	Features      []string `json:"features"`
	LastCleanedAt string   `json:"last_cleaned_at"`
}

func (r roomRecord) toDomain() dashboard.Room {
	status, _ := dashboard.ParseRoomStatus(r.Status)

	room := dashboard.Room{
		ID:       r.ID,
		Number:   r.Number,
		Status:   status,
		Floor:    r.Floor,
		Features: r.Features,
	}
	if cleaned := parseInstant(r.LastCleanedAt); !cleaned.IsZero() {
		room.LastCleanedAt = &cleaned
	}
	return room
}

// bookingRecord is the wire shape of a booking snapshot entry. Charges arrive
// as a raw message because producers send them both as numbers and as quoted
// strings.
type bookingRecord struct {
	ID                string          `json:"id"`
	RoomID            string          `json:"room_id"`
	RoomNumber        string          `json:"room_number"`
	GuestName         string          `json:"guest_name"`
	GuestContact      string          `json:"guest_contact"`
	ScheduledCheckIn  string          `json:"scheduled_check_in"`
	ScheduledCheckOut string          `json:"scheduled_check_out"`
	ActualCheckIn     *string         `json:"actual_check_in"`
	ActualCheckOut    *string         `json:"actual_check_out"`
	Status            string          `json:"status"`
	TotalCharges      json.RawMessage `json:"total_charges"`
	Code              string          `json:"code"`
}

func (r bookingRecord) toDomain(logger *slog.Logger) dashboard.Booking {
	status, known := dashboard.ParseBookingStatus(r.Status)
	if !known && logger != nil {
		logger.Debug("unknown booking status", "booking_id", r.ID, "status", r.Status)
	}

	booking := dashboard.Booking{
		ID:                r.ID,
		RoomID:            r.RoomID,
		RoomNumber:        r.RoomNumber,
		GuestName:         r.GuestName,
		GuestContact:      r.GuestContact,
		ScheduledCheckIn:  parseInstant(r.ScheduledCheckIn),
		ScheduledCheckOut: parseInstant(r.ScheduledCheckOut),
		Status:            status,
		TotalCharges:      parseAmount(r.TotalCharges),
		Code:              r.Code,
	}
	if r.ActualCheckIn != nil {
		if at := parseInstant(*r.ActualCheckIn); !at.IsZero() {
			booking.ActualCheckIn = &at
		}
	}
	if r.ActualCheckOut != nil {
		if at := parseInstant(*r.ActualCheckOut); !at.IsZero() {
			booking.ActualCheckOut = &at
		}
	}
	return booking
}

var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseInstant decodes a wire timestamp, returning the zero time for anything
// unparseable so the aggregator excludes it from day attribution.
func parseInstant(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseAmount decodes a monetary amount, returning nil for missing,
// unparseable, or negative values. Nil excludes the booking from revenue sums
// without fabricating a zero charge.
func parseAmount(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}

	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return nil
	}
	text = strings.Trim(text, `"`)

	amount, err := strconv.ParseFloat(text, 64)
	if err != nil || amount < 0 {
		return nil
	}
	return &amount
}
