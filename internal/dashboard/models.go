// Package dashboard derives front-desk view models from point-in-time room
// and booking snapshots. Every function is a pure computation over the values
// it receives: no I/O, no retained state, identical inputs produce identical
// outputs.
package dashboard

import (
	"strings"
	"time"
)

// RoomStatus is the normalized occupancy state of a room.
type RoomStatus string

const (
	RoomAvailable RoomStatus = "available"
	RoomOccupied  RoomStatus = "occupied"
	RoomCleaning  RoomStatus = "cleaning"
	RoomReserved  RoomStatus = "reserved"
)

// ParseRoomStatus normalizes a producer-supplied room status. Producers vary
// the casing, so comparison is case-insensitive.
func ParseRoomStatus(raw string) (RoomStatus, bool) {
	switch status := RoomStatus(strings.ToLower(strings.TrimSpace(raw))); status {
	case RoomAvailable, RoomOccupied, RoomCleaning, RoomReserved:
		return status, true
	default:
		return status, false
	}
}

// BookingStatus is the normalized lifecycle state of a booking.
type BookingStatus string

const (
	BookingReserved   BookingStatus = "reserved"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCanceled   BookingStatus = "canceled"
)

// ParseBookingStatus normalizes a producer-supplied booking status. Both
// "checked-in" and "checked_in" spellings occur in the wild.
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	switch status := BookingStatus(normalized); status {
	case BookingReserved, BookingCheckedIn, BookingCheckedOut, BookingCanceled:
		return status, true
	default:
		return status, false
	}
}

// Room is an immutable snapshot of a single room. The aggregator never
// mutates it.
type Room struct {
	ID            string
	Number        string
	Status        RoomStatus
	Floor         int
	Features      []string
	LastCleanedAt *time.Time
}

// Booking is an immutable snapshot of a single booking.
//
// Scheduled instants are the zero time when the producer sent an unparseable
// value; such bookings are excluded from day-equality counts rather than
// silently attributed to a fabricated date. TotalCharges is nil when the
// amount was missing, unparseable, or negative, which excludes the booking
// from revenue sums without coercing it to a false zero data point.
type Booking struct {
	ID                string
	RoomID            string
	RoomNumber        string
	GuestName         string
	GuestContact      string
	ScheduledCheckIn  time.Time
	ScheduledCheckOut time.Time
	ActualCheckIn     *time.Time
	ActualCheckOut    *time.Time
	Status            BookingStatus
	TotalCharges      *float64
	Code              string
}

// UpcomingCheckout is a derived row in the imminent-departures list. It is
// recomputed every aggregation cycle and never persisted.
type UpcomingCheckout struct {
	Code       string        `json:"code"`
	GuestName  string        `json:"guest_name"`
	RoomNumber string        `json:"room_number"`
	Remaining  time.Duration `json:"-"`
	// RemainingLabel is a lossy hours+minutes rendering for display only;
	// it must not feed further time arithmetic.
	RemainingLabel string `json:"remaining"`
}

// DailySummary is the derived per-day operational summary.
type DailySummary struct {
	// CheckIns counts bookings scheduled to arrive today that are still
	// reserved (anticipated, not yet arrived).
	CheckIns int `json:"check_ins"`
	// CheckOuts counts checked-in bookings scheduled to depart today.
	CheckOuts int `json:"check_outs"`
	// Revenue sums charges over bookings whose check-in day is today,
	// regardless of whether payment has occurred.
	Revenue float64 `json:"revenue"`
	// OccupancyRate is a whole-number percentage; zero rooms yields 0.
	OccupancyRate int `json:"occupancy_rate"`
	// PendingPayments counts reserved bookings. Reserved status is a proxy
	// for unpaid, not a verified invariant; "not yet arrived" and "unpaid"
	// are conflated by the upstream data model.
	PendingPayments int `json:"pending_payments"`
}

// TaskCounts is the receptionist-facing projection of the same-day workload.
type TaskCounts struct {
	CheckIns     int `json:"check_ins"`
	CheckOuts    int `json:"check_outs"`
	Reservations int `json:"reservations"`
	// RoomInspections has no backing data source in the booking backend. It
	// is an operator-supplied estimate injected by the caller and passed
	// through untouched, never derived here.
	RoomInspections int `json:"room_inspections"`
}
