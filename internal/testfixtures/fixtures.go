// Package testfixtures provides deterministic snapshot builders and a
// controllable clock shared by the dashboard test suites.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/frontdesk/internal/dashboard"
)

var (
	roomCounter    uint64
	bookingCounter uint64
)

var referenceTime = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// RoomOption configures a generated room fixture.
type RoomOption func(*dashboard.Room)

// WithRoomStatus overrides the room status.
func WithRoomStatus(status dashboard.RoomStatus) RoomOption {
	return func(r *dashboard.Room) { r.Status = status }
}

// WithRoomNumber overrides the human-readable room number.
func WithRoomNumber(number string) RoomOption {
	return func(r *dashboard.Room) { r.Number = number }
}

// WithFloor overrides the floor.
func WithFloor(floor int) RoomOption {
	return func(r *dashboard.Room) { r.Floor = floor }
}

// NewRoomFixture returns a deterministic available room with optional
// overrides.
func NewRoomFixture(opts ...RoomOption) dashboard.Room {
	idx := atomic.AddUint64(&roomCounter, 1)
	room := dashboard.Room{
		ID:     fmt.Sprintf("room-%03d", idx),
		Number: fmt.Sprintf("%d", 100+idx),
		Status: dashboard.RoomAvailable,
		Floor:  1,
	}
	for _, opt := range opts {
		opt(&room)
	}
	return room
}

// NewRoomsFixture returns count rooms sharing the supplied options.
func NewRoomsFixture(count int, opts ...RoomOption) []dashboard.Room {
	rooms := make([]dashboard.Room, 0, count)
	for i := 0; i < count; i++ {
		rooms = append(rooms, NewRoomFixture(opts...))
	}
	return rooms
}

// BookingOption configures a generated booking fixture.
type BookingOption func(*dashboard.Booking)

// WithBookingStatus overrides the lifecycle status.
func WithBookingStatus(status dashboard.BookingStatus) BookingOption {
	return func(b *dashboard.Booking) { b.Status = status }
}

// WithScheduledCheckIn overrides the scheduled arrival instant.
func WithScheduledCheckIn(at time.Time) BookingOption {
	return func(b *dashboard.Booking) { b.ScheduledCheckIn = at }
}

// WithScheduledCheckOut overrides the scheduled departure instant.
func WithScheduledCheckOut(at time.Time) BookingOption {
	return func(b *dashboard.Booking) { b.ScheduledCheckOut = at }
}

// WithCharges sets the total charges.
func WithCharges(amount float64) BookingOption {
	return func(b *dashboard.Booking) { b.TotalCharges = &amount }
}

// WithoutCharges marks the charges as unknown, excluding the booking from
// revenue sums.
func WithoutCharges() BookingOption {
	return func(b *dashboard.Booking) { b.TotalCharges = nil }
}

// WithGuest overrides the guest name.
func WithGuest(name string) BookingOption {
	return func(b *dashboard.Booking) { b.GuestName = name }
}

// NewBookingFixture returns a deterministic reserved booking with optional
// overrides. The default stay starts at the reference time and lasts one day.
func NewBookingFixture(opts ...BookingOption) dashboard.Booking {
	idx := atomic.AddUint64(&bookingCounter, 1)
	charges := 100.0
	booking := dashboard.Booking{
		ID:                fmt.Sprintf("booking-%03d", idx),
		RoomID:            fmt.Sprintf("room-%03d", idx),
		RoomNumber:        fmt.Sprintf("%d", 100+idx),
		GuestName:         fmt.Sprintf("Guest %03d", idx),
		GuestContact:      fmt.Sprintf("guest-%03d@example.com", idx),
		ScheduledCheckIn:  referenceTime,
		ScheduledCheckOut: referenceTime.Add(24 * time.Hour),
		Status:            dashboard.BookingReserved,
		TotalCharges:      &charges,
		Code:              fmt.Sprintf("BK-%04d", idx),
	}
	for _, opt := range opts {
		opt(&booking)
	}
	return booking
}
