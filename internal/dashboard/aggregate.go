package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	// DefaultCheckoutWindow is the look-ahead used to decide which checkouts
	// count as upcoming.
	DefaultCheckoutWindow = 2 * time.Hour
	// DefaultCheckoutLimit caps the imminent-departures list.
	DefaultCheckoutLimit = 3
)

// UpcomingCheckouts returns the checked-in bookings due to depart within the
// window, most urgent first, truncated to limit.
//
// A checkout exactly due now or already overdue is excluded: overdue handling
// is a separate concern and does not belong in this list. Ties in remaining
// time keep their input order, which has no bearing on display correctness.
func UpcomingCheckouts(bookings []Booking, now time.Time, window time.Duration, limit int) []UpcomingCheckout {
	if window <= 0 {
		window = DefaultCheckoutWindow
	}
	if limit <= 0 {
		limit = DefaultCheckoutLimit
	}

	upcoming := make([]UpcomingCheckout, 0, limit)
	for _, b := range bookings {
		if b.Status != BookingCheckedIn || b.ScheduledCheckOut.IsZero() {
			continue
		}
		remaining := b.ScheduledCheckOut.Sub(now)
		if remaining <= 0 || remaining > window {
			continue
		}
		upcoming = append(upcoming, UpcomingCheckout{
			Code:           b.Code,
			GuestName:      b.GuestName,
			RoomNumber:     b.RoomNumber,
			Remaining:      remaining,
			RemainingLabel: FormatRemaining(remaining),
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Remaining < upcoming[j].Remaining
	})

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// FormatRemaining renders a duration as whole hours and minutes by floor
// division, e.g. 125 minutes becomes "2hr 5min". Sub-minute remainder is
// discarded; the result is display-only and unsuitable for time arithmetic.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%dhr %dmin", minutes/60, minutes%60)
}

// ComputeDailySummary derives the per-day operational summary for the
// calendar day containing today. Day attribution is direct date equality
// against local midnight, never range overlap: a booking counts only when its
// scheduled instant falls on the same calendar day.
func ComputeDailySummary(bookings []Booking, rooms []Room, today time.Time) DailySummary {
	day := startOfDay(today)

	var summary DailySummary
	checkedIn := 0
	for _, b := range bookings {
		switch b.Status {
		case BookingReserved:
			summary.PendingPayments++
			if sameDay(b.ScheduledCheckIn, day) {
				summary.CheckIns++
			}
		case BookingCheckedIn:
			checkedIn++
			if sameDay(b.ScheduledCheckOut, day) {
				summary.CheckOuts++
			}
		}
		if sameDay(b.ScheduledCheckIn, day) && b.TotalCharges != nil {
			summary.Revenue += *b.TotalCharges
		}
	}

	summary.OccupancyRate = occupancyRate(checkedIn, len(rooms))
	return summary
}

// ComputeTaskCounts derives the receptionist workload for the calendar day
// containing today. The roomInspections estimate is injected by the caller;
// the booking backend exposes no inspection data so it cannot be computed
// here.
func ComputeTaskCounts(bookings []Booking, today time.Time, roomInspections int) TaskCounts {
	day := startOfDay(today)

	counts := TaskCounts{RoomInspections: roomInspections}
	for _, b := range bookings {
		switch b.Status {
		case BookingReserved:
			counts.Reservations++
			if sameDay(b.ScheduledCheckIn, day) {
				counts.CheckIns++
			}
		case BookingCheckedIn:
			if sameDay(b.ScheduledCheckOut, day) {
				counts.CheckOuts++
			}
		}
	}
	return counts
}

// occupancyRate rounds 100*occupied/total to the nearest whole percent. Zero
// total rooms is explicitly defined as 0%, never a division-by-zero value.
func occupancyRate(occupied, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(occupied) / float64(total)))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay reports whether t falls on the calendar day starting at day. The
// zero time never matches: an unparseable instant must not count toward any
// day.
func sameDay(t time.Time, day time.Time) bool {
	if t.IsZero() {
		return false
	}
	return startOfDay(t.In(day.Location())).Equal(day)
}
