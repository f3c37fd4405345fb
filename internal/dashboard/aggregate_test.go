package dashboard_test

import (
	"testing"
	"time"

	"github.com/example/frontdesk/internal/dashboard"
	"github.com/example/frontdesk/internal/testfixtures"
)

func TestUpcomingCheckouts(t *testing.T) {
	t.Parallel()

	now := testfixtures.ReferenceTime()

	t.Run("sorts ascending by remaining time", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(now.Add(5*time.Second)),
				testfixtures.WithGuest("five seconds"),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(now.Add(120*time.Second)),
				testfixtures.WithGuest("two minutes"),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(now.Add(45*time.Second)),
				testfixtures.WithGuest("forty-five seconds"),
			),
		}

		got := dashboard.UpcomingCheckouts(bookings, now, 2*time.Hour, 3)
		if len(got) != 3 {
			t.Fatalf("expected 3 checkouts, got %d", len(got))
		}
		wantSorted := []string{"five seconds", "forty-five seconds", "two minutes"}
		for i, want := range wantSorted {
			if got[i].GuestName != want {
				t.Fatalf("position %d: expected %q, got %q", i, want, got[i].GuestName)
			}
		}
	})

	t.Run("excludes overdue and exactly-due checkouts", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(now.Add(-time.Minute)),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(now),
			),
		}
		if got := dashboard.UpcomingCheckouts(bookings, now, 2*time.Hour, 3); len(got) != 0 {
			t.Fatalf("expected no checkouts, got %d", len(got))
		}
	})

	t.Run("excludes checkouts beyond the window", func(t *testing.T) {
		t.Parallel()

		window := 2 * time.Hour
		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(now.Add(window)),
				testfixtures.WithGuest("at boundary"),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(now.Add(window+time.Second)),
				testfixtures.WithGuest("past boundary"),
			),
		}

		got := dashboard.UpcomingCheckouts(bookings, now, window, 3)
		if len(got) != 1 {
			t.Fatalf("expected 1 checkout, got %d", len(got))
		}
		if got[0].GuestName != "at boundary" {
			t.Fatalf("expected the boundary checkout to qualify, got %q", got[0].GuestName)
		}
	})

	t.Run("never exceeds the limit", func(t *testing.T) {
		t.Parallel()

		var bookings []dashboard.Booking
		for i := 1; i <= 6; i++ {
			bookings = append(bookings, testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(now.Add(time.Duration(i)*time.Minute)),
			))
		}
		if got := dashboard.UpcomingCheckouts(bookings, now, 2*time.Hour, 3); len(got) != 3 {
			t.Fatalf("expected truncation to 3 entries, got %d", len(got))
		}
	})

	t.Run("only checked-in bookings qualify", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingReserved),
				testfixtures.WithScheduledCheckOut(now.Add(30*time.Minute)),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedOut),
				testfixtures.WithScheduledCheckOut(now.Add(30*time.Minute)),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCanceled),
				testfixtures.WithScheduledCheckOut(now.Add(30*time.Minute)),
			),
		}
		if got := dashboard.UpcomingCheckouts(bookings, now, 2*time.Hour, 3); len(got) != 0 {
			t.Fatalf("expected no checkouts, got %d", len(got))
		}
	})

	t.Run("results stay inside the window invariant", func(t *testing.T) {
		t.Parallel()

		var bookings []dashboard.Booking
		for i := -30; i <= 200; i += 17 {
			bookings = append(bookings, testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(now.Add(time.Duration(i)*time.Minute)),
			))
		}
		window := 2 * time.Hour
		for _, c := range dashboard.UpcomingCheckouts(bookings, now, window, 100) {
			if c.Remaining <= 0 || c.Remaining > window {
				t.Fatalf("remaining %v escaped the (0, window] invariant", c.Remaining)
			}
		}
	})

	t.Run("unparseable checkout instants are excluded", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(time.Time{}),
			),
		}
		if got := dashboard.UpcomingCheckouts(bookings, now, 2*time.Hour, 3); len(got) != 0 {
			t.Fatalf("expected zero-time checkout to be excluded, got %d entries", len(got))
		}
	})
}

func TestFormatRemaining(t *testing.T) {
	t.Parallel()

	cases := []struct {
		d    time.Duration
		want string
	}{
		{125 * time.Minute, "2hr 5min"},
		{2 * time.Hour, "2hr 0min"},
		{59 * time.Second, "0hr 0min"},
		{61 * time.Minute, "1hr 1min"},
		{90*time.Minute + 59*time.Second, "1hr 30min"},
	}
	for _, tc := range cases {
		if got := dashboard.FormatRemaining(tc.d); got != tc.want {
			t.Fatalf("FormatRemaining(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestComputeDailySummary(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	morning := today.Add(8 * time.Hour)
	yesterday := morning.Add(-24 * time.Hour)

	t.Run("occupancy rate for 10 rooms and 3 checked-in bookings is 30", func(t *testing.T) {
		t.Parallel()

		rooms := testfixtures.NewRoomsFixture(10)
		var bookings []dashboard.Booking
		for i := 0; i < 3; i++ {
			bookings = append(bookings, testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(morning.Add(48*time.Hour)),
			))
		}

		summary := dashboard.ComputeDailySummary(bookings, rooms, today)
		if summary.OccupancyRate != 30 {
			t.Fatalf("expected occupancy 30, got %d", summary.OccupancyRate)
		}
	})

	t.Run("zero rooms yields occupancy 0 rather than a division error", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(testfixtures.WithBookingStatus(dashboard.BookingCheckedIn)),
		}
		summary := dashboard.ComputeDailySummary(bookings, nil, today)
		if summary.OccupancyRate != 0 {
			t.Fatalf("expected occupancy 0 with zero rooms, got %d", summary.OccupancyRate)
		}
	})

	t.Run("revenue counts only today's check-ins", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithScheduledCheckIn(morning),
				testfixtures.WithCharges(50),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithScheduledCheckIn(yesterday),
				testfixtures.WithCharges(30),
			),
		}
		summary := dashboard.ComputeDailySummary(bookings, nil, today)
		if summary.Revenue != 50 {
			t.Fatalf("expected revenue 50, got %v", summary.Revenue)
		}
	})

	t.Run("revenue is attributed to the check-in day regardless of status", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckIn(morning),
				testfixtures.WithCharges(80),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedOut),
				testfixtures.WithScheduledCheckIn(morning),
				testfixtures.WithCharges(20),
			),
		}
		summary := dashboard.ComputeDailySummary(bookings, nil, today)
		if summary.Revenue != 100 {
			t.Fatalf("expected revenue 100, got %v", summary.Revenue)
		}
	})

	t.Run("unknown charges are excluded from the sum", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithScheduledCheckIn(morning),
				testfixtures.WithCharges(75),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithScheduledCheckIn(morning),
				testfixtures.WithoutCharges(),
			),
		}
		summary := dashboard.ComputeDailySummary(bookings, nil, today)
		if summary.Revenue != 75 {
			t.Fatalf("expected revenue 75, got %v", summary.Revenue)
		}
	})

	t.Run("check-ins count reserved arrivals scheduled today", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingReserved),
				testfixtures.WithScheduledCheckIn(morning),
			),
			// Already arrived: no longer an anticipated check-in.
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckIn(morning),
			),
			// Arrives tomorrow.
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingReserved),
				testfixtures.WithScheduledCheckIn(morning.Add(24*time.Hour)),
			),
		}
		summary := dashboard.ComputeDailySummary(bookings, nil, today)
		if summary.CheckIns != 1 {
			t.Fatalf("expected 1 check-in, got %d", summary.CheckIns)
		}
	})

	t.Run("check-outs count checked-in departures scheduled today", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(morning.Add(4*time.Hour)),
			),
			// Already departed.
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedOut),
				testfixtures.WithScheduledCheckOut(morning.Add(4*time.Hour)),
			),
			// Departs tomorrow.
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(morning.Add(28*time.Hour)),
			),
		}
		summary := dashboard.ComputeDailySummary(bookings, nil, today)
		if summary.CheckOuts != 1 {
			t.Fatalf("expected 1 check-out, got %d", summary.CheckOuts)
		}
	})

	t.Run("pending payments count every reserved booking", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingReserved),
				testfixtures.WithScheduledCheckIn(morning),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingReserved),
				testfixtures.WithScheduledCheckIn(morning.Add(72*time.Hour)),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
			),
		}
		summary := dashboard.ComputeDailySummary(bookings, nil, today)
		if summary.PendingPayments != 2 {
			t.Fatalf("expected 2 pending payments, got %d", summary.PendingPayments)
		}
	})

	t.Run("unparseable dates never count toward a day", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingReserved),
				testfixtures.WithScheduledCheckIn(time.Time{}),
				testfixtures.WithCharges(500),
			),
		}
		summary := dashboard.ComputeDailySummary(bookings, nil, today)
		if summary.CheckIns != 0 {
			t.Fatalf("expected 0 check-ins for zero-time arrival, got %d", summary.CheckIns)
		}
		if summary.Revenue != 0 {
			t.Fatalf("expected 0 revenue for zero-time arrival, got %v", summary.Revenue)
		}
		// The booking is still a pending payment; only day attribution is lost.
		if summary.PendingPayments != 1 {
			t.Fatalf("expected 1 pending payment, got %d", summary.PendingPayments)
		}
	})
}

func TestComputeTaskCounts(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	morning := today.Add(9 * time.Hour)

	t.Run("derives same-day workload and passes the inspection estimate through", func(t *testing.T) {
		t.Parallel()

		bookings := []dashboard.Booking{
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingReserved),
				testfixtures.WithScheduledCheckIn(morning),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingReserved),
				testfixtures.WithScheduledCheckIn(morning.Add(48*time.Hour)),
			),
			testfixtures.NewBookingFixture(
				testfixtures.WithBookingStatus(dashboard.BookingCheckedIn),
				testfixtures.WithScheduledCheckOut(morning.Add(2*time.Hour)),
			),
		}

		counts := dashboard.ComputeTaskCounts(bookings, today, 4)
		if counts.CheckIns != 1 {
			t.Fatalf("expected 1 check-in, got %d", counts.CheckIns)
		}
		if counts.CheckOuts != 1 {
			t.Fatalf("expected 1 check-out, got %d", counts.CheckOuts)
		}
		if counts.Reservations != 2 {
			t.Fatalf("expected 2 reservations, got %d", counts.Reservations)
		}
		if counts.RoomInspections != 4 {
			t.Fatalf("expected injected inspection estimate 4, got %d", counts.RoomInspections)
		}
	})

	t.Run("empty snapshot yields zero counts", func(t *testing.T) {
		t.Parallel()

		counts := dashboard.ComputeTaskCounts(nil, today, 0)
		if counts != (dashboard.TaskCounts{}) {
			t.Fatalf("expected zero counts, got %+v", counts)
		}
	})
}

func TestParseStatuses(t *testing.T) {
	t.Parallel()

	t.Run("room statuses compare case-insensitively", func(t *testing.T) {
		t.Parallel()

		for raw, want := range map[string]dashboard.RoomStatus{
			"AVAILABLE": dashboard.RoomAvailable,
			"Occupied":  dashboard.RoomOccupied,
			"cleaning":  dashboard.RoomCleaning,
			" RESERVED": dashboard.RoomReserved,
		} {
			got, ok := dashboard.ParseRoomStatus(raw)
			if !ok || got != want {
				t.Fatalf("ParseRoomStatus(%q) = %q, %v; want %q", raw, got, ok, want)
			}
		}
		if _, ok := dashboard.ParseRoomStatus("demolished"); ok {
			t.Fatal("expected unknown room status to report false")
		}
	})

	t.Run("booking statuses normalize case and underscores", func(t *testing.T) {
		t.Parallel()

		for raw, want := range map[string]dashboard.BookingStatus{
			"RESERVED":    dashboard.BookingReserved,
			"Checked-In":  dashboard.BookingCheckedIn,
			"CHECKED_OUT": dashboard.BookingCheckedOut,
			"canceled":    dashboard.BookingCanceled,
		} {
			got, ok := dashboard.ParseBookingStatus(raw)
			if !ok || got != want {
				t.Fatalf("ParseBookingStatus(%q) = %q, %v; want %q", raw, got, ok, want)
			}
		}
		if _, ok := dashboard.ParseBookingStatus("waitlisted"); ok {
			t.Fatal("expected unknown booking status to report false")
		}
	})
}
