package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/frontdesk/internal/dashboard"
	"github.com/example/frontdesk/internal/testfixtures"
)

type sourceStub struct {
	mu          sync.Mutex
	rooms       []dashboard.Room
	bookings    []dashboard.Booking
	roomsErr    error
	bookingsErr error
	fetches     int
}

func (s *sourceStub) FetchRooms(ctx context.Context) ([]dashboard.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	return s.rooms, s.roomsErr
}

func (s *sourceStub) FetchBookings(ctx context.Context) ([]dashboard.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings, s.bookingsErr
}

func (s *sourceStub) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func TestPoller(t *testing.T) {
	t.Parallel()

	t.Run("applies an immediate snapshot on start", func(t *testing.T) {
		t.Parallel()

		source := &sourceStub{
			rooms:    []dashboard.Room{testfixtures.NewRoomFixture()},
			bookings: []dashboard.Booking{testfixtures.NewBookingFixture()},
		}
		clock := testfixtures.NewClock(time.Time{})

		applied := make(chan Snapshot, 1)
		poller := NewPoller(source, time.Hour, func(s Snapshot) { applied <- s }, clock.NowFunc(), nil)

		handle := poller.Start(context.Background())
		defer handle.Stop()

		select {
		case snap := <-applied:
			if len(snap.Rooms) != 1 || len(snap.Bookings) != 1 {
				t.Fatalf("unexpected snapshot contents: %+v", snap)
			}
			if !snap.FetchedAt.Equal(clock.Now()) {
				t.Fatalf("expected FetchedAt %v, got %v", clock.Now(), snap.FetchedAt)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("no snapshot applied within deadline")
		}
	})

	t.Run("repeats on the configured interval", func(t *testing.T) {
		t.Parallel()

		source := &sourceStub{}
		applied := make(chan Snapshot, 16)
		poller := NewPoller(source, 10*time.Millisecond, func(s Snapshot) { applied <- s }, nil, nil)

		handle := poller.Start(context.Background())
		defer handle.Stop()

		deadline := time.After(2 * time.Second)
		for i := 0; i < 3; i++ {
			select {
			case <-applied:
			case <-deadline:
				t.Fatalf("expected at least 3 cycles, saw %d", i)
			}
		}
	})

	t.Run("fetch failures skip the cycle without stopping the loop", func(t *testing.T) {
		t.Parallel()

		source := &sourceStub{roomsErr: errors.New("backend down")}
		applied := make(chan Snapshot, 16)
		poller := NewPoller(source, 10*time.Millisecond, func(s Snapshot) { applied <- s }, nil, nil)

		handle := poller.Start(context.Background())

		// Let several failing cycles elapse, then recover the source.
		deadline := time.Now().Add(2 * time.Second)
		for source.fetchCount() < 3 {
			if time.Now().After(deadline) {
				t.Fatal("loop stopped fetching after failures")
			}
			time.Sleep(5 * time.Millisecond)
		}
		if len(applied) != 0 {
			t.Fatal("expected no snapshot while fetches fail")
		}

		source.mu.Lock()
		source.roomsErr = nil
		source.mu.Unlock()

		select {
		case <-applied:
		case <-time.After(2 * time.Second):
			t.Fatal("expected a snapshot after the source recovered")
		}
		handle.Stop()
	})

	t.Run("stop cancels the loop and waits for exit", func(t *testing.T) {
		t.Parallel()

		source := &sourceStub{}
		poller := NewPoller(source, 10*time.Millisecond, nil, nil, nil)

		handle := poller.Start(context.Background())
		handle.Stop()

		count := source.fetchCount()
		time.Sleep(50 * time.Millisecond)
		if source.fetchCount() != count {
			t.Fatal("loop kept fetching after Stop returned")
		}

		// Stopping again must not panic or hang.
		handle.Stop()
	})
}
