// Package refresh drives the fixed-interval fetch-and-aggregate cycle. The
// loop is an explicit scheduled task with a cancellation handle owned by the
// component that starts it, rather than an implicit timer buried in the
// presentation layer.
package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/frontdesk/internal/dashboard"
	"github.com/example/frontdesk/internal/logging"
)

// DefaultInterval is the cycle period used when none is configured.
const DefaultInterval = 60 * time.Second

// Snapshot is one point-in-time copy of the backend collections, handed to
// the apply callback as an immutable unit.
type Snapshot struct {
	Rooms     []dashboard.Room
	Bookings  []dashboard.Booking
	FetchedAt time.Time
}

// Source produces the backend collections for one cycle.
type Source interface {
	FetchRooms(ctx context.Context) ([]dashboard.Room, error)
	FetchBookings(ctx context.Context) ([]dashboard.Booking, error)
}

// Poller runs the refresh cycle. Overlapping cycles are not serialized
// against the consumer: the apply callback is last-write-wins and no ordering
// token is carried, matching the display's tolerance for a stale frame.
type Poller struct {
	source   Source
	interval time.Duration
	apply    func(Snapshot)
	now      func() time.Time
	logger   *slog.Logger
}

// NewPoller constructs a Poller. A non-positive interval falls back to
// DefaultInterval, a nil now to time.Now.
func NewPoller(source Source, interval time.Duration, apply func(Snapshot), now func() time.Time, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if now == nil {
		now = time.Now
	}
	return &Poller{
		source:   source,
		interval: interval,
		apply:    apply,
		now:      now,
		logger:   logging.Default(logger),
	}
}

// Handle controls a running refresh loop.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels the loop, aborting any in-flight fetch, and waits for it to
// exit. Stopping twice is safe.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.cancel()
	<-h.done
}

// Start launches the refresh loop: one immediate cycle, then one per
// interval until the context is canceled or the handle stopped.
func (p *Poller) Start(ctx context.Context) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	handle := &Handle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(handle.done)
		p.run(ctx)
	}()
	return handle
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

// cycle fetches both collections and applies the snapshot. A failed fetch
// logs and skips the cycle; it never terminates the loop.
func (p *Poller) cycle(ctx context.Context) {
	logger := logging.Component(ctx, p.logger, "Poller", "cycle")

	rooms, err := p.source.FetchRooms(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "room fetch failed, skipping cycle", "error", err)
		return
	}
	bookings, err := p.source.FetchBookings(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "booking fetch failed, skipping cycle", "error", err)
		return
	}

	snapshot := Snapshot{Rooms: rooms, Bookings: bookings, FetchedAt: p.now()}
	if p.apply != nil {
		p.apply(snapshot)
	}
	logger.DebugContext(ctx, "snapshot applied", "rooms", len(rooms), "bookings", len(bookings))
}
