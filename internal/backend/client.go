// Package backend fetches room and booking snapshots from the booking
// backend. Decoding is deliberately lenient: producers vary status casing and
// occasionally emit unparseable dates or amounts, and a single bad field must
// degrade to an excluded value rather than fail the whole snapshot.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/frontdesk/internal/dashboard"
	"github.com/example/frontdesk/internal/logging"
	"github.com/example/frontdesk/internal/session"
)

// ErrUnexpectedStatus is returned when the backend answers with a non-200
// status code.
var ErrUnexpectedStatus = errors.New("backend: unexpected response status")

// TokenSource supplies the bearer credential attached to backend requests.
// session.Store satisfies it.
type TokenSource interface {
	Get(ctx context.Context) (string, error)
}

// Client is a thin read-only HTTP client for the booking backend. It performs
// no retries or backoff; a failed fetch is reported to the caller, which skips
// the refresh cycle.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// NewClient constructs a Client for the backend at baseURL. A nil tokens
// source sends unauthenticated requests.
func NewClient(baseURL string, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		logger:     logging.Default(logger),
	}
}

// FetchRooms retrieves the current room snapshot.
func (c *Client) FetchRooms(ctx context.Context) ([]dashboard.Room, error) {
	var records []roomRecord
	if err := c.getJSON(ctx, "/rooms", &records); err != nil {
		return nil, err
	}

	rooms := make([]dashboard.Room, 0, len(records))
	for _, rec := range records {
		rooms = append(rooms, rec.toDomain())
	}
	return rooms, nil
}

// FetchBookings retrieves the current booking snapshot.
func (c *Client) FetchBookings(ctx context.Context) ([]dashboard.Booking, error) {
	var records []bookingRecord
	if err := c.getJSON(ctx, "/bookings", &records); err != nil {
		return nil, err
	}

	bookings := make([]dashboard.Booking, 0, len(records))
	for _, rec := range records {
		bookings = append(bookings, rec.toDomain(logging.Component(ctx, c.logger, "Client", "FetchBookings")))
	}
	return bookings, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Get(ctx)
		if err != nil && !errors.Is(err, session.ErrNoSession) {
			return fmt.Errorf("read session token for %s: %w", path, err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
