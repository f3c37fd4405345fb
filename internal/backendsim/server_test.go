package backendsim_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/frontdesk/internal/backend"
	"github.com/example/frontdesk/internal/backendsim"
	"github.com/example/frontdesk/internal/dashboard"
	"github.com/example/frontdesk/internal/session"
)

func newSimServer(t *testing.T) (*httptest.Server, *backendsim.Dataset) {
	t.Helper()
	data := backendsim.Seed(time.Now(), 1)
	server := httptest.NewServer(backendsim.NewServer(data, nil).Handler())
	t.Cleanup(server.Close)
	return server, data
}

func login(t *testing.T, baseURL, username, password string) (string, int) {
	t.Helper()
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		t.Fatalf("marshal login request: %v", err)
	}
	resp, err := http.Post(baseURL+"/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return payload.Token, resp.StatusCode
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("issues a token the dashboard decoder accepts", func(t *testing.T) {
		t.Parallel()

		server, _ := newSimServer(t)
		token, status := login(t, server.URL, "manager", "manager-pass")
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}

		decoder := session.NewDecoder(session.NewMemoryStore(), time.Now, nil)
		claims, err := decoder.Decode(token)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if role, _ := claims.NormalizedRole(); role != session.RoleAdmin {
			t.Fatalf("expected admin role, got %q (raw %q)", role, claims.RawRole)
		}
		if !decoder.IsValid(token) {
			t.Fatal("expected a freshly issued token to be valid")
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		t.Parallel()

		server, _ := newSimServer(t)
		if _, status := login(t, server.URL, "manager", "wrong"); status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
	})

	t.Run("rejects an unknown account", func(t *testing.T) {
		t.Parallel()

		server, _ := newSimServer(t)
		if _, status := login(t, server.URL, "nobody", "pass"); status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
	})
}

func TestDataEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("require a decodable bearer token", func(t *testing.T) {
		t.Parallel()

		server, _ := newSimServer(t)
		for _, path := range []string{"/rooms", "/bookings"} {
			req, _ := http.NewRequest(http.MethodGet, server.URL+path, nil)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("%s: expected 401 without a token, got %d", path, resp.StatusCode)
			}

			req.Header.Set("Authorization", "Bearer not.a.token")
			resp, err = http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("%s: expected 401 for a malformed token, got %d", path, resp.StatusCode)
			}
		}
	})

	t.Run("serve snapshots the dashboard client can consume", func(t *testing.T) {
		t.Parallel()

		server, data := newSimServer(t)
		token, status := login(t, server.URL, "frontdesk", "frontdesk-pass")
		if status != http.StatusOK {
			t.Fatalf("login failed with %d", status)
		}

		store := session.NewMemoryStore()
		if err := store.Set(context.Background(), token); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		client := backend.NewClient(server.URL, store, nil)

		rooms, err := client.FetchRooms(context.Background())
		if err != nil {
			t.Fatalf("FetchRooms failed: %v", err)
		}
		if len(rooms) != len(data.Rooms) {
			t.Fatalf("expected %d rooms, got %d", len(data.Rooms), len(rooms))
		}

		bookings, err := client.FetchBookings(context.Background())
		if err != nil {
			t.Fatalf("FetchBookings failed: %v", err)
		}
		if len(bookings) != len(data.Bookings) {
			t.Fatalf("expected %d bookings, got %d", len(data.Bookings), len(bookings))
		}

		var checkedIn int
		for _, booking := range bookings {
			if booking.Status == dashboard.BookingCheckedIn {
				checkedIn++
			}
		}
		if checkedIn == 0 {
			t.Fatal("expected the mixed-case statuses to normalize to checked-in bookings")
		}

		upcoming := dashboard.UpcomingCheckouts(bookings, time.Now(), 2*time.Hour, 3)
		if len(upcoming) == 0 {
			t.Fatal("expected the seed to include imminent departures")
		}
	})
}
