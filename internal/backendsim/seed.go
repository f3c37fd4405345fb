package backendsim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// StaffAccount is a simulated operator login.
type StaffAccount struct {
	ID           string
	Username     string
	Role         string
	DisplayName  string
	PasswordHash string
}

// roomRow and bookingRow are the payload shapes the simulator serves. They
// deliberately reproduce the quirks of the real backend export: mixed-case
// statuses, second-granularity timestamps, and charges as either numbers or
// quoted strings.
type roomRow struct {
	ID            string   `json:"id"`
	Number        string   `json:"number"`
	Status        string   `json:"status"`
	Floor         int      `json:"floor"`
	Features      []string `json:"features"`
	LastCleanedAt string   `json:"last_cleaned_at"`
}

type bookingRow struct {
	ID                string  `json:"id"`
	RoomID            string  `json:"room_id"`
	RoomNumber        string  `json:"room_number"`
	GuestName         string  `json:"guest_name"`
	GuestContact      string  `json:"guest_contact"`
	ScheduledCheckIn  string  `json:"scheduled_check_in"`
	ScheduledCheckOut string  `json:"scheduled_check_out"`
	ActualCheckIn     *string `json:"actual_check_in"`
	ActualCheckOut    *string `json:"actual_check_out"`
	Status            string  `json:"status"`
	TotalCharges      any     `json:"total_charges"`
	Code              string  `json:"code"`
}

// Dataset is the seeded state the simulator serves.
type Dataset struct {
	Rooms    []roomRow
	Bookings []bookingRow
	Accounts []StaffAccount
}

var seedGuests = []string{
	"Alice Martin", "Bruno Costa", "Chen Wei", "Dana Okafor",
	"Elena Petrova", "Farid Haddad", "Grace Kim", "Hugo Lindqvist",
}

var roomStatuses = []string{"Available", "OCCUPIED", "occupied", "Cleaning", "available"}

// Seed builds a deterministic-shaped dataset anchored at now. A handful of
// checked-in bookings depart within the next two hours so the checkout list is
// never empty right after startup.
func Seed(now time.Time, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))
	ds := &Dataset{}

	for floor := 1; floor <= 3; floor++ {
		for n := 1; n <= 6; n++ {
			cleaned := now.Add(-time.Duration(rng.Intn(48)) * time.Hour)
			ds.Rooms = append(ds.Rooms, roomRow{
				ID:            uuid.NewString(),
				Number:        fmt.Sprintf("%d%02d", floor, n),
				Status:        roomStatuses[rng.Intn(len(roomStatuses))],
				Floor:         floor,
				Features:      []string{"wifi"},
				LastCleanedAt: cleaned.UTC().Format(time.RFC3339),
			})
		}
	}

	for i := 0; i < 10; i++ {
		room := ds.Rooms[rng.Intn(len(ds.Rooms))]
		guest := seedGuests[rng.Intn(len(seedGuests))]

		booking := bookingRow{
			ID:           uuid.NewString(),
			RoomID:       room.ID,
			RoomNumber:   room.Number,
			GuestName:    guest,
			GuestContact: fmt.Sprintf("+44 7700 9%05d", rng.Intn(100000)),
			Code:         fmt.Sprintf("BK-%04d", 1000+rng.Intn(9000)),
		}

		switch {
		case i < 3:
			// Imminent departures inside the default checkout window.
			arrival := now.Add(-24 * time.Hour)
			departure := now.Add(time.Duration(10+rng.Intn(100)) * time.Minute)
			actual := arrival.UTC().Format(time.RFC3339)
			booking.Status = "Checked-In"
			booking.ScheduledCheckIn = arrival.UTC().Format(time.RFC3339)
			booking.ScheduledCheckOut = departure.UTC().Format(time.RFC3339)
			booking.ActualCheckIn = &actual
			booking.TotalCharges = 120 + float64(rng.Intn(200))
		case i < 6:
			// Stays checking in today, still reserved.
			arrival := now.Add(time.Duration(1+rng.Intn(6)) * time.Hour)
			booking.Status = "RESERVED"
			booking.ScheduledCheckIn = arrival.UTC().Format(time.RFC3339)
			booking.ScheduledCheckOut = arrival.Add(48 * time.Hour).UTC().Format(time.RFC3339)
			booking.TotalCharges = fmt.Sprintf("%.2f", 90+float64(rng.Intn(150)))
		case i < 8:
			// Longer stays in progress.
			arrival := now.Add(-48 * time.Hour)
			actual := arrival.UTC().Format(time.RFC3339)
			booking.Status = "checked-in"
			booking.ScheduledCheckIn = arrival.UTC().Format(time.RFC3339)
			booking.ScheduledCheckOut = now.Add(72 * time.Hour).UTC().Format(time.RFC3339)
			booking.ActualCheckIn = &actual
			booking.TotalCharges = 300 + float64(rng.Intn(400))
		default:
			// Completed stays from yesterday.
			arrival := now.Add(-72 * time.Hour)
			departure := now.Add(-24 * time.Hour)
			actualIn := arrival.UTC().Format(time.RFC3339)
			actualOut := departure.UTC().Format(time.RFC3339)
			booking.Status = "Checked-Out"
			booking.ScheduledCheckIn = arrival.UTC().Format(time.RFC3339)
			booking.ScheduledCheckOut = departure.UTC().Format(time.RFC3339)
			booking.ActualCheckIn = &actualIn
			booking.ActualCheckOut = &actualOut
			booking.TotalCharges = 210.50
		}

		ds.Bookings = append(ds.Bookings, booking)
	}

	ds.Accounts = seedAccounts()
	return ds
}

var seedStaff = []struct {
	username, role, name, password string
}{
	{"manager", "ADMIN", "Morgan Hale", "manager-pass"},
	{"frontdesk", "Receptionist", "Riley Quinn", "frontdesk-pass"},
	{"housekeeping", "cleaner", "Sam Ito", "housekeeping-pass"},
}

func seedAccounts() []StaffAccount {
	accounts := make([]StaffAccount, 0, len(seedStaff))
	for _, s := range seedStaff {
		hash, err := hashPassword(s.password)
		if err != nil {
			// rand.Read failing is unrecoverable at seed time.
			panic(err)
		}
		accounts = append(accounts, StaffAccount{
			ID:           uuid.NewString(),
			Username:     s.username,
			Role:         s.role,
			DisplayName:  s.name,
			PasswordHash: hash,
		})
	}
	return accounts
}

func (d *Dataset) findAccount(username string) (StaffAccount, bool) {
	for _, account := range d.Accounts {
		if account.Username == username {
			return account, true
		}
	}
	return StaffAccount{}, false
}
