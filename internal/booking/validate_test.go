package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayfront/internal/hotelapi"
)

var testNow = time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)

func TestValidateStayDates(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantIn   string
		wantOut  string
	}{
		{"both empty", "", "", "", ""},
		{"valid future pair", "2026-09-12", "2026-09-14", "", ""},
		{"check-in today", "2026-09-10", "2026-09-11", "", ""},
		{"check-in yesterday is allowed", "2026-09-09", "2026-09-11", "", ""},
		{"check-in before yesterday", "2026-09-08", "2026-09-11", "Check-in date cannot be before yesterday", ""},
		{"check-in unparseable", "09/12/2026", "2026-09-14", "Enter a valid check-in date", ""},
		{"check-out today is allowed", "2026-09-09", "2026-09-10", "", ""},
		{"check-out in the past", "2026-09-09", "2026-09-09", "", "Check-out date cannot be in the past"},
		{"check-out before check-in", "2026-09-14", "2026-09-12", "", "Check-out date cannot be before check-in date"},
		{"check-out unparseable", "2026-09-12", "tomorrow", "", "Enter a valid check-out date"},
		{"cross error skipped when check-in invalid", "2026-09-01", "2026-09-12", "Check-in date cannot be before yesterday", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validateStayDates(tt.checkIn, tt.checkOut, testNow)
			assert.Equal(t, tt.wantIn, v.CheckIn)
			assert.Equal(t, tt.wantOut, v.CheckOut)
			assert.Equal(t, tt.wantIn == "" && tt.wantOut == "", v.OK())
		})
	}
}

func validGuest() hotelapi.Guest {
	return hotelapi.Guest{
		FirstName: "Asha",
		LastName:  "Rao",
		Gender:    "Female",
		Age:       "34",
		Phone:     "9841000000",
		Email:     "asha@example.com",
	}
}

func TestValidateGuestRoster(t *testing.T) {
	t.Run("valid roster passes", func(t *testing.T) {
		guests := []hotelapi.Guest{validGuest(), validGuest()}
		assert.Nil(t, validateGuestRoster(guests, 2))
	})

	t.Run("count mismatch reported before guest fields", func(t *testing.T) {
		guests := []hotelapi.Guest{{}}
		verr := validateGuestRoster(guests, 2)

		require.NotNil(t, verr)
		assert.Equal(t, "guests", verr.Field)
		assert.Equal(t, -1, verr.GuestIndex)
	})

	t.Run("first failing guest and field wins", func(t *testing.T) {
		first := validGuest()
		second := validGuest()
		second.Email = "not-an-email"
		third := hotelapi.Guest{}

		verr := validateGuestRoster([]hotelapi.Guest{first, second, third}, 3)

		require.NotNil(t, verr)
		assert.Equal(t, 1, verr.GuestIndex)
		assert.Equal(t, "email", verr.Field)
		assert.Equal(t, "Guest 2: Valid email is required", verr.Message)
	})

	tests := []struct {
		name    string
		mutate  func(g *hotelapi.Guest)
		field   string
		message string
	}{
		{"missing first name", func(g *hotelapi.Guest) { g.FirstName = "  " }, "first_name", "Guest 1: First name is required"},
		{"missing last name", func(g *hotelapi.Guest) { g.LastName = "" }, "last_name", "Guest 1: Last name is required"},
		{"missing gender", func(g *hotelapi.Guest) { g.Gender = "" }, "gender", "Guest 1: Gender is required"},
		{"missing age", func(g *hotelapi.Guest) { g.Age = "" }, "age", "Guest 1: Age is required"},
		{"non-numeric age", func(g *hotelapi.Guest) { g.Age = "thirty" }, "age", "Guest 1: Age must be a number"},
		{"missing phone", func(g *hotelapi.Guest) { g.Phone = "" }, "phone", "Guest 1: Phone number is required"},
		{"empty email", func(g *hotelapi.Guest) { g.Email = "" }, "email", "Guest 1: Valid email is required"},
		{"email without domain dot", func(g *hotelapi.Guest) { g.Email = "asha@example" }, "email", "Guest 1: Valid email is required"},
		{"email with spaces", func(g *hotelapi.Guest) { g.Email = "asha rao@example.com" }, "email", "Guest 1: Valid email is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGuest()
			tt.mutate(&g)

			verr := validateGuestRoster([]hotelapi.Guest{g}, 1)

			require.NotNil(t, verr)
			assert.Equal(t, 0, verr.GuestIndex)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}
