package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"stayfront/internal/hotelapi"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError identifies the first failing field. GuestIndex is zero
// based and -1 for failures not tied to a roster entry.
type ValidationError struct {
	Field      string `json:"field"`
	GuestIndex int    `json:"guest_index"`
	Message    string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Message }

func fieldErr(field, msg string) *ValidationError {
	return &ValidationError{Field: field, GuestIndex: -1, Message: msg}
}

func guestErr(i int, field, msg string) *ValidationError {
	return &ValidationError{
		Field:      field,
		GuestIndex: i,
		Message:    fmt.Sprintf("Guest %d: %s", i+1, msg),
	}
}

// validateStayDates re-derives the full DateValidation for the current pair
// of dates. Both fields are always recomputed so an error left by an earlier
// edit clears as soon as the pair becomes valid. Comparisons work on the
// YYYY-MM-DD strings themselves, which order chronologically and ignore
// time of day.
//
// Check-in tolerates yesterday so a late-night same-day booking near a
// timezone edge is not rejected as "in the past".
func validateStayDates(checkIn, checkOut string, now time.Time) DateValidation {
	var v DateValidation

	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	checkInValid := false
	if checkIn != "" {
		if _, err := time.Parse(dateLayout, checkIn); err != nil {
			v.CheckIn = "Enter a valid check-in date"
		} else if checkIn < yesterday {
			v.CheckIn = "Check-in date cannot be before yesterday"
		} else {
			checkInValid = true
		}
	}

	if checkOut != "" {
		if _, err := time.Parse(dateLayout, checkOut); err != nil {
			v.CheckOut = "Enter a valid check-out date"
		} else if checkOut < today {
			v.CheckOut = "Check-out date cannot be in the past"
		} else if checkInValid && checkOut < checkIn {
			// The cross-field error always lands on check-out, no matter
			// which field was edited last.
			v.CheckOut = "Check-out date cannot be before check-in date"
		}
	}

	return v
}

// validateGuestRoster checks every guest in order and reports the first
// failing field, naming the guest it belongs to.
func validateGuestRoster(guests []hotelapi.Guest, numberOfPeople int) *ValidationError {
	if len(guests) != numberOfPeople {
		return fieldErr("guests", "Guest details are out of sync with the guest count")
	}

	for i, g := range guests {
		switch {
		case strings.TrimSpace(g.FirstName) == "":
			return guestErr(i, "first_name", "First name is required")
		case strings.TrimSpace(g.LastName) == "":
			return guestErr(i, "last_name", "Last name is required")
		case strings.TrimSpace(g.Gender) == "":
			return guestErr(i, "gender", "Gender is required")
		case strings.TrimSpace(g.Age) == "":
			return guestErr(i, "age", "Age is required")
		case !isNumeric(g.Age):
			return guestErr(i, "age", "Age must be a number")
		case strings.TrimSpace(g.Phone) == "":
			return guestErr(i, "phone", "Phone number is required")
		case !emailPattern.MatchString(g.Email):
			return guestErr(i, "email", "Valid email is required")
		}
	}
	return nil
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}
