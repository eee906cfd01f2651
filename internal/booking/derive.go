package booking

import (
	"math"
	"strconv"
	"strings"
	"time"

	"stayfront/internal/hotelapi"
)

const dateLayout = "2006-01-02"

// deriveNights counts the calendar-day intervals between check-in and
// check-out, floored at one night. Missing or inverted dates also floor to
// one so a half-edited form never previews a zero or negative total.
func deriveNights(checkIn, checkOut string) int {
	in, errIn := time.Parse(dateLayout, checkIn)
	out, errOut := time.Parse(dateLayout, checkOut)
	if errIn != nil || errOut != nil {
		return 1
	}

	nights := int(math.Ceil(out.Sub(in).Hours() / 24))
	if nights < 1 {
		return 1
	}
	return nights
}

func deriveTotals(pricePerNight float64, nights int, paid float64) (total, due float64) {
	total = pricePerNight * float64(nights)
	return total, total - paid
}

// reconcileGuestRoster resizes the roster to n entries, preserving existing
// guests by index: growth appends blank records, shrink truncates. Index 0 is
// re-marked primary on every pass so the invariant of exactly one primary
// guest holds regardless of the path here.
func reconcileGuestRoster(guests []hotelapi.Guest, n int) []hotelapi.Guest {
	if n < 1 {
		n = 1
	}
	if len(guests) > n {
		guests = guests[:n]
	}

	out := make([]hotelapi.Guest, 0, n)
	out = append(out, guests...)
	for len(out) < n {
		out = append(out, hotelapi.Guest{})
	}

	for i := range out {
		out[i].IsPrimary = i == 0
	}
	return out
}

// CoerceAmount turns free-form user input into a number. Non-numeric input
// counts as zero, matching how the paid-amount field behaves in the console.
func CoerceAmount(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
