package hotelapi

import "fmt"

// AvailableRoom is one bookable room returned by the availability search.
// The price here feeds the console's total preview only; the backend
// recomputes the authoritative total from room_id and the date range.
type AvailableRoom struct {
	ID         string  `json:"id"`
	RoomNumber string  `json:"room_number"`
	RoomType   string  `json:"room_type"`
	Price      float64 `json:"price"`
}

// Guest is one roster entry, sent verbatim with the booking request.
type Guest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
	Age       string `json:"age"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	IsPrimary bool   `json:"is_primary"`
}

// RoomQuery holds the availability search parameters.
type RoomQuery struct {
	CheckIn  string
	CheckOut string
	People   int
}

// BookingRequest is the POST /bookings body. total_amount and due_amount are
// deliberately absent: the backend prices from room_id plus the date range.
type BookingRequest struct {
	CustomerName   string  `json:"customer_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	NumberOfPeople int     `json:"no_of_people"`
	CheckInDate    string  `json:"check_in_date"`
	CheckOutDate   string  `json:"check_out_date"`
	RoomID         string  `json:"room_id"`
	ModeOfPayment  string  `json:"mode_of_payment"`
	Guests         []Guest `json:"guests"`
}

// CreatedBooking is the backend's response to a successful creation. The
// consoles only confirm success and re-fetch their lists, so just the
// identifying fields are decoded.
type CreatedBooking struct {
	ID        string `json:"id,omitempty"`
	Reference string `json:"booking_ref,omitempty"`
	Status    string `json:"status,omitempty"`
}

// APIError carries a non-2xx backend response. Message is surfaced to the
// user verbatim when the backend provided one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("booking api returned status %d", e.StatusCode)
}
