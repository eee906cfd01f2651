package booking

import "stayfront/internal/hotelapi"

// DateField identifies which stay date an edit targets.
type DateField string

const (
	FieldCheckIn  DateField = "check_in"
	FieldCheckOut DateField = "check_out"
)

// PaymentMode is how the guest intends to settle the bill.
type PaymentMode string

const (
	PayCash PaymentMode = "Cash"
	PayCard PaymentMode = "Card"
	PayUPI  PaymentMode = "UPI"
)

// Draft is the in-progress booking form state. TotalAmount and DueAmount are
// display previews only; they never reach the wire (the backend is the
// pricing authority).
type Draft struct {
	CustomerName   string      `json:"customer_name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	NumberOfPeople int         `json:"no_of_people"`
	CheckInDate    string      `json:"check_in_date"`
	CheckOutDate   string      `json:"check_out_date"`
	RoomID         string      `json:"room_id"`
	PaidAmount     float64     `json:"paid_amount"`
	TotalAmount    float64     `json:"total_amount"`
	DueAmount      float64     `json:"due_amount"`
	ModeOfPayment  PaymentMode `json:"mode_of_payment"`
}

func emptyDraft() Draft {
	return Draft{NumberOfPeople: 1, ModeOfPayment: PayCash}
}

// DateValidation holds the per-field date error messages. A non-empty message
// on either field blocks submission.
type DateValidation struct {
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
}

func (v DateValidation) OK() bool {
	return v.CheckIn == "" && v.CheckOut == ""
}

// FormState is a point-in-time snapshot of a form for the console to render.
type FormState struct {
	Draft      Draft                    `json:"draft"`
	Guests     []hotelapi.Guest         `json:"guests"`
	DateErrors DateValidation           `json:"date_errors"`
	Rooms      []hotelapi.AvailableRoom `json:"rooms"`
	Submitting bool                     `json:"submitting"`
}
