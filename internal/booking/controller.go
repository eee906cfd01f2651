// Package booking implements the new-booking form state machine: stay dates,
// guest roster, pricing preview and submission to the remote Booking API.
// Each Controller owns one form instance; nothing is shared across forms.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"stayfront/internal/hotelapi"
)

// ErrSubmitInFlight is returned when Submit is called while an earlier
// submission is still awaiting the backend. The duplicate call performs no
// network request.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// Controller owns the reactive state of one booking form.
type Controller struct {
	mu         sync.Mutex
	draft      Draft
	guests     []hotelapi.Guest
	dateErrors DateValidation
	rooms      []hotelapi.AvailableRoom
	fetchSeq   uint64
	submitting bool

	api      hotelapi.Gateway
	logger   *zap.SugaredLogger
	now      func() time.Time
	onBooked func()
}

func NewController(api hotelapi.Gateway, logger *zap.SugaredLogger) *Controller {
	return &Controller{
		draft:  emptyDraft(),
		guests: reconcileGuestRoster(nil, 1),
		api:    api,
		logger: logger,
		now:    time.Now,
	}
}

// OnBooked registers a hook fired after a successful submission, before the
// form resets. The consoles use it to refresh their booking lists.
func (c *Controller) OnBooked(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onBooked = fn
}

// SetStayDates records a date edit and re-derives the validation state for
// the current pair of dates. The returned flag reports whether a room
// availability refresh is due.
func (c *Controller) SetStayDates(field DateField, value string) (DateValidation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case FieldCheckIn:
		c.draft.CheckInDate = value
	case FieldCheckOut:
		c.draft.CheckOutDate = value
	}

	c.dateErrors = validateStayDates(c.draft.CheckInDate, c.draft.CheckOutDate, c.now())
	c.repriceLocked()
	return c.dateErrors, c.roomQueryReadyLocked()
}

// SetGuestCount reconciles the roster to n entries and reports whether a room
// availability refresh is due.
func (c *Controller) SetGuestCount(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n < 1 {
		n = 1
	}
	c.draft.NumberOfPeople = n
	c.guests = reconcileGuestRoster(c.guests, n)
	return c.roomQueryReadyLocked()
}

// SetGuestField updates a single field on a single roster entry. Other guests
// and the primary flag are untouched.
func (c *Controller) SetGuestField(index int, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.guests) {
		return fmt.Errorf("guest index %d out of range", index)
	}

	g := &c.guests[index]
	switch field {
	case "first_name":
		g.FirstName = value
	case "last_name":
		g.LastName = value
	case "gender":
		g.Gender = value
	case "age":
		g.Age = value
	case "phone":
		g.Phone = value
	case "email":
		g.Email = value
	default:
		return fmt.Errorf("unknown guest field %q", field)
	}
	return nil
}

// SetContact records the form-level contact details. At submit time these are
// overridden (name) or backed (phone, email) by the primary guest.
func (c *Controller) SetContact(name, email, phone string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.CustomerName = name
	c.draft.Email = email
	c.draft.Phone = phone
}

// SelectRoom records a room choice and reprices the stay. A room id not in
// the currently fetched list (a stale pick after the dates changed) counts as
// no selection and zeroes the total.
func (c *Controller) SelectRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.RoomID = roomID
	c.repriceLocked()
}

// SetPaidAmount records the advance payment. The due preview may go negative;
// it is display-only and the backend settles the real arithmetic.
func (c *Controller) SetPaidAmount(amount float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.PaidAmount = amount
	c.draft.DueAmount = c.draft.TotalAmount - amount
}

func (c *Controller) SetPaymentMode(mode PaymentMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.ModeOfPayment = mode
}

// RefreshRooms re-queries availability for the current stay. Every refresh is
// stamped with a sequence number and a response is discarded when a newer
// request has been issued since, so a slow stale response can never overwrite
// fresher results. A failed fetch degrades to an empty room list.
func (c *Controller) RefreshRooms(ctx context.Context) {
	c.mu.Lock()
	if !c.roomQueryReadyLocked() {
		c.mu.Unlock()
		return
	}
	q := hotelapi.RoomQuery{
		CheckIn:  c.draft.CheckInDate,
		CheckOut: c.draft.CheckOutDate,
		People:   c.draft.NumberOfPeople,
	}
	c.fetchSeq++
	seq := c.fetchSeq
	c.mu.Unlock()

	rooms, err := c.api.AvailableRooms(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.fetchSeq {
		return
	}
	if err != nil {
		c.logger.Warnw("available rooms fetch failed", "error", err)
		c.rooms = nil
		return
	}
	c.rooms = rooms
	c.repriceLocked()
}

// Validate runs the submission preconditions in order and reports the first
// failure: date errors, roster/count mismatch, then per-guest fields.
func (c *Controller) Validate() *ValidationError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

// BuildPayload assembles the booking request from the current draft and
// roster. It is deterministic, has no side effects and never includes the
// total or due amounts.
func (c *Controller) BuildPayload() hotelapi.BookingRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildPayloadLocked()
}

// Submit validates, assembles and posts the booking. On success the form
// resets to a blank draft with a single primary guest; on failure all state
// is preserved so the user can correct and retry. A second Submit while one
// is in flight is a no-op.
func (c *Controller) Submit(ctx context.Context) (*hotelapi.CreatedBooking, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if verr := c.validateLocked(); verr != nil {
		c.mu.Unlock()
		return nil, verr
	}
	payload := c.buildPayloadLocked()
	c.submitting = true
	c.mu.Unlock()

	created, err := c.api.CreateBooking(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		c.logger.Warnw("booking submission failed", "error", err)
		return nil, err
	}

	if c.onBooked != nil {
		c.onBooked()
	}
	c.resetLocked()
	c.logger.Infow("booking created", "booking_id", created.ID)
	return created, nil
}

// State returns a snapshot safe to hand to the renderer.
func (c *Controller) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()

	guests := make([]hotelapi.Guest, len(c.guests))
	copy(guests, c.guests)
	rooms := make([]hotelapi.AvailableRoom, len(c.rooms))
	copy(rooms, c.rooms)

	return FormState{
		Draft:      c.draft,
		Guests:     guests,
		DateErrors: c.dateErrors,
		Rooms:      rooms,
		Submitting: c.submitting,
	}
}

// Rooms returns the last fetched availability list.
func (c *Controller) Rooms() []hotelapi.AvailableRoom {
	c.mu.Lock()
	defer c.mu.Unlock()
	rooms := make([]hotelapi.AvailableRoom, len(c.rooms))
	copy(rooms, c.rooms)
	return rooms
}

func (c *Controller) validateLocked() *ValidationError {
	if c.draft.CheckInDate == "" {
		return fieldErr("check_in", "Check-in date is required")
	}
	if c.draft.CheckOutDate == "" {
		return fieldErr("check_out", "Check-out date is required")
	}
	if c.dateErrors.CheckIn != "" {
		return fieldErr("check_in", c.dateErrors.CheckIn)
	}
	if c.dateErrors.CheckOut != "" {
		return fieldErr("check_out", c.dateErrors.CheckOut)
	}
	return validateGuestRoster(c.guests, c.draft.NumberOfPeople)
}

func (c *Controller) buildPayloadLocked() hotelapi.BookingRequest {
	primary := c.guests[0]
	name := strings.TrimSpace(strings.TrimSpace(primary.FirstName) + " " + strings.TrimSpace(primary.LastName))

	email := c.draft.Email
	if email == "" {
		email = primary.Email
	}
	phone := c.draft.Phone
	if phone == "" {
		phone = primary.Phone
	}

	guests := make([]hotelapi.Guest, len(c.guests))
	copy(guests, c.guests)

	return hotelapi.BookingRequest{
		CustomerName:   name,
		Email:          email,
		Phone:          phone,
		NumberOfPeople: c.draft.NumberOfPeople,
		CheckInDate:    c.draft.CheckInDate,
		CheckOutDate:   c.draft.CheckOutDate,
		RoomID:         c.draft.RoomID,
		ModeOfPayment:  string(c.draft.ModeOfPayment),
		Guests:         guests,
	}
}

// repriceLocked recomputes the total preview from the current room selection
// and date pair.
func (c *Controller) repriceLocked() {
	price, ok := c.roomPriceLocked(c.draft.RoomID)
	if !ok {
		c.draft.TotalAmount = 0
		c.draft.DueAmount = 0 - c.draft.PaidAmount
		return
	}
	nights := deriveNights(c.draft.CheckInDate, c.draft.CheckOutDate)
	c.draft.TotalAmount, c.draft.DueAmount = deriveTotals(price, nights, c.draft.PaidAmount)
}

func (c *Controller) roomPriceLocked(roomID string) (float64, bool) {
	if roomID == "" {
		return 0, false
	}
	for _, r := range c.rooms {
		if r.ID == roomID {
			return r.Price, true
		}
	}
	return 0, false
}

func (c *Controller) roomQueryReadyLocked() bool {
	return c.draft.CheckInDate != "" && c.draft.CheckOutDate != ""
}

func (c *Controller) resetLocked() {
	c.draft = emptyDraft()
	c.guests = reconcileGuestRoster(nil, 1)
	c.dateErrors = DateValidation{}
	c.rooms = nil
}
