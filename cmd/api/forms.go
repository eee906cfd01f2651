package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"stayfront/internal/booking"
	"stayfront/internal/hotelapi"
)

type formEnvelope struct {
	FormID   string            `json:"form_id"`
	DraftRef string            `json:"draft_ref"`
	State    booking.FormState `json:"state"`
}

// form resolves the controller for the form id in the URL.
func (app *application) form(w http.ResponseWriter, r *http.Request) (*booking.Controller, bool) {
	id := chi.URLParam(r, "formID")
	ctrl, ok := app.sessions.Get(id)
	if !ok {
		app.notFoundResponse(w, r, fmt.Errorf("form not found or expired"))
		return nil, false
	}
	return ctrl, true
}

// openFormHandler godoc
//
//	@Summary		Open a booking form
//	@Description	Creates a fresh booking draft with one primary guest
//	@Tags			forms
//	@Produce		json
//	@Success		201	{object}	formEnvelope
//	@Security		ApiKeyAuth
//	@Router			/forms [post]
func (app *application) openFormHandler(w http.ResponseWriter, r *http.Request) {
	ctrl := booking.NewController(app.bookingAPI, app.logger)
	ctrl.OnBooked(func() {
		app.bookingsCreated.Add(1)
	})

	id, ref := app.sessions.Open(ctrl)

	resp := formEnvelope{FormID: id, DraftRef: ref, State: ctrl.State()}
	if err := app.jsonResponse(w, http.StatusCreated, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getFormHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := app.form(w, r)
	if !ok {
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, ctrl.State()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// discardFormHandler drops the form; the remote Booking API is never called.
func (app *application) discardFormHandler(w http.ResponseWriter, r *http.Request) {
	app.sessions.Discard(chi.URLParam(r, "formID"))
	w.WriteHeader(http.StatusNoContent)
}

type SetStayDatesPayload struct {
	Field string `json:"field" validate:"required,oneof=check_in check_out"`
	Value string `json:"value" validate:"required"`
}

// setStayDatesHandler godoc
//
//	@Summary		Set a stay date
//	@Description	Updates the check-in or check-out date, re-validates the pair and kicks off a room availability refresh when both dates are set
//	@Tags			forms
//	@Accept			json
//	@Produce		json
//	@Param			formID	path		string				true	"Form ID"
//	@Param			payload	body		SetStayDatesPayload	true	"Date edit"
//	@Success		200		{object}	booking.FormState
//	@Security		ApiKeyAuth
//	@Router			/forms/{formID}/dates [put]
func (app *application) setStayDatesHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := app.form(w, r)
	if !ok {
		return
	}

	var payload SetStayDatesPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	_, refresh := ctrl.SetStayDates(booking.DateField(payload.Field), payload.Value)
	if refresh {
		app.refreshRoomsAsync(r, ctrl)
	}

	if err := app.jsonResponse(w, http.StatusOK, ctrl.State()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// refreshRoomsAsync fetches availability without blocking the edit response.
// The caller's bearer token is carried over onto a detached context so the
// fetch survives the originating request.
func (app *application) refreshRoomsAsync(r *http.Request, ctrl *booking.Controller) {
	ctx := context.Background()
	if token, ok := r.Context().Value(tokenCtx).(string); ok {
		ctx = context.WithValue(ctx, tokenCtx, token)
	}
	go func() {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		ctrl.RefreshRooms(ctx)
	}()
}

type SetGuestCountPayload struct {
	Count int `json:"count" validate:"required,min=1"`
}

func (app *application) setGuestCountHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := app.form(w, r)
	if !ok {
		return
	}

	var payload SetGuestCountPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if ctrl.SetGuestCount(payload.Count) {
		app.refreshRoomsAsync(r, ctrl)
	}

	if err := app.jsonResponse(w, http.StatusOK, ctrl.State()); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SetGuestFieldPayload struct {
	Field string `json:"field" validate:"required,oneof=first_name last_name gender age phone email"`
	Value string `json:"value"`
}

// setGuestFieldHandler godoc
//
//	@Summary		Edit a guest field
//	@Description	Updates one field on one roster entry
//	@Tags			forms
//	@Accept			json
//	@Produce		json
//	@Param			formID		path		string					true	"Form ID"
//	@Param			guestIndex	path		int						true	"Guest index (0-based)"
//	@Param			payload		body		SetGuestFieldPayload	true	"Field edit"
//	@Success		200			{object}	booking.FormState
//	@Security		ApiKeyAuth
//	@Router			/forms/{formID}/guests/{guestIndex} [put]
func (app *application) setGuestFieldHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := app.form(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "guestIndex"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid guest index"))
		return
	}

	var payload SetGuestFieldPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := ctrl.SetGuestField(index, payload.Field, payload.Value); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, ctrl.State()); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SetContactPayload struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

func (app *application) setContactHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := app.form(w, r)
	if !ok {
		return
	}

	var payload SetContactPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctrl.SetContact(payload.Name, payload.Email, payload.Phone)

	if err := app.jsonResponse(w, http.StatusOK, ctrl.State()); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SelectRoomPayload struct {
	RoomID string `json:"room_id"`
}

func (app *application) selectRoomHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := app.form(w, r)
	if !ok {
		return
	}

	// An empty room_id clears the selection.
	var payload SelectRoomPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctrl.SelectRoom(payload.RoomID)

	if err := app.jsonResponse(w, http.StatusOK, ctrl.State()); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SetPaidAmountPayload struct {
	Amount any `json:"amount"`
}

func (app *application) setPaidAmountHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := app.form(w, r)
	if !ok {
		return
	}

	var payload SetPaidAmountPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Consoles send the raw input value; numbers and numeric strings both
	// count, anything else is zero.
	ctrl.SetPaidAmount(booking.CoerceAmount(payload.Amount))

	if err := app.jsonResponse(w, http.StatusOK, ctrl.State()); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SetPaymentModePayload struct {
	Mode string `json:"mode" validate:"required,paymentmode"`
}

func (app *application) setPaymentModeHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := app.form(w, r)
	if !ok {
		return
	}

	var payload SetPaymentModePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctrl.SetPaymentMode(booking.PaymentMode(payload.Mode))

	if err := app.jsonResponse(w, http.StatusOK, ctrl.State()); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRoomsHandler godoc
//
//	@Summary		List available rooms
//	@Description	Returns the last fetched availability list for the form's dates and guest count
//	@Tags			forms
//	@Produce		json
//	@Param			formID	path		string	true	"Form ID"
//	@Success		200		{array}		hotelapi.AvailableRoom
//	@Security		ApiKeyAuth
//	@Router			/forms/{formID}/rooms [get]
func (app *application) listRoomsHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := app.form(w, r)
	if !ok {
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, ctrl.Rooms()); err != nil {
		app.internalServerError(w, r, err)
	}
}

type submittedEnvelope struct {
	Booking *hotelapi.CreatedBooking `json:"booking"`
	State   booking.FormState        `json:"state"`
}

// submitFormHandler godoc
//
//	@Summary		Submit the booking
//	@Description	Validates the draft, posts it to the Booking API and resets the form on success
//	@Tags			forms
//	@Produce		json
//	@Param			formID	path		string	true	"Form ID"
//	@Success		201		{object}	submittedEnvelope
//	@Failure		409		{object}	error	"a submission is already in progress"
//	@Failure		422		{object}	error	"draft failed validation"
//	@Failure		502		{object}	error	"Booking API rejected the booking"
//	@Security		ApiKeyAuth
//	@Router			/forms/{formID}/submit [post]
func (app *application) submitFormHandler(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := app.form(w, r)
	if !ok {
		return
	}

	created, err := ctrl.Submit(r.Context())
	if err != nil {
		var verr *booking.ValidationError
		var apiErr *hotelapi.APIError
		switch {
		case errors.Is(err, booking.ErrSubmitInFlight):
			app.conflictResponse(w, r, err)
		case errors.As(err, &verr):
			app.validationFailedResponse(w, r, verr)
		case errors.As(err, &apiErr):
			app.badGatewayResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	resp := submittedEnvelope{Booking: created, State: ctrl.State()}
	if err := app.jsonResponse(w, http.StatusCreated, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}
