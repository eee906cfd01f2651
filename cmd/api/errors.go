package main

import (
	"net/http"

	"stayfront/internal/booking"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, err.Error())
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("conflict response", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusConflict, err.Error())
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)

	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// validationFailedResponse reports a draft that failed its pre-submit checks.
// The body carries the offending field and guest index so the console can
// focus the right input.
func (app *application) validationFailedResponse(w http.ResponseWriter, r *http.Request, verr *booking.ValidationError) {
	app.logger.Warnw("draft validation failed", "method", r.Method, "path", r.URL.Path, "field", verr.Field, "error", verr.Message)

	type envelope struct {
		Success    bool   `json:"success"`
		Message    string `json:"message"`
		Field      string `json:"field"`
		GuestIndex int    `json:"guest_index"`
		Status     int    `json:"status"`
	}

	writeJSON(w, http.StatusUnprocessableEntity, &envelope{
		Success:    false,
		Message:    verr.Message,
		Field:      verr.Field,
		GuestIndex: verr.GuestIndex,
		Status:     http.StatusUnprocessableEntity,
	})
}

// badGatewayResponse relays a Booking API failure verbatim so the operator
// sees the same message the hotel backend produced.
func (app *application) badGatewayResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("booking api error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadGateway, err.Error())
}
