package hotelapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAvailableRooms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/available-rooms", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "2026-09-10", q.Get("check_in"))
		assert.Equal(t, "2026-09-13", q.Get("check_out"))
		assert.Equal(t, "2", q.Get("no_of_people"))

		json.NewEncoder(w).Encode([]AvailableRoom{
			{ID: "r-101", RoomNumber: "101", RoomType: "Deluxe", Price: 2000},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticCredential("test-token"))
	rooms, err := client.AvailableRooms(context.Background(), RoomQuery{
		CheckIn:  "2026-09-10",
		CheckOut: "2026-09-13",
		People:   2,
	})

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "r-101", rooms[0].ID)
	assert.Equal(t, 2000.0, rooms[0].Price)
}

func TestClientCreateBooking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookings", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		assert.Equal(t, "Asha Rao", body["customer_name"])
		assert.Equal(t, float64(2), body["no_of_people"])

		// The wire payload never carries derived amounts.
		assert.NotContains(t, body, "total_amount")
		assert.NotContains(t, body, "due_amount")
		assert.NotContains(t, body, "paid_amount")

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreatedBooking{ID: "b-1", Reference: "BK-0001", Status: "confirmed"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticCredential("test-token"))
	created, err := client.CreateBooking(context.Background(), BookingRequest{
		CustomerName:   "Asha Rao",
		Email:          "asha@example.com",
		Phone:          "9841000000",
		NumberOfPeople: 2,
		CheckInDate:    "2026-09-10",
		CheckOutDate:   "2026-09-13",
		RoomID:         "r-101",
		ModeOfPayment:  "Cash",
		Guests: []Guest{
			{FirstName: "Asha", LastName: "Rao", IsPrimary: true},
			{FirstName: "Bikram", LastName: "Rao"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "b-1", created.ID)
	assert.Equal(t, "BK-0001", created.Reference)
}

func TestClientRelaysBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Room no longer available"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticCredential("test-token"))
	_, err := client.CreateBooking(context.Background(), BookingRequest{})

	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Room no longer available", err.Error())
}

func TestClientErrorWithoutMessageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticCredential(""))
	_, err := client.AvailableRooms(context.Background(), RoomQuery{})

	require.Error(t, err)
	assert.Equal(t, "booking api returned status 502", err.Error())
}
