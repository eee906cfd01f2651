package hotelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CredentialProvider supplies the bearer token attached to every backend
// call. The HTTP layer implements it by forwarding the console user's own
// token; tests use StaticCredential.
type CredentialProvider interface {
	Credential(ctx context.Context) (string, error)
}

// StaticCredential is a fixed-token provider.
type StaticCredential string

func (s StaticCredential) Credential(ctx context.Context) (string, error) {
	return string(s), nil
}

// Gateway is the remote Booking API surface the form controller depends on.
type Gateway interface {
	AvailableRooms(ctx context.Context, q RoomQuery) ([]AvailableRoom, error)
	CreateBooking(ctx context.Context, req BookingRequest) (*CreatedBooking, error)
}

// Client talks to the remote Booking API over HTTP.
type Client struct {
	baseURL string
	creds   CredentialProvider
	http    *http.Client
}

func NewClient(baseURL string, creds CredentialProvider) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    &http.Client{Timeout: 8 * time.Second},
	}
}

// AvailableRooms fetches rooms bookable for the given stay. Dates travel as
// YYYY-MM-DD strings.
func (c *Client) AvailableRooms(ctx context.Context, q RoomQuery) ([]AvailableRoom, error) {
	params := url.Values{}
	params.Set("check_in", q.CheckIn)
	params.Set("check_out", q.CheckOut)
	params.Set("no_of_people", strconv.Itoa(q.People))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/available-rooms?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, decodeAPIError(res)
	}

	var rooms []AvailableRoom
	if err := json.NewDecoder(res.Body).Decode(&rooms); err != nil {
		return nil, fmt.Errorf("decoding available rooms: %w", err)
	}
	return rooms, nil
}

// CreateBooking submits the assembled booking request.
func (c *Client) CreateBooking(ctx context.Context, booking BookingRequest) (*CreatedBooking, error) {
	body, err := json.Marshal(booking)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated && res.StatusCode != http.StatusOK {
		return nil, decodeAPIError(res)
	}

	var created CreatedBooking
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decoding created booking: %w", err)
	}
	return &created, nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	token, err := c.creds.Credential(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// decodeAPIError pulls the backend's {message} body when present so the
// console can show it verbatim.
func decodeAPIError(res *http.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
