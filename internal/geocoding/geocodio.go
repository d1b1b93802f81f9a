package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Geocodio API root.
const DefaultBaseURL = "https://api.geocod.io/v1.7"

// ErrNoResult means the provider could not place the address.
var ErrNoResult = errors.New("geocoding returned no results for address")

// ErrNoDistrict means the address was placed but carried no congressional
// district (e.g. territories or PO boxes).
var ErrNoDistrict = errors.New("geocoding result has no congressional district")

// APIError is a non-200 answer from Geocodio.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("geocoding API returned HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("geocoding API returned HTTP %d", e.StatusCode)
}

// IsUnresolvable reports whether err means the address itself could not be
// placed in a congressional district, as opposed to a provider fault.
func IsUnresolvable(err error) bool {
	if errors.Is(err, ErrNoResult) || errors.Is(err, ErrNoDistrict) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity
}

// Result holds structured data from a Geocodio response.
type Result struct {
	State     string  `json:"state"` // 2-letter state abbreviation
	District  int     `json:"district"`
	Zip       string  `json:"zip"`
	City      string  `json:"city"`
	County    string  `json:"county"`
	Formatted string  `json:"formatted"` // Full formatted address
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// Client wraps the Geocodio geocoding API with the congressional district
// field appended.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Geocodio client. baseURL may be empty to use the
// public endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
	Error   string          `json:"error"`
}

type geocodeResult struct {
	AddressComponents addressComponents `json:"address_components"`
	FormattedAddress  string            `json:"formatted_address"`
	Location          latLng            `json:"location"`
	Fields            fields            `json:"fields"`
}

type addressComponents struct {
	City   string `json:"city"`
	County string `json:"county"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type fields struct {
	CongressionalDistricts []congressionalDistrict `json:"congressional_districts"`
}

type congressionalDistrict struct {
	Name           string `json:"name"`
	DistrictNumber *int   `json:"district_number"`
	CongressNumber string `json:"congress_number"`
}

// Geocode converts a free-form address string into a state and
// congressional district.
func (c *Client) Geocode(ctx context.Context, address string) (*Result, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("fields", "cd")
	params.Set("api_key", c.apiKey)

	u := c.baseURL + "/geocode?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	var geoResp geocodeResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&geoResp)

	// Geocodio answers unparseable input with 422 and an error message.
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: geoResp.Error}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding response: %w", decodeErr)
	}

	if len(geoResp.Results) == 0 {
		return nil, ErrNoResult
	}

	return toResult(geoResp.Results[0])
}

func toResult(r geocodeResult) (*Result, error) {
	out := &Result{
		State:     strings.ToUpper(r.AddressComponents.State),
		Zip:       r.AddressComponents.Zip,
		City:      r.AddressComponents.City,
		County:    r.AddressComponents.County,
		Formatted: r.FormattedAddress,
		Lat:       r.Location.Lat,
		Lng:       r.Location.Lng,
	}
	if out.State == "" {
		return nil, ErrNoResult
	}

	cds := r.Fields.CongressionalDistricts
	if len(cds) == 0 || cds[0].DistrictNumber == nil {
		return nil, ErrNoDistrict
	}
	out.District = *cds[0].DistrictNumber
	return out, nil
}
