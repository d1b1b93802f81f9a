package legislators

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/EmpoweredVote/civic-data-backend/internal/geocoding"
)

// Seat sizes: two senators per state, one representative per district.
const (
	MaxSenators        = 2
	MaxRepresentatives = 1
)

// Geocoder places a free-text address in a state and congressional district.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*geocoding.Result, error)
}

// ResolutionError means the address could not be mapped to a seat.
type ResolutionError struct {
	Address string
	Err     error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve address %q: %v", e.Address, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// StatusCode reports 422: the request was understood but the address is
// not placeable.
func (e *ResolutionError) StatusCode() int { return http.StatusUnprocessableEntity }

// Resolver joins geocoding output with the legislator tables.
type Resolver struct {
	geocoder Geocoder
	store    Store
}

func NewResolver(geocoder Geocoder, store Store) *Resolver {
	return &Resolver{geocoder: geocoder, store: store}
}

// Resolve returns the senators for the address's state followed by the
// representative for its district. No match yields an empty slice.
func (r *Resolver) Resolve(ctx context.Context, address string) ([]Legislator, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, &ResolutionError{Address: address, Err: fmt.Errorf("address is empty")}
	}

	geo, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		if geocoding.IsUnresolvable(err) {
			return nil, &ResolutionError{Address: address, Err: err}
		}
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}
	if geo == nil {
		return nil, &ResolutionError{Address: address, Err: geocoding.ErrNoResult}
	}

	senators, reps, err := r.store.Seat(ctx, geo.State, geo.District)
	if err != nil {
		return nil, fmt.Errorf("load legislators for %s-%d: %w", geo.State, geo.District, err)
	}

	if len(senators) > MaxSenators {
		log.Printf("[legislators] WARNING: more than %d senators stored for %s, keeping the first %d",
			MaxSenators, geo.State, MaxSenators)
		senators = senators[:MaxSenators]
	}
	if len(reps) > MaxRepresentatives {
		log.Printf("[legislators] WARNING: more than %d representative stored for %s-%d, keeping the first",
			MaxRepresentatives, geo.State, geo.District)
		reps = reps[:MaxRepresentatives]
	}

	out := Merge(senators, reps)
	log.Printf("[legislators] %s-%d resolved to %d senators, %d representatives",
		geo.State, geo.District, len(senators), len(reps))
	return out, nil
}
