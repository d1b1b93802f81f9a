package interests

import (
	"context"
	"strings"
)

// Service hashes caller identifiers before they reach the store.
type Service struct {
	store  Store
	hasher *Hasher
}

func NewService(store Store, hasher *Hasher) *Service {
	return &Service{store: store, hasher: hasher}
}

// Save replaces the caller's interests with the normalized set.
func (s *Service) Save(ctx context.Context, userID string, interests []string) error {
	return s.store.Put(ctx, s.hasher.HashUserID(userID), Normalize(interests))
}

// Fetch returns the caller's interests. found is false when nothing has been
// saved for them.
func (s *Service) Fetch(ctx context.Context, userID string) ([]string, bool, error) {
	return s.store.Get(ctx, s.hasher.HashUserID(userID))
}

// Normalize drops blank entries and exact duplicates, keeping the first
// occurrence's position. Entries are otherwise stored verbatim so a fetch
// returns the saved strings unchanged. The result is never nil.
func Normalize(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
