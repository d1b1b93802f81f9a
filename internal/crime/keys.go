package crime

import (
	"strings"

	"github.com/EmpoweredVote/civic-data-backend/internal/httpx"
	"github.com/EmpoweredVote/civic-data-backend/internal/states"
)

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// resolveState maps a request key to the stored full state name.
func resolveState(key string) (string, error) {
	name, ok := states.FullName(key)
	if !ok {
		return "", httpx.NotFound("state", key)
	}
	return name, nil
}

// resolveType maps a request key to the catalogued offense name.
func resolveType(key string) (string, error) {
	t, ok := LookupType(key)
	if !ok {
		return "", httpx.NotFound("crime type", key)
	}
	return t.Name, nil
}
