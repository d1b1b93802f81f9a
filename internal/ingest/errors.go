package ingest

import "fmt"

// FetchError reports an upstream request that failed or returned an
// unusable payload. Jobs do not retry; the run aborts.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetch wraps err as a *FetchError for source.
func Fetch(source string, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Source: source, Err: err}
}
