// Package httpx writes JSON responses and maps faults to HTTP errors.
package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// NotFoundError reports a key that does not name any known category
// (an unknown state or crime type). A known key with no rows is not an error.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return "unknown " + e.Kind + ": " + e.Key
}

// NotFound builds a *NotFoundError.
func NotFound(kind, key string) error {
	return &NotFoundError{Kind: kind, Key: key}
}

// PathParam returns the decoded value of a chi URL parameter. chi matches
// against the raw path only when the request carried escapes that change
// the path (such as %2F), so the segment is unescaped in that case alone.
func PathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

// StatusCoder lets domain errors choose their own status code.
type StatusCoder interface {
	StatusCode() int
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[httpx] encode response: %v", err)
	}
}

// OK writes v with 200.
func OK(w http.ResponseWriter, v interface{}) {
	JSON(w, http.StatusOK, v)
}

// Detail writes {"detail": msg} with the given status.
func Detail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Detail: msg})
}

// Error maps err to a status and writes its message as the detail.
// Anything without a more specific mapping is a 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[httpx] %s %s: %v", r.Method, r.URL.Path, err)
	}
	Detail(w, status, err.Error())
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return http.StatusNotFound
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
