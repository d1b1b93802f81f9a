package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_DecodesAndSendsQuery(t *testing.T) {
	var gotQuery url.Values
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotHeader = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]int{"count": 7})
	}))
	defer srv.Close()

	var out struct {
		Count int `json:"count"`
	}
	header := http.Header{}
	header.Set("X-Api-Key", "secret")
	err := NewClient(100).GetJSON(context.Background(), "test", srv.URL+"/x",
		url.Values{"api_key": {"k"}, "year": {"2023"}}, header, &out)
	require.NoError(t, err)

	assert.Equal(t, 7, out.Count)
	assert.Equal(t, "k", gotQuery.Get("api_key"))
	assert.Equal(t, "2023", gotQuery.Get("year"))
	assert.Equal(t, "secret", gotHeader)
}

func TestGetJSON_NonOKIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var out map[string]interface{}
	err := NewClient(100).GetJSON(context.Background(), "fbi", srv.URL, nil, nil, &out)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "fbi", fe.Source)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGetJSON_BadBodyIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	var out map[string]interface{}
	err := NewClient(100).GetJSON(context.Background(), "census", srv.URL, nil, nil, &out)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, err.Error(), "decode response")
}

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["q"]})
	}))
	defer srv.Close()

	var out map[string]string
	err := NewClient(100).PostJSON(context.Background(), "ahr", srv.URL, nil, map[string]string{"q": "hi"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "hi", out["echo"])
}

func TestClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out map[string]interface{}
	err := NewClient(1).GetJSON(ctx, "fred", "http://127.0.0.1:0", nil, nil, &out)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
}

func TestRedact(t *testing.T) {
	got := redact(url.Values{"api_key": {"abc"}, "state": {"IL"}})
	assert.Equal(t, "***", got["api_key"])
	assert.Equal(t, "IL", got["state"])
	assert.Nil(t, redact(nil))
}
