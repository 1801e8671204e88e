package sessionize

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const allView = `{
  "sessions": [
    {"id": "101", "title": "Opening", "startsAt": "2025-03-01T09:00:00Z", "endsAt": "2025-03-01T09:45:00Z",
     "speakers": ["sp-1"], "roomId": 7, "isServiceSession": false}
  ],
  "speakers": [{"id": "sp-1", "fullName": "Ada Lovelace"}],
  "rooms": [{"id": 7, "name": "Main Hall", "sort": 1}]
}`

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(allView))
	}))
	defer srv.Close()

	data, err := NewHTTPFetcher(srv.Client(), srv.URL+"/").Fetch(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "/abc123/view/All", gotPath)
	require.Len(t, data.Sessions, 1)
	assert.Equal(t, "101", data.Sessions[0].ID)
	assert.Equal(t, 7, data.Sessions[0].RoomID)
	assert.Equal(t, []string{"sp-1"}, data.Sessions[0].Speakers)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), data.Sessions[0].StartsAt)
	require.Len(t, data.Rooms, 1)
	assert.Equal(t, "Main Hall", data.Rooms[0].Name)
}

func TestHTTPFetcher_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }},
		{"bad json", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"sessions":`)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPFetcher(srv.Client(), srv.URL).Fetch(context.Background(), "x")
			require.Error(t, err)
		})
	}
}
