package anomaly

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 10.5, 5*time.Second)
}

func TestDetectParsesResponse(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/detect-anomaly", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Failed password for admin", req["log_text"])

		json.NewEncoder(w).Encode(map[string]any{
			"anomaly_score": 12.7,
			"is_anomaly":    true,
			"threshold":     11.0,
		})
	})

	res := client.Detect(context.Background(), "Failed password for admin")
	assert.False(t, res.Failed())
	assert.Equal(t, 12.7, res.Score)
	assert.True(t, res.IsAnomaly)
	assert.Equal(t, 11.0, res.Threshold)
}

func TestDetectDefaultsThresholdWhenOmitted(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"anomaly_score": 2.0,
			"is_anomaly":    false,
		})
	})

	res := client.Detect(context.Background(), "benign")
	assert.False(t, res.Failed())
	assert.Equal(t, 10.5, res.Threshold)
}

func TestDetectServerErrorIsInBand(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	res := client.Detect(context.Background(), "log")
	assert.True(t, res.Failed())
	assert.Contains(t, res.Err, "status 500")
	assert.Equal(t, 10.5, res.Threshold)
	assert.Zero(t, res.Score)
}

func TestDetectConnectionRefusedIsInBand(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 10.5, time.Second)

	res := client.Detect(context.Background(), "log")
	assert.True(t, res.Failed())
	assert.Contains(t, res.Err, "anomaly service request failed")
}

func TestHealth(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	})

	assert.True(t, client.Health(context.Background()))

	down := NewClient("http://127.0.0.1:1", 10.5, time.Second)
	assert.False(t, down.Health(context.Background()))
}
