package release

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoscroll/pkg/errors"
	"autoscroll/pkg/logger"
	"autoscroll/pkg/retry"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL+"/repos/{package}/releases/latest", 2*time.Second, logger.NewTestLogger())
	client.SetRetry(&retry.Config{
		MaxAttempts: 3,
		Backoff:     &retry.ConstantBackoff{Delay: time.Millisecond},
	})
	return client
}

func TestClientLatestTagName(t *testing.T) {
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`{"tag_name": "v1.4.2", "name": "Release 1.4.2"}`))
	})

	version, err := client.Latest(context.Background(), "acme/autoscroll")
	require.NoError(t, err)
	assert.Equal(t, "v1.4.2", version)
	assert.Equal(t, "/repos/acme/autoscroll/releases/latest", path)
}

func TestClientLatestVersionField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version": "2.0.0"}`))
	})

	version, err := client.Latest(context.Background(), "autoscroll")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", version)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"tag_name": "v1.0.1"}`))
	})

	version, err := client.Latest(context.Background(), "autoscroll")
	require.NoError(t, err)
	assert.Equal(t, "v1.0.1", version)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClientDoesNotRetryNotFound(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Latest(context.Background(), "autoscroll")
	require.Error(t, err)

	var typed *errors.Error
	require.True(t, stderrors.As(err, &typed))
	assert.Equal(t, errors.ErrorTypeNotFound, typed.Type)
	assert.Equal(t, http.StatusNotFound, typed.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClientParsingErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"tag_name":`},
		{"no version", `{"name": "nightly"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := client.Latest(context.Background(), "autoscroll")
			var typed *errors.Error
			require.True(t, stderrors.As(err, &typed))
			assert.Equal(t, errors.ErrorTypeParsing, typed.Type)
		})
	}
}

func TestClientURL(t *testing.T) {
	tests := []struct {
		name    string
		feedURL string
		pkg     string
		want    string
	}{
		{"single segment", "https://example.com/{package}/latest.json", "autoscroll", "https://example.com/autoscroll/latest.json"},
		{"owner and repo", "https://api.github.com/repos/{package}/releases/latest", "autoscroll/autoscroll", "https://api.github.com/repos/autoscroll/autoscroll/releases/latest"},
		{"escaped segment", "https://example.com/{package}", "my org/tool?", "https://example.com/my%20org/tool%3F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.feedURL, time.Second, logger.NewTestLogger())
			assert.Equal(t, tt.want, client.URL(tt.pkg))
		})
	}
}
