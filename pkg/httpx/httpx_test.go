package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmctl/pkg/httpx"
	"crmctl/pkg/testkit"
)

func TestGetDecodesJSON(t *testing.T) {
	mt := testkit.NewMockTransport(testkit.Stub{
		Method: "GET", URLPrefix: "http://crm.test/api/ping",
		Body: `{"ok":true}`,
	})
	httpx.DefaultClient.Transport = mt
	defer httpx.ResetTransport()

	resp, err := httpx.Get("http://crm.test/api/ping").Send()
	require.NoError(t, err)
	assert.True(t, resp.OK())

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, resp.JSON(&out))
	assert.True(t, out.OK)
	assert.Equal(t, 1, mt.Calls(0))
}

func TestBearerHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer srv.Close()
	defer httpx.ResetTransport()

	_, err := httpx.Get(srv.URL).Bearer("tok-123").Send()
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", got)

	// An empty token must not produce an Authorization header at all.
	_, err = httpx.Get(srv.URL).Bearer("").Send()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRequestIDHeader(t *testing.T) {
	var first, second string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if first == "" {
			first = r.Header.Get("X-Request-ID")
			return
		}
		second = r.Header.Get("X-Request-ID")
	}))
	defer srv.Close()
	defer httpx.ResetTransport()

	_, err := httpx.Get(srv.URL).Send()
	require.NoError(t, err)
	_, err = httpx.Get(srv.URL).Send()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

func TestJSONBody(t *testing.T) {
	var ct, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct = r.Header.Get("Content-Type")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		body = string(buf)
	}))
	defer srv.Close()
	defer httpx.ResetTransport()

	_, err := httpx.Post(srv.URL).
		Body(map[string]string{"email": "a@b.com"}).
		Send()
	require.NoError(t, err)
	assert.Equal(t, "application/json", ct)
	assert.JSONEq(t, `{"email":"a@b.com"}`, body)
}

func TestStringBodyIsSentRaw(t *testing.T) {
	var ct string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct = r.Header.Get("Content-Type")
	}))
	defer srv.Close()
	defer httpx.ResetTransport()

	_, err := httpx.Post(srv.URL).Body("plain payload").Send()
	require.NoError(t, err)
	assert.Equal(t, "text/plain", ct)
}

func TestTransportErrorSurfacesOnce(t *testing.T) {
	boom := errors.New("connection refused")
	mt := testkit.NewMockTransport(testkit.Stub{Err: boom})
	httpx.DefaultClient.Transport = mt
	defer httpx.ResetTransport()

	_, err := httpx.Get("http://crm.test/api/tasks").Send()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// No retries: exactly one round trip happened.
	assert.Equal(t, 1, mt.Calls(0))
}

func TestTimeoutBoundsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer httpx.ResetTransport()

	start := time.Now()
	_, err := httpx.Get(srv.URL).Timeout(50 * time.Millisecond).Send()
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWithContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()
	defer httpx.ResetTransport()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := httpx.Get(srv.URL).WithContext(ctx).Send()
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnstubbedRequestFails(t *testing.T) {
	mt := testkit.NewMockTransport()
	httpx.DefaultClient.Transport = mt
	defer httpx.ResetTransport()

	_, err := httpx.Get("http://crm.test/api/anything").Send()
	require.Error(t, err)
}
