// Package testkit provides test doubles for crmctl's outgoing HTTP layer.
//
// MockTransport implements http.RoundTripper and answers requests from a
// list of stubs instead of the network. Install it on the shared client:
//
//	mt := testkit.NewMockTransport(
//	    testkit.Stub{Method: "GET", URLPrefix: "http://crm.test/api/tasks",
//	        Status: 200, Body: `[{"id":1,"title":"call"}]`},
//	)
//	httpx.DefaultClient.Transport = mt
//	defer httpx.ResetTransport()
package testkit

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Stub describes one canned response.
type Stub struct {
	Method    string // empty matches any method
	URLPrefix string // empty matches any URL
	Status    int    // defaults to 200
	Body      string
	Err       error // when set, the round trip fails with this error
}

// MockTransport matches outgoing requests against stubs in order.
type MockTransport struct {
	mu    sync.Mutex
	stubs []stubEntry
}

type stubEntry struct {
	stub  Stub
	calls int
}

// NewMockTransport builds a MockTransport from the given stubs.
func NewMockTransport(stubs ...Stub) *MockTransport {
	mt := &MockTransport{}
	for _, s := range stubs {
		mt.stubs = append(mt.stubs, stubEntry{stub: s})
	}
	return mt
}

// RoundTrip answers the request from the first matching stub.
// Requests with no matching stub fail, so tests never hit the network.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for i := range mt.stubs {
		e := &mt.stubs[i]
		if e.stub.Method != "" && e.stub.Method != req.Method {
			continue
		}
		if e.stub.URLPrefix != "" && !strings.HasPrefix(req.URL.String(), e.stub.URLPrefix) {
			continue
		}

		e.calls++
		if e.stub.Err != nil {
			return nil, e.stub.Err
		}

		code := e.stub.Status
		if code == 0 {
			code = http.StatusOK
		}
		header := make(http.Header)
		header.Set("Content-Type", "application/json")
		return &http.Response{
			StatusCode: code,
			Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
			Header:     header,
			Body:       io.NopCloser(strings.NewReader(e.stub.Body)),
			Request:    req,
		}, nil
	}

	return nil, fmt.Errorf("testkit: unexpected %s %s — no matching stub", req.Method, req.URL)
}

// Calls returns how many requests matched the stub at index i.
func (mt *MockTransport) Calls(i int) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if i < 0 || i >= len(mt.stubs) {
		return 0
	}
	return mt.stubs[i].calls
}

// UncalledStubs returns descriptions of stubs that were never matched.
func (mt *MockTransport) UncalledStubs() []string {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var out []string
	for _, e := range mt.stubs {
		if e.calls == 0 {
			out = append(out, fmt.Sprintf("%s %s", e.stub.Method, e.stub.URLPrefix))
		}
	}
	return out
}
