package testkit

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockTransport implements http.RoundTripper. It answers outgoing requests
// from a list of canned responses and records what was sent.
//
//	mt := testkit.NewMockTransport().
//	    On(http.MethodPost, "https://api.stripe.com/v1/charges", 200, `{"id":"ch_1"}`)
//	pkghttp.DefaultClient.Transport = mt
//	defer pkghttp.ResetTransport()
type MockTransport struct {
	mu      sync.Mutex
	entries []*mockEntry
	calls   []RecordedCall
	require bool
}

// RecordedCall is one request seen by the transport.
type RecordedCall struct {
	Method string
	URL    string
	Header http.Header
	Body   string
}

type mockEntry struct {
	httpMethod string // "" matches any
	prefix     string
	status     int
	body       []byte
	label      string
	calls      int
}

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// newScenarioTransport builds a transport from the "httprequest" steps of s.
func newScenarioTransport(s *Scenario, vars map[string]string) *MockTransport {
	mt := &MockTransport{require: s.IsMockRequired}
	for _, step := range s.NetUtilMockStep {
		if step.Method != "httprequest" || !step.IsMock {
			continue
		}
		mt.entries = append(mt.entries, &mockEntry{
			prefix: expand(step.MatchURL, vars),
			status: step.ReturnData.StatusCode,
			body:   []byte(expand(string(step.ReturnData.Body), vars)),
			label:  step.Method,
		})
	}
	return mt
}

// On registers a canned response. Entries are tried in registration order;
// an entry answers every request it matches.
func (mt *MockTransport) On(method, urlPrefix string, status int, body string) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.entries = append(mt.entries, &mockEntry{
		httpMethod: method,
		prefix:     urlPrefix,
		status:     status,
		body:       []byte(body),
		label:      method,
	})
	return mt
}

// Strict makes unmatched requests fail with a transport error.
func (mt *MockTransport) Strict() *MockTransport {
	mt.require = true
	return mt
}

func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.calls = append(mt.calls, RecordedCall{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   string(body),
	})

	for _, e := range mt.entries {
		if e.httpMethod != "" && e.httpMethod != req.Method {
			continue
		}
		if e.prefix != "" && !strings.HasPrefix(req.URL.String(), e.prefix) {
			continue
		}
		e.calls++
		return buildHTTPResponse(req, e.status, e.body), nil
	}

	if mt.require {
		return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call to %s", req.URL)
	}
	return buildHTTPResponse(req, http.StatusNotFound, []byte(`{"error":"no mock configured"}`)), nil
}

// Calls returns every request seen so far.
func (mt *MockTransport) Calls() []RecordedCall {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return append([]RecordedCall(nil), mt.calls...)
}

// AssertAllCalled reports every registered entry that was never matched.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for _, e := range mt.entries {
		if e.calls == 0 {
			errs = append(errs, fmt.Errorf("testkit: mock %q (matchUrl=%q) was never called", e.label, e.prefix))
		}
	}
	return errs
}

func buildHTTPResponse(req *http.Request, code int, body []byte) *http.Response {
	if code == 0 {
		code = http.StatusOK
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}
}
