// Package testkit drives REST API tests from JSON scenario files.
//
// A scenario describes one request, the expected status and body, and the
// outgoing provider calls (payment, mail) to intercept. A flow chains
// scenarios and threads values between them, so a signup, login and checkout
// can be written as data:
//
//	testdata/
//	  checkout_flow.json       ← {"name": ..., "steps": [ scenario, ... ]}
//	  menu_requires_token.json ← single scenario
//
// Values captured from one step's response are substituted into later steps
// wherever {{name}} appears in the URL, headers or body:
//
//	{"name": "login", "requestMethod": "POST", "requestUrl": "/api/tokens",
//	 "requestBody": {"email": "ada@example.com", "password": "pw"},
//	 "expectedCode": 200, "capture": {"token": "id"}}
//	{"name": "menu", "requestUrl": "/api/menu", "headers": {"token": "{{token}}"},
//	 "expectedCode": 200}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Scenario describes a single REST API test case.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestBody     json.RawMessage   `json:"requestBody"`
	RequestFileName string            `json:"requestFileName"` // relative to the scenario file
	Headers         map[string]string `json:"headers"`

	ExpectedCode     int            `json:"expectedCode"`
	ResponseFileName string         `json:"responseFileName"` // exact JSON body, key order ignored
	ResponseMatch    map[string]any `json:"responseMatch"`    // path → value; "*" means present and non-empty
	ResponseContains []string       `json:"responseContains"` // raw substrings

	// Capture maps a variable name to a response path such as "id" or "items.0.id".
	Capture map[string]string `json:"capture"`

	IsMockRequired  bool       `json:"isMockRequired"` // fail on outgoing calls no step matches
	NetUtilMockStep []MockStep `json:"netUtilMockStep"`

	dir string
}

// MockStep describes one intercepted outgoing HTTP call.
type MockStep struct {
	// Method is "httprequest" for steps served by the MockTransport.
	Method string `json:"method"`

	// IsMock false documents a real dependency without intercepting it.
	IsMock bool `json:"isMock"`

	// MatchURL is a URL prefix; empty matches any outgoing request.
	MatchURL string `json:"matchUrl"`

	ReturnData MockReturnData `json:"returnData"`
}

// MockReturnData is the synthetic response for a mock step.
type MockReturnData struct {
	StatusCode int             `json:"statusCode"` // defaults to 200
	Body       json.RawMessage `json:"body"`
}

// Flow is an ordered list of scenarios sharing captured variables.
type Flow struct {
	Name  string      `json:"name"`
	Steps []*Scenario `json:"steps"`
}

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	s.dir = filepath.Dir(abs)
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}
	return &s, nil
}

// LoadFlow reads a flow file.
func LoadFlow(path string) (*Flow, error) {
	abs, data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var f Flow
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("testkit: parse flow %q: %w", abs, err)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("testkit: flow %q: name is required", abs)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("testkit: flow %q has no steps", abs)
	}
	for i, s := range f.Steps {
		s.dir = filepath.Dir(abs)
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: flow %q step %d: %w", abs, i, err)
		}
	}
	return &f, nil
}

func readFile(path string) (string, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}
	return abs, data, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	for i, step := range s.NetUtilMockStep {
		if step.Method == "" {
			return fmt.Errorf("netUtilMockStep[%d].method is required", i)
		}
	}
	return nil
}

// requestBody returns the inline body, or the contents of RequestFileName.
func (s *Scenario) requestBody() ([]byte, error) {
	if len(s.RequestBody) > 0 {
		return s.RequestBody, nil
	}
	if s.RequestFileName == "" {
		return nil, nil
	}
	return os.ReadFile(s.resolve(s.RequestFileName))
}

func (s *Scenario) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// expand replaces every {{name}} in in with vars[name].
func expand(in string, vars map[string]string) string {
	if !strings.Contains(in, "{{") {
		return in
	}
	for k, v := range vars {
		in = strings.ReplaceAll(in, "{{"+k+"}}", v)
	}
	return in
}

// lookup walks a decoded JSON value along a dot-separated path.
func lookup(v any, path string) (any, bool) {
	if path == "" {
		return v, true
	}
	for _, part := range strings.Split(path, ".") {
		switch node := v.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, false
			}
			v = next
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			v = node[i]
		default:
			return nil, false
		}
	}
	return v, true
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}
