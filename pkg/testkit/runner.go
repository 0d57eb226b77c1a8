package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	pkghttp "github.com/shashiranjanraj/pizzeria/pkg/http"
)

// Run executes a single scenario file against handler.
func Run(t *testing.T, handler http.Handler, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}
	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, handler, s, map[string]string{})
	})
}

// RunDir runs every *.json scenario in dir as a subtest. Files holding a
// flow (a "steps" array) are run with RunFlow.
func RunDir(t *testing.T, handler http.Handler, dir string) {
	t.Helper()

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}

	for _, path := range entries {
		if isFlow(path) {
			RunFlow(t, handler, path)
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			t.Errorf("testkit: load %q: %v", path, err)
			continue
		}
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, handler, s, map[string]string{})
		})
	}
}

// RunFlow runs the steps of a flow file in order. A failing step stops the
// flow, since later steps depend on its captures.
func RunFlow(t *testing.T, handler http.Handler, flowPath string) {
	t.Helper()

	f, err := LoadFlow(flowPath)
	if err != nil {
		t.Fatalf("testkit: load flow %q: %v", flowPath, err)
	}

	t.Run(f.Name, func(t *testing.T) {
		vars := map[string]string{}
		for _, s := range f.Steps {
			if !t.Run(s.Name, func(t *testing.T) { runScenario(t, handler, s, vars) }) {
				return
			}
		}
	})
}

func isFlow(path string) bool {
	_, data, err := readFile(path)
	if err != nil {
		return false
	}
	var probe struct {
		Steps json.RawMessage `json:"steps"`
	}
	return json.Unmarshal(data, &probe) == nil && len(probe.Steps) > 0
}

func runScenario(t *testing.T, handler http.Handler, s *Scenario, vars map[string]string) {
	t.Helper()

	raw, err := s.requestBody()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}
	var body io.Reader
	if len(raw) > 0 {
		body = bytes.NewReader([]byte(expand(string(raw), vars)))
	}

	mt := newScenarioTransport(s, vars)
	original := pkghttp.DefaultClient.Transport
	pkghttp.DefaultClient.Transport = mt
	defer func() { pkghttp.DefaultClient.Transport = original }()

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), expand(s.RequestURL, vars), body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, expand(v, vars))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code, rec.Body.String())
	if s.ResponseFileName != "" {
		AssertJSONFile(t, s, s.resolve(s.ResponseFileName), rec.Body.Bytes())
	}
	AssertContains(t, s, rec.Body.String())

	var decoded any
	if len(s.ResponseMatch) > 0 || len(s.Capture) > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("[%s] response is not JSON: %v\nbody: %s", s.Name, err, rec.Body.String())
		}
	}
	AssertMatch(t, s, decoded, vars)
	capture(t, s, decoded, vars)

	AssertMocksAllCalled(t, s, mt)
}

func capture(t *testing.T, s *Scenario, decoded any, vars map[string]string) {
	t.Helper()
	for name, path := range s.Capture {
		v, ok := lookup(decoded, path)
		if !ok {
			t.Fatalf("[%s] capture %q: path %q not in response", s.Name, name, path)
		}
		vars[name] = stringify(v)
	}
}
