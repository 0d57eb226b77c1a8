package testkit

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks the response code.
func AssertStatusCode(t *testing.T, s *Scenario, got int, body string) {
	t.Helper()
	assert.Equal(t, s.ExpectedCode, got, "[%s] HTTP status code mismatch\nbody: %s", s.Name, body)
}

// AssertJSONFile compares the response with the JSON in path, ignoring key
// order and whitespace.
func AssertJSONFile(t *testing.T, s *Scenario, path string, actual []byte) {
	t.Helper()

	expected, err := os.ReadFile(path)
	require.NoError(t, err, "[%s] read response file", s.Name)

	var expVal, actVal any
	require.NoError(t, json.Unmarshal(expected, &expVal), "[%s] expected response file is not valid JSON", s.Name)
	if !assert.NoError(t, json.Unmarshal(actual, &actVal), "[%s] actual response is not valid JSON\nbody: %s", s.Name, actual) {
		return
	}
	assert.Equal(t, expVal, actVal, "[%s] response body mismatch", s.Name)
}

// AssertContains checks every responseContains substring.
func AssertContains(t *testing.T, s *Scenario, body string) {
	t.Helper()
	for _, want := range s.ResponseContains {
		assert.Contains(t, body, want, "[%s]", s.Name)
	}
}

// AssertMatch checks every responseMatch path. String expectations go
// through {{var}} expansion; "*" only requires a non-empty value.
func AssertMatch(t *testing.T, s *Scenario, decoded any, vars map[string]string) {
	t.Helper()
	for path, want := range s.ResponseMatch {
		got, ok := lookup(decoded, path)
		if !assert.True(t, ok, "[%s] path %q missing from response", s.Name, path) {
			continue
		}
		if ws, isString := want.(string); isString {
			if ws == "*" {
				assert.NotEmpty(t, got, "[%s] path %q is empty", s.Name, path)
				continue
			}
			want = expand(ws, vars)
		}
		assert.Equal(t, want, got, "[%s] path %q mismatch", s.Name, path)
	}
}

// AssertMocksAllCalled fails the test if any mock step was never triggered.
func AssertMocksAllCalled(t *testing.T, s *Scenario, mt *MockTransport) {
	t.Helper()
	for _, err := range mt.AssertAllCalled() {
		assert.NoError(t, err, "[%s]", s.Name)
	}
}
