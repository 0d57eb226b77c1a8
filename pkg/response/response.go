// Package response writes handler results to the wire. A handler produces a
// status, a payload and a content type; Write maps the content type to the
// right header and serialisation.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Content types a handler may answer with.
const (
	JSON    = "json"
	HTML    = "html"
	Plain   = "plain"
	CSS     = "css"
	JS      = "js"
	PNG     = "png"
	JPG     = "jpg"
	Favicon = "favicon"
)

var mimeTypes = map[string]string{
	JSON:    "application/json",
	HTML:    "text/html; charset=utf-8",
	Plain:   "text/plain; charset=utf-8",
	CSS:     "text/css; charset=utf-8",
	JS:      "application/javascript",
	PNG:     "image/png",
	JPG:     "image/jpeg",
	Favicon: "image/x-icon",
}

// ErrorBody is the JSON shape of every API error.
type ErrorBody struct {
	Error  string            `json:"Error"`
	Fields map[string]string `json:"Fields,omitempty"`
}

// MimeType returns the header value for contentType, falling back to JSON.
func MimeType(contentType string) string {
	if m, ok := mimeTypes[contentType]; ok {
		return m
	}
	return mimeTypes[JSON]
}

// Write serialises payload according to contentType. A zero status becomes
// 200 and an unknown content type is treated as JSON. For JSON a nil payload
// is written as {}; other types expect a string or []byte payload.
func Write(w http.ResponseWriter, status int, payload any, contentType string) {
	if status == 0 {
		status = http.StatusOK
	}
	if _, ok := mimeTypes[contentType]; !ok {
		contentType = JSON
	}
	w.Header().Set("Content-Type", mimeTypes[contentType])

	if contentType == JSON {
		body, err := encodeJSON(payload)
		if err != nil {
			status = http.StatusInternalServerError
			body = []byte(`{"Error":"Could not encode the response"}`)
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
		return
	}

	w.WriteHeader(status)
	switch p := payload.(type) {
	case nil:
	case []byte:
		_, _ = w.Write(p)
	case string:
		_, _ = w.Write([]byte(p))
	default:
		_, _ = fmt.Fprint(w, p)
	}
}

// Error writes {"Error": message} with status.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, ErrorBody{Error: message}, JSON)
}

// ValidationError writes a 400 carrying the per-field messages.
func ValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	Write(w, http.StatusBadRequest, ErrorBody{Error: message, Fields: fields}, JSON)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not Found")
}

// MethodNotAllowed sends a 405.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func encodeJSON(payload any) ([]byte, error) {
	if payload == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(payload)
}
