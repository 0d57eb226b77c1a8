// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 1 MB).
func maxBodyBytes() int64 {
	n := int64(config.Int("MAX_BODY_BYTES", 1<<20))
	if n <= 0 {
		return 1 << 20
	}
	return n
}

// JSON decodes r.Body as JSON into dest, trims every string field and runs
// validation.
//
// A body that is empty or not valid JSON leaves dest untouched, so it is
// reported through the validation errors rather than as a decode failure.
// err is only non-nil when the body exceeds MAX_BODY_BYTES or cannot be read.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	if r.Body != nil {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())
		raw, readErr := io.ReadAll(r.Body)
		if readErr != nil {
			var maxErr *http.MaxBytesError
			if errors.As(readErr, &maxErr) {
				return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
			}
			return nil, fmt.Errorf("read body: %w", readErr)
		}
		Decode(raw, dest)
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// Decode unmarshals raw into dest when raw is a JSON object and trims string
// fields. Anything else leaves dest at its zero value.
func Decode(raw []byte, dest interface{}) {
	if len(raw) == 0 || !json.Valid(raw) {
		return
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		resetZero(dest)
		return
	}
	TrimStrings(dest)
}

// TrimStrings trims surrounding whitespace from every string field of the
// struct v points to, descending into nested structs and slices of structs.
func TrimStrings(v interface{}) {
	trimValue(reflect.ValueOf(v))
}

func trimValue(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if !rv.IsNil() {
			trimValue(rv.Elem())
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if rv.Type().Field(i).IsExported() {
				trimValue(rv.Field(i))
			}
		}
	case reflect.Slice:
		for i := 0; i < rv.Len(); i++ {
			trimValue(rv.Index(i))
		}
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(strings.TrimSpace(rv.String()))
		}
	}
}

func resetZero(dest interface{}) {
	rv := reflect.ValueOf(dest)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
	}
}
