package internal

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	pkgerrs "github.com/jamesprial/go-reddit-oauth/pkg/errors"
)

// ParseBody checks that body is syntactically valid JSON and returns its parsed form.
func ParseBody(operation string, body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		preview := body
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return gjson.Result{}, &pkgerrs.ParseError{
			Operation: operation,
			Message:   fmt.Sprintf("response body is not valid JSON: %q", preview),
		}
	}
	return gjson.ParseBytes(body), nil
}

// LenientString returns the string at path, or an empty string when the value
// is absent, null, or not a string.
func LenientString(doc gjson.Result, path string) string {
	v := doc.Get(path)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// StrictString returns the string at path and fails when the value is absent
// or not a string.
func StrictString(doc gjson.Result, path string) (string, error) {
	v := doc.Get(path)
	if v.Type != gjson.String {
		return "", &pkgerrs.InternalError{Field: path, Message: "failed to parse to string"}
	}
	return v.Str, nil
}

// StrictUint64 returns the unsigned integer at path. The raw number literal is
// parsed directly, so negative, fractional, exponent and out-of-range values fail.
func StrictUint64(doc gjson.Result, path string) (uint64, error) {
	v := doc.Get(path)
	if v.Type != gjson.Number {
		return 0, &pkgerrs.InternalError{Field: path, Message: "failed to parse to u64"}
	}
	n, err := strconv.ParseUint(v.Raw, 10, 64)
	if err != nil {
		return 0, &pkgerrs.InternalError{Field: path, Message: "failed to parse to u64", Err: err}
	}
	return n, nil
}

// StrictArray returns the elements of the array at path and fails when the
// value is absent or not an array.
func StrictArray(doc gjson.Result, path string) ([]gjson.Result, error) {
	v := doc.Get(path)
	if !v.IsArray() {
		return nil, &pkgerrs.InternalError{Field: path, Message: "can't convert to array"}
	}
	return v.Array(), nil
}
