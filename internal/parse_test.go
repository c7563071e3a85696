package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	pkgerrs "github.com/jamesprial/go-reddit-oauth/pkg/errors"
)

func TestParseBody(t *testing.T) {
	doc, err := ParseBody("listing", []byte(`{"data":{"after":"t3_x"}}`))
	require.NoError(t, err)
	assert.Equal(t, "t3_x", doc.Get("data.after").Str)

	for _, body := range []string{``, `{"data":`, `<html>rate limited</html>`, `{"a":1}}`} {
		_, err := ParseBody("listing", []byte(body))
		var parseErr *pkgerrs.ParseError
		require.True(t, errors.As(err, &parseErr), "body %q: got %v", body, err)
		assert.Equal(t, "listing", parseErr.Operation)
	}
}

func TestLenientString(t *testing.T) {
	doc := gjson.Parse(`{"data":{"after":"t3_abc","before":null,"count":3,"nested":{"x":"y"}}}`)

	tests := []struct {
		path string
		want string
	}{
		{"data.after", "t3_abc"},
		{"data.before", ""},
		{"data.count", ""},
		{"data.nested", ""},
		{"data.missing", ""},
		{"nothing.here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, LenientString(doc, tt.path))
		})
	}
}

func TestStrictString(t *testing.T) {
	doc := gjson.Parse(`{"title":"hello","empty":"","num":1,"nil":null}`)

	got, err := StrictString(doc, "title")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	got, err = StrictString(doc, "empty")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	for _, path := range []string{"num", "nil", "missing"} {
		_, err := StrictString(doc, path)
		var internalErr *pkgerrs.InternalError
		require.True(t, errors.As(err, &internalErr), "path %q", path)
		assert.Equal(t, path, internalErr.Field)
	}
}

func TestStrictUint64(t *testing.T) {
	doc := gjson.Parse(`{"zero":0,"score":1234,"max":18446744073709551615,"over":18446744073709551616,` +
		`"neg":-5,"frac":1.5,"exp":1e3,"str":"12","nil":null}`)

	tests := []struct {
		path    string
		want    uint64
		wantErr bool
	}{
		{path: "zero", want: 0},
		{path: "score", want: 1234},
		{path: "max", want: 18446744073709551615},
		{path: "over", wantErr: true},
		{path: "neg", wantErr: true},
		{path: "frac", wantErr: true},
		{path: "exp", wantErr: true},
		{path: "str", wantErr: true},
		{path: "nil", wantErr: true},
		{path: "missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := StrictUint64(doc, tt.path)
			if tt.wantErr {
				var internalErr *pkgerrs.InternalError
				require.True(t, errors.As(err, &internalErr), "got %v", err)
				assert.Equal(t, tt.path, internalErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrictArray(t *testing.T) {
	doc := gjson.Parse(`{"data":{"children":[{"a":1},{"a":2}],"empty":[],"obj":{}}}`)

	items, err := StrictArray(doc, "data.children")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = StrictArray(doc, "data.empty")
	require.NoError(t, err)
	assert.Empty(t, items)

	for _, path := range []string{"data.obj", "data.missing"} {
		_, err := StrictArray(doc, path)
		assert.Error(t, err, "path %q", path)
	}
}
