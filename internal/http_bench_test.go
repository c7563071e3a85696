package internal

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jamesprial/go-reddit-oauth/pkg/types"
)

func listingBody(children int) []byte {
	child := `{"kind":"t3","data":{"subreddit":"golang","title":"t","selftext":"","score":1}}`
	var buf bytes.Buffer
	buf.WriteString(`{"kind":"Listing","data":{"after":"t3_x","before":null,"children":[`)
	for i := 0; i < children; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(child)
	}
	buf.WriteString(`]}}`)
	return buf.Bytes()
}

func benchmarkDoRaw(b *testing.B, logger *slog.Logger, body []byte) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}))
	defer server.Close()

	client, _ := NewClient(server.Client(), server.URL, "bench/1.0", logger)
	params := []types.QueryParam{{Key: "limit", Value: "25"}, {Key: "t", Value: "day"}}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req, _ := client.NewRequest(ctx, http.MethodGet, "r/golang/top", params, "test-token")
		client.DoRaw(req)
	}
}

func BenchmarkClient_DoRaw_WithoutLogging(b *testing.B) {
	benchmarkDoRaw(b, nil, listingBody(1))
}

func BenchmarkClient_DoRaw_WithLoggingDebug(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	benchmarkDoRaw(b, logger, listingBody(100))
}

func BenchmarkEncodeQuery(b *testing.B) {
	params := []types.QueryParam{
		{Key: "after", Value: "t3_abc"},
		{Key: "limit", Value: "100"},
		{Key: "t", Value: "all"},
	}
	for i := 0; i < b.N; i++ {
		EncodeQuery(params)
	}
}
