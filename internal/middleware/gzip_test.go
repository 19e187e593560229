package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithGZIPGet(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		expectGzip     bool
	}{
		{"gzip accepted", "gzip, deflate", true},
		{"no encoding", "", false},
		{"other encoding", "br", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				_, _ = w.Write([]byte("<h1>Domain Name Generator</h1>"))
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			rec := httptest.NewRecorder()

			WithGZIPGet(handler).ServeHTTP(rec, req)
			resp := rec.Result()
			defer resp.Body.Close()

			assert.Equal(t, "Accept-Encoding", resp.Header.Get("Vary"))

			body := resp.Body
			if tt.expectGzip {
				require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
				gr, err := gzip.NewReader(resp.Body)
				require.NoError(t, err)
				defer gr.Close()
				body = gr
			} else {
				assert.Empty(t, resp.Header.Get("Content-Encoding"))
			}

			got, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.Equal(t, "<h1>Domain Name Generator</h1>", string(got))
		})
	}
}

func TestWithGZIPPost(t *testing.T) {
	t.Run("valid gzip request", func(t *testing.T) {
		var bodyBuf bytes.Buffer
		gzw := gzip.NewWriter(&bodyBuf)
		_, _ = gzw.Write([]byte(`{"keyword":"coffee"}`))
		gzw.Close()

		req := httptest.NewRequest(http.MethodPost, "/keywords", &bodyBuf)
		req.Header.Set("Content-Encoding", "gzip")
		rec := httptest.NewRecorder()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Equal(t, `{"keyword":"coffee"}`, string(b))
			assert.Empty(t, r.Header.Get("Content-Encoding"))
			w.WriteHeader(http.StatusOK)
		})

		WithGZIPPost(handler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("plain request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/keywords", strings.NewReader("keyword=tea"))
		rec := httptest.NewRecorder()

		called := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			b, _ := io.ReadAll(r.Body)
			assert.Equal(t, "keyword=tea", string(b))
		})

		WithGZIPPost(handler).ServeHTTP(rec, req)
		assert.True(t, called)
	})

	t.Run("invalid gzip request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip data"))
		req.Header.Set("Content-Encoding", "gzip")
		rec := httptest.NewRecorder()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be called on invalid gzip")
		})

		WithGZIPPost(handler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to decompress")
	})
}
