package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-image-cache/internal/apperrors"
	"go-image-cache/internal/config"
)

const testUserAgent = "go-image-cache-test/1.0"

func settingsFor(baseURL string) func() config.Runtime {
	return func() config.Runtime {
		return config.Runtime{ProjectURL: baseURL, Bucket: "quiz-images", ServiceKey: "secret"}
	}
}

func TestSupabaseGateway_Put(t *testing.T) {
	var uploads int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uploads++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/quiz-images/generated/ab/abcdef.png", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "true", r.Header.Get("x-upsert"))
		assert.Equal(t, ContentTypePNG, r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, pngBytes, body)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Key":"quiz-images/generated/ab/abcdef.png"}`))
	}))
	defer srv.Close()

	gw := NewSupabaseGateway(srv.Client(), settingsFor(srv.URL), testUserAgent, 1<<20, zaptest.NewLogger(t))

	first, err := gw.Put(context.Background(), pngBytes, "generated/ab/abcdef.png", ContentTypePNG)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/public/quiz-images/generated/ab/abcdef.png", first)

	second, err := gw.Put(context.Background(), pngBytes, "generated/ab/abcdef.png", ContentTypePNG)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, uploads)
}

func TestSupabaseGateway_Put_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer srv.Close()

	gw := NewSupabaseGateway(srv.Client(), settingsFor(srv.URL), testUserAgent, 1<<20, zaptest.NewLogger(t))

	_, err := gw.Put(context.Background(), pngBytes, "generated/ab/abcdef.png", ContentTypePNG)
	require.Error(t, err)

	var storageErr *apperrors.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "generated/ab/abcdef.png", storageErr.Path)
	assert.Contains(t, err.Error(), "404")
	assert.True(t, apperrors.IsRetryable(err))
}

func TestSupabaseGateway_Put_NotConfigured(t *testing.T) {
	gw := NewSupabaseGateway(nil, settingsFor(""), testUserAgent, 1<<20, zaptest.NewLogger(t))

	_, err := gw.Put(context.Background(), pngBytes, "generated/ab/abcdef.png", ContentTypePNG)

	var storageErr *apperrors.StorageError
	assert.True(t, errors.As(err, &storageErr))
}

func TestSupabaseGateway_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/ok.jpg":
			_, _ = w.Write(jpegBytes)
		case "/big.png":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		case "/empty.png":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	gw := NewSupabaseGateway(srv.Client(), settingsFor(srv.URL), testUserAgent, 32, zaptest.NewLogger(t))
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		data, err := gw.Fetch(ctx, srv.URL+"/ok.jpg")
		require.NoError(t, err)
		assert.Equal(t, jpegBytes, data)
	})

	t.Run("non-2xx", func(t *testing.T) {
		_, err := gw.Fetch(ctx, srv.URL+"/missing.png")
		var fetchErr *apperrors.FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := gw.Fetch(ctx, srv.URL+"/big.png")
		var fetchErr *apperrors.FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Contains(t, err.Error(), "exceeds 32 bytes")
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := gw.Fetch(ctx, srv.URL+"/empty.png")
		var fetchErr *apperrors.FetchError
		assert.True(t, errors.As(err, &fetchErr))
	})
}
