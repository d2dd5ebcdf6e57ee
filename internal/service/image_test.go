package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestImageService(apiURL string) *ImageService {
	return &ImageService{
		apiKey:   "test-key",
		engineID: "test-engine",
		apiURL:   apiURL,
		client:   &http.Client{Timeout: time.Second},
		logger:   zap.NewNop(),
	}
}

func TestLookupImageReturnsFirstHit(t *testing.T) {
	var gotQuery, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotType = r.URL.Query().Get("searchType")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"link":"https://img.example/first.jpg"},{"link":"https://img.example/second.jpg"}]}`))
	}))
	defer srv.Close()

	svc := newTestImageService(srv.URL)
	url, err := svc.LookupImage(context.Background(), "lasagna")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/first.jpg", url)
	assert.Equal(t, "lasagna", gotQuery)
	assert.Equal(t, "image", gotType)
}

func TestLookupImageNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	_, err := newTestImageService(srv.URL).LookupImage(context.Background(), "lasagna")
	assert.Error(t, err)
}

func TestLookupImageNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestImageService(srv.URL).LookupImage(context.Background(), "lasagna")
	assert.Error(t, err)
}

func TestLookupImageUnconfigured(t *testing.T) {
	svc := &ImageService{client: http.DefaultClient, logger: zap.NewNop()}
	assert.False(t, svc.Configured())
	_, err := svc.LookupImage(context.Background(), "lasagna")
	assert.Error(t, err)
}
