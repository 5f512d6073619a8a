package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"go-image-cache/internal/apperrors"
	"go-image-cache/internal/config"
	"go-image-cache/internal/interfaces"
)

const errorBodyLimit = 1024

// Ensure SupabaseGateway implements interfaces.StorageGateway
var _ interfaces.StorageGateway = (*SupabaseGateway)(nil)

// SupabaseGateway talks to a Supabase-compatible object storage REST API.
// Project URL, bucket and service key are read from settings on every call.
type SupabaseGateway struct {
	client    *http.Client
	settings  func() config.Runtime
	userAgent string
	maxBytes  int64
	logger    *zap.Logger
}

// NewSupabaseGateway creates a new storage gateway
func NewSupabaseGateway(
	client *http.Client,
	settings func() config.Runtime,
	userAgent string,
	maxBytes int64,
	logger *zap.Logger,
) *SupabaseGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &SupabaseGateway{
		client:    client,
		settings:  settings,
		userAgent: userAgent,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

// PublicURL returns the public address of path inside the configured bucket
func PublicURL(rt config.Runtime, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", rt.ProjectURL, rt.Bucket, strings.TrimLeft(path, "/"))
}

func objectURL(rt config.Runtime, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", rt.ProjectURL, rt.Bucket, strings.TrimLeft(path, "/"))
}

// Put uploads data to path with upsert semantics and returns its public URL
func (g *SupabaseGateway) Put(ctx context.Context, data []byte, path, contentType string) (string, error) {
	rt := g.settings()
	if rt.ProjectURL == "" || rt.ServiceKey == "" {
		return "", &apperrors.StorageError{Path: path, Err: errors.New("object storage is not configured")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, objectURL(rt, path), bytes.NewReader(data))
	if err != nil {
		return "", &apperrors.StorageError{Path: path, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+rt.ServiceKey)
	req.Header.Set("apikey", rt.ServiceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &apperrors.StorageError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return "", &apperrors.StorageError{
			Path: path,
			Err:  fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	publicURL := PublicURL(rt, path)
	g.logger.Debug("Stored image",
		zap.String("path", path),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(data)))
	return publicURL, nil
}

// Fetch downloads url, identifying itself with the configured User-Agent.
// Bodies larger than the configured maximum are rejected.
func (g *SupabaseGateway) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &apperrors.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &apperrors.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, g.maxBytes+1))
	if err != nil {
		return nil, &apperrors.FetchError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	if int64(len(data)) > g.maxBytes {
		return nil, &apperrors.FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("body exceeds %d bytes", g.maxBytes),
		}
	}
	if len(data) == 0 {
		return nil, &apperrors.FetchError{URL: url, StatusCode: resp.StatusCode, Err: errors.New("empty body")}
	}
	return data, nil
}
