package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"go-image-cache/internal/apperrors"
	"go-image-cache/internal/config"
	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/models"
	"go-image-cache/internal/storage"
)

const searchResultCount = 10

var _ interfaces.ImageProvider = (*SearchProvider)(nil)

// SearchProvider finds an existing image through a custom search JSON API,
// keeps only relevant candidates and downloads the first one that succeeds.
// The remaining relevant links are returned as alternates.
type SearchProvider struct {
	client   *http.Client
	settings func() config.Runtime
	filter   interfaces.RelevanceFilter
	gateway  interfaces.StorageGateway
	logger   *zap.Logger
}

func NewSearchProvider(
	client *http.Client,
	settings func() config.Runtime,
	filter interfaces.RelevanceFilter,
	gateway interfaces.StorageGateway,
	logger *zap.Logger,
) *SearchProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &SearchProvider{
		client:   client,
		settings: settings,
		filter:   filter,
		gateway:  gateway,
		logger:   logger,
	}
}

type searchResponse struct {
	Items []models.Candidate `json:"items"`
}

func (p *SearchProvider) Name() models.Provider { return models.ProviderSearch }

func (p *SearchProvider) Generate(ctx context.Context, job interfaces.ImageJob) (*models.GeneratedImage, error) {
	candidates, err := p.search(ctx, SearchQuery(job.Request))
	if err != nil {
		return nil, err
	}

	relevant := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if p.filter.IsRelevant(c, job.Keywords) {
			relevant = append(relevant, c.Link)
		}
	}
	if len(relevant) == 0 {
		return nil, &apperrors.NotRelevantError{Rejected: len(candidates)}
	}

	var lastErr error
	for i, link := range relevant {
		data, err := p.gateway.Fetch(ctx, link)
		if err != nil {
			p.logger.Debug("Candidate download failed", zap.String("url", link), zap.Error(err))
			lastErr = err
			continue
		}
		if !storage.IsSupportedImage(data) {
			p.logger.Debug("Candidate is not a supported image", zap.String("url", link), zap.Int("bytes", len(data)))
			lastErr = &apperrors.FetchError{URL: link, Err: errors.New("response is not a webp, jpeg or png image")}
			continue
		}

		alternates := make([]string, 0, len(relevant)-1)
		alternates = append(alternates, relevant[:i]...)
		alternates = append(alternates, relevant[i+1:]...)
		return &models.GeneratedImage{
			Data:          data,
			Provider:      models.ProviderSearch,
			AlternateURLs: alternates,
		}, nil
	}

	return nil, p.fail(fmt.Errorf("all %d relevant candidates failed to download: %w", len(relevant), lastErr))
}

func (p *SearchProvider) search(ctx context.Context, query string) ([]models.Candidate, error) {
	rt := p.settings()
	if rt.SearchAPIKey == "" || rt.SearchEngineID == "" {
		return nil, p.fail(errors.New("SEARCH_API_KEY and SEARCH_ENGINE_ID must be set"))
	}

	params := url.Values{}
	params.Set("key", rt.SearchAPIKey)
	params.Set("cx", rt.SearchEngineID)
	params.Set("q", query)
	params.Set("searchType", "image")
	params.Set("safe", "active")
	params.Set("num", fmt.Sprint(searchResultCount))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rt.SearchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, p.fail(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, p.fail(fmt.Errorf("search request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, p.fail(fmt.Errorf("search returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, p.fail(fmt.Errorf("decode search response: %w", err))
	}
	return result.Items, nil
}

func (p *SearchProvider) fail(err error) error {
	return &apperrors.ProviderError{Provider: string(models.ProviderSearch), Err: err}
}

// SearchQuery builds the free-text query for req
func SearchQuery(req models.ImageRequest) string {
	parts := []string{strings.TrimSpace(req.Era), strings.TrimSpace(req.Topic)}
	for _, kw := range req.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			parts = append(parts, kw)
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
