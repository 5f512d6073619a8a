package httpserver

import "go-image-cache/internal/models"

// ResolveRequest is the JSON body of a resolve call
type ResolveRequest struct {
	Era        string   `json:"era"`
	Topic      string   `json:"topic"`
	Keywords   []string `json:"keywords,omitempty"`
	Size       string   `json:"size,omitempty"`
	Quality    string   `json:"quality,omitempty"`
	StyleHints string   `json:"style_hints,omitempty"`
	Style      string   `json:"style,omitempty"`
}

// ResolveResponse represents a resolve call response
type ResolveResponse struct {
	Success       bool               `json:"success"`
	PrimaryURL    string             `json:"primary_url,omitempty"`
	AlternateURLs []string           `json:"alternate_urls,omitempty"`
	Provider      models.Provider    `json:"provider,omitempty"`
	CacheKey      string             `json:"cache_key,omitempty"`
	CacheStatus   models.CacheStatus `json:"cache_status,omitempty"` // HIT, MISS or PLACEHOLDER
	CacheLevel    models.CacheLevel  `json:"cache_level,omitempty"`  // L1, L2, DURABLE or MISS
	Placeholder   bool               `json:"placeholder,omitempty"`
	Error         string             `json:"error,omitempty"`
	Field         string             `json:"field,omitempty"`
	RetryAfter    int                `json:"retry_after,omitempty"`
}

func (r ResolveRequest) toModel() models.ImageRequest {
	return models.ImageRequest{
		Era:        r.Era,
		Topic:      r.Topic,
		Keywords:   r.Keywords,
		Size:       r.Size,
		Quality:    r.Quality,
		StyleHints: r.StyleHints,
		Style:      models.Style(r.Style),
	}
}
