package models

import (
	"time"
)

// Style selects the prompt variant used for generation
type Style string

const (
	StyleRealistic Style = "realistic"
	StyleChibi     Style = "chibi"
)

// Provider identifies where a cached image came from
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderSearch Provider = "search"
)

// ImageRequest represents a request for one quiz illustration.
// Its semantic identity ignores keyword order and surrounding whitespace/case.
type ImageRequest struct {
	Era        string   `json:"era" validate:"required,max=64"`
	Topic      string   `json:"topic" validate:"required,max=200"`
	Keywords   []string `json:"keywords" validate:"max=20,dive,max=64"`
	Size       string   `json:"size,omitempty" validate:"omitempty,oneof=1024x1024 1792x1024 1024x1792"`
	Quality    string   `json:"quality,omitempty" validate:"omitempty,oneof=standard hd"`
	StyleHints string   `json:"style_hints,omitempty" validate:"max=300"`
	Style      Style    `json:"style,omitempty" validate:"omitempty,oneof=realistic chibi"`
}

// CacheRecord is created once per cache key on first successful resolution
// and never modified afterwards.
type CacheRecord struct {
	CacheKey      string    `json:"cache_key"`
	PrimaryURL    string    `json:"primary_url"`
	AlternateURLs []string  `json:"alternate_urls,omitempty"`
	Provider      Provider  `json:"provider"`
	CreatedAt     time.Time `json:"created_at"`
}

// Candidate is an externally retrieved image search result
type Candidate struct {
	Link    string `json:"link"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// GeneratedImage is the raw output of one resolution attempt
type GeneratedImage struct {
	Data          []byte
	Provider      Provider
	AlternateURLs []string
}

// StoredImage is a persisted image together with its detected content type
type StoredImage struct {
	Data        []byte
	ContentType string
	Path        string
	URL         string
}
