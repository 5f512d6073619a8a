package interfaces

import (
	"context"

	"go-image-cache/internal/models"
)

//go:generate mockgen -package=mock -source=provider.go -destination=mock/provider.go

// ImageJob is one resolution attempt's input
type ImageJob struct {
	Prompt   string
	Request  models.ImageRequest
	Keywords []string
}

// ImageProvider produces image bytes for a job, either by generating them
// or by searching for and downloading a relevant existing image
type ImageProvider interface {
	Name() models.Provider
	Generate(ctx context.Context, job ImageJob) (*models.GeneratedImage, error)
}
