package provider

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"go-image-cache/internal/apperrors"
	"go-image-cache/internal/config"
	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/models"
)

var _ interfaces.ImageProvider = (*GeminiGenerator)(nil)

// GeminiGenerator produces images with an Imagen model through the Gemini API
type GeminiGenerator struct {
	settings func() config.Runtime
	logger   *zap.Logger
}

func NewGeminiGenerator(settings func() config.Runtime, logger *zap.Logger) *GeminiGenerator {
	return &GeminiGenerator{settings: settings, logger: logger}
}

func (g *GeminiGenerator) Name() models.Provider { return models.ProviderGemini }

func (g *GeminiGenerator) Generate(ctx context.Context, job interfaces.ImageJob) (*models.GeneratedImage, error) {
	rt := g.settings()
	if rt.GeminiAPIKey == "" {
		return nil, g.fail(errors.New("GEMINI_API_KEY is not set"))
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  rt.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, g.fail(fmt.Errorf("create client: %w", err))
	}

	resp, err := client.Models.GenerateImages(ctx, rt.GeminiModel, job.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    AspectRatio(job.Request.Size),
	})
	if err != nil {
		return nil, g.fail(fmt.Errorf("generate images: %w", err))
	}

	for _, img := range resp.GeneratedImages {
		if img == nil || img.Image == nil || len(img.Image.ImageBytes) == 0 {
			continue
		}
		g.logger.Debug("Gemini image generated",
			zap.String("model", rt.GeminiModel),
			zap.Int("bytes", len(img.Image.ImageBytes)))
		return &models.GeneratedImage{Data: img.Image.ImageBytes, Provider: models.ProviderGemini}, nil
	}
	return nil, g.fail(errors.New("response contained no image data"))
}

func (g *GeminiGenerator) fail(err error) error {
	return &apperrors.ProviderError{Provider: string(models.ProviderGemini), Err: err}
}

// AspectRatio maps a request size to the closest Imagen aspect ratio
func AspectRatio(size string) string {
	switch size {
	case "1792x1024":
		return "16:9"
	case "1024x1792":
		return "9:16"
	default:
		return "1:1"
	}
}
