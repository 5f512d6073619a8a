package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"go-image-cache/internal/apperrors"
	"go-image-cache/internal/config"
	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/models"
)

var _ interfaces.ImageProvider = (*OpenAIGenerator)(nil)

// OpenAIGenerator produces images through the OpenAI images API. The client
// is built per call so that a rotated API key is picked up immediately.
type OpenAIGenerator struct {
	settings func() config.Runtime
	opts     []option.RequestOption
	logger   *zap.Logger
}

// NewOpenAIGenerator creates a generator. Extra request options are appended
// after the API key, which lets callers point at a compatible endpoint.
func NewOpenAIGenerator(settings func() config.Runtime, logger *zap.Logger, opts ...option.RequestOption) *OpenAIGenerator {
	return &OpenAIGenerator{settings: settings, opts: opts, logger: logger}
}

func (g *OpenAIGenerator) Name() models.Provider { return models.ProviderOpenAI }

func (g *OpenAIGenerator) Generate(ctx context.Context, job interfaces.ImageJob) (*models.GeneratedImage, error) {
	rt := g.settings()
	if rt.OpenAIAPIKey == "" {
		return nil, g.fail(errors.New("OPENAI_API_KEY is not set"))
	}

	opts := append([]option.RequestOption{option.WithAPIKey(rt.OpenAIAPIKey)}, g.opts...)
	client := openai.NewClient(opts...)

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         job.Prompt,
		Model:          openai.ImageModel(rt.OpenAIModel),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize(job.Request.Size),
		Quality:        openai.ImageGenerateParamsQuality(job.Request.Quality),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return nil, g.fail(fmt.Errorf("images.generate: %w", err))
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, g.fail(errors.New("response contained no image data"))
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, g.fail(fmt.Errorf("decode image: %w", err))
	}

	g.logger.Debug("OpenAI image generated",
		zap.String("model", rt.OpenAIModel),
		zap.Int("bytes", len(data)))
	return &models.GeneratedImage{Data: data, Provider: models.ProviderOpenAI}, nil
}

func (g *OpenAIGenerator) fail(err error) error {
	return &apperrors.ProviderError{Provider: string(models.ProviderOpenAI), Err: err}
}
