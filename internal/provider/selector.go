package provider

import (
	"context"
	"fmt"

	"go-image-cache/internal/apperrors"
	"go-image-cache/internal/config"
	"go-image-cache/internal/interfaces"
	"go-image-cache/internal/models"
)

var _ interfaces.ImageProvider = (*Selector)(nil)

// Selector dispatches each job to the provider named by IMAGE_PROVIDER at
// call time
type Selector struct {
	providers map[models.Provider]interfaces.ImageProvider
	settings  func() config.Runtime
}

func NewSelector(settings func() config.Runtime, providers ...interfaces.ImageProvider) *Selector {
	byName := make(map[models.Provider]interfaces.ImageProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &Selector{providers: byName, settings: settings}
}

// Name reports the provider currently selected
func (s *Selector) Name() models.Provider {
	return models.Provider(s.settings().Provider)
}

func (s *Selector) Generate(ctx context.Context, job interfaces.ImageJob) (*models.GeneratedImage, error) {
	name := s.Name()
	p, ok := s.providers[name]
	if !ok {
		return nil, &apperrors.ProviderError{Provider: string(name), Err: fmt.Errorf("unknown image provider %q", name)}
	}
	return p.Generate(ctx, job)
}
