package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go-image-cache/internal/apperrors"
	"go-image-cache/internal/config"
	"go-image-cache/internal/interfaces/mock"
	"go-image-cache/internal/models"
)

func TestSelector_DispatchesAtCallTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	openaiProvider := mock.NewMockImageProvider(ctrl)
	searchProvider := mock.NewMockImageProvider(ctrl)
	openaiProvider.EXPECT().Name().Return(models.ProviderOpenAI).AnyTimes()
	searchProvider.EXPECT().Name().Return(models.ProviderSearch).AnyTimes()

	current := "openai"
	s := NewSelector(func() config.Runtime { return config.Runtime{Provider: current} }, openaiProvider, searchProvider)

	job := testJob()
	openaiProvider.EXPECT().Generate(gomock.Any(), job).
		Return(&models.GeneratedImage{Provider: models.ProviderOpenAI}, nil)
	img, err := s.Generate(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, models.ProviderOpenAI, img.Provider)

	current = "search"
	searchProvider.EXPECT().Generate(gomock.Any(), job).
		Return(&models.GeneratedImage{Provider: models.ProviderSearch}, nil)
	img, err = s.Generate(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, models.ProviderSearch, img.Provider)
	assert.Equal(t, models.ProviderSearch, s.Name())
}

func TestSelector_UnknownProvider(t *testing.T) {
	s := NewSelector(func() config.Runtime { return config.Runtime{Provider: "midjourney"} })

	_, err := s.Generate(context.Background(), testJob())

	var providerErr *apperrors.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "midjourney", providerErr.Provider)
}
