package interfaces

import "go-image-cache/internal/models"

//go:generate mockgen -package=mock -source=prompt.go -destination=mock/prompt.go

// PromptBuilder turns a validated request into a generation instruction
type PromptBuilder interface {
	Build(req models.ImageRequest) string
}
