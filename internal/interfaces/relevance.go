package interfaces

import "go-image-cache/internal/models"

//go:generate mockgen -package=mock -source=relevance.go -destination=mock/relevance.go

// RelevanceFilter decides whether a search candidate plausibly depicts
// Korean historical subject matter
type RelevanceFilter interface {
	IsRelevant(candidate models.Candidate, keywords []string) bool
}
