package interfaces

//go:generate mockgen -package=mock -source=keybuilder.go -destination=mock/keybuilder.go

// KeyInput holds every field that contributes to a cache key
type KeyInput struct {
	Era      string
	Topic    string
	Keywords []string
	Size     string
	Quality  string
	Version  string
}

// KeyBuilder canonizes image requests into deterministic cache keys
type KeyBuilder interface {
	// Build returns the cache key for a normalized request. It never fails.
	Build(in KeyInput) string
	// StoragePath returns the object path for an image stored under key
	StoragePath(key, ext string) string
}
