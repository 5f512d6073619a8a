package interfaces

import "context"

//go:generate mockgen -package=mock -source=storage.go -destination=mock/storage.go

// StorageGateway persists image bytes and downloads remote candidates.
//
// Put is an upsert: calling it more than once with identical inputs must
// succeed and yield the same URL, so a retried upload is idempotent.
type StorageGateway interface {
	Put(ctx context.Context, data []byte, path, contentType string) (string, error)
	Fetch(ctx context.Context, url string) ([]byte, error)
}
