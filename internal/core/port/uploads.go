package port

import (
	"context"
	"io"
)

//go:generate mockgen -source=uploads.go -destination=mock/uploads.go -package=mock

// ImageStore is the object-storage collaborator for banner images.
type ImageStore interface {
	Upload(ctx context.Context, image io.Reader, folder string) (url string, publicID string, err error)
	Delete(ctx context.Context, publicID string) error
}
