package uploads

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/config"
)

// ImageStore pushes banner images to cloudinary.
type ImageStore struct {
	cld *cloudinary.Cloudinary
}

// NewImageStore returns nil (no store) when no CLOUDINARY_URL is configured.
func NewImageStore(conf *config.Uploads) (*ImageStore, error) {
	if conf.CloudinaryURL == "" {
		return nil, nil
	}

	cld, err := cloudinary.NewFromURL(conf.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}

	return &ImageStore{cld: cld}, nil
}

func (s *ImageStore) Upload(ctx context.Context, image io.Reader, folder string) (string, string, error) {
	resp, err := s.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		PublicID: fmt.Sprintf("%s_%d", folder, time.Now().UnixNano()),
		Folder:   folder,
	})
	if err != nil {
		return "", "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.SecureURL == "" {
		return "", "", fmt.Errorf("cloudinary upload: empty secure url")
	}

	return resp.SecureURL, resp.PublicID, nil
}

func (s *ImageStore) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	return nil
}
