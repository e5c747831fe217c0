package media_storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/devfolio/devfolio-api/internal/application/service"
	"github.com/devfolio/devfolio-api/internal/config"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

type cloudinaryAdapter struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryAdapter(cfg config.Config, log logger.Logger) (service.Uploader, error) {

	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name is not configured")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	log.Info("Connect Cloudinary successfully.")
	return &cloudinaryAdapter{cld: cld}, nil
}

// Upload stores the blob under the given storage path and returns its public
// URL. The path's directory part becomes the folder, the base name (without
// extension) the public id.
func (a *cloudinaryAdapter) Upload(ctx context.Context, file io.Reader, storagePath string) (string, error) {
	folder := path.Dir(storagePath)
	base := strings.TrimSuffix(path.Base(storagePath), path.Ext(storagePath))

	uploadParams := uploader.UploadParams{
		PublicID:  base,
		Folder:    folder,
		Overwrite: api.Bool(false),
	}
	result, err := a.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	return result.SecureURL, nil
}

func (a *cloudinaryAdapter) Delete(ctx context.Context, storagePath string) error {
	folder := path.Dir(storagePath)
	base := strings.TrimSuffix(path.Base(storagePath), path.Ext(storagePath))

	_, err := a.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: folder + "/" + base,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	return nil
}
