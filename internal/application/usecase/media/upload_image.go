package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/devfolio/devfolio-api/internal/application/service"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/imageproc"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

// ImageKind selects the resize preset and the storage path segment.
type ImageKind string

const (
	KindProfile  ImageKind = "profile"
	KindProjects ImageKind = "projects"
)

type UploadImageUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewUploadImageUseCase(uploader service.Uploader, log logger.Logger) *UploadImageUseCase {
	return &UploadImageUseCase{uploader: uploader, logger: log}
}

type UploadImageInput struct {
	OwnerID  uuid.UUID
	File     io.Reader
	FileName string
	Size     int64
	MIME     string
	Kind     ImageKind
}

type UploadImageOutput struct {
	URL  string
	Path string
}

// Execute validates, resizes to the preset for the image kind, and uploads.
// Validation failure means resize is never attempted; a corrupt image that
// fails decoding surfaces as an upload failure to the caller.
func (uc *UploadImageUseCase) Execute(ctx context.Context, input UploadImageInput) (*UploadImageOutput, error) {
	result := imageproc.Validate(&imageproc.FileInfo{
		Name: input.FileName,
		Size: input.Size,
		MIME: input.MIME,
	})
	if !result.Valid {
		return nil, apperror.NewInvalidInput(strings.Join(result.Errors, ", "), nil)
	}

	preset := imageproc.ProfilePreset
	if input.Kind == KindProjects {
		preset = imageproc.ProjectPreset
	}

	resized, err := imageproc.ResizeToPreset(input.File, preset)
	if err != nil {
		return nil, err
	}

	path := buildPath(input.OwnerID, input.Kind, imageproc.Extension(resized.MIME))
	url, err := uc.uploader.Upload(ctx, bytes.NewReader(resized.Data), path)
	if err != nil {
		return nil, apperror.NewInternal("failed to upload image", err)
	}

	return &UploadImageOutput{URL: url, Path: path}, nil
}

// buildPath follows the {userId}/{imageType}/{epochMillis}_{token}.{ext}
// storage convention.
func buildPath(ownerID uuid.UUID, kind ImageKind, ext string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return fmt.Sprintf("%s/%s/%d_%s.%s", ownerID, kind, time.Now().UnixMilli(), token, ext)
}

// DeleteImageUseCase removes a previously uploaded blob.
type DeleteImageUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewDeleteImageUseCase(uploader service.Uploader, log logger.Logger) *DeleteImageUseCase {
	return &DeleteImageUseCase{uploader: uploader, logger: log}
}

func (uc *DeleteImageUseCase) Execute(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return apperror.NewInvalidInput("image path is required", nil)
	}
	if err := uc.uploader.Delete(ctx, path); err != nil {
		return apperror.NewInternal("failed to delete image", err)
	}
	return nil
}
