package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/devfolio/devfolio-api/internal/application/usecase/media"
	"github.com/devfolio/devfolio-api/pkg/apperror"
	"github.com/devfolio/devfolio-api/pkg/logger"
)

type ImageHandler struct {
	uploadImageUC *mediaUC.UploadImageUseCase
	deleteImageUC *mediaUC.DeleteImageUseCase
	logger        logger.Logger
}

func NewImageHandler(uploadUC *mediaUC.UploadImageUseCase, deleteUC *mediaUC.DeleteImageUseCase, log logger.Logger) *ImageHandler {
	return &ImageHandler{
		uploadImageUC: uploadUC,
		deleteImageUC: deleteUC,
		logger:        log,
	}
}

// UploadImage handles a multipart upload with two parts: "file" and an
// optional "kind" ("profile" or "projects", defaulting to "profile").
func (h *ImageHandler) UploadImage(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	kind := mediaUC.KindProfile
	switch c.PostForm("kind") {
	case "", string(mediaUC.KindProfile):
	case string(mediaUC.KindProjects):
		kind = mediaUC.KindProjects
	default:
		c.Error(apperror.NewInvalidInput("'kind' must be 'profile' or 'projects'", nil))
		return
	}

	input := mediaUC.UploadImageInput{
		OwnerID:  ownerID,
		File:     file,
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
		MIME:     fileHeader.Header.Get("Content-Type"),
		Kind:     kind,
	}

	output, err := h.uploadImageUC.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": output.URL, "path": output.Path})
}

type deleteImageRequest struct {
	Path string `json:"path" binding:"required"`
}

func (h *ImageHandler) DeleteImage(c *gin.Context) {
	if _, ok := GetOwnerIDFromGinContext(c); !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	var req deleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	if err := h.deleteImageUC.Execute(c.Request.Context(), req.Path); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
