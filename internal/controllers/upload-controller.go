package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-system/pkg/config"
	apperrors "equipment-system/pkg/errors"
	"equipment-system/pkg/filestorage"
	"equipment-system/pkg/utils"
)

const maxUploadSize = 20 << 20

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

var documentExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".hwp": true, ".txt": true, ".zip": true,
}

type UploadController struct {
	fileStorage filestorage.FileStorageInterface
	uploadCfg   config.UploadConfig
	logger      *zap.Logger
}

func NewUploadController(fileStorage filestorage.FileStorageInterface, uploadCfg config.UploadConfig, logger *zap.Logger) *UploadController {
	return &UploadController{fileStorage: fileStorage, uploadCfg: uploadCfg, logger: logger}
}

type uploadedFile struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

func (c *UploadController) UploadImages(ctx echo.Context) error {
	return c.upload(ctx, c.uploadCfg.ImagesPrefix, imageExtensions)
}

func (c *UploadController) UploadDocuments(ctx echo.Context) error {
	return c.upload(ctx, c.uploadCfg.DocsPrefix, documentExtensions)
}

// upload saves every file in the multipart "files" field. The whole request
// fails on the first bad file so clients never get a half-saved batch mixed
// into a success response.
func (c *UploadController) upload(ctx echo.Context, prefix string, allowed map[string]bool) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "multipart form expected", err, nil),
			c.logger)
	}
	files := form.File["files"]
	if len(files) == 0 {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "no files provided", apperrors.ErrBadRequest, nil),
			c.logger)
	}

	saved := make([]uploadedFile, 0, len(files))
	for _, fileHeader := range files {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowed[ext] {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusBadRequest, "file type not allowed",
					apperrors.ErrBadRequest, map[string]interface{}{"file": fileHeader.Filename}),
				c.logger)
		}
		if fileHeader.Size > maxUploadSize {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusBadRequest, "file too large",
					apperrors.ErrBadRequest, map[string]interface{}{"file": fileHeader.Filename}),
				c.logger)
		}

		src, err := fileHeader.Open()
		if err != nil {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusInternalServerError, "failed to read file", err, nil),
				c.logger)
		}

		url, err := c.fileStorage.Save(src, fileHeader.Filename, prefix)
		src.Close()
		if err != nil {
			c.logger.Error("file save failed", zap.String("file", fileHeader.Filename), zap.Error(err))
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusInternalServerError, "failed to save file", err, nil),
				c.logger)
		}

		saved = append(saved, uploadedFile{
			URL:         url,
			Name:        fileHeader.Filename,
			Size:        fileHeader.Size,
			ContentType: fileHeader.Header.Get("Content-Type"),
		})
	}

	return utils.SuccessResponse(ctx, saved, "files uploaded", http.StatusOK)
}
