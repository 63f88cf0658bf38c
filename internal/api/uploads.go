package api

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"nusaquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// saveUpload stores an uploaded file under dir with a generated name and
// returns the stored filename.
func saveUpload(c *gin.Context, file *multipart.FileHeader, dir string) (string, error) {
	name := uuid.New().String() + filepath.Ext(file.Filename)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}

	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}

	return name, nil
}

// removeUpload deletes a previously stored file. Missing files are not
// an error: the record is already gone or was never written.
func removeUpload(dir, name string) {
	if name == "" {
		return
	}

	err := os.Remove(filepath.Join(dir, name))
	if err != nil && !os.IsNotExist(err) {
		logger.Logger().Warn("failed to remove uploaded file",
			zap.String("file", name),
			zap.Error(err))
	}
}
