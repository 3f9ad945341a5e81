// Image export for rendered canvases
package io

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

var (
	ErrEmptyFrame        = errors.New("empty image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// ImageWriter handles image file output
type ImageWriter struct {
	logger logrus.FieldLogger
}

func NewImageWriter(logger logrus.FieldLogger) *ImageWriter {
	return &ImageWriter{
		logger: logger,
	}
}

func (iw *ImageWriter) SaveImage(mat gocv.Mat, filepath string) error {
	iw.logger.WithField("filepath", filepath).Debug("Saving image")

	if mat.Empty() {
		return fmt.Errorf("cannot save %s: %w", filepath, ErrEmptyFrame)
	}

	if !isSupportedImageFormat(filepath) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath)
	}

	if !gocv.IMWrite(filepath, mat) {
		return fmt.Errorf("failed to save image: %s", filepath)
	}

	iw.logger.WithFields(logrus.Fields{
		"filepath": filepath,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image saved successfully")

	return nil
}

func (iw *ImageWriter) GetSupportedFormats() []string {
	return []string{"JPEG", "PNG", "TIFF", "BMP"}
}

func isSupportedImageFormat(filepath string) bool {
	ext := strings.ToLower(getFileExtension(filepath))
	supportedFormats := []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"}

	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}

	return false
}

func getFileExtension(filepath string) string {
	for i := len(filepath) - 1; i >= 0; i-- {
		if filepath[i] == '.' {
			return filepath[i:]
		}
		if filepath[i] == '/' || filepath[i] == '\\' {
			break
		}
	}
	return ""
}
