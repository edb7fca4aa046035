package application

import (
	"context"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/discount-catalog/pkg/helpers"
)

const imagePrefix = "discounts"

// ImageService stores discount images in a GCS bucket.
type ImageService struct {
	GCS    *storage.Client
	Bucket string
	Logger logrus.FieldLogger
}

func NewImageService(gcs *storage.Client, bucket string, logger logrus.FieldLogger) *ImageService {
	return &ImageService{GCS: gcs, Bucket: bucket, Logger: logger}
}

func (s *ImageService) Enabled() bool {
	return s != nil && s.GCS != nil && s.Bucket != ""
}

// Upload writes r under discounts/<uuid><ext> and returns its public URL.
func (s *ImageService) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := CheckImage(contentType); err != nil {
		return "", err
	}
	if !s.Enabled() {
		return "", ErrUploadDisabled
	}
	objectPath := helpers.ObjectPath(imagePrefix, uuid.NewString(), filename)
	url, err := helpers.UploadObject(ctx, s.GCS, s.Bucket, objectPath, contentType, r)
	if err != nil {
		helpers.LogError(s.Logger, "image upload failed", err, logrus.Fields{"object": objectPath})
		return "", err
	}
	return url, nil
}

// CheckImage accepts image/* content types only.
func CheckImage(contentType string) error {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return ErrUnsupportedImage
	}
	return nil
}
