package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"swapr-backend/internal/config"
)

const maxPhotoSize = 5 * 1024 * 1024

var (
	ErrNotAnImage   = errors.New("file must be an image")
	ErrFileTooLarge = errors.New("file exceeds the 5MB limit")
)

type Service interface {
	UploadProfilePhoto(ctx context.Context, userID uuid.UUID, fileName, contentType string, size int64, reader io.Reader) (string, error)
}

type service struct {
	client *minio.Client
	cfg    *config.Config
}

func NewService(client *minio.Client, cfg *config.Config) Service {
	return &service{
		client: client,
		cfg:    cfg,
	}
}

func (s *service) UploadProfilePhoto(ctx context.Context, userID uuid.UUID, fileName, contentType string, size int64, reader io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}
	if size > maxPhotoSize {
		return "", ErrFileTooLarge
	}

	objectName := fmt.Sprintf("photos/%s/%s%s", userID, uuid.New(), filepath.Ext(fileName))

	_, err := s.client.PutObject(ctx, s.cfg.MinIOBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	return s.publicURL(objectName), nil
}

func (s *service) publicURL(objectName string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, objectName)
}
