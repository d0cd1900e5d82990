// Package attachment stores weekly report files in object storage.
package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"internship-portal/internal/config"
	"internship-portal/internal/domain"
)

const MaxFileSize = 10 << 20

var ErrStorageUnavailable = errors.New("object storage is not configured")

var allowedTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

type File struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// Validate checks the content type and size limits.
func (f File) Validate() error {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(f.ContentType, ";", 2)[0]))
	if _, ok := allowedTypes[ct]; !ok {
		return domain.NewValidationError("Unsupported attachment type")
	}
	if f.Size <= 0 || f.Size > MaxFileSize {
		return domain.NewValidationError("Attachment must be between 1 byte and 10 MiB")
	}
	return nil
}

type Service interface {
	Put(ctx context.Context, reportID uuid.UUID, file File) (string, error)
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
	now         func() time.Time
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{minioClient: minioClient, cfg: cfg, now: time.Now}
}

func (s *service) Put(ctx context.Context, reportID uuid.UUID, file File) (string, error) {
	if err := file.Validate(); err != nil {
		return "", err
	}

	if s.minioClient == nil {
		return "", ErrStorageUnavailable
	}

	key := ObjectKey(s.now(), reportID, file)
	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, key, file.Reader, file.Size, minio.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}
	return key, nil
}

func (s *service) Remove(ctx context.Context, key string) error {
	if s.minioClient == nil {
		return ErrStorageUnavailable
	}
	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, key, minio.RemoveObjectOptions{})
}

func (s *service) PublicURL(key string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(key))
}

// ObjectKey lays objects out as weekly-reports/<yyyy>/<mm>/<report>/<uuid><ext>.
func ObjectKey(at time.Time, reportID uuid.UUID, file File) string {
	ext := strings.ToLower(path.Ext(file.Name))
	if ext == "" {
		ct := strings.ToLower(strings.TrimSpace(strings.SplitN(file.ContentType, ";", 2)[0]))
		ext = allowedTypes[ct]
	}
	return fmt.Sprintf("weekly-reports/%s/%s/%s%s", at.Format("2006/01"), reportID, uuid.New(), ext)
}
