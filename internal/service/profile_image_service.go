package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/media"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
)

var (
	ErrImageTooLarge  = errors.New("image exceeds the allowed size")
	ErrInvalidImage   = errors.New("file is not a supported image")
	ErrImagesDisabled = errors.New("profile images are not configured")
)

type ProfileImageService struct {
	users        ports.TableStore[domain.User]
	storage      ports.ObjectStorage
	processor    media.Processor
	bucket       string
	maxBytes     int64
	maxDimension int
	now          func() time.Time
}

func NewProfileImageService(users ports.TableStore[domain.User], storage ports.ObjectStorage, processor media.Processor, bucket string, maxBytes int64, maxDimension int) *ProfileImageService {
	return &ProfileImageService{
		users:        users,
		storage:      storage,
		processor:    processor,
		bucket:       bucket,
		maxBytes:     maxBytes,
		maxDimension: maxDimension,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Upload stores a new profile picture for the user and records its URL. The
// object is removed again when the user row cannot be updated.
func (s *ProfileImageService) Upload(ctx context.Context, userID int64, upload media.Upload) (*domain.User, error) {
	if s == nil || s.storage == nil {
		return nil, ErrImagesDisabled
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return nil, ErrImageTooLarge
	}

	users, err := s.users.Find(ctx, "id", userID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}

	result, err := s.processor.Process(ctx, upload, s.maxDimension)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			return nil, ErrInvalidImage
		}
		return nil, err
	}

	objectName := fmt.Sprintf("users/%d/%s%s", userID, uuid.NewString(), result.Extension)
	url, err := s.storage.Upload(ctx, s.bucket, objectName, result.ContentType, bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return nil, fmt.Errorf("upload profile image: %w", err)
	}

	updated, err := s.users.Update(ctx, userID, domain.Record{
		"image_url":  url,
		"dateupdate": s.now(),
	})
	if err != nil {
		if rmErr := s.storage.Remove(ctx, s.bucket, objectName); rmErr != nil {
			log.Printf("profile image: remove orphaned %s: %v", objectName, rmErr)
		}
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return updated, nil
}
