package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/logger"
	"ev-rental-backend/internal/repository"
	"ev-rental-backend/internal/storage"
)

const (
	uploadURLExpiry   = 15 * time.Minute
	downloadURLExpiry = 7 * 24 * time.Hour
	pendingPhotoTTL   = 24 * time.Hour
)

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type photoService struct {
	photoRepo repository.PhotoRepository
	store     storage.Storage
}

func NewPhotoService(photoRepo repository.PhotoRepository, store storage.Storage) PhotoService {
	return &photoService{photoRepo: photoRepo, store: store}
}

// RequestUpload issues a presigned upload URL for an inspection photo and
// tracks it as pending until it is attached to a check-in/check-out record
// or reaped by the cleanup job.
func (s *photoService) RequestUpload(ctx context.Context, uploaderID, rentalID, filename, contentType string) (string, string, error) {
	if !allowedPhotoTypes[contentType] {
		return "", "", &domain.ValidationError{Field: "content_type", Reason: fmt.Sprintf("%s not allowed", contentType)}
	}

	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("inspections/%s/%s%s", rentalID, uuid.NewString(), ext)

	uploadURL, err := s.store.GeneratePresignedUploadURL(ctx, key, contentType, uploadURLExpiry)
	if err != nil {
		return "", "", fmt.Errorf("presign upload: %w", err)
	}
	photoURL, err := s.store.GeneratePresignedDownloadURL(ctx, key, downloadURLExpiry)
	if err != nil {
		return "", "", fmt.Errorf("presign download: %w", err)
	}

	pending := &domain.PendingPhoto{
		ID:         uuid.NewString(),
		StorageKey: key,
		UploaderID: uploaderID,
		RentalID:   rentalID,
		ExpiresOn:  time.Now().Add(pendingPhotoTTL),
	}
	if err := s.photoRepo.CreatePending(ctx, pending); err != nil {
		return "", "", err
	}
	return uploadURL, photoURL, nil
}

// CleanupExpired deletes expired pending uploads and their stored files.
// Returns the number of rows removed.
func (s *photoService) CleanupExpired(ctx context.Context) (int, error) {
	expired, err := s.photoRepo.ListExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, p := range expired {
		if err := s.store.DeleteFile(ctx, p.StorageKey); err != nil {
			logger.Warn("delete expired photo file failed", "key", p.StorageKey, "error", err)
			continue
		}
		if err := s.photoRepo.DeletePending(ctx, p.ID); err != nil {
			logger.Warn("delete pending photo row failed", "id", p.ID, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
