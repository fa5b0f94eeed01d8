package domain

import "time"

// PendingPhoto tracks an inspection photo upload that has been granted a
// presigned URL but not yet attached to a check-in/check-out record. Expired
// rows (and their stored files) are reaped by a scheduled job.
type PendingPhoto struct {
	ID         string    `json:"id"`
	StorageKey string    `json:"storage_key"`
	UploaderID string    `json:"uploader_id"`
	RentalID   string    `json:"rental_id"`
	ExpiresOn  time.Time `json:"expires_on"`
	CreatedOn  time.Time `json:"created_on"`
}
