package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// FirebaseStorage stores inspection photos in the project's Firebase Cloud
// Storage bucket and hands out signed URLs.
type FirebaseStorage struct {
	bucket *gcs.BucketHandle
}

// NewFirebaseStorage initialises the Firebase Admin SDK. When
// credentialsFile is empty, application-default credentials are used.
func NewFirebaseStorage(ctx context.Context, projectID, bucketName, credentialsFile string) (*FirebaseStorage, error) {
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     projectID,
		StorageBucket: bucketName,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase storage client: %w", err)
	}
	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("firebase default bucket: %w", err)
	}
	return &FirebaseStorage{bucket: bucket}, nil
}

func (s *FirebaseStorage) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	return s.bucket.SignedURL(key, &gcs.SignedURLOptions{
		Method:      http.MethodPut,
		ContentType: contentType,
		Expires:     time.Now().Add(expiresIn),
		Scheme:      gcs.SigningSchemeV4,
	})
}

func (s *FirebaseStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return s.bucket.SignedURL(key, &gcs.SignedURLOptions{
		Method:  http.MethodGet,
		Expires: time.Now().Add(expiresIn),
		Scheme:  gcs.SigningSchemeV4,
	})
}

func (s *FirebaseStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	attrs, err := s.bucket.Object(key).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, attrs.Size, nil
}

func (s *FirebaseStorage) DeleteFile(ctx context.Context, key string) error {
	err := s.bucket.Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

// SaveFile and ReadFile exist only for the mock backend; uploads go straight
// to the bucket through the signed URL.
func (s *FirebaseStorage) SaveFile(key string, reader io.Reader) error {
	return errors.New("direct save not supported by firebase storage")
}

func (s *FirebaseStorage) ReadFile(key string) (io.ReadCloser, error) {
	return nil, errors.New("direct read not supported by firebase storage")
}
