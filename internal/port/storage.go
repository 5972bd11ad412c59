package port

import "context"

// ObjectStorage provides read-side access to stored source files.
// Uploads are handled by the ingestion pipeline, so the review backend
// only ever presigns GETs.
type ObjectStorage interface {
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
