package storage

import (
	"context"

	"foodgram-backend/internal/utils"
)

// Storage keeps recipe images. Object keys are relative ("recipes/<uuid>.png");
// GetPublicLinkKey turns a key into the URL served to clients.
type Storage interface {
	UploadFile(ctx context.Context, fileName string, data []byte, folder string, contentType string) (string, error)
	DeleteFile(ctx context.Context, objectKey string) error
	GetPublicLinkKey(objectKey string) string
	GetObjectKeyFromLink(link string) string
}

// New returns S3 storage when a bucket is configured and local disk storage otherwise.
func New() Storage {
	if utils.GetConfig("AWS_S3_BUCKET") != "" {
		return NewAwsS3()
	}
	return NewLocalStorage(utils.GetConfig("MEDIA_ROOT"), utils.GetConfig("APP_URL")+"/media")
}
