package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传文件到MinIO
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, BucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// Publisher 把产物同步到对象存储
type Publisher interface {
	Publish(ctx context.Context, objectName string, data []byte, contentType string) error
}

type bucketPublisher struct{}

// NewPublisher 使用全局 Client，需先调用 Init
func NewPublisher() Publisher {
	return bucketPublisher{}
}

func (bucketPublisher) Publish(ctx context.Context, objectName string, data []byte, contentType string) error {
	_, err := UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType)
	return err
}

type nopPublisher struct{}

// NopPublisher 未启用对象存储时使用
func NopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, []byte, string) error {
	return nil
}
