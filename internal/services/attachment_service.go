package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	chat_errors "leo-chat/pkg/errors"

	"github.com/google/uuid"
)

// MaxAttachmentBytes caps files sent through chat.
const MaxAttachmentBytes int64 = 50 << 20

// ObjectPresigner issues upload URLs for message attachments.
type ObjectPresigner interface {
	PresignPut(ctx context.Context, key, contentType string, sizeBytes int64) (string, map[string]string, error)
	FileURL(key string) string
}

type PresignInput struct {
	Username    string
	FileName    string
	ContentType string
	FileSize    int64
}

type PresignResult struct {
	UploadURL string            `json:"uploadUrl"`
	UploadKey string            `json:"uploadKey"`
	FileURL   string            `json:"fileUrl,omitempty"`
	Headers   map[string]string `json:"headers"`
}

// AttachmentService hands out presigned URLs. The client uploads the file and then
// sends the returned key in the message's file field.
type AttachmentService struct {
	storage ObjectPresigner
}

func NewAttachmentService(storage ObjectPresigner) *AttachmentService {
	return &AttachmentService{storage: storage}
}

func (s *AttachmentService) CreatePresignedUpload(ctx context.Context, input PresignInput) (PresignResult, error) {
	if s.storage == nil {
		return PresignResult{}, chat_errors.Storage(fmt.Errorf("attachment storage is not configured"))
	}
	if input.Username == "" || input.FileName == "" || input.ContentType == "" || input.FileSize <= 0 {
		return PresignResult{}, chat_errors.Invalid("username, file name, content type and size are required")
	}
	if input.FileSize > MaxAttachmentBytes {
		return PresignResult{}, chat_errors.Invalid("file exceeds %d bytes", MaxAttachmentBytes)
	}

	key := buildObjectKey(input.Username, input.FileName)
	url, headers, err := s.storage.PresignPut(ctx, key, input.ContentType, input.FileSize)
	if err != nil {
		return PresignResult{}, chat_errors.Storage(err)
	}

	return PresignResult{
		UploadURL: url,
		UploadKey: key,
		FileURL:   s.storage.FileURL(key),
		Headers:   headers,
	}, nil
}

func buildObjectKey(username, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	base := fmt.Sprintf("chat/%s/%s", strings.ToLower(username), uuid.NewString())
	if ext == "" {
		return base
	}
	return base + ext
}
