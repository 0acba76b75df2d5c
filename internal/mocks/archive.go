package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockDocumentArchive is a mock implementation of the document archive
type MockDocumentArchive struct {
	mock.Mock
}

// UploadDocument mocks the UploadDocument method. The body is drained so
// expectations can match on its contents.
func (m *MockDocumentArchive) UploadDocument(ctx context.Context, objectKey string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	args := m.Called(ctx, objectKey, data)
	return args.Error(0)
}

// GeneratePresignedURL mocks the GeneratePresignedURL method
func (m *MockDocumentArchive) GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expiration)
	return args.String(0), args.Error(1)
}
