package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no file exists at a key
var ErrNotFound = errors.New("file not found")

// Metadata is stored next to an archived upload
type Metadata struct {
	ContentType  string    `json:"contentType,omitempty"`
	OriginalName string    `json:"originalName,omitempty"`
	RunID        string    `json:"runId,omitempty"`
	Format       string    `json:"format,omitempty"`
	Size         int64     `json:"size"`
	Checksum     string    `json:"checksum"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// Storage defines file storage operations. Keys use forward slashes.
type Storage interface {
	// Put stores content at key with optional metadata
	Put(ctx context.Context, key string, content []byte, metadata *Metadata) error

	// Get retrieves content stored at key
	Get(ctx context.Context, key string) ([]byte, error)

	// Metadata retrieves the metadata stored with key
	Metadata(ctx context.Context, key string) (*Metadata, error)

	// Exists checks if a file exists at key
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the file and metadata at key
	Delete(ctx context.Context, key string) error

	// List returns all keys matching prefix
	List(ctx context.Context, prefix string) ([]string, error)
}

// StorageType represents the type of storage backend
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
)
