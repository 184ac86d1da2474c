package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
	"time"
)

// ComputeChecksum returns the hex SHA-256 of content
func ComputeChecksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// BuildUploadKey builds imports/<yyyy>/<mm>/<runID><ext>
func BuildUploadKey(runID string, at time.Time, ext string) string {
	return path.Join("imports", at.Format("2006"), at.Format("01"), runID+strings.ToLower(ext))
}

// Upload describes an uploaded import file
type Upload struct {
	RunID        string
	OriginalName string
	Format       string
	ContentType  string
	Content      []byte
}

// Archive keeps uploaded import files for later inspection
type Archive struct {
	store Storage
	now   func() time.Time
}

// NewArchive creates an upload archive on store
func NewArchive(store Storage) *Archive {
	return &Archive{store: store, now: time.Now}
}

// Save stores the upload with its metadata and returns the key and checksum
func (a *Archive) Save(ctx context.Context, up Upload) (string, string, error) {
	at := a.now().UTC()
	key := BuildUploadKey(up.RunID, at, "."+up.Format)
	checksum := ComputeChecksum(up.Content)

	meta := &Metadata{
		ContentType:  up.ContentType,
		OriginalName: up.OriginalName,
		RunID:        up.RunID,
		Format:       up.Format,
		Size:         int64(len(up.Content)),
		Checksum:     checksum,
		UploadedAt:   at,
	}
	if err := a.store.Put(ctx, key, up.Content, meta); err != nil {
		return "", "", fmt.Errorf("failed to archive upload %s: %w", up.OriginalName, err)
	}
	return key, checksum, nil
}
