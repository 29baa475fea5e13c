package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const (
	ArtifactStorageMemory = "memory"
	ArtifactStorageLocal  = "local"
	ArtifactStorageS3     = "s3"
)

var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactStore keeps short-lived generated files. Put must not make a key
// visible to Open until all of its bytes are stored.
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Open(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Remove(ctx context.Context, key string) error
}

// NewArtifactStore picks the backend named by kind.
func NewArtifactStore(ctx context.Context, kind, dir string) (ArtifactStore, error) {
	switch kind {
	case ArtifactStorageMemory:
		return NewMemoryStore(), nil
	case ArtifactStorageLocal, "":
		return NewLocalStore(dir)
	case ArtifactStorageS3:
		return NewAwsS3(ctx)
	default:
		return nil, fmt.Errorf("unknown artifact storage %q", kind)
	}
}
