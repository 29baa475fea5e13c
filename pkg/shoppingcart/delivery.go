package shoppingcart

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/utils/storage"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var contentTypes = map[string]string{
	".txt": "text/plain",
}

type (
	DeliveryAdapter interface {
		Deliver(ctx context.Context, username, document string) (*domain.ShoppingCartFile, error)
		Filename(username string) string
		ContentType() string
	}

	deliveryAdapter struct {
		store       storage.ArtifactStore
		ext         string
		contentType string
		log         *zap.Logger
	}

	// artifactBody removes the backing artifact once the stream is closed.
	artifactBody struct {
		io.ReadCloser
		once   sync.Once
		remove func()
	}
)

// ContentTypeFor returns the media type served for a shopping list extension.
func ContentTypeFor(ext string) (string, error) {
	ct, ok := contentTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedExtension, ext)
	}
	return ct, nil
}

func NewDeliveryAdapter(store storage.ArtifactStore, ext string, log *zap.Logger) (DeliveryAdapter, error) {
	contentType, err := ContentTypeFor(ext)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &deliveryAdapter{
		store:       store,
		ext:         ext,
		contentType: contentType,
		log:         log,
	}, nil
}

func (d *deliveryAdapter) Filename(username string) string {
	return "_" + username + d.ext
}

func (d *deliveryAdapter) ContentType() string {
	return d.contentType
}

// Deliver stores document under a key unique to this call and returns a
// stream over it. Closing the stream deletes the stored artifact.
func (d *deliveryAdapter) Deliver(ctx context.Context, username, document string) (*domain.ShoppingCartFile, error) {
	key := "_" + username + "-" + uuid.NewString() + d.ext

	if err := d.store.Put(ctx, key, []byte(document)); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrArtifactWrite, err)
	}

	rc, size, err := d.store.Open(ctx, key)
	if err != nil {
		d.removeArtifact(key)
		return nil, fmt.Errorf("%w: %w", domain.ErrArtifactWrite, err)
	}

	return &domain.ShoppingCartFile{
		Filename:    d.Filename(username),
		ContentType: d.contentType,
		Size:        size,
		Body: &artifactBody{
			ReadCloser: rc,
			remove:     func() { d.removeArtifact(key) },
		},
	}, nil
}

// removeArtifact runs after the request may have finished, so it does not
// use the request context.
func (d *deliveryAdapter) removeArtifact(key string) {
	if err := d.store.Remove(context.Background(), key); err != nil {
		d.log.Warn("failed to remove shopping cart artifact", zap.String("key", key), zap.Error(err))
	}
}

func (b *artifactBody) Close() error {
	err := b.ReadCloser.Close()
	b.once.Do(b.remove)
	return err
}
