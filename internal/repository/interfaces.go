package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/brp/internal/domain"
)

// ErrNotFound is returned when a key has no stored document.
var ErrNotFound = domain.ErrNotFound

// Document is one stored value of the key-value table.
type Document struct {
	Key       string
	Body      []byte
	Revision  int
	UpdatedAt time.Time
}

// DocumentRepo persists opaque JSON documents under string keys.
type DocumentRepo interface {
	Get(ctx context.Context, key string) (*Document, error)
	Put(ctx context.Context, key string, body []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
