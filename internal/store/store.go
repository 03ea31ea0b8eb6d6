// Package store persists the BRP collection as one JSON document in the
// documents table and owns the ID counter and the event trails.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/alexanderramin/brp/internal/domain"
	"github.com/alexanderramin/brp/internal/repository"
	"github.com/google/uuid"
)

// DocumentKey is the key the collection is stored under.
const DocumentKey = "brp_tool_store_v1"

// Store loads and saves the collection. It holds no cached state; callers
// own the *domain.Collection they load.
type Store struct {
	docs   repository.DocumentRepo
	key    string
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for degraded reads.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithKey stores the collection under a different document key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// New creates a Store on top of a document repository.
func New(docs repository.DocumentRepo, opts ...Option) *Store {
	s := &Store{
		docs:   docs,
		key:    DocumentKey,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted collection. A missing or unreadable document
// yields an empty collection; the failure is logged, never returned.
func (s *Store) Load(ctx context.Context) *domain.Collection {
	doc, err := s.docs.Get(ctx, s.key)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewCollection()
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "store read failed", "key", s.key, "error", err)
		return domain.NewCollection()
	}

	c, err := decodeCollection(doc.Body)
	if err != nil {
		s.logger.WarnContext(ctx, "store document unreadable, starting empty",
			"key", s.key, "revision", doc.Revision, "error", err)
		return domain.NewCollection()
	}
	repairCounter(c)
	return c
}

// Save writes the whole collection, replacing the stored document.
func (s *Store) Save(ctx context.Context, c *domain.Collection) error {
	body, err := json.Marshal(c.Normalize())
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}
	if err := s.docs.Put(ctx, s.key, body); err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	return nil
}

// NextID advances the counter and returns the new 6-digit record ID.
func (s *Store) NextID(c *domain.Collection) string {
	c.IDCounter++
	return domain.FormatRecordID(c.IDCounter)
}

// RecordEvent appends an event to r's history and mirrors it into the
// audit trail. Both logs are trimmed oldest first.
func (s *Store) RecordEvent(c *domain.Collection, r *domain.BRP, action domain.Action, meta domain.EventMeta) domain.Event {
	at := s.now()
	e := domain.Event{ID: s.newID(), At: at, Action: action, Meta: meta}
	r.History = domain.AppendBounded(r.History, e, domain.MaxRecordHistory)

	audit := e
	audit.ID = s.newID()
	audit.Type = domain.AuditEventType
	audit.BRPID = r.ID
	c.Audit = domain.AppendBounded(c.Audit, audit, domain.MaxAuditTrail)
	return e
}

// Reset clears every record, the audit trail and the last opened pointer.
// The ID counter survives so IDs are never reused.
func (s *Store) Reset(ctx context.Context) error {
	current := s.Load(ctx)
	fresh := domain.NewCollection()
	fresh.IDCounter = current.IDCounter
	if err := s.Save(ctx, fresh); err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}
	return nil
}

// Export writes the stored collection as an indented JSON document.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	c := s.Load(ctx)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("exporting collection: %w", err)
	}
	return nil
}

// Import replaces the stored collection with the document read from r.
// A bare JSON array of records is accepted as well. The counter is raised
// so that no future ID collides with an existing or imported record.
func (s *Store) Import(ctx context.Context, r io.Reader) (*domain.Collection, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}

	var imported *domain.Collection
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		var records []*domain.BRP
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decoding import: %w", err)
		}
		imported = domain.NewCollection()
		imported.Records = records
		imported.Normalize()
	} else {
		imported, err = decodeCollection(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding import: %w", err)
		}
	}

	current := s.Load(ctx)
	if current.IDCounter > imported.IDCounter {
		imported.IDCounter = current.IDCounter
	}
	repairCounter(imported)
	if imported.LastOpenedID != nil && imported.Find(*imported.LastOpenedID) == nil {
		imported.LastOpenedID = nil
	}

	if err := s.Save(ctx, imported); err != nil {
		return nil, err
	}
	return imported, nil
}

func decodeCollection(body []byte) (*domain.Collection, error) {
	var c domain.Collection
	if err := json.Unmarshal(body, &c); err != nil {
		return nil, err
	}
	return c.Normalize(), nil
}

// repairCounter keeps the counter at or above the highest numeric record ID.
func repairCounter(c *domain.Collection) {
	for _, r := range c.Records {
		if n, err := strconv.Atoi(r.ID); err == nil && n > c.IDCounter {
			c.IDCounter = n
		}
	}
}
