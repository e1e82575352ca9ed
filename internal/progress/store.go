package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/lexiz/internal/store"
)

// BlobKey is the blob name the completed set is stored under.
const BlobKey = "progress.completed_days"

// Store persists the completed set. Load and Save fail soft.
type Store interface {
	// Load returns the persisted set, or an empty set on any error.
	Load(ctx context.Context) CompletedSet

	// Save persists the set. Failures are logged, not returned.
	Save(ctx context.Context, set CompletedSet)

	// Clear removes all persisted progress.
	Clear(ctx context.Context) error
}

// BlobStore keeps the completed set as a JSON array of ids in a blob.
type BlobStore struct {
	repo   store.BlobRepo
	logger *slog.Logger
}

var _ Store = (*BlobStore)(nil)

// NewBlobStore creates a Store over repo. A nil logger uses slog.Default().
func NewBlobStore(repo store.BlobRepo, logger *slog.Logger) *BlobStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlobStore{repo: repo, logger: logger}
}

func (b *BlobStore) Load(ctx context.Context) CompletedSet {
	data, err := b.repo.Get(ctx, BlobKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			b.logger.Warn("load progress failed", "error", err)
		}
		return NewCompletedSet()
	}

	set, err := decode(data)
	if err != nil {
		b.logger.Warn("discarding malformed progress", "error", err)
		return NewCompletedSet()
	}
	return set
}

func (b *BlobStore) Save(ctx context.Context, set CompletedSet) {
	data, err := json.Marshal(set.IDs())
	if err != nil {
		b.logger.Warn("encode progress failed", "error", err)
		return
	}
	if err := b.repo.Put(ctx, BlobKey, data); err != nil {
		b.logger.Warn("save progress failed", "error", err)
	}
}

func (b *BlobStore) Clear(ctx context.Context) error {
	if err := b.repo.Delete(ctx, BlobKey); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

func decode(data []byte) (CompletedSet, error) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return NewCompletedSet(ids...), nil
}

// MemoryStore is an in-process Store, used when no database is available
// and in tests.
type MemoryStore struct {
	set CompletedSet
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(ids ...string) *MemoryStore {
	return &MemoryStore{set: NewCompletedSet(ids...)}
}

func (m *MemoryStore) Load(context.Context) CompletedSet { return m.set.Clone() }

func (m *MemoryStore) Save(_ context.Context, set CompletedSet) { m.set = set.Clone() }

func (m *MemoryStore) Clear(context.Context) error {
	m.set = NewCompletedSet()
	return nil
}
