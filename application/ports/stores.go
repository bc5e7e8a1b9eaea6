// Package ports declares the boundary interfaces the application services
// depend on. Infrastructure packages provide the implementations; tests
// substitute fakes.
package ports

import (
	"context"

	"github.com/RodCacioli/Authos-v2/domain"
)

// LocalStore is the on-device key-value store. Values are whole-collection
// JSON blobs under fixed keys. Get reports absence through the boolean, not
// through an error.
type LocalStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// RecordStore is the hosted relational backend, used only when a session
// exists. Row ownership is enforced remotely; callers scope every operation
// by user id. A missing row is (nil, nil), never an error.
type RecordStore interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, userID string, p domain.Profile) error

	// ListMemories returns rows newest-created-first.
	ListMemories(ctx context.Context, userID string) ([]domain.Memory, error)
	InsertMemory(ctx context.Context, userID string, m domain.Memory) error
	// UpdateMemory patches the mutable fields only (title, content, tags,
	// emotional tone, usage count). ID, type and creation time never change.
	UpdateMemory(ctx context.Context, userID string, m domain.Memory) error
	DeleteMemory(ctx context.Context, userID, id string) error

	ListProducts(ctx context.Context, userID string) ([]domain.Product, error)
	InsertProduct(ctx context.Context, userID string, p domain.Product) error
	UpdateProduct(ctx context.Context, userID string, p domain.Product) error
	DeleteProduct(ctx context.Context, userID, id string) error

	ListDrafts(ctx context.Context, userID string) ([]domain.ContentDraft, error)
	// ReplaceDrafts persists the entire collection: upserts every row in the
	// slice and removes rows the slice omits.
	ReplaceDrafts(ctx context.Context, userID string, drafts []domain.ContentDraft) error
}

// SessionVerifier validates a bearer token against the auth backend and
// returns the owning user id.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (userID string, err error)
}
