// Package supabase implements the hosted record store over the Supabase
// PostgREST API. Row ownership is enforced remotely by row-level security;
// this client only scopes queries by user id. Every call runs through a
// circuit breaker so a dead backend fails fast instead of hanging the
// request path.
package supabase

import (
	"context"
	"time"

	"github.com/RodCacioli/Authos-v2/domain"
	apperrors "github.com/RodCacioli/Authos-v2/pkg/errors"

	"github.com/sony/gobreaker"
	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

const (
	tableProfiles = "profiles"
	tableMemories = "memories"
	tableProducts = "products"
	tableDrafts   = "drafts"
)

// RecordStore is the PostgREST-backed implementation of ports.RecordStore.
type RecordStore struct {
	client *supa.Client
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewRecordStore wraps a Supabase client.
func NewRecordStore(client *supa.Client, logger *zap.Logger) *RecordStore {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "record-store",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return &RecordStore{client: client, cb: cb, logger: logger}
}

// execute runs fn through the breaker, mapping an open breaker to the same
// unavailable error shape as any other remote failure.
func (s *RecordStore) execute(fn func() error) error {
	_, err := s.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return apperrors.NewUnavailable("record store circuit open", err)
	}
	return err
}

// GetProfile returns the user's profile row, or nil when none exists.
func (s *RecordStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var rows []profileRow
	err := s.execute(func() error {
		_, err := s.client.From(tableProfiles).
			Select("*", "", false).
			Eq("user_id", userID).
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "fetch profile")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	p := profileFromRow(rows[0])
	return &p, nil
}

// UpsertProfile inserts or replaces the user's single profile row.
func (s *RecordStore) UpsertProfile(ctx context.Context, userID string, p domain.Profile) error {
	row := profileToRow(userID, p)
	err := s.execute(func() error {
		_, _, err := s.client.From(tableProfiles).
			Upsert(row, "user_id", "", "").
			Execute()
		return err
	})
	return apperrors.Wrap(err, "upsert profile")
}

// ListMemories returns the user's memories newest-created-first.
func (s *RecordStore) ListMemories(ctx context.Context, userID string) ([]domain.Memory, error) {
	var rows []memoryRow
	err := s.execute(func() error {
		_, err := s.client.From(tableMemories).
			Select("*", "", false).
			Eq("user_id", userID).
			Order("created_at", &postgrest.OrderOpts{Ascending: false}).
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "list memories")
	}
	memories := make([]domain.Memory, len(rows))
	for i, r := range rows {
		memories[i] = memoryFromRow(r)
	}
	return memories, nil
}

// InsertMemory inserts one memory row.
func (s *RecordStore) InsertMemory(ctx context.Context, userID string, m domain.Memory) error {
	row := memoryToRow(userID, m)
	err := s.execute(func() error {
		_, _, err := s.client.From(tableMemories).
			Insert(row, false, "", "", "").
			Execute()
		return err
	})
	return apperrors.Wrap(err, "insert memory")
}

// UpdateMemory patches the mutable fields of one memory row by id.
func (s *RecordStore) UpdateMemory(ctx context.Context, userID string, m domain.Memory) error {
	patch := memoryPatch{
		Title:         m.Title,
		Content:       m.Content,
		Tags:          m.Tags,
		EmotionalTone: m.EmotionalTone,
		UsageCount:    m.UsageCount,
	}
	err := s.execute(func() error {
		_, _, err := s.client.From(tableMemories).
			Update(patch, "", "").
			Eq("id", m.ID).
			Eq("user_id", userID).
			Execute()
		return err
	})
	return apperrors.Wrap(err, "update memory")
}

// DeleteMemory deletes one memory row by id. Unknown ids are a no-op.
func (s *RecordStore) DeleteMemory(ctx context.Context, userID, id string) error {
	err := s.execute(func() error {
		_, _, err := s.client.From(tableMemories).
			Delete("", "").
			Eq("id", id).
			Eq("user_id", userID).
			Execute()
		return err
	})
	return apperrors.Wrap(err, "delete memory")
}

// ListProducts returns the user's products.
func (s *RecordStore) ListProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	var rows []productRow
	err := s.execute(func() error {
		_, err := s.client.From(tableProducts).
			Select("*", "", false).
			Eq("user_id", userID).
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "list products")
	}
	products := make([]domain.Product, len(rows))
	for i, r := range rows {
		products[i] = productFromRow(r)
	}
	return products, nil
}

// InsertProduct inserts one product row.
func (s *RecordStore) InsertProduct(ctx context.Context, userID string, p domain.Product) error {
	row := productToRow(userID, p)
	err := s.execute(func() error {
		_, _, err := s.client.From(tableProducts).
			Insert(row, false, "", "", "").
			Execute()
		return err
	})
	return apperrors.Wrap(err, "insert product")
}

// UpdateProduct replaces one product row by id.
func (s *RecordStore) UpdateProduct(ctx context.Context, userID string, p domain.Product) error {
	row := productToRow(userID, p)
	err := s.execute(func() error {
		_, _, err := s.client.From(tableProducts).
			Update(row, "", "").
			Eq("id", p.ID).
			Eq("user_id", userID).
			Execute()
		return err
	})
	return apperrors.Wrap(err, "update product")
}

// DeleteProduct deletes one product row by id.
func (s *RecordStore) DeleteProduct(ctx context.Context, userID, id string) error {
	err := s.execute(func() error {
		_, _, err := s.client.From(tableProducts).
			Delete("", "").
			Eq("id", id).
			Eq("user_id", userID).
			Execute()
		return err
	})
	return apperrors.Wrap(err, "delete product")
}

// ListDrafts returns the user's drafts in their saved collection order.
func (s *RecordStore) ListDrafts(ctx context.Context, userID string) ([]domain.ContentDraft, error) {
	var rows []draftRow
	err := s.execute(func() error {
		_, err := s.client.From(tableDrafts).
			Select("*", "", false).
			Eq("user_id", userID).
			Order("position", &postgrest.OrderOpts{Ascending: true}).
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "list drafts")
	}
	drafts := make([]domain.ContentDraft, len(rows))
	for i, r := range rows {
		drafts[i] = draftFromRow(r)
	}
	return drafts, nil
}

// ReplaceDrafts persists the whole collection: upserts every row and deletes
// rows whose id the collection no longer contains. Omission is deletion.
func (s *RecordStore) ReplaceDrafts(ctx context.Context, userID string, drafts []domain.ContentDraft) error {
	var existing []draftRow
	err := s.execute(func() error {
		_, err := s.client.From(tableDrafts).
			Select("id", "", false).
			Eq("user_id", userID).
			ExecuteTo(&existing)
		return err
	})
	if err != nil {
		return apperrors.Wrap(err, "list existing drafts")
	}

	keep := make(map[string]bool, len(drafts))
	rows := make([]draftRow, len(drafts))
	for i, d := range drafts {
		keep[d.ID] = true
		rows[i] = draftToRow(userID, i, d)
	}

	if len(rows) > 0 {
		err = s.execute(func() error {
			_, _, err := s.client.From(tableDrafts).
				Upsert(rows, "id", "", "").
				Execute()
			return err
		})
		if err != nil {
			return apperrors.Wrap(err, "upsert drafts")
		}
	}

	var removed []string
	for _, r := range existing {
		if !keep[r.ID] {
			removed = append(removed, r.ID)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	err = s.execute(func() error {
		_, _, err := s.client.From(tableDrafts).
			Delete("", "").
			Eq("user_id", userID).
			In("id", removed).
			Execute()
		return err
	})
	return apperrors.Wrap(err, "delete removed drafts")
}
