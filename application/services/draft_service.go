package services

import (
	"context"
	"sync"
	"time"

	"github.com/RodCacioli/Authos-v2/application/ports"
	"github.com/RodCacioli/Authos-v2/domain"
	"github.com/RodCacioli/Authos-v2/pkg/auth"
	"github.com/RodCacioli/Authos-v2/pkg/observability"

	"go.uber.org/zap"
)

// DraftService manages content drafts. Saving is a full replace of the
// collection: callers compute the new array (replace-if-id-matches-else-
// prepend) and hand the whole thing over.
type DraftService struct {
	local   ports.LocalStore
	remote  ports.RecordStore
	logger  *zap.Logger
	metrics *observability.Collector
	mu      sync.Mutex
}

// NewDraftService creates a draft service. remote may be nil.
func NewDraftService(local ports.LocalStore, remote ports.RecordStore, logger *zap.Logger) *DraftService {
	return &DraftService{local: local, remote: remote, logger: logger}
}

// SetMetrics installs the metrics collector. Optional; nil stays silent.
func (s *DraftService) SetMetrics(m *observability.Collector) {
	s.metrics = m
}

// List returns the draft collection in its saved order.
func (s *DraftService) List(ctx context.Context, sess auth.Session) ([]domain.ContentDraft, error) {
	return s.load(ctx, sess)
}

// load is the remote-then-local read used by List and by the locked
// read-modify-write cycles.
func (s *DraftService) load(ctx context.Context, sess auth.Session) ([]domain.ContentDraft, error) {
	key := scopedKey(keyDrafts, sess)

	if sess.IsAuthenticated() && s.remote != nil {
		drafts, err := s.remote.ListDrafts(ctx, sess.UserID())
		if err != nil {
			s.logger.Warn("remote draft list failed, falling back to local",
				zap.String("user_id", sess.UserID()), zap.Error(err))
			recordFallback(s.metrics, "drafts")
		} else if len(drafts) > 0 {
			mirrorBlob(ctx, s.local, s.logger, key, drafts)
			return drafts, nil
		}
	}

	drafts := []domain.ContentDraft{}
	readBlob(ctx, s.local, s.logger, key, &drafts)
	return drafts, nil
}

// SaveAll replaces the entire collection: overwrites the local blob and,
// when a session exists, upserts every row remotely and deletes the rows the
// array omits. Omission from the array IS deletion.
func (s *DraftService) SaveAll(ctx context.Context, sess auth.Session, drafts []domain.ContentDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveAllLocked(ctx, sess, drafts)
}

// saveAllLocked is SaveAll's body; callers must hold s.mu.
func (s *DraftService) saveAllLocked(ctx context.Context, sess auth.Session, drafts []domain.ContentDraft) error {
	if drafts == nil {
		drafts = []domain.ContentDraft{}
	}
	if err := writeBlob(ctx, s.local, scopedKey(keyDrafts, sess), drafts); err != nil {
		return err
	}

	if sess.IsAuthenticated() && s.remote != nil {
		if err := s.remote.ReplaceDrafts(ctx, sess.UserID(), drafts); err != nil {
			s.logger.Warn("remote draft replace failed",
				zap.String("user_id", sess.UserID()), zap.Int("count", len(drafts)), zap.Error(err))
		}
	}
	return nil
}

// Upsert is the replace-if-id-matches-else-prepend convenience over SaveAll.
// It stamps the draft's edit date and returns the saved collection. The whole
// read-modify-write cycle runs under the service lock so concurrent upserts
// cannot lose each other's writes.
func (s *DraftService) Upsert(ctx context.Context, sess auth.Session, d domain.ContentDraft) ([]domain.ContentDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}

	d.Date = time.Now().UTC().Format(time.RFC3339)
	replaced := false
	for i := range current {
		if current[i].ID == d.ID {
			current[i] = d
			replaced = true
			break
		}
	}
	if !replaced {
		current = append([]domain.ContentDraft{d}, current...)
	}

	if err := s.saveAllLocked(ctx, sess, current); err != nil {
		return nil, err
	}
	return current, nil
}

// PublishDue flips scheduled drafts whose scheduledDate has passed to
// published. The scheduler worker drives this; it reports how many drafts
// changed state. Runs under the service lock like every other cycle that
// rewrites the collection.
func (s *DraftService) PublishDue(ctx context.Context, sess auth.Session, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts, err := s.load(ctx, sess)
	if err != nil {
		return 0, err
	}

	published := 0
	for i := range drafts {
		if drafts[i].Status != domain.StatusScheduled || drafts[i].ScheduledDate == "" {
			continue
		}
		due, err := time.Parse(time.RFC3339, drafts[i].ScheduledDate)
		if err != nil {
			s.logger.Warn("unparseable scheduled date",
				zap.String("draft_id", drafts[i].ID), zap.String("scheduled_date", drafts[i].ScheduledDate))
			continue
		}
		if !due.After(now) {
			drafts[i].Status = domain.StatusPublished
			published++
		}
	}
	if published == 0 {
		return 0, nil
	}
	if err := s.saveAllLocked(ctx, sess, drafts); err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.DraftsPublished.Add(float64(published))
	}
	return published, nil
}
