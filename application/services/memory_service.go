package services

import (
	"context"
	"sync"

	"github.com/RodCacioli/Authos-v2/application/ports"
	"github.com/RodCacioli/Authos-v2/domain"
	"github.com/RodCacioli/Authos-v2/pkg/auth"
	"github.com/RodCacioli/Authos-v2/pkg/observability"

	"go.uber.org/zap"
)

// MemoryService manages the user's memory bank. Writers prepend, so the
// local blob is always newest-first, matching the remote created_at ordering.
type MemoryService struct {
	local   ports.LocalStore
	remote  ports.RecordStore
	logger  *zap.Logger
	metrics *observability.Collector
	mu      sync.Mutex
}

// NewMemoryService creates a memory service. remote may be nil.
func NewMemoryService(local ports.LocalStore, remote ports.RecordStore, logger *zap.Logger) *MemoryService {
	return &MemoryService{local: local, remote: remote, logger: logger}
}

// SetMetrics installs the metrics collector. Optional; nil stays silent.
func (s *MemoryService) SetMetrics(m *observability.Collector) {
	s.metrics = m
}

// List returns all memories newest-first. An empty bank is an empty slice.
func (s *MemoryService) List(ctx context.Context, sess auth.Session) ([]domain.Memory, error) {
	key := scopedKey(keyMemories, sess)

	if sess.IsAuthenticated() && s.remote != nil {
		memories, err := s.remote.ListMemories(ctx, sess.UserID())
		if err != nil {
			s.logger.Warn("remote memory list failed, falling back to local",
				zap.String("user_id", sess.UserID()), zap.Error(err))
			recordFallback(s.metrics, "memories")
		} else if len(memories) > 0 {
			mirrorBlob(ctx, s.local, s.logger, key, memories)
			return memories, nil
		}
	}

	memories := []domain.Memory{}
	readBlob(ctx, s.local, s.logger, key, &memories)
	return memories, nil
}

// Add prepends the memory locally and inserts it remotely when a session
// exists. Returns the updated full list so callers can refresh UI state
// without a re-fetch.
func (s *MemoryService) Add(ctx context.Context, sess auth.Session, m domain.Memory) ([]domain.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := scopedKey(keyMemories, sess)
	memories := []domain.Memory{}
	readBlob(ctx, s.local, s.logger, key, &memories)

	updated := append([]domain.Memory{m}, memories...)
	if err := writeBlob(ctx, s.local, key, updated); err != nil {
		return nil, err
	}

	if sess.IsAuthenticated() && s.remote != nil {
		if err := s.remote.InsertMemory(ctx, sess.UserID(), m); err != nil {
			s.logger.Warn("remote memory insert failed",
				zap.String("user_id", sess.UserID()), zap.String("memory_id", m.ID), zap.Error(err))
		}
	}
	return updated, nil
}

// Update replaces the memory's mutable fields by id. ID, type and creation
// timestamp are immutable after creation; whatever the caller passes for
// those is ignored in favor of the stored values. An unknown id leaves the
// list unchanged.
func (s *MemoryService) Update(ctx context.Context, sess auth.Session, m domain.Memory) ([]domain.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := scopedKey(keyMemories, sess)
	memories := []domain.Memory{}
	readBlob(ctx, s.local, s.logger, key, &memories)

	merged := m
	for i := range memories {
		if memories[i].ID == m.ID {
			merged = memories[i]
			merged.Title = m.Title
			merged.Content = m.Content
			merged.Tags = m.Tags
			merged.EmotionalTone = m.EmotionalTone
			merged.UsageCount = m.UsageCount
			memories[i] = merged
			break
		}
	}
	if err := writeBlob(ctx, s.local, key, memories); err != nil {
		return nil, err
	}

	if sess.IsAuthenticated() && s.remote != nil {
		if err := s.remote.UpdateMemory(ctx, sess.UserID(), merged); err != nil {
			s.logger.Warn("remote memory update failed",
				zap.String("user_id", sess.UserID()), zap.String("memory_id", m.ID), zap.Error(err))
		}
	}
	return memories, nil
}

// Delete removes the memory by id. Deleting an unknown id is a no-op.
func (s *MemoryService) Delete(ctx context.Context, sess auth.Session, id string) ([]domain.Memory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := scopedKey(keyMemories, sess)
	memories := []domain.Memory{}
	readBlob(ctx, s.local, s.logger, key, &memories)

	updated := memories[:0:0]
	for _, m := range memories {
		if m.ID != id {
			updated = append(updated, m)
		}
	}
	if updated == nil {
		updated = []domain.Memory{}
	}
	if err := writeBlob(ctx, s.local, key, updated); err != nil {
		return nil, err
	}

	if sess.IsAuthenticated() && s.remote != nil {
		if err := s.remote.DeleteMemory(ctx, sess.UserID(), id); err != nil {
			s.logger.Warn("remote memory delete failed",
				zap.String("user_id", sess.UserID()), zap.String("memory_id", id), zap.Error(err))
		}
	}
	return updated, nil
}
