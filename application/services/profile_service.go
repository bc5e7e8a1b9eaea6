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

// ProfileService reads and writes the single per-user brand profile.
type ProfileService struct {
	local   ports.LocalStore
	remote  ports.RecordStore
	logger  *zap.Logger
	metrics *observability.Collector
	mu      sync.Mutex
}

// NewProfileService creates a profile service. remote may be nil when the
// record store is not configured; the service then operates local-only for
// every session.
func NewProfileService(local ports.LocalStore, remote ports.RecordStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{local: local, remote: remote, logger: logger}
}

// SetMetrics installs the metrics collector. Optional; nil stays silent.
func (s *ProfileService) SetMetrics(m *observability.Collector) {
	s.metrics = m
}

// Load returns the profile, or nil when none exists anywhere. Absence means
// "needs onboarding", never failure.
func (s *ProfileService) Load(ctx context.Context, sess auth.Session) (*domain.Profile, error) {
	key := scopedKey(keyProfile, sess)

	if sess.IsAuthenticated() && s.remote != nil {
		p, err := s.remote.GetProfile(ctx, sess.UserID())
		if err != nil {
			s.logger.Warn("remote profile fetch failed, falling back to local",
				zap.String("user_id", sess.UserID()), zap.Error(err))
			recordFallback(s.metrics, "profile")
		} else if p != nil {
			mirrorBlob(ctx, s.local, s.logger, key, p)
			return p, nil
		}
		// No remote row: fall through to the local copy.
	}

	var p domain.Profile
	if !readBlob(ctx, s.local, s.logger, key, &p) {
		return nil, nil
	}
	return &p, nil
}

// Store replaces the profile wholesale. The local write is the guaranteed
// part of the contract; the remote upsert is best effort.
func (s *ProfileService) Store(ctx context.Context, sess auth.Session, p domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeBlob(ctx, s.local, scopedKey(keyProfile, sess), p); err != nil {
		return err
	}

	if sess.IsAuthenticated() && s.remote != nil {
		if err := s.remote.UpsertProfile(ctx, sess.UserID(), p); err != nil {
			s.logger.Warn("remote profile upsert failed",
				zap.String("user_id", sess.UserID()), zap.Error(err))
		}
	}
	return nil
}
