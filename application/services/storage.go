// Package services implements the application's entity access layer: a
// façade over the local key-value store and the hosted record store that
// keeps the two from observably diverging. Every operation resolves the
// session first and dispatches on it; writes always land locally before any
// remote call, and remote failures are logged and swallowed.
package services

import (
	"context"
	"encoding/json"

	"github.com/RodCacioli/Authos-v2/application/ports"
	"github.com/RodCacioli/Authos-v2/pkg/auth"
	"github.com/RodCacioli/Authos-v2/pkg/observability"

	"go.uber.org/zap"
)

// Local storage keys, mirroring the original browser database keys.
const (
	keyProfile  = "authos_db_profile"
	keyMemories = "authos_db_memories"
	keyProducts = "authos_db_products"
	keyDrafts   = "authos_db_drafts"
	keyChat     = "authos_db_chat_history"
)

// scopedKey suffixes the blob key with the user id in authenticated mode so
// mirrors for different accounts on one device do not collide.
func scopedKey(base string, s auth.Session) string {
	if s.IsAuthenticated() {
		return base + ":" + s.UserID()
	}
	return base
}

// readBlob parses the JSON blob under key into out. Absence and corrupt
// blobs both leave out untouched and return false; neither is an error.
func readBlob(ctx context.Context, local ports.LocalStore, logger *zap.Logger, key string, out any) bool {
	raw, ok, err := local.Get(ctx, key)
	if err != nil {
		logger.Warn("local store read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// Corrupt blob behaves as absent.
		logger.Warn("local blob unreadable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// writeBlob serializes v and stores it under key. The local store is the
// durable fallback of record, so a failure here is surfaced to the caller.
func writeBlob(ctx context.Context, local ports.LocalStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return local.Set(ctx, key, string(raw))
}

// recordFallback counts a read served locally after a remote failure. The
// collector is optional; services created without one stay silent.
func recordFallback(m *observability.Collector, collection string) {
	if m != nil {
		m.RemoteFallbacks.WithLabelValues(collection).Inc()
	}
}

// mirrorBlob is writeBlob for the remote-read mirror path, where a local
// write failure must not disturb the result already in hand.
func mirrorBlob(ctx context.Context, local ports.LocalStore, logger *zap.Logger, key string, v any) {
	if err := writeBlob(ctx, local, key, v); err != nil {
		logger.Warn("local mirror write failed", zap.String("key", key), zap.Error(err))
	}
}

// ClearAll removes every entity blob for the session's scope (hard reset).
func ClearAll(ctx context.Context, local ports.LocalStore, sess auth.Session) error {
	for _, base := range []string{keyProfile, keyMemories, keyProducts, keyDrafts, keyChat} {
		if err := local.Remove(ctx, scopedKey(base, sess)); err != nil {
			return err
		}
	}
	return nil
}
