package services

import (
	"context"
	"sync"

	"github.com/RodCacioli/Authos-v2/application/ports"
	"github.com/RodCacioli/Authos-v2/domain"
	"github.com/RodCacioli/Authos-v2/pkg/auth"

	"go.uber.org/zap"
)

// ChatService persists the assistant conversation. Chat history has no
// remote counterpart in this design: it lives only in the local store and is
// clearable in bulk.
type ChatService struct {
	local  ports.LocalStore
	logger *zap.Logger
	mu     sync.Mutex
}

// NewChatService creates a chat history service.
func NewChatService(local ports.LocalStore, logger *zap.Logger) *ChatService {
	return &ChatService{local: local, logger: logger}
}

// Load returns the conversation in append order.
func (s *ChatService) Load(ctx context.Context, sess auth.Session) ([]domain.ChatMessage, error) {
	messages := []domain.ChatMessage{}
	readBlob(ctx, s.local, s.logger, scopedKey(keyChat, sess), &messages)
	return messages, nil
}

// Store overwrites the conversation with the given messages.
func (s *ChatService) Store(ctx context.Context, sess auth.Session, messages []domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	return writeBlob(ctx, s.local, scopedKey(keyChat, sess), messages)
}

// Append adds messages to the end of the conversation and returns the
// updated history.
func (s *ChatService) Append(ctx context.Context, sess auth.Session, messages ...domain.ChatMessage) ([]domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := scopedKey(keyChat, sess)
	history := []domain.ChatMessage{}
	readBlob(ctx, s.local, s.logger, key, &history)

	history = append(history, messages...)
	if err := writeBlob(ctx, s.local, key, history); err != nil {
		return nil, err
	}
	return history, nil
}

// Clear wipes the conversation.
func (s *ChatService) Clear(ctx context.Context, sess auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local.Remove(ctx, scopedKey(keyChat, sess))
}
