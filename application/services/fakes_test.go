package services

import (
	"context"
	"errors"
	"sync"

	"github.com/RodCacioli/Authos-v2/domain"
)

// fakeLocalStore is an in-memory LocalStore. Set failSet or failGet to make
// the corresponding operation error.
type fakeLocalStore struct {
	mu      sync.Mutex
	data    map[string]string
	failGet bool
	failSet bool
}

func newFakeLocalStore() *fakeLocalStore {
	return &fakeLocalStore{data: make(map[string]string)}
}

func (f *fakeLocalStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return "", false, errors.New("local store unavailable")
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeLocalStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet {
		return errors.New("local store unavailable")
	}
	f.data[key] = value
	return nil
}

func (f *fakeLocalStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

// fakeRecordStore is an in-memory RecordStore keyed by user id. Setting err
// makes every operation fail, simulating an unreachable backend.
type fakeRecordStore struct {
	mu       sync.Mutex
	err      error
	profiles map[string]domain.Profile
	memories map[string][]domain.Memory
	products map[string][]domain.Product
	drafts   map[string][]domain.ContentDraft

	replaceCalls int
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		profiles: make(map[string]domain.Profile),
		memories: make(map[string][]domain.Memory),
		products: make(map[string][]domain.Product),
		drafts:   make(map[string][]domain.ContentDraft),
	}
}

func (f *fakeRecordStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeRecordStore) UpsertProfile(ctx context.Context, userID string, p domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.profiles[userID] = p
	return nil
}

func (f *fakeRecordStore) ListMemories(ctx context.Context, userID string) ([]domain.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Memory(nil), f.memories[userID]...), nil
}

func (f *fakeRecordStore) InsertMemory(ctx context.Context, userID string, m domain.Memory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.memories[userID] = append([]domain.Memory{m}, f.memories[userID]...)
	return nil
}

func (f *fakeRecordStore) UpdateMemory(ctx context.Context, userID string, m domain.Memory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	list := f.memories[userID]
	for i := range list {
		if list[i].ID == m.ID {
			list[i].Title = m.Title
			list[i].Content = m.Content
			list[i].Tags = m.Tags
			list[i].EmotionalTone = m.EmotionalTone
			list[i].UsageCount = m.UsageCount
		}
	}
	return nil
}

func (f *fakeRecordStore) DeleteMemory(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	list := f.memories[userID][:0:0]
	for _, m := range f.memories[userID] {
		if m.ID != id {
			list = append(list, m)
		}
	}
	f.memories[userID] = list
	return nil
}

func (f *fakeRecordStore) ListProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Product(nil), f.products[userID]...), nil
}

func (f *fakeRecordStore) InsertProduct(ctx context.Context, userID string, p domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.products[userID] = append([]domain.Product{p}, f.products[userID]...)
	return nil
}

func (f *fakeRecordStore) UpdateProduct(ctx context.Context, userID string, p domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	list := f.products[userID]
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = p
		}
	}
	return nil
}

func (f *fakeRecordStore) DeleteProduct(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	list := f.products[userID][:0:0]
	for _, p := range f.products[userID] {
		if p.ID != id {
			list = append(list, p)
		}
	}
	f.products[userID] = list
	return nil
}

func (f *fakeRecordStore) ListDrafts(ctx context.Context, userID string) ([]domain.ContentDraft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.ContentDraft(nil), f.drafts[userID]...), nil
}

func (f *fakeRecordStore) ReplaceDrafts(ctx context.Context, userID string, drafts []domain.ContentDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.replaceCalls++
	f.drafts[userID] = append([]domain.ContentDraft(nil), drafts...)
	return nil
}
