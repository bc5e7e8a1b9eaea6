package observability

import (
	"context"

	"github.com/RodCacioli/Authos-v2/application/ports"
	"github.com/RodCacioli/Authos-v2/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TraceRecordStore wraps a record store so every remote call produces a span.
func TraceRecordStore(store ports.RecordStore, tracer trace.Tracer) ports.RecordStore {
	return &tracedRecordStore{inner: store, tracer: tracer}
}

type tracedRecordStore struct {
	inner  ports.RecordStore
	tracer trace.Tracer
}

func (s *tracedRecordStore) span(ctx context.Context, name, userID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name,
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
}

func (s *tracedRecordStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, span := s.span(ctx, "recordstore.GetProfile", userID)
	defer span.End()

	profile, err := s.inner.GetProfile(ctx, userID)
	if err != nil {
		span.RecordError(err)
	}
	return profile, err
}

func (s *tracedRecordStore) UpsertProfile(ctx context.Context, userID string, p domain.Profile) error {
	ctx, span := s.span(ctx, "recordstore.UpsertProfile", userID)
	defer span.End()

	err := s.inner.UpsertProfile(ctx, userID, p)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (s *tracedRecordStore) ListMemories(ctx context.Context, userID string) ([]domain.Memory, error) {
	ctx, span := s.span(ctx, "recordstore.ListMemories", userID)
	defer span.End()

	memories, err := s.inner.ListMemories(ctx, userID)
	if err != nil {
		span.RecordError(err)
	}
	return memories, err
}

func (s *tracedRecordStore) InsertMemory(ctx context.Context, userID string, m domain.Memory) error {
	ctx, span := s.tracer.Start(ctx, "recordstore.InsertMemory",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("memory.id", m.ID),
		),
	)
	defer span.End()

	err := s.inner.InsertMemory(ctx, userID, m)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (s *tracedRecordStore) UpdateMemory(ctx context.Context, userID string, m domain.Memory) error {
	ctx, span := s.tracer.Start(ctx, "recordstore.UpdateMemory",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("memory.id", m.ID),
		),
	)
	defer span.End()

	err := s.inner.UpdateMemory(ctx, userID, m)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (s *tracedRecordStore) DeleteMemory(ctx context.Context, userID, id string) error {
	ctx, span := s.tracer.Start(ctx, "recordstore.DeleteMemory",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("memory.id", id),
		),
	)
	defer span.End()

	err := s.inner.DeleteMemory(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (s *tracedRecordStore) ListProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	ctx, span := s.span(ctx, "recordstore.ListProducts", userID)
	defer span.End()

	products, err := s.inner.ListProducts(ctx, userID)
	if err != nil {
		span.RecordError(err)
	}
	return products, err
}

func (s *tracedRecordStore) InsertProduct(ctx context.Context, userID string, p domain.Product) error {
	ctx, span := s.span(ctx, "recordstore.InsertProduct", userID)
	defer span.End()

	err := s.inner.InsertProduct(ctx, userID, p)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (s *tracedRecordStore) UpdateProduct(ctx context.Context, userID string, p domain.Product) error {
	ctx, span := s.span(ctx, "recordstore.UpdateProduct", userID)
	defer span.End()

	err := s.inner.UpdateProduct(ctx, userID, p)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (s *tracedRecordStore) DeleteProduct(ctx context.Context, userID, id string) error {
	ctx, span := s.span(ctx, "recordstore.DeleteProduct", userID)
	defer span.End()

	err := s.inner.DeleteProduct(ctx, userID, id)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (s *tracedRecordStore) ListDrafts(ctx context.Context, userID string) ([]domain.ContentDraft, error) {
	ctx, span := s.span(ctx, "recordstore.ListDrafts", userID)
	defer span.End()

	drafts, err := s.inner.ListDrafts(ctx, userID)
	if err != nil {
		span.RecordError(err)
	}
	return drafts, err
}

func (s *tracedRecordStore) ReplaceDrafts(ctx context.Context, userID string, drafts []domain.ContentDraft) error {
	ctx, span := s.tracer.Start(ctx, "recordstore.ReplaceDrafts",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("count", len(drafts)),
		),
	)
	defer span.End()

	err := s.inner.ReplaceDrafts(ctx, userID, drafts)
	if err != nil {
		span.RecordError(err)
	}
	return err
}
