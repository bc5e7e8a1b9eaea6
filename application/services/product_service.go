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

// ProductService manages the user's product catalog with the same
// local-first, best-effort-remote contract as memories.
type ProductService struct {
	local   ports.LocalStore
	remote  ports.RecordStore
	logger  *zap.Logger
	metrics *observability.Collector
	mu      sync.Mutex
}

// NewProductService creates a product service. remote may be nil.
func NewProductService(local ports.LocalStore, remote ports.RecordStore, logger *zap.Logger) *ProductService {
	return &ProductService{local: local, remote: remote, logger: logger}
}

// SetMetrics installs the metrics collector. Optional; nil stays silent.
func (s *ProductService) SetMetrics(m *observability.Collector) {
	s.metrics = m
}

// List returns all products, newest-first.
func (s *ProductService) List(ctx context.Context, sess auth.Session) ([]domain.Product, error) {
	key := scopedKey(keyProducts, sess)

	if sess.IsAuthenticated() && s.remote != nil {
		products, err := s.remote.ListProducts(ctx, sess.UserID())
		if err != nil {
			s.logger.Warn("remote product list failed, falling back to local",
				zap.String("user_id", sess.UserID()), zap.Error(err))
			recordFallback(s.metrics, "products")
		} else if len(products) > 0 {
			mirrorBlob(ctx, s.local, s.logger, key, products)
			return products, nil
		}
	}

	products := []domain.Product{}
	readBlob(ctx, s.local, s.logger, key, &products)
	return products, nil
}

// Add prepends the product locally and inserts it remotely.
func (s *ProductService) Add(ctx context.Context, sess auth.Session, p domain.Product) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := scopedKey(keyProducts, sess)
	products := []domain.Product{}
	readBlob(ctx, s.local, s.logger, key, &products)

	updated := append([]domain.Product{p}, products...)
	if err := writeBlob(ctx, s.local, key, updated); err != nil {
		return nil, err
	}

	if sess.IsAuthenticated() && s.remote != nil {
		if err := s.remote.InsertProduct(ctx, sess.UserID(), p); err != nil {
			s.logger.Warn("remote product insert failed",
				zap.String("user_id", sess.UserID()), zap.String("product_id", p.ID), zap.Error(err))
		}
	}
	return updated, nil
}

// Update replaces the product by id. Unlike memories, the whole record is
// mutable apart from the id itself.
func (s *ProductService) Update(ctx context.Context, sess auth.Session, p domain.Product) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := scopedKey(keyProducts, sess)
	products := []domain.Product{}
	readBlob(ctx, s.local, s.logger, key, &products)

	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
			break
		}
	}
	if err := writeBlob(ctx, s.local, key, products); err != nil {
		return nil, err
	}

	if sess.IsAuthenticated() && s.remote != nil {
		if err := s.remote.UpdateProduct(ctx, sess.UserID(), p); err != nil {
			s.logger.Warn("remote product update failed",
				zap.String("user_id", sess.UserID()), zap.String("product_id", p.ID), zap.Error(err))
		}
	}
	return products, nil
}

// Delete removes the product by id. Deleting an unknown id is a no-op.
func (s *ProductService) Delete(ctx context.Context, sess auth.Session, id string) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := scopedKey(keyProducts, sess)
	products := []domain.Product{}
	readBlob(ctx, s.local, s.logger, key, &products)

	updated := products[:0:0]
	for _, p := range products {
		if p.ID != id {
			updated = append(updated, p)
		}
	}
	if updated == nil {
		updated = []domain.Product{}
	}
	if err := writeBlob(ctx, s.local, key, updated); err != nil {
		return nil, err
	}

	if sess.IsAuthenticated() && s.remote != nil {
		if err := s.remote.DeleteProduct(ctx, sess.UserID(), id); err != nil {
			s.logger.Warn("remote product delete failed",
				zap.String("user_id", sess.UserID()), zap.String("product_id", id), zap.Error(err))
		}
	}
	return updated, nil
}
