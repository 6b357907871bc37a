package catalog

import (
	"context"

	"go.uber.org/zap"
)

// Service serves the read-only catalog views for one session.
type Service struct {
	repo  *Repository
	cache *SessionCache
	log   *zap.SugaredLogger
}

// NewService builds a service around repo with a fresh session cache.
func NewService(repo *Repository, log *zap.SugaredLogger) *Service {
	return &Service{repo: repo, cache: NewSessionCache(), log: log}
}

// Cache exposes the session cache for read-side consumers.
func (s *Service) Cache() *SessionCache { return s.cache }

// RefreshProducts re-fetches the catalog into the cache and returns the new
// snapshot. Racing refreshes resolve last-started-wins.
func (s *Service) RefreshProducts(ctx context.Context) ([]Product, error) {
	token := s.cache.Begin()
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if !s.cache.SetProducts(token, products) {
		s.log.Debugw("dropped stale product snapshot", "token", token)
		return s.cache.Products(), nil
	}
	return products, nil
}

// GetByID loads a single product and records it as the session's selection.
func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	s.cache.SetSelected(product)
	return product, nil
}
