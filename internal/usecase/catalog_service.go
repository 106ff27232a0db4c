package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/creditwise/backend/internal/domain"
)

const cardPoolCacheKey = "catalog:pool"

// CatalogService fronts the card repository with a cache and a static
// fallback set. Pool reads never fail: a dead database degrades to the
// fallback cards with a log line, not a user-visible error.
type CatalogService struct {
	repo     domain.CardRepository
	cache    domain.CacheRepository
	fallback []domain.Card
	cacheTTL time.Duration
}

// NewCatalogService creates the catalog service.
func NewCatalogService(repo domain.CardRepository, cache domain.CacheRepository, fallback []domain.Card, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		repo:     repo,
		cache:    cache,
		fallback: fallback,
		cacheTTL: cacheTTL,
	}
}

// Pool returns the full card pool for scoring: cache first, repository
// second, static fallback last. Only repository-sourced non-empty pools are
// cached so a transient outage does not pin the fallback set.
func (s *CatalogService) Pool(ctx context.Context) []domain.Card {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cardPoolCacheKey); err == nil {
			if cards, ok := cached.([]domain.Card); ok && len(cards) > 0 {
				return cards
			}
		}
	}

	if s.repo == nil {
		return s.fallback
	}

	cards, err := s.repo.List(ctx)
	if err != nil || len(cards) == 0 {
		if err != nil {
			log.Printf("[CATALOG] repository unavailable, using fallback pool: %v", err)
		} else {
			log.Printf("[CATALOG] repository returned empty pool, using fallback")
		}
		return s.fallback
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cardPoolCacheKey, cards, s.cacheTTL); err != nil {
			log.Printf("[CATALOG] failed to cache pool: %v", err)
		}
	}
	return cards
}

// List returns the catalog for the public listing endpoint. Same degradation
// policy as Pool.
func (s *CatalogService) List(ctx context.Context) []domain.Card {
	return s.Pool(ctx)
}

// GetByID looks a card up by id, falling back to the static set when the
// repository is unreachable.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	var err error
	if s.repo != nil {
		var card *domain.Card
		card, err = s.repo.GetByID(ctx, id)
		if err == nil {
			return card, nil
		}
		if errors.Is(err, domain.ErrCardNotFound) {
			return nil, err
		}
	}
	for _, fb := range s.fallback {
		if fb.ID == id {
			c := fb
			return &c, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card %s: %w", id, err)
	}
	return nil, domain.ErrCardNotFound
}

// Search filters the catalog. Search is admin/browse tooling, so repository
// errors surface instead of degrading to fallback data.
func (s *CatalogService) Search(ctx context.Context, filter domain.CardFilter) ([]domain.Card, error) {
	if s.repo == nil {
		return nil, domain.ErrCatalogUnavailable
	}
	cards, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("card search failed: %w", err)
	}
	return cards, nil
}

// Stats aggregates the current pool for the dashboard.
func (s *CatalogService) Stats(ctx context.Context) domain.CardStatistics {
	cards := s.Pool(ctx)

	stats := domain.CardStatistics{
		TotalCards:  len(cards),
		ByTier:      make(map[string]int),
		ByNetwork:   make(map[string]int),
		ByIssuer:    make(map[string]int),
		RewardTypes: make(map[string]int),
	}

	var joiningSum, annualSum int
	for _, c := range cards {
		if c.Tier != "" {
			stats.ByTier[c.Tier]++
		}
		if c.Network != "" {
			stats.ByNetwork[c.Network]++
		}
		if c.Issuer != "" {
			stats.ByIssuer[c.Issuer]++
		}
		if c.RewardType != "" {
			stats.RewardTypes[c.RewardType]++
		}
		joiningSum += c.JoiningFee
		annualSum += c.AnnualFee
	}
	if len(cards) > 0 {
		stats.AvgJoining = float64(joiningSum) / float64(len(cards))
		stats.AvgAnnual = float64(annualSum) / float64(len(cards))
	}
	return stats
}

// Create inserts a card and invalidates the cached pool.
func (s *CatalogService) Create(ctx context.Context, card domain.Card) (*domain.Card, error) {
	if s.repo == nil {
		return nil, domain.ErrCatalogUnavailable
	}
	created, err := s.repo.Create(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

// Update replaces a card and invalidates the cached pool.
func (s *CatalogService) Update(ctx context.Context, id string, card domain.Card) (*domain.Card, error) {
	if s.repo == nil {
		return nil, domain.ErrCatalogUnavailable
	}
	updated, err := s.repo.Update(ctx, id, card)
	if err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update card %s: %w", id, err)
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete removes a card and invalidates the cached pool.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if s.repo == nil {
		return domain.ErrCatalogUnavailable
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

// DeleteAll wipes the catalog. Used by the admin reimport flow.
func (s *CatalogService) DeleteAll(ctx context.Context) error {
	if s.repo == nil {
		return domain.ErrCatalogUnavailable
	}
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cardPoolCacheKey); err != nil {
		log.Printf("[CATALOG] failed to invalidate pool cache: %v", err)
	}
}
