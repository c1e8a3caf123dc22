package service

import (
	"context"
	"fmt"
	"sync"

	"sendika-backend/internal/domain"
	"sendika-backend/internal/repository"
)

// cachedLookupGateway fronts the reference-data tables with an in-process
// cache. Reference rows change rarely; entries live for the process
// lifetime. Negative results are not cached so a freshly added branch shows
// up on the next render.
type cachedLookupGateway struct {
	repo repository.LookupRepository

	mu    sync.RWMutex
	names map[string]string
}

func NewCachedLookupGateway(repo repository.LookupRepository) domain.LookupGateway {
	return &cachedLookupGateway{
		repo:  repo,
		names: make(map[string]string),
	}
}

func (g *cachedLookupGateway) resolve(ctx context.Context, kind string, id int32, fn func(context.Context, int32) (string, error)) (string, error) {
	key := fmt.Sprintf("%s:%d", kind, id)

	g.mu.RLock()
	name, ok := g.names[key]
	g.mu.RUnlock()
	if ok {
		return name, nil
	}

	name, err := fn(ctx, id)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	g.names[key] = name
	g.mu.Unlock()
	return name, nil
}

func (g *cachedLookupGateway) RegionName(ctx context.Context, id int32) (string, error) {
	return g.resolve(ctx, "region", id, g.repo.RegionName)
}

func (g *cachedLookupGateway) BranchName(ctx context.Context, id int32) (string, error) {
	return g.resolve(ctx, "branch", id, g.repo.BranchName)
}

func (g *cachedLookupGateway) InstitutionName(ctx context.Context, id int32) (string, error) {
	return g.resolve(ctx, "institution", id, g.repo.InstitutionName)
}

func (g *cachedLookupGateway) TevkifatCenterName(ctx context.Context, id int32) (string, error) {
	return g.resolve(ctx, "tevkifat_center", id, g.repo.TevkifatCenterName)
}
