package cache

import (
	"github.com/matchd-cloud/matchd/internal/cache"
	"github.com/matchd-cloud/matchd/internal/registry"
)

// StatsResponse is the cache statistics payload. The job count is a
// derived view over the registry; neither store owns the other.
type StatsResponse struct {
	EntryCount int `json:"entry_count"`
	JobCount   int `json:"job_count"`
}

// ClearResponse acknowledges a cache flush.
type ClearResponse struct {
	Message      string `json:"message"`
	ItemsCleared int    `json:"items_cleared"`
}

// Service exposes cache maintenance operations.
type Service struct {
	cache    *cache.Cache
	registry *registry.Registry
}

func New(c *cache.Cache, reg *registry.Registry) *Service {
	return &Service{cache: c, registry: reg}
}

// Clear empties the fingerprint cache. Job records are untouched.
func (s *Service) Clear() *ClearResponse {
	return &ClearResponse{
		Message:      "cache cleared",
		ItemsCleared: s.cache.Clear(),
	}
}

// Stats recomputes the current counters on demand.
func (s *Service) Stats() *StatsResponse {
	return &StatsResponse{
		EntryCount: s.cache.Len(),
		JobCount:   s.registry.Len(),
	}
}
