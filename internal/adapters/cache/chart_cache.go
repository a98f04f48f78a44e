package cache

import (
	"fmt"
	"natal-chart-service/internal/domain"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ChartCache keeps recently computed charts in memory, keyed by birth input.
// Charts are deterministic for a given input and engine, so entries never expire;
// the least recently used one is evicted once the cache is full.
//
// Cached charts are shared between callers and must be treated as read-only.
type ChartCache struct {
	lru *lru.Cache[ChartKey, *domain.ChartResult]
}

func NewChartCache(size int) (*ChartCache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chart cache: size must be positive, got %d", size)
	}

	c, err := lru.New[ChartKey, *domain.ChartResult](size)
	if err != nil {
		return nil, fmt.Errorf("chart cache: %w", err)
	}

	return &ChartCache{lru: c}, nil
}

// ChartKey identifies a cached chart. Fields stay separate so that no
// character inside a name can make two inputs share a key.
type ChartKey struct {
	Date    string
	Time    string
	City    string
	Country string
}

// Key normalizes an input the same way the location lookup does: names are
// case-folded, date and time are taken verbatim after trimming.
func Key(in domain.BirthInput) ChartKey {
	return ChartKey{
		Date:    strings.TrimSpace(in.Date),
		Time:    strings.TrimSpace(in.Time),
		City:    strings.ToLower(in.City),
		Country: strings.ToLower(in.Country),
	}
}

func (c *ChartCache) Get(in domain.BirthInput) (*domain.ChartResult, bool) {
	return c.lru.Get(Key(in))
}

func (c *ChartCache) Put(in domain.BirthInput, chart *domain.ChartResult) {
	if chart == nil {
		return
	}
	c.lru.Add(Key(in), chart)
}

func (c *ChartCache) Len() int {
	return c.lru.Len()
}
