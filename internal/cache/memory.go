package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
)

type memoryEntry struct {
	result     *calculations.ScheduleResult
	storedAt   time.Time
	expiration time.Time
}

// MemoryCache потокобезопасный кэш графиков в памяти процесса
type MemoryCache struct {
	mu       sync.RWMutex
	items    map[string]*memoryEntry
	maxItems int
	ttl      time.Duration
	now      func() time.Time

	hits   int64
	misses int64
}

// Stats статистика обращений к кэшу
type Stats struct {
	Items  int
	Hits   int64
	Misses int64
}

// NewMemoryCache создает кэш на maxItems записей; ttl <= 0 отключает истечение
func NewMemoryCache(maxItems int, ttl time.Duration) *MemoryCache {
	if maxItems <= 0 {
		maxItems = 1000
	}
	return &MemoryCache{
		items:    make(map[string]*memoryEntry),
		maxItems: maxItems,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get возвращает график по ключу
func (c *MemoryCache) Get(ctx context.Context, key string) (*calculations.ScheduleResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if ok && !entry.expiration.IsZero() && c.now().After(entry.expiration) {
		delete(c.items, key)
		ok = false
	}
	if !ok {
		c.misses++
		return nil, false
	}

	c.hits++
	return cloneSchedule(entry.result), true
}

// Set сохраняет график; при переполнении вытесняет самую старую запись
func (c *MemoryCache) Set(ctx context.Context, key string, result *calculations.ScheduleResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.evictOldest()
	}

	entry := &memoryEntry{result: cloneSchedule(result), storedAt: now}
	if c.ttl > 0 {
		entry.expiration = now.Add(c.ttl)
	}
	c.items[key] = entry
	return nil
}

// evictOldest вызывается под c.mu
func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range c.items {
		if oldestKey == "" || entry.storedAt.Before(oldest) {
			oldestKey, oldest = key, entry.storedAt
		}
	}
	delete(c.items, oldestKey)
}

// Stats возвращает текущую статистику
func (c *MemoryCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Items: len(c.items), Hits: c.hits, Misses: c.misses}
}

func cloneSchedule(result *calculations.ScheduleResult) *calculations.ScheduleResult {
	if result == nil {
		return nil
	}
	clone := *result
	if result.Periods != nil {
		clone.Periods = make([]calculations.PeriodRecord, len(result.Periods))
		copy(clone.Periods, result.Periods)
	}
	return &clone
}
