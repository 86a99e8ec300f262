package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultMemoryCacheSize is the default maximum memory footprint of the
// in-process region cache (16 MB).
const DefaultMemoryCacheSize = 16 * 1024 * 1024

// entryOverhead approximates the bookkeeping cost of one cache entry
// beyond its encoded payload.
const entryOverhead = 64

// MemoryCache keeps recently used encoded entries in memory in front of
// the on-disk store. Eviction is size-aware: large, rarely hit entries
// go first.
type MemoryCache struct {
	mu          sync.Mutex
	entries     map[string]*memEntry
	head        *memEntry // Most recently used.
	tail        *memEntry // Least recently used.
	maxSize     int64
	currentSize int64

	// Hit counters are atomic so Stats never contends with Get.
	hits   atomic.Int64
	misses atomic.Int64
}

// memEntry is a doubly-linked list node for LRU tracking.
type memEntry struct {
	key         string
	data        []byte
	size        int64
	accessCount int64
	prev        *memEntry
	next        *memEntry
}

// evictionCost scores an entry for eviction. Lower cost means a better
// victim: big payloads with few hits score lowest.
func (e *memEntry) evictionCost() float64 {
	if e.size == 0 {
		return float64(e.accessCount)
	}

	sizeKB := float64(e.size) / 1024
	if sizeKB < 1 {
		sizeKB = 1
	}

	return float64(e.accessCount) / sizeKB
}

// NewMemoryCache creates a memory cache bounded to maxSize bytes.
// Non-positive sizes fall back to DefaultMemoryCacheSize.
func NewMemoryCache(maxSize int64) *MemoryCache {
	if maxSize <= 0 {
		maxSize = DefaultMemoryCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*memEntry),
		maxSize: maxSize,
	}
}

// Get returns the encoded entry for key, or nil on a miss.
func (c *MemoryCache) Get(key string) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)

		return nil
	}

	c.hits.Add(1)

	entry.accessCount++
	c.moveToFront(entry)

	return entry.data
}

// Put stores an encoded entry under key, evicting as needed. Payloads
// larger than the whole cache are not stored.
func (c *MemoryCache) Put(key string, data []byte) {
	size := int64(len(data)) + entryOverhead
	if size > c.maxSize {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		entry.accessCount++
		c.moveToFront(entry)

		return
	}

	for c.currentSize+size > c.maxSize && c.tail != nil {
		c.evictLowestCost()
	}

	entry := &memEntry{
		key:         key,
		data:        data,
		size:        size,
		accessCount: 1,
	}

	c.entries[key] = entry
	c.currentSize += size
	c.addToFront(entry)
}

// Clear removes all entries.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*memEntry)
	c.head = nil
	c.tail = nil
	c.currentSize = 0
}

// MemoryStats holds cache performance counters.
type MemoryStats struct {
	Hits        int64
	Misses      int64
	Entries     int
	CurrentSize int64
	MaxSize     int64
}

// HitRate returns the hit fraction, 0 when the cache is untouched.
func (s MemoryStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// Stats returns a snapshot of the counters.
func (c *MemoryCache) Stats() MemoryStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return MemoryStats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Entries:     len(c.entries),
		CurrentSize: c.currentSize,
		MaxSize:     c.maxSize,
	}
}

func (c *MemoryCache) moveToFront(entry *memEntry) {
	if entry == c.head {
		return
	}

	c.removeFromList(entry)
	c.addToFront(entry)
}

func (c *MemoryCache) addToFront(entry *memEntry) {
	entry.prev = nil
	entry.next = c.head

	if c.head != nil {
		c.head.prev = entry
	}

	c.head = entry

	if c.tail == nil {
		c.tail = entry
	}
}

func (c *MemoryCache) removeFromList(entry *memEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}

	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
}

// evictionSampleSize bounds the tail scan per eviction.
const evictionSampleSize = 5

// evictLowestCost removes the cheapest entry among a sample taken from
// the LRU tail, so one eviction never scans the whole list.
func (c *MemoryCache) evictLowestCost() {
	if c.tail == nil {
		return
	}

	var candidates [evictionSampleSize]*memEntry

	count := 0

	for entry := c.tail; entry != nil && count < evictionSampleSize; entry = entry.prev {
		candidates[count] = entry
		count++
	}

	victim := candidates[0]
	lowestCost := victim.evictionCost()

	for i := 1; i < count; i++ {
		if cost := candidates[i].evictionCost(); cost < lowestCost {
			lowestCost = cost
			victim = candidates[i]
		}
	}

	c.removeFromList(victim)
	delete(c.entries, victim.key)
	c.currentSize -= victim.size
}
