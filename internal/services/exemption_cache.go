package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/types/business"
)

const exemptionCachePrefix = "exemption:v1"

// Tag prefixes for exemption record identifiers.
const (
	CacheTagStatusCard = "card"
	CacheTagBand       = "band"
	CacheTagTreaty     = "treaty"
)

// ExemptionCacheKey keys a decision by buyer and jurisdiction plus a digest of
// the evidence, since the same buyer may present different claims.
func ExemptionCacheKey(claim business.ExemptionClaim) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%t",
		claim.StatusCardNumber, claim.BandNumber, claim.TreatyNumber, claim.OnReserveDelivery)
	digest := hex.EncodeToString(h.Sum(nil))[:16]
	return fmt.Sprintf("%s:%s:%s:%s", exemptionCachePrefix, claim.BuyerID,
		strings.ToUpper(claim.Jurisdiction), digest)
}

// ExemptionCacheTags lists the record identifiers a decision depends on.
func ExemptionCacheTags(claim business.ExemptionClaim) []string {
	tags := make([]string, 0, 3)
	if claim.StatusCardNumber != "" {
		tags = append(tags, CacheTag(CacheTagStatusCard, claim.StatusCardNumber))
	}
	if claim.BandNumber != "" {
		tags = append(tags, CacheTag(CacheTagBand, claim.BandNumber))
	}
	if claim.TreatyNumber != "" {
		tags = append(tags, CacheTag(CacheTagTreaty, claim.TreatyNumber))
	}
	return tags
}

// CacheTag builds the invalidation tag for one record identifier.
func CacheTag(kind, id string) string {
	return kind + ":" + id
}

// NoopExemptionCache never stores anything.
type NoopExemptionCache struct{}

func (NoopExemptionCache) Lookup(ctx context.Context, key string, tags []string) (*business.ExemptionDecision, interfaces.CacheStamp, error) {
	return nil, interfaces.CacheStamp{}, nil
}

func (NoopExemptionCache) Store(ctx context.Context, key string, stamp interfaces.CacheStamp, decision business.ExemptionDecision, ttl time.Duration) error {
	return nil
}

func (NoopExemptionCache) Invalidate(ctx context.Context, key string) error { return nil }

func (NoopExemptionCache) InvalidateTag(ctx context.Context, tag string) error { return nil }

type memoryCacheEntry struct {
	decision  business.ExemptionDecision
	stamp     interfaces.CacheStamp
	expiresAt time.Time
}

// MemoryExemptionCache is an in-process ExemptionCache.
type MemoryExemptionCache struct {
	mu          sync.Mutex
	entries     map[string]memoryCacheEntry
	generations map[string]int64
	now         func() time.Time
}

// NewMemoryExemptionCache creates an empty in-process cache.
func NewMemoryExemptionCache() *MemoryExemptionCache {
	return &MemoryExemptionCache{
		entries:     make(map[string]memoryCacheEntry),
		generations: make(map[string]int64),
		now:         time.Now,
	}
}

func (c *MemoryExemptionCache) currentStamp(tags []string) interfaces.CacheStamp {
	stamp := make(interfaces.CacheStamp, len(tags))
	for _, tag := range tags {
		stamp[tag] = c.generations[tag]
	}
	return stamp
}

// Lookup returns a live entry whose tag generations are unchanged.
func (c *MemoryExemptionCache) Lookup(ctx context.Context, key string, tags []string) (*business.ExemptionDecision, interfaces.CacheStamp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stamp := c.currentStamp(tags)
	entry, ok := c.entries[key]
	if !ok {
		return nil, stamp, nil
	}
	if !c.now().Before(entry.expiresAt) || !stampsEqual(entry.stamp, stamp) {
		delete(c.entries, key)
		return nil, stamp, nil
	}
	decision := entry.decision
	return &decision, stamp, nil
}

// Store saves a decision computed under stamp. It is dropped if a tag was
// invalidated since the stamp was taken.
func (c *MemoryExemptionCache) Store(ctx context.Context, key string, stamp interfaces.CacheStamp, decision business.ExemptionDecision, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	tags := make([]string, 0, len(stamp))
	for tag := range stamp {
		tags = append(tags, tag)
	}
	if !stampsEqual(stamp, c.currentStamp(tags)) {
		return nil
	}
	c.entries[key] = memoryCacheEntry{decision: decision, stamp: stamp, expiresAt: c.now().Add(ttl)}
	return nil
}

// Invalidate drops a single entry.
func (c *MemoryExemptionCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// InvalidateTag bumps the tag generation, staling every entry stamped with it.
func (c *MemoryExemptionCache) InvalidateTag(ctx context.Context, tag string) error {
	c.mu.Lock()
	c.generations[tag]++
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, live or not.
func (c *MemoryExemptionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func stampsEqual(a, b interfaces.CacheStamp) bool {
	if len(a) != len(b) {
		return false
	}
	for tag, gen := range a {
		if other, ok := b[tag]; !ok || other != gen {
			return false
		}
	}
	return true
}
