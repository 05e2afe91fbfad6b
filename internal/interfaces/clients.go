package interfaces

import (
	"context"
	"time"

	"github.com/unations/tax-engine/internal/types/business"
)

//go:generate mockgen -source=clients.go -destination=../mocks/mock_clients.go -package=mocks

// CacheStamp records the invalidation generation of every tag an entry
// depends on at the moment resolution started.
type CacheStamp map[string]int64

// ExemptionCache is an advisory cache of exemption decisions. An entry is only
// returned while every tag generation still matches its stamp.
type ExemptionCache interface {
	// Lookup returns the cached decision, if any, and the current stamp of tags.
	Lookup(ctx context.Context, key string, tags []string) (*business.ExemptionDecision, CacheStamp, error)
	Store(ctx context.Context, key string, stamp CacheStamp, decision business.ExemptionDecision, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
	InvalidateTag(ctx context.Context, tag string) error
}

// FilingGateway submits a return to the tax authority and returns its confirmation token
type FilingGateway interface {
	Submit(ctx context.Context, taxReturn business.TaxReturn) (string, error)
}

// ReturnRequestPublisher queues period-close requests for asynchronous preparation
type ReturnRequestPublisher interface {
	PublishReturnRequest(ctx context.Context, req business.ReturnRequest) error
}
