package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
)

const (
	DefaultExemptionCacheTTL = 5 * time.Minute
	DefaultStoreTimeout      = 3 * time.Second
	maxTreatyNumber          = 11
)

var (
	statusCardPattern = regexp.MustCompile(`^\d{10}$`)
	bandNumberPattern = regexp.MustCompile(`^\d{1,5}$`)
	treatyPattern     = regexp.MustCompile(`^(?:T|TREATY\s*(?:NO\.?)?\s*)?(\d{1,2})$`)
	cardSeparators    = strings.NewReplacer(" ", "", "-", "")
)

// NormalizeClaim validates the identifier formats of a claim and returns its
// canonical form. Malformed identifiers are reported per field.
func NormalizeClaim(claim business.ExemptionClaim) (business.ExemptionClaim, error) {
	var fields []taxerr.FieldError

	claim.BuyerID = strings.TrimSpace(claim.BuyerID)
	claim.Jurisdiction = normalizeJurisdiction(claim.Jurisdiction)

	if claim.StatusCardNumber = cardSeparators.Replace(strings.TrimSpace(claim.StatusCardNumber)); claim.StatusCardNumber != "" {
		if !statusCardPattern.MatchString(claim.StatusCardNumber) {
			fields = append(fields, taxerr.FieldError{Field: "status_card_number", Message: "must be a 10 digit registration number"})
		}
	}

	if claim.BandNumber = strings.TrimSpace(claim.BandNumber); claim.BandNumber != "" {
		if !bandNumberPattern.MatchString(claim.BandNumber) {
			fields = append(fields, taxerr.FieldError{Field: "band_number", Message: "must be 1 to 5 digits"})
		} else {
			n, _ := strconv.Atoi(claim.BandNumber)
			claim.BandNumber = strconv.Itoa(n)
		}
	}

	if treaty := strings.ToUpper(strings.TrimSpace(claim.TreatyNumber)); treaty != "" {
		m := treatyPattern.FindStringSubmatch(treaty)
		n := 0
		if m != nil {
			n, _ = strconv.Atoi(m[1])
		}
		if n < 1 || n > maxTreatyNumber {
			fields = append(fields, taxerr.FieldError{Field: "treaty_number", Message: "must name a numbered treaty from 1 to 11, e.g. T6"})
		} else {
			claim.TreatyNumber = "T" + strconv.Itoa(n)
		}
	}

	if len(fields) > 0 {
		return claim, taxerr.InvalidExemptionClaim(fields...)
	}
	return claim, nil
}

// ExemptionResolver turns exemption claims into decisions, applying the
// status card, band purchase, treaty precedence.
type ExemptionResolver struct {
	records      interfaces.ExemptionRecordStore
	rates        interfaces.RateProvider
	relief       interfaces.ReliefPolicy
	cache        interfaces.ExemptionCache
	cacheTTL     time.Duration
	storeTimeout time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

// ExemptionResolverOption configures an ExemptionResolver
type ExemptionResolverOption func(*ExemptionResolver)

// WithExemptionCache enables decision caching with the given TTL.
func WithExemptionCache(cache interfaces.ExemptionCache, ttl time.Duration) ExemptionResolverOption {
	return func(r *ExemptionResolver) {
		r.cache = cache
		r.cacheTTL = ttl
	}
}

// WithResolverStoreTimeout bounds every record store lookup.
func WithResolverStoreTimeout(d time.Duration) ExemptionResolverOption {
	return func(r *ExemptionResolver) { r.storeTimeout = d }
}

// WithResolverClock overrides the evaluation instant source.
func WithResolverClock(now func() time.Time) ExemptionResolverOption {
	return func(r *ExemptionResolver) { r.now = now }
}

// NewExemptionResolver creates a resolver over the given record store and rate policy.
func NewExemptionResolver(records interfaces.ExemptionRecordStore, rates interfaces.RateProvider, relief interfaces.ReliefPolicy, opts ...ExemptionResolverOption) *ExemptionResolver {
	r := &ExemptionResolver{
		records:      records,
		rates:        rates,
		relief:       relief,
		cache:        NoopExemptionCache{},
		cacheTTL:     DefaultExemptionCacheTTL,
		storeTimeout: DefaultStoreTimeout,
		now:          time.Now,
		logger:       logger.ForComponent(logger.ComponentExemption),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve validates the claim and returns its decision. Only the first
// matching rule applies; a partial status-card exemption still lets a band
// purchase grant full relief.
func (r *ExemptionResolver) Resolve(ctx context.Context, claim business.ExemptionClaim) (business.ExemptionDecision, error) {
	claim, err := NormalizeClaim(claim)
	if err != nil {
		return business.ExemptionDecision{}, err
	}

	rates, ok := r.rates.GetRates(claim.Jurisdiction)
	if !ok {
		return business.ExemptionDecision{}, taxerr.UnknownJurisdiction(claim.Jurisdiction)
	}

	if !claim.HasIdentifiers() {
		return business.NoExemption("no exemption identifiers presented"), nil
	}

	cacheable := claim.BuyerID != ""
	key := ExemptionCacheKey(claim)
	var stamp interfaces.CacheStamp
	if cacheable {
		cached, s, err := r.cache.Lookup(ctx, key, ExemptionCacheTags(claim))
		switch {
		case err != nil:
			r.logger.Warn("Exemption cache lookup failed, resolving from store",
				zap.String("jurisdiction", claim.Jurisdiction),
				zap.Error(err))
			cacheable = false
		case cached != nil:
			return *cached, nil
		default:
			stamp = s
		}
	}

	now := r.now()
	decision, err := r.resolve(ctx, claim, rates, now)
	if err != nil {
		return business.ExemptionDecision{}, err
	}
	if err := decision.Validate(rates); err != nil {
		return business.ExemptionDecision{}, taxerr.InvariantViolation("exemption decision for %s: %v", claim.Jurisdiction, err)
	}

	r.logger.Debug("Resolved exemption",
		zap.String("jurisdiction", claim.Jurisdiction),
		zap.String("type", string(decision.Type)),
		zap.String("percentage", decision.Percentage().String()),
		zap.String("provenance", decision.Provenance))

	if cacheable {
		if err := r.cache.Store(ctx, key, stamp, decision, r.ttlFor(decision, now)); err != nil {
			r.logger.Warn("Failed to cache exemption decision", zap.Error(err))
		}
	}
	return decision, nil
}

func (r *ExemptionResolver) resolve(ctx context.Context, claim business.ExemptionClaim, rates business.JurisdictionRates, now time.Time) (business.ExemptionDecision, error) {
	var statusCard *business.ExemptionDecision
	var notes []string

	if claim.StatusCardNumber != "" {
		record, err := r.lookupStatusCard(ctx, claim.StatusCardNumber)
		switch {
		case err == nil && record.IsActiveAt(now):
			d := r.statusCardDecision(claim, rates, record)
			if d.IsFullyExempt() {
				return d, nil
			}
			statusCard = &d
		case err == nil:
			notes = append(notes, fmt.Sprintf("status card %s is %s", claim.StatusCardNumber, record.EffectiveStatus(now)))
		case errors.Is(err, taxerr.ErrNotFound):
			notes = append(notes, fmt.Sprintf("status card %s not registered", claim.StatusCardNumber))
		default:
			return business.ExemptionDecision{}, err
		}
	}

	if claim.BandNumber != "" {
		record, err := r.lookupBand(ctx, claim.BandNumber)
		switch {
		case err == nil && record.AppliesTo(claim.Jurisdiction, now):
			return business.ExemptionDecision{
				Relief:          business.FullRelief{TaxTypes: rates.ApplicableTaxTypes()},
				Type:            business.ExemptionTypeBandPurchase,
				Provenance:      fmt.Sprintf("band %s purchase (%s) in %s", record.BandNumber, record.BandName, claim.Jurisdiction),
				StatusCardValid: statusCard != nil,
				ValidUntil:      record.ValidUntil,
			}, nil
		case err == nil:
			notes = append(notes, fmt.Sprintf("band %s exemption does not apply in %s", claim.BandNumber, claim.Jurisdiction))
		case errors.Is(err, taxerr.ErrNotFound):
			notes = append(notes, fmt.Sprintf("band %s not registered", claim.BandNumber))
		default:
			return business.ExemptionDecision{}, err
		}
	}

	if statusCard != nil {
		return *statusCard, nil
	}

	if claim.TreatyNumber != "" {
		record, err := r.lookupTreaty(ctx, claim.TreatyNumber, claim.Jurisdiction)
		switch {
		case err == nil && record.IsActiveAt(now):
			return treatyDecision(claim, rates, record), nil
		case err == nil:
			notes = append(notes, fmt.Sprintf("treaty %s entry for %s is inactive", claim.TreatyNumber, claim.Jurisdiction))
		case errors.Is(err, taxerr.ErrNotFound):
			notes = append(notes, fmt.Sprintf("treaty %s has no entry for %s", claim.TreatyNumber, claim.Jurisdiction))
		default:
			return business.ExemptionDecision{}, err
		}
	}

	return business.NoExemption(strings.Join(notes, "; ")), nil
}

func (r *ExemptionResolver) statusCardDecision(claim business.ExemptionClaim, rates business.JurisdictionRates, record business.StatusCardRecord) business.ExemptionDecision {
	id := record.ExemptionID
	validUntil := record.ValidUntil
	decision := business.ExemptionDecision{
		Type:            business.ExemptionTypeIndigenousStatus,
		StatusCardValid: true,
		ExemptionID:     &id,
		ValidUntil:      &validUntil,
	}

	if claim.OnReserveDelivery {
		decision.Relief = business.FullRelief{TaxTypes: rates.ApplicableTaxTypes()}
		decision.Provenance = fmt.Sprintf("status card %s, point-of-sale relief for on-reserve delivery", record.CardNumber)
		return decision
	}

	types := rates.PSTFamilyTaxTypes()
	pct := decimal.Zero
	if len(types) > 0 {
		pct = r.relief.OffReserveReliefPercentage(claim.Jurisdiction)
	}
	decision.Relief = business.PartialRelief{TaxTypes: types, Percentage: pct}
	decision.Provenance = fmt.Sprintf("status card %s, off-reserve provincial relief at %s%% in %s",
		record.CardNumber, pct.String(), claim.Jurisdiction)
	return decision
}

func treatyDecision(claim business.ExemptionClaim, rates business.JurisdictionRates, record business.TreatyExemptionRecord) business.ExemptionDecision {
	applicable := rates.ApplicableTaxTypes()
	covered := make([]business.TaxType, 0, len(applicable))
	for _, t := range applicable {
		for _, exempt := range record.ExemptTaxTypes {
			if t == exempt {
				covered = append(covered, t)
				break
			}
		}
	}

	decision := business.ExemptionDecision{
		Type:       business.ExemptionTypeTreatyRights,
		Provenance: fmt.Sprintf("treaty %s table entry for %s", record.TreatyNumber, claim.Jurisdiction),
		ValidUntil: record.ValidUntil,
	}
	pct := record.Percentage
	switch {
	case len(covered) == 0:
		pct = decimal.Zero
	case len(covered) == len(applicable) && pct.Equal(decimal.NewFromInt(100)):
		decision.Relief = business.FullRelief{TaxTypes: covered}
		return decision
	}
	decision.Relief = business.PartialRelief{TaxTypes: covered, Percentage: pct}
	return decision
}

func (r *ExemptionResolver) ttlFor(decision business.ExemptionDecision, now time.Time) time.Duration {
	ttl := r.cacheTTL
	if decision.ValidUntil != nil {
		if remaining := decision.ValidUntil.Sub(now); remaining < ttl {
			ttl = remaining
		}
	}
	return ttl
}

func (r *ExemptionResolver) lookupStatusCard(ctx context.Context, number string) (business.StatusCardRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()
	record, err := r.records.GetStatusCardByNumber(ctx, number)
	if err != nil {
		return record, classifyLookupError("status card lookup", err)
	}
	return record, nil
}

func (r *ExemptionResolver) lookupBand(ctx context.Context, number string) (business.BandExemptionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()
	record, err := r.records.GetBandExemption(ctx, number)
	if err != nil {
		return record, classifyLookupError("band exemption lookup", err)
	}
	return record, nil
}

func (r *ExemptionResolver) lookupTreaty(ctx context.Context, number, jurisdiction string) (business.TreatyExemptionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()
	record, err := r.records.GetTreatyExemption(ctx, number, jurisdiction)
	if err != nil {
		return record, classifyLookupError("treaty exemption lookup", err)
	}
	return record, nil
}

func classifyLookupError(op string, err error) error {
	if errors.Is(err, taxerr.ErrNotFound) {
		return err
	}
	return taxerr.StoreUnavailable(op, err)
}
