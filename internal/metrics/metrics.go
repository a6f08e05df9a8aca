// Package metrics implements the core metric formulas: Quality Time Score,
// Goal Alignment, Distraction Ratio, Actionability, Locality and the
// smoothed minimum. Every function is pure; lookups are rebuilt per call.
package metrics

import (
	"fmt"
	"math"

	"github.com/blaisecz/meaningful-metrics/internal/domain"
)

const (
	// DefaultPriority applies to domains without a DomainPriority record.
	DefaultPriority = 0.5

	// DefaultSoftMinAlpha is the default smoothing factor for SoftMin.
	DefaultSoftMinAlpha = 10.0
)

// PriorityIndex resolves priority settings by domain id. When several
// records share a domain id the last one wins.
type PriorityIndex map[string]domain.DomainPriority

// NewPriorityIndex builds a lookup from a priority list.
func NewPriorityIndex(priorities []domain.DomainPriority) PriorityIndex {
	idx := make(PriorityIndex, len(priorities))
	for _, p := range priorities {
		idx[p.Domain] = p
	}
	return idx
}

// Resolve returns the priority and cap for a domain. Unknown domains get
// defaultPriority and no cap.
func (idx PriorityIndex) Resolve(domainID string, defaultPriority float64) (priority float64, limit *float64) {
	p, ok := idx[domainID]
	if !ok {
		return defaultPriority, nil
	}
	return p.Priority, p.MaxDailyHours
}

// EffectiveHours applies the diminishing returns cap. A nil limit is unbounded.
func EffectiveHours(hours float64, limit *float64) float64 {
	if limit == nil {
		return hours
	}
	return math.Min(hours, *limit)
}

// QualityTimeScore computes QTS = Σ min(hours_i, cap_i) × priority_i.
// Entries sharing a domain are scored independently and summed.
func QualityTimeScore(entries []domain.TimeEntry, priorities []domain.DomainPriority, defaultPriority float64) (float64, error) {
	idx := NewPriorityIndex(priorities)

	qts := 0.0
	for _, entry := range entries {
		if entry.Hours < 0 {
			return 0, fmt.Errorf("%w: negative hours not allowed: %s = %v", domain.ErrInvalidInput, entry.Domain, entry.Hours)
		}

		priority, limit := idx.Resolve(entry.Domain, defaultPriority)
		qts += EffectiveHours(entry.Hours, limit) * priority
	}

	return qts, nil
}

// GoalDomains returns the set of domain ids referenced by any goal.
func GoalDomains(goals []domain.Goal) map[string]struct{} {
	set := make(map[string]struct{})
	for _, g := range goals {
		for _, d := range g.Domains {
			set[d] = struct{}{}
		}
	}
	return set
}

// GoalAlignment returns the percentage (0-100) of tracked time spent on
// domains linked to any goal. It is 0 when there is no tracked time or no
// goal domain to align against.
func GoalAlignment(entries []domain.TimeEntry, goals []domain.Goal) float64 {
	if len(entries) == 0 {
		return 0
	}

	goalDomains := GoalDomains(goals)
	if len(goalDomains) == 0 {
		return 0
	}

	total, aligned := 0.0, 0.0
	for _, entry := range entries {
		total += entry.Hours
		if _, ok := goalDomains[entry.Domain]; ok {
			aligned += entry.Hours
		}
	}

	if total == 0 {
		return 0
	}
	return aligned / total * 100
}

// DistractionRatio is the complement of GoalAlignment: 100 - alignment.
func DistractionRatio(entries []domain.TimeEntry, goals []domain.Goal) float64 {
	return 100 - GoalAlignment(entries, goals)
}

// ActionabilityScore computes
// (bookmarked×w_b + shared×w_s + applied×w_a) / consumed.
// It returns 0 when nothing was consumed. A nil weights pointer uses
// domain.DefaultActionWeights. The score has no upper bound.
func ActionabilityScore(consumed, bookmarked, shared, applied int, weights *domain.ActionWeights) float64 {
	if consumed == 0 {
		return 0
	}

	w := domain.DefaultActionWeights()
	if weights != nil {
		w = *weights
	}

	weighted := float64(bookmarked)*w.Bookmarked +
		float64(shared)*w.Shared +
		float64(applied)*w.Applied

	return weighted / float64(consumed)
}

// ActionabilityScoreFromLog unpacks an ActionLog into ActionabilityScore.
func ActionabilityScoreFromLog(log domain.ActionLog, weights *domain.ActionWeights) float64 {
	return ActionabilityScore(log.Consumed, log.Bookmarked, log.Shared, log.Applied, weights)
}

// LocalityScore is localRelevance × engagement. Both inputs must lie in
// [0, 1].
func LocalityScore(localRelevance, engagement float64) (float64, error) {
	if !(localRelevance >= 0 && localRelevance <= 1) {
		return 0, fmt.Errorf("%w: local_relevance must be between 0.0 and 1.0, got %v", domain.ErrOutOfRange, localRelevance)
	}
	if !(engagement >= 0 && engagement <= 1) {
		return 0, fmt.Errorf("%w: engagement must be between 0.0 and 1.0, got %v", domain.ErrOutOfRange, engagement)
	}
	return localRelevance * engagement, nil
}

// SoftMin is a smooth approximation of min(a, b):
//
//	-(1/α) × log(exp(-α·a) + exp(-α·b))
//
// evaluated with the max term factored out so large |α·x| cannot overflow.
// The result never exceeds min(a, b) and approaches it as α grows; for a == b
// it is a - ln(2)/α. A non-positive or NaN alpha returns ErrInvalidInput.
func SoftMin(a, b, alpha float64) (float64, error) {
	if !(alpha > 0) {
		return 0, fmt.Errorf("%w: alpha must be positive, got %v", domain.ErrInvalidInput, alpha)
	}
	x, y := -alpha*a, -alpha*b
	m := math.Max(x, y)
	soft := -1 / alpha * (m + math.Log(math.Exp(x-m)+math.Exp(y-m)))
	// When exp underflows the log term is 0 and rounding can land one ulp
	// above the true minimum.
	return math.Min(soft, math.Min(a, b)), nil
}
