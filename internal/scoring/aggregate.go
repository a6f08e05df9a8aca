package scoring

import (
	"fmt"

	"github.com/blaisecz/meaningful-metrics/internal/domain"
)

// WeightedAggregate averages segment results weighted by population share.
func WeightedAggregate(results []domain.SegmentResult) (domain.Aggregate, error) {
	totalWeight := 0.0
	for _, r := range results {
		totalWeight += r.PopulationShare
	}
	if totalWeight <= 0 {
		return domain.Aggregate{}, fmt.Errorf("%w: total population share must be positive, got %v", domain.ErrInvalidInput, totalWeight)
	}

	var agg domain.Aggregate
	for _, r := range results {
		w := r.PopulationShare
		agg.QualityTimeScore += r.Results.QualityTimeScore * w
		agg.GoalAlignmentPercent += r.Results.GoalAlignmentPercent * w
		agg.DistractionPercent += r.Results.DistractionPercent * w
		agg.ActionabilityScore += r.Results.ActionabilityScore * w
	}
	agg.QualityTimeScore /= totalWeight
	agg.GoalAlignmentPercent /= totalWeight
	agg.DistractionPercent /= totalWeight
	agg.ActionabilityScore /= totalWeight
	agg.Rating = domain.RateAlignment(agg.GoalAlignmentPercent)

	return agg, nil
}
