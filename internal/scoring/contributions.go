package scoring

import (
	"github.com/blaisecz/meaningful-metrics/internal/domain"
	"github.com/blaisecz/meaningful-metrics/internal/metrics"
)

// DomainContributions breaks the Quality Time Score down per entry, in input
// order. Contributions sum to metrics.QualityTimeScore for the same inputs.
func DomainContributions(entries []domain.TimeEntry, priorities []domain.DomainPriority, defaultPriority float64) []domain.DomainMetrics {
	idx := metrics.NewPriorityIndex(priorities)

	result := make([]domain.DomainMetrics, 0, len(entries))
	for _, entry := range entries {
		priority, limit := idx.Resolve(entry.Domain, defaultPriority)
		effective := metrics.EffectiveHours(entry.Hours, limit)

		result = append(result, domain.DomainMetrics{
			Domain:        entry.Domain,
			TimeSpent:     entry.Hours,
			EffectiveTime: effective,
			Priority:      priority,
			Contribution:  effective * priority,
		})
	}

	return result
}
