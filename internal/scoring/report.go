// Package scoring assembles the metric calculators into the per-domain
// breakdown, the rule-based recommendations and the consolidated report.
package scoring

import (
	"github.com/blaisecz/meaningful-metrics/internal/domain"
	"github.com/blaisecz/meaningful-metrics/internal/metrics"
)

// GenerateReport builds the MetricsReport for one period. actions may be nil,
// in which case the actionability score is 0. An empty period means daily;
// the period is a label only and does not rescale anything.
func GenerateReport(entries []domain.TimeEntry, priorities []domain.DomainPriority, goals []domain.Goal, actions *domain.ActionLog, period domain.Period) (*domain.MetricsReport, error) {
	period, err := domain.ParsePeriod(string(period))
	if err != nil {
		return nil, err
	}

	qts, err := metrics.QualityTimeScore(entries, priorities, metrics.DefaultPriority)
	if err != nil {
		return nil, err
	}
	alignment := metrics.GoalAlignment(entries, goals)
	distraction := metrics.DistractionRatio(entries, goals)

	actionability := 0.0
	if actions != nil {
		actionability = metrics.ActionabilityScoreFromLog(*actions, nil)
	}

	byDomain := DomainContributions(entries, priorities, metrics.DefaultPriority)
	recs := GenerateRecommendations(entries, priorities, goals, alignment)

	raw := 0.0
	for _, entry := range entries {
		raw += entry.Hours
	}

	if recs == nil {
		recs = []domain.Recommendation{}
	}

	return &domain.MetricsReport{
		Period:               period,
		QualityTimeScore:     qts,
		RawTimeHours:         raw,
		GoalAlignmentPercent: alignment,
		DistractionPercent:   distraction,
		ActionabilityScore:   actionability,
		ByDomain:             byDomain,
		Recommendations:      recs,
	}, nil
}
