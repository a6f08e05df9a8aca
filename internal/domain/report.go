package domain

import (
	"fmt"
	"strings"
)

// Period is the reporting period label. It is carried through to the report
// as-is and never rescales any number.
type Period string

const (
	PeriodDaily  Period = "daily"
	PeriodWeekly Period = "weekly"
)

// ParsePeriod parses a period label; the empty string means daily.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodDaily, nil
	case PeriodDaily, PeriodWeekly:
		return p, nil
	default:
		return "", fmt.Errorf("%w: period must be one of daily, weekly; got %q", ErrInvalidInput, s)
	}
}

// RecommendationType is the suggested direction of change for a domain.
type RecommendationType string

const (
	RecommendIncrease RecommendationType = "increase"
	RecommendDecrease RecommendationType = "decrease"
	RecommendMaintain RecommendationType = "maintain"
)

// RecommendationPriority is the importance of a recommendation.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "high"
	PriorityMedium RecommendationPriority = "medium"
	PriorityLow    RecommendationPriority = "low"
)

// DomainMetrics is one row of the QTS breakdown.
type DomainMetrics struct {
	// Content domain identifier
	Domain string `json:"domain"`
	// Raw time spent in hours
	TimeSpent float64 `json:"time_spent"`
	// Time after the diminishing returns cap
	EffectiveTime float64 `json:"effective_time"`
	// Resolved priority weight
	Priority float64 `json:"priority"`
	// EffectiveTime x Priority
	Contribution float64 `json:"contribution"`
}

// Recommendation is a suggested change to the user's time allocation.
type Recommendation struct {
	Type     RecommendationType     `json:"type"`
	Domain   string                 `json:"domain"`
	Message  string                 `json:"message"`
	Priority RecommendationPriority `json:"priority"`
}

// MetricsReport is the consolidated report for one reporting period.
type MetricsReport struct {
	Period               Period           `json:"period"`
	QualityTimeScore     float64          `json:"quality_time_score"`
	RawTimeHours         float64          `json:"raw_time_hours"`
	GoalAlignmentPercent float64          `json:"goal_alignment_percent"`
	DistractionPercent   float64          `json:"distraction_percent"`
	ActionabilityScore   float64          `json:"actionability_score"`
	ByDomain             []DomainMetrics  `json:"by_domain"`
	Recommendations      []Recommendation `json:"recommendations"`
}

// ReportRequest carries the inputs of one report generation.
type ReportRequest struct {
	Entries    []TimeEntry
	Priorities []DomainPriority
	Goals      []Goal
	// Optional; nil means no actionability data
	Actions *ActionLog
	Period  Period
}
