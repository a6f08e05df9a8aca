package domain

import (
	"time"

	"github.com/google/uuid"
)

// Segment is a named group of users with characteristic usage, weighted by
// its share of the population.
type Segment struct {
	Name            string           `json:"name" validate:"required"`
	Description     string           `json:"description"`
	Entries         []TimeEntry      `json:"time_entries"`
	Goals           []Goal           `json:"goals"`
	Priorities      []DomainPriority `json:"priorities"`
	Actions         ActionLog        `json:"action_log"`
	PopulationShare float64          `json:"population_share" validate:"finite,gt=0,lte=1"`
}

// NewSegment builds a validated Segment from already constructed records.
func NewSegment(name, description string, entries []TimeEntry, goals []Goal, priorities []DomainPriority, actions ActionLog, populationShare float64) (Segment, error) {
	s := Segment{
		Name:            name,
		Description:     description,
		Entries:         append([]TimeEntry(nil), entries...),
		Goals:           append([]Goal(nil), goals...),
		Priorities:      append([]DomainPriority(nil), priorities...),
		Actions:         actions,
		PopulationShare: populationShare,
	}
	if err := check("segment", s); err != nil {
		return Segment{}, err
	}
	return s, nil
}

// SegmentResult is the report generated for one segment.
type SegmentResult struct {
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	PopulationShare float64       `json:"population_share"`
	Results         MetricsReport `json:"results"`
}

// Aggregate holds population-weighted averages across segments.
type Aggregate struct {
	QualityTimeScore     float64         `json:"quality_time_score"`
	GoalAlignmentPercent float64         `json:"goal_alignment_percent"`
	DistractionPercent   float64         `json:"distraction_percent"`
	ActionabilityScore   float64         `json:"actionability_score"`
	Rating               AlignmentRating `json:"rating"`
}

// AlignmentRating classifies an aggregate goal alignment percentage.
type AlignmentRating string

const (
	AlignmentStrong   AlignmentRating = "STRONG"
	AlignmentModerate AlignmentRating = "MODERATE"
	AlignmentWeak     AlignmentRating = "WEAK"
)

// Alignment rating thresholds (goal alignment percent)
const (
	StrongAlignmentThreshold   = 60.0
	ModerateAlignmentThreshold = 40.0
)

// RateAlignment maps a goal alignment percentage to a rating.
func RateAlignment(goalAlignment float64) AlignmentRating {
	if goalAlignment >= StrongAlignmentThreshold {
		return AlignmentStrong
	}
	if goalAlignment >= ModerateAlignmentThreshold {
		return AlignmentModerate
	}
	return AlignmentWeak
}

// Interpretation returns a one-sentence reading of the rating.
func (r AlignmentRating) Interpretation() string {
	switch r {
	case AlignmentStrong:
		return "Users are spending most time on their declared objectives."
	case AlignmentModerate:
		return "Meaningful use co-exists with significant off-goal time."
	default:
		return "Most tracked time does not advance user goals."
	}
}

// Benchmark is the serialized evaluation of a set of segments, the document
// chart tooling reads.
type Benchmark struct {
	RunID       uuid.UUID       `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Profiles    []SegmentResult `json:"profiles"`
	Aggregate   Aggregate       `json:"aggregate"`
}

// NewBenchmark stamps a benchmark document with a fresh run id.
func NewBenchmark(profiles []SegmentResult, aggregate Aggregate) *Benchmark {
	return &Benchmark{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Profiles:    profiles,
		Aggregate:   aggregate,
	}
}
