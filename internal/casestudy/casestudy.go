// Package casestudy holds the built-in AI-assistant usage benchmark: three
// population segments with characteristic time allocation, priorities,
// goals and follow-through.
package casestudy

import (
	"fmt"

	"github.com/blaisecz/meaningful-metrics/internal/domain"
)

type entrySeed struct {
	domain string
	hours  float64
}

type prioritySeed struct {
	domain   string
	priority float64
	limit    *float64
}

type goalSeed struct {
	id      string
	name    string
	domains []string
	target  *float64
}

type segmentSeed struct {
	name        string
	description string
	share       float64
	entries     []entrySeed
	priorities  []prioritySeed
	goals       []goalSeed
	actions     [4]int
}

var seeds = []segmentSeed{
	{
		name:        "Knowledge Worker",
		description: "Professional using ChatGPT for workplace productivity tasks",
		share:       0.34,
		entries: []entrySeed{
			{"drafting", 1.05},
			{"task_completion", 0.78},
			{"code_assistance", 0.27},
			{"research_synthesis", 0.45},
			{"concept_explanation", 0.20},
			{"off_task_exploration", 0.23},
		},
		priorities: []prioritySeed{
			{"task_completion", 1.0, domain.Hours(1.0)},
			{"drafting", 0.9, domain.Hours(1.5)},
			{"code_assistance", 0.95, domain.Hours(1.0)},
			{"research_synthesis", 0.8, domain.Hours(1.0)},
			{"concept_explanation", 0.75, domain.Hours(0.5)},
			{"off_task_exploration", 0.2, nil},
		},
		goals: []goalSeed{
			{"professional-productivity", "Professional Task Completion", []string{"task_completion", "drafting", "code_assistance"}, domain.Hours(2.5)},
			{"learning", "Learning and Research", []string{"research_synthesis", "concept_explanation"}, domain.Hours(1.0)},
		},
		actions: [4]int{100, 45, 12, 30},
	},
	{
		name:        "Student",
		description: "Student using ChatGPT for learning and academic work",
		share:       0.28,
		entries: []entrySeed{
			{"drafting", 2.03},
			{"concept_explanation", 1.47},
			{"problem_solving", 1.09},
			{"passive_answer_fetching", 0.70},
			{"study_planning", 0.49},
			{"off_task_exploration", 0.22},
		},
		priorities: []prioritySeed{
			{"interactive_tutoring", 1.0, domain.Hours(1.5)},
			{"concept_explanation", 0.9, domain.Hours(1.5)},
			{"problem_solving", 0.85, domain.Hours(1.0)},
			{"drafting", 0.6, domain.Hours(1.0)},
			{"study_planning", 0.7, domain.Hours(0.5)},
			{"passive_answer_fetching", 0.15, nil},
			{"off_task_exploration", 0.1, nil},
		},
		goals: []goalSeed{
			{"deep-learning", "Build Genuine Understanding", []string{"concept_explanation", "interactive_tutoring", "problem_solving"}, domain.Hours(3.0)},
			{"assignment-completion", "Complete Assignments", []string{"drafting", "problem_solving"}, domain.Hours(2.0)},
		},
		actions: [4]int{100, 60, 8, 35},
	},
	{
		name:        "Casual Explorer",
		description: "Casual user exploring ChatGPT without specific task objectives",
		share:       0.38,
		entries: []entrySeed{
			{"creative_play", 1.2},
			{"trivia_exploration", 0.8},
			{"personal_advice", 0.9},
			{"off_task_exploration", 1.5},
			{"research_synthesis", 0.4},
			{"passive_answer_fetching", 0.7},
		},
		priorities: []prioritySeed{
			{"personal_advice", 0.7, domain.Hours(0.5)},
			{"research_synthesis", 0.6, domain.Hours(0.5)},
			{"creative_play", 0.5, domain.Hours(0.5)},
			{"trivia_exploration", 0.4, domain.Hours(0.3)},
			{"passive_answer_fetching", 0.2, nil},
			{"off_task_exploration", 0.15, nil},
		},
		goals: []goalSeed{
			{"entertainment", "Entertainment and Curiosity", []string{"creative_play", "trivia_exploration"}, domain.Hours(1.0)},
			{"personal-decisions", "Personal Decision Support", []string{"personal_advice", "research_synthesis"}, nil},
		},
		actions: [4]int{100, 15, 20, 8},
	},
}

// Segments builds the benchmark segments through the validating
// constructors. Population shares sum to 1.
func Segments() ([]domain.Segment, error) {
	segments := make([]domain.Segment, 0, len(seeds))
	for _, seed := range seeds {
		seg, err := seed.build()
		if err != nil {
			return nil, fmt.Errorf("build segment %q: %w", seed.name, err)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func (s segmentSeed) build() (domain.Segment, error) {
	entries := make([]domain.TimeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entry, err := domain.NewTimeEntry(e.domain, e.hours)
		if err != nil {
			return domain.Segment{}, err
		}
		entries = append(entries, entry)
	}

	priorities := make([]domain.DomainPriority, 0, len(s.priorities))
	for _, p := range s.priorities {
		priority, err := domain.NewDomainPriority(p.domain, p.priority, p.limit)
		if err != nil {
			return domain.Segment{}, err
		}
		priorities = append(priorities, priority)
	}

	goals := make([]domain.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		goal, err := domain.NewGoal(g.id, g.name, g.domains, g.target)
		if err != nil {
			return domain.Segment{}, err
		}
		goals = append(goals, goal)
	}

	actions, err := domain.NewActionLog(s.actions[0], s.actions[1], s.actions[2], s.actions[3])
	if err != nil {
		return domain.Segment{}, err
	}

	return domain.NewSegment(s.name, s.description, entries, goals, priorities, actions, s.share)
}
