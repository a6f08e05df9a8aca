package scoring

import (
	"fmt"

	"github.com/blaisecz/meaningful-metrics/internal/domain"
	"github.com/blaisecz/meaningful-metrics/internal/metrics"
)

const (
	// LowAlignmentThreshold triggers the "increase goal time" recommendation.
	LowAlignmentThreshold = 30.0
	// GoodAlignmentThreshold triggers the positive reinforcement.
	GoodAlignmentThreshold = 50.0
	// LowPriorityThreshold marks a domain as low priority.
	LowPriorityThreshold = 0.3
	// LowPriorityMaxHours is the time above which a low-priority domain is flagged.
	LowPriorityMaxHours = 2.0
	// GoalProgressRatio is the share of the weekly target below which a goal is behind.
	GoalProgressRatio = 0.5

	// Domain labels for recommendations not tied to one domain
	OverallDomain        = "overall"
	GoalActivitiesDomain = "goal_activities"
)

// GenerateRecommendations evaluates the recommendation rules in order and
// returns every recommendation they emit:
//
//  1. low goal alignment (at most one)
//  2. time above a domain cap (one per entry)
//  3. low-priority domain taking significant time (one per entry)
//  4. goal behind half of its weekly target (one per goal)
//  5. good alignment reinforcement (at most one)
//
// Rules never short-circuit each other and no deduplication is applied.
func GenerateRecommendations(entries []domain.TimeEntry, priorities []domain.DomainPriority, goals []domain.Goal, goalAlignment float64) []domain.Recommendation {
	idx := metrics.NewPriorityIndex(priorities)
	var recs []domain.Recommendation

	if goalAlignment < LowAlignmentThreshold {
		if d, ok := firstGoalDomain(goals); ok {
			recs = append(recs, domain.Recommendation{
				Type:     domain.RecommendIncrease,
				Domain:   d,
				Message:  fmt.Sprintf("Goal alignment is only %.0f%%. Consider spending more time on goal-related activities.", goalAlignment),
				Priority: domain.PriorityHigh,
			})
		}
	}

	for _, entry := range entries {
		p, ok := idx[entry.Domain]
		if !ok || p.MaxDailyHours == nil || entry.Hours <= *p.MaxDailyHours {
			continue
		}
		excess := entry.Hours - *p.MaxDailyHours
		recs = append(recs, domain.Recommendation{
			Type:     domain.RecommendDecrease,
			Domain:   entry.Domain,
			Message:  fmt.Sprintf("You spent %.1fh over your cap for %s. Consider reallocating to higher-priority activities.", excess, entry.Domain),
			Priority: domain.PriorityMedium,
		})
	}

	for _, entry := range entries {
		priority, _ := idx.Resolve(entry.Domain, metrics.DefaultPriority)
		if priority >= LowPriorityThreshold || entry.Hours <= LowPriorityMaxHours {
			continue
		}
		recs = append(recs, domain.Recommendation{
			Type:     domain.RecommendDecrease,
			Domain:   entry.Domain,
			Message:  fmt.Sprintf("Spent %.1fh on low-priority domain '%s'. Consider reducing this time.", entry.Hours, entry.Domain),
			Priority: domain.PriorityMedium,
		})
	}

	for _, goal := range goals {
		if goal.TargetHoursPerWeek == nil {
			continue
		}
		target := *goal.TargetHoursPerWeek
		spent := goalHours(entries, goal)
		if spent >= target*GoalProgressRatio {
			continue
		}
		d := GoalActivitiesDomain
		if len(goal.Domains) > 0 {
			d = goal.Domains[0]
		}
		recs = append(recs, domain.Recommendation{
			Type:     domain.RecommendIncrease,
			Domain:   d,
			Message:  fmt.Sprintf("Progress on '%s' is behind target. Spent %.1fh vs %.0fh target.", goal.Name, spent, target),
			Priority: domain.PriorityHigh,
		})
	}

	if goalAlignment >= GoodAlignmentThreshold {
		recs = append(recs, domain.Recommendation{
			Type:     domain.RecommendMaintain,
			Domain:   OverallDomain,
			Message:  fmt.Sprintf("Great job! Goal alignment is %.0f%%. Keep up the good work.", goalAlignment),
			Priority: domain.PriorityLow,
		})
	}

	return recs
}

// firstGoalDomain picks the first domain of the first goal, in input order,
// that lists any domain.
func firstGoalDomain(goals []domain.Goal) (string, bool) {
	for _, g := range goals {
		if len(g.Domains) > 0 {
			return g.Domains[0], true
		}
	}
	return "", false
}

// goalHours sums the hours of every entry whose domain belongs to the goal.
func goalHours(entries []domain.TimeEntry, goal domain.Goal) float64 {
	linked := make(map[string]struct{}, len(goal.Domains))
	for _, d := range goal.Domains {
		linked[d] = struct{}{}
	}

	total := 0.0
	for _, entry := range entries {
		if _, ok := linked[entry.Domain]; ok {
			total += entry.Hours
		}
	}
	return total
}
