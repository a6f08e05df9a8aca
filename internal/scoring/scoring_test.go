package scoring

import (
	"strings"
	"testing"

	"github.com/blaisecz/meaningful-metrics/internal/domain"
	"github.com/blaisecz/meaningful-metrics/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func entries(pairs ...interface{}) []domain.TimeEntry {
	var out []domain.TimeEntry
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, domain.TimeEntry{Domain: pairs[i].(string), Hours: pairs[i+1].(float64)})
	}
	return out
}

func reportFixture() ([]domain.TimeEntry, []domain.DomainPriority, []domain.Goal) {
	es := entries("learning", 2.0, "work", 5.0, "social_media", 1.0)
	ps := []domain.DomainPriority{
		{Domain: "learning", Priority: 1.0, MaxDailyHours: domain.Hours(4)},
		{Domain: "work", Priority: 0.8},
		{Domain: "social_media", Priority: 0.2, MaxDailyHours: domain.Hours(1)},
	}
	gs := []domain.Goal{{ID: "learn", Name: "Learn", Domains: []string{"learning"}}}
	return es, ps, gs
}

func filter(recs []domain.Recommendation, typ domain.RecommendationType) []domain.Recommendation {
	var out []domain.Recommendation
	for _, r := range recs {
		if r.Type == typ {
			out = append(out, r)
		}
	}
	return out
}

func TestDomainContributions(t *testing.T) {
	es := entries("learning", 5.0, "work", 5.0, "misc", 2.0)
	ps := []domain.DomainPriority{
		{Domain: "learning", Priority: 1.0, MaxDailyHours: domain.Hours(3)},
		{Domain: "work", Priority: 0.8},
	}

	got := DomainContributions(es, ps, metrics.DefaultPriority)
	require.Len(t, got, 3)

	assert.Equal(t, domain.DomainMetrics{Domain: "learning", TimeSpent: 5, EffectiveTime: 3, Priority: 1, Contribution: 3}, got[0])
	assert.Equal(t, "work", got[1].Domain)
	assert.InDelta(t, 5.0, got[1].EffectiveTime, tolerance)
	assert.InDelta(t, 4.0, got[1].Contribution, tolerance)
	assert.Equal(t, "misc", got[2].Domain)
	assert.Equal(t, metrics.DefaultPriority, got[2].Priority)
	assert.InDelta(t, 1.0, got[2].Contribution, tolerance)
}

func TestDomainContributions_Empty(t *testing.T) {
	got := DomainContributions(nil, nil, metrics.DefaultPriority)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDomainContributions_ConsistentWithQTS(t *testing.T) {
	cases := []struct {
		es []domain.TimeEntry
		ps []domain.DomainPriority
	}{
		{
			es: entries("a", 0.1, "b", 0.2, "c", 0.3, "a", 7.7),
			ps: []domain.DomainPriority{{Domain: "a", Priority: 0.33, MaxDailyHours: domain.Hours(1.1)}, {Domain: "c", Priority: 0.7}},
		},
		{
			es: entries("drafting", 1.05, "task_completion", 0.78, "code_assistance", 0.27, "off_task", 0.23),
			ps: []domain.DomainPriority{
				{Domain: "drafting", Priority: 0.9, MaxDailyHours: domain.Hours(1.5)},
				{Domain: "task_completion", Priority: 1, MaxDailyHours: domain.Hours(1)},
				{Domain: "off_task", Priority: 0.2},
			},
		},
		{},
	}

	for _, c := range cases {
		qts, err := metrics.QualityTimeScore(c.es, c.ps, metrics.DefaultPriority)
		require.NoError(t, err)

		sum := 0.0
		for _, m := range DomainContributions(c.es, c.ps, metrics.DefaultPriority) {
			assert.LessOrEqual(t, m.EffectiveTime, m.TimeSpent)
			assert.Equal(t, m.EffectiveTime*m.Priority, m.Contribution)
			sum += m.Contribution
		}
		assert.InDelta(t, qts, sum, tolerance)
	}
}

func TestGenerateRecommendations_LowAlignment(t *testing.T) {
	es := entries("learning", 1.0, "social_media", 8.0)
	gs := []domain.Goal{
		{ID: "empty", Name: "Nothing linked"},
		{ID: "learn", Name: "Learn", Domains: []string{"learning", "reading"}},
	}

	recs := GenerateRecommendations(es, nil, gs, 11.1)
	increase := filter(recs, domain.RecommendIncrease)
	require.NotEmpty(t, increase)
	assert.Equal(t, domain.PriorityHigh, increase[0].Priority)
	assert.Equal(t, "learning", increase[0].Domain)
	assert.Contains(t, strings.ToLower(increase[0].Message), "alignment")
	assert.Contains(t, increase[0].Message, "11%")
}

func TestGenerateRecommendations_LowAlignmentWithoutGoalDomains(t *testing.T) {
	recs := GenerateRecommendations(entries("tv", 3.0), nil, []domain.Goal{{ID: "x", Name: "X"}}, 0)
	assert.Empty(t, recs)
}

func TestGenerateRecommendations_OverCap(t *testing.T) {
	es := entries("social_media", 3.0, "learning", 1.0)
	ps := []domain.DomainPriority{
		{Domain: "social_media", Priority: 0.5, MaxDailyHours: domain.Hours(1)},
		{Domain: "learning", Priority: 1, MaxDailyHours: domain.Hours(1)},
	}

	recs := GenerateRecommendations(es, ps, nil, 40)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.RecommendDecrease, recs[0].Type)
	assert.Equal(t, domain.PriorityMedium, recs[0].Priority)
	assert.Equal(t, "social_media", recs[0].Domain)
	assert.Contains(t, recs[0].Message, "cap")
	assert.Contains(t, recs[0].Message, "2.0h")
}

func TestGenerateRecommendations_LowPriorityHighTime(t *testing.T) {
	es := entries("gaming", 3.0, "news", 1.0, "unknown", 5.0)
	ps := []domain.DomainPriority{
		{Domain: "gaming", Priority: 0.1},
		{Domain: "news", Priority: 0.1},
	}

	recs := GenerateRecommendations(es, ps, nil, 40)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.RecommendDecrease, recs[0].Type)
	assert.Equal(t, "gaming", recs[0].Domain)
	assert.Contains(t, recs[0].Message, "low-priority")
}

func TestGenerateRecommendations_CapAndLowPriorityBothFire(t *testing.T) {
	es := entries("social_media", 4.0)
	ps := []domain.DomainPriority{{Domain: "social_media", Priority: 0.2, MaxDailyHours: domain.Hours(1)}}

	recs := GenerateRecommendations(es, ps, nil, 40)
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0].Message, "cap")
	assert.Contains(t, recs[1].Message, "low-priority")
}

func TestGenerateRecommendations_GoalBehindTarget(t *testing.T) {
	es := entries("spanish", 1.0, "spanish", 1.5, "tv", 2.0)
	gs := []domain.Goal{
		{ID: "spanish", Name: "Learn Spanish", Domains: []string{"spanish"}, TargetHoursPerWeek: domain.Hours(7)},
		{ID: "fit", Name: "Fitness", Domains: []string{"gym"}, TargetHoursPerWeek: domain.Hours(4)},
		{ID: "read", Name: "Reading", TargetHoursPerWeek: domain.Hours(2)},
		{ID: "none", Name: "No target", Domains: []string{"gym"}},
		{ID: "zero", Name: "Zero target", Domains: []string{"gym"}, TargetHoursPerWeek: domain.Hours(0)},
		{ID: "ok", Name: "On track", Domains: []string{"tv"}, TargetHoursPerWeek: domain.Hours(4)},
	}

	// Alignment between the two reinforcement thresholds isolates rule 4.
	recs := GenerateRecommendations(es, nil, gs, 40)
	require.Len(t, recs, 3)

	assert.Equal(t, "spanish", recs[0].Domain)
	assert.Equal(t, "Progress on 'Learn Spanish' is behind target. Spent 2.5h vs 7h target.", recs[0].Message)
	assert.Equal(t, domain.PriorityHigh, recs[0].Priority)
	assert.Equal(t, "gym", recs[1].Domain)
	assert.Equal(t, GoalActivitiesDomain, recs[2].Domain)
	for _, r := range recs {
		assert.Equal(t, domain.RecommendIncrease, r.Type)
	}
}

func TestGenerateRecommendations_PositiveReinforcement(t *testing.T) {
	for _, alignment := range []float64{50, 75, 100} {
		recs := GenerateRecommendations(entries("learning", 5.0), nil, []domain.Goal{{ID: "l", Name: "L", Domains: []string{"learning"}}}, alignment)
		maintain := filter(recs, domain.RecommendMaintain)
		require.Len(t, maintain, 1)
		assert.Equal(t, domain.PriorityLow, maintain[0].Priority)
		assert.Equal(t, OverallDomain, maintain[0].Domain)
		assert.Contains(t, maintain[0].Message, "Great job")
	}

	recs := GenerateRecommendations(entries("learning", 5.0), nil, nil, 49.9)
	assert.Empty(t, filter(recs, domain.RecommendMaintain))
}

func TestGenerateRecommendations_RuleOrder(t *testing.T) {
	es := entries("learning", 0.5, "social_media", 6.0)
	ps := []domain.DomainPriority{{Domain: "social_media", Priority: 0.1, MaxDailyHours: domain.Hours(1)}}
	gs := []domain.Goal{{ID: "learn", Name: "Learn", Domains: []string{"learning"}, TargetHoursPerWeek: domain.Hours(5)}}

	recs := GenerateRecommendations(es, ps, gs, metrics.GoalAlignment(es, gs))
	require.Len(t, recs, 4)
	assert.Equal(t, domain.RecommendIncrease, recs[0].Type)
	assert.Contains(t, recs[0].Message, "Goal alignment")
	assert.Contains(t, recs[1].Message, "over your cap")
	assert.Contains(t, recs[2].Message, "low-priority")
	assert.Contains(t, recs[3].Message, "Progress on 'Learn'")
}

func TestGenerateReport(t *testing.T) {
	es, ps, gs := reportFixture()
	actions := &domain.ActionLog{Consumed: 50, Bookmarked: 10, Shared: 3, Applied: 5}

	report, err := GenerateReport(es, ps, gs, actions, domain.PeriodDaily)
	require.NoError(t, err)

	assert.Equal(t, domain.PeriodDaily, report.Period)
	assert.InDelta(t, 8.0, report.RawTimeHours, tolerance)
	assert.InDelta(t, 6.2, report.QualityTimeScore, tolerance)
	assert.InDelta(t, 25.0, report.GoalAlignmentPercent, tolerance)
	assert.InDelta(t, 75.0, report.DistractionPercent, tolerance)
	assert.InDelta(t, 0.19, report.ActionabilityScore, tolerance)
	assert.Len(t, report.ByDomain, 3)
	assert.Equal(t, 100.0, report.GoalAlignmentPercent+report.DistractionPercent)

	// 25% alignment is low, so the first recommendation asks for more goal time.
	require.NotEmpty(t, report.Recommendations)
	assert.Equal(t, domain.RecommendIncrease, report.Recommendations[0].Type)
	assert.Equal(t, "learning", report.Recommendations[0].Domain)
}

func TestGenerateReport_WithoutActions(t *testing.T) {
	es, ps, gs := reportFixture()
	report, err := GenerateReport(es, ps, gs, nil, domain.PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.ActionabilityScore)
}

func TestGenerateReport_Periods(t *testing.T) {
	es, ps, gs := reportFixture()

	daily, err := GenerateReport(es, ps, gs, nil, "")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodDaily, daily.Period)

	weekly, err := GenerateReport(es, ps, gs, nil, domain.PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodWeekly, weekly.Period)
	assert.Equal(t, daily.QualityTimeScore, weekly.QualityTimeScore)
	assert.Equal(t, daily.ByDomain, weekly.ByDomain)

	_, err = GenerateReport(es, ps, gs, nil, "monthly")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateReport_Empty(t *testing.T) {
	report, err := GenerateReport(nil, nil, nil, nil, domain.PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.RawTimeHours)
	assert.Equal(t, 0.0, report.QualityTimeScore)
	assert.Equal(t, 0.0, report.GoalAlignmentPercent)
	assert.Equal(t, 100.0, report.DistractionPercent)
	assert.Empty(t, report.ByDomain)
	assert.NotNil(t, report.Recommendations)
}

func TestGenerateReport_NegativeHours(t *testing.T) {
	_, err := GenerateReport(entries("work", -2.0), nil, nil, nil, domain.PeriodDaily)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
