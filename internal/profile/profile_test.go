package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blaisecz/meaningful-metrics/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test profile: %v", err)
	}
	return path
}

func TestLoadFile_YAML(t *testing.T) {
	// Given
	// No indentation at the top level to keep YAML parsing simple
	path := writeFile(t, "week.yaml", `name: Focused week
description: Mostly deep work
period: weekly
time_entries:
  - domain: deep_work
    hours: 6
  - domain: social_media
    hours: 2.5
priorities:
  - domain: deep_work
    priority: 1.0
    max_daily_hours: 4
  - domain: social_media
    priority: 0.1
goals:
  - id: ship
    name: Ship the release
    domains: [deep_work]
    target_hours_per_week: 10
action_log:
  consumed: 20
  bookmarked: 4
  shared: 1
  applied: 3
`)

	// When
	p, err := LoadFile(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "Focused week", p.Name)
	assert.Equal(t, "Mostly deep work", p.Description)
	assert.Equal(t, domain.PeriodWeekly, p.Request.Period)

	require.Len(t, p.Request.Entries, 2)
	assert.Equal(t, domain.TimeEntry{Domain: "social_media", Hours: 2.5}, p.Request.Entries[1])

	require.Len(t, p.Request.Priorities, 2)
	require.NotNil(t, p.Request.Priorities[0].MaxDailyHours)
	assert.Equal(t, 4.0, *p.Request.Priorities[0].MaxDailyHours)
	assert.Nil(t, p.Request.Priorities[1].MaxDailyHours)

	require.Len(t, p.Request.Goals, 1)
	assert.Equal(t, []string{"deep_work"}, p.Request.Goals[0].Domains)
	require.NotNil(t, p.Request.Goals[0].TargetHoursPerWeek)
	assert.Equal(t, 10.0, *p.Request.Goals[0].TargetHoursPerWeek)

	require.NotNil(t, p.Request.Actions)
	assert.Equal(t, domain.ActionLog{Consumed: 20, Bookmarked: 4, Shared: 1, Applied: 3}, *p.Request.Actions)
}

func TestLoadFile_JSONWithoutOptionalSections(t *testing.T) {
	// Given
	path := writeFile(t, "day.json", `{
  "name": "Quiet day",
  "time_entries": [{"domain": "reading", "hours": 1.5}]
}`)

	// When
	p, err := LoadFile(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, domain.Period(""), p.Request.Period)
	assert.Len(t, p.Request.Entries, 1)
	assert.Empty(t, p.Request.Priorities)
	assert.Empty(t, p.Request.Goals)
	assert.Nil(t, p.Request.Actions)
}

func TestLoadFile_TOML(t *testing.T) {
	// Given
	path := writeFile(t, "day.toml", `name = "Toml day"
period = "daily"

[[time_entries]]
domain = "exercise"
hours = 1.0
`)

	// When
	p, err := LoadFile(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodDaily, p.Request.Period)
	assert.Equal(t, []domain.TimeEntry{{Domain: "exercise", Hours: 1}}, p.Request.Entries)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{
			name:    "negative hours",
			file:    "neg.yaml",
			content: "time_entries:\n  - domain: x\n    hours: -1\n",
			wantErr: domain.ErrValidation,
		},
		{
			name:    "priority above one",
			file:    "prio.yaml",
			content: "priorities:\n  - domain: x\n    priority: 1.5\n",
			wantErr: domain.ErrValidation,
		},
		{
			name:    "goal without id",
			file:    "goal.yaml",
			content: "goals:\n  - name: nameless\n    domains: [x]\n",
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown period",
			file:    "period.yaml",
			content: "period: monthly\n",
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "malformed yaml",
			file:    "bad.yaml",
			content: "name: a: b: c",
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadSegments(t *testing.T) {
	// Given
	path := writeFile(t, "segments.yaml", `segments:
  - name: Focused
    population_share: 0.25
    time_entries:
      - {domain: work, hours: 4}
    goals:
      - {id: g, name: Work, domains: [work]}
    action_log: {consumed: 10, applied: 5}
  - name: Drifting
    population_share: 0.75
    time_entries:
      - {domain: feed, hours: 3}
`)

	// When
	segments, err := LoadSegments(path)

	// Then
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "Focused", segments[0].Name)
	assert.Equal(t, 0.25, segments[0].PopulationShare)
	assert.Equal(t, 5, segments[0].Actions.Applied)
	assert.Equal(t, domain.ActionLog{}, segments[1].Actions)
}

func TestLoadSegments_Errors(t *testing.T) {
	t.Run("no segments", func(t *testing.T) {
		_, err := LoadSegments(writeFile(t, "empty.yaml", "segments: []\n"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("zero population share", func(t *testing.T) {
		_, err := LoadSegments(writeFile(t, "zero.yaml", "segments:\n  - name: a\n    population_share: 0\n"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
