// Package profile loads usage scenarios from YAML, JSON or TOML files.
//
// A report profile describes one person's period:
//
//	name: Focused week
//	period: weekly
//	time_entries:
//	  - {domain: deep_work, hours: 6}
//	priorities:
//	  - {domain: deep_work, priority: 1.0, max_daily_hours: 4}
//	goals:
//	  - {id: ship, name: Ship the release, domains: [deep_work], target_hours_per_week: 10}
//	action_log: {consumed: 20, bookmarked: 4, shared: 1, applied: 3}
//
// A segments file wraps a list of such profiles, each with a
// population_share, under a top-level "segments" key.
package profile

import (
	"fmt"

	"github.com/blaisecz/meaningful-metrics/internal/domain"
	"github.com/spf13/viper"
)

type entryFile struct {
	Domain string  `mapstructure:"domain"`
	Hours  float64 `mapstructure:"hours"`
}

type priorityFile struct {
	Domain        string   `mapstructure:"domain"`
	Priority      float64  `mapstructure:"priority"`
	MaxDailyHours *float64 `mapstructure:"max_daily_hours"`
}

type goalFile struct {
	ID                 string   `mapstructure:"id"`
	Name               string   `mapstructure:"name"`
	Domains            []string `mapstructure:"domains"`
	TargetHoursPerWeek *float64 `mapstructure:"target_hours_per_week"`
}

type actionFile struct {
	Consumed   int `mapstructure:"consumed"`
	Bookmarked int `mapstructure:"bookmarked"`
	Shared     int `mapstructure:"shared"`
	Applied    int `mapstructure:"applied"`
}

type profileFile struct {
	Name            string         `mapstructure:"name"`
	Description     string         `mapstructure:"description"`
	Period          string         `mapstructure:"period"`
	PopulationShare float64        `mapstructure:"population_share"`
	Entries         []entryFile    `mapstructure:"time_entries"`
	Priorities      []priorityFile `mapstructure:"priorities"`
	Goals           []goalFile     `mapstructure:"goals"`
	Actions         *actionFile    `mapstructure:"action_log"`
}

type segmentsFile struct {
	Segments []profileFile `mapstructure:"segments"`
}

// Profile is a loaded report scenario. Request.Period is empty when the
// file does not set one, leaving the choice to the caller.
type Profile struct {
	Name        string
	Description string
	Request     domain.ReportRequest
}

// LoadFile reads a single report profile.
func LoadFile(path string) (*Profile, error) {
	var f profileFile
	if err := read(path, &f); err != nil {
		return nil, err
	}

	req, err := f.request()
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	if f.Period != "" {
		if req.Period, err = domain.ParsePeriod(f.Period); err != nil {
			return nil, fmt.Errorf("profile %s: %w", path, err)
		}
	}

	return &Profile{
		Name:        f.Name,
		Description: f.Description,
		Request:     req,
	}, nil
}

// LoadSegments reads a list of population segments.
func LoadSegments(path string) ([]domain.Segment, error) {
	var f segmentsFile
	if err := read(path, &f); err != nil {
		return nil, err
	}
	if len(f.Segments) == 0 {
		return nil, fmt.Errorf("%w: %s defines no segments", domain.ErrInvalidInput, path)
	}

	segments := make([]domain.Segment, 0, len(f.Segments))
	for i, sf := range f.Segments {
		req, err := sf.request()
		if err != nil {
			return nil, fmt.Errorf("segment %d (%s): %w", i, sf.Name, err)
		}
		actions := domain.ActionLog{}
		if req.Actions != nil {
			actions = *req.Actions
		}
		seg, err := domain.NewSegment(sf.Name, sf.Description, req.Entries, req.Goals, req.Priorities, actions, sf.PopulationShare)
		if err != nil {
			return nil, fmt.Errorf("segment %d (%s): %w", i, sf.Name, err)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func read(path string, out interface{}) error {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: failed to read profile file: %w", domain.ErrInvalidInput, err)
	}
	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("%w: failed to parse profile file: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

// request converts file records through the validating constructors.
func (f profileFile) request() (domain.ReportRequest, error) {
	req := domain.ReportRequest{
		Entries:    make([]domain.TimeEntry, 0, len(f.Entries)),
		Priorities: make([]domain.DomainPriority, 0, len(f.Priorities)),
		Goals:      make([]domain.Goal, 0, len(f.Goals)),
	}

	for _, e := range f.Entries {
		entry, err := domain.NewTimeEntry(e.Domain, e.Hours)
		if err != nil {
			return domain.ReportRequest{}, err
		}
		req.Entries = append(req.Entries, entry)
	}
	for _, p := range f.Priorities {
		priority, err := domain.NewDomainPriority(p.Domain, p.Priority, p.MaxDailyHours)
		if err != nil {
			return domain.ReportRequest{}, err
		}
		req.Priorities = append(req.Priorities, priority)
	}
	for _, g := range f.Goals {
		goal, err := domain.NewGoal(g.ID, g.Name, g.Domains, g.TargetHoursPerWeek)
		if err != nil {
			return domain.ReportRequest{}, err
		}
		req.Goals = append(req.Goals, goal)
	}
	if f.Actions != nil {
		actions, err := domain.NewActionLog(f.Actions.Consumed, f.Actions.Bookmarked, f.Actions.Shared, f.Actions.Applied)
		if err != nil {
			return domain.ReportRequest{}, err
		}
		req.Actions = &actions
	}
	return req, nil
}
