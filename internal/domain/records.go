package domain

import (
	"github.com/blaisecz/meaningful-metrics/internal/validation"
)

// TimeEntry is time spent in one content domain.
type TimeEntry struct {
	// Content domain identifier (e.g. "learning", "social_media")
	Domain string `json:"domain" validate:"required"`
	// Time spent in hours
	Hours float64 `json:"hours" validate:"finite,gte=0"`
}

// DomainPriority holds the priority weight and the optional diminishing
// returns cap for a domain. A nil MaxDailyHours means the domain is
// unbounded, which is not the same as a zero cap.
type DomainPriority struct {
	Domain        string   `json:"domain" validate:"required"`
	Priority      float64  `json:"priority" validate:"finite,gte=0,lte=1"`
	MaxDailyHours *float64 `json:"max_daily_hours,omitempty" validate:"omitempty,finite,gt=0"`
}

// Goal is a user goal linked to the domains that support it.
type Goal struct {
	ID                 string   `json:"id" validate:"required"`
	Name               string   `json:"name" validate:"required"`
	Domains            []string `json:"domains" validate:"dive,required"`
	TargetHoursPerWeek *float64 `json:"target_hours_per_week,omitempty" validate:"omitempty,finite,gte=0"`
}

// ActionLog counts the actions taken on consumed content. Action counts may
// exceed Consumed since one item can be acted on several ways.
type ActionLog struct {
	Consumed   int `json:"consumed" validate:"gte=0"`
	Bookmarked int `json:"bookmarked" validate:"gte=0"`
	Shared     int `json:"shared" validate:"gte=0"`
	Applied    int `json:"applied" validate:"gte=0"`
}

// ActionWeights weights each action kind in the actionability score.
type ActionWeights struct {
	Bookmarked float64 `json:"bookmarked" validate:"finite,gte=0"`
	Shared     float64 `json:"shared" validate:"finite,gte=0"`
	Applied    float64 `json:"applied" validate:"finite,gte=0"`
}

const (
	DefaultBookmarkedWeight = 0.3
	DefaultSharedWeight     = 0.5
	DefaultAppliedWeight    = 1.0
)

// DefaultActionWeights returns the standard weights (0.3 / 0.5 / 1.0).
func DefaultActionWeights() ActionWeights {
	return ActionWeights{
		Bookmarked: DefaultBookmarkedWeight,
		Shared:     DefaultSharedWeight,
		Applied:    DefaultAppliedWeight,
	}
}

// Hours returns a pointer to h, for the optional cap and target fields.
func Hours(h float64) *float64 {
	return &h
}

// NewTimeEntry builds a validated TimeEntry.
func NewTimeEntry(domain string, hours float64) (TimeEntry, error) {
	e := TimeEntry{Domain: domain, Hours: hours}
	if err := check("time entry", e); err != nil {
		return TimeEntry{}, err
	}
	return e, nil
}

// NewDomainPriority builds a validated DomainPriority. maxDailyHours may be nil.
func NewDomainPriority(domain string, priority float64, maxDailyHours *float64) (DomainPriority, error) {
	p := DomainPriority{Domain: domain, Priority: priority}
	if maxDailyHours != nil {
		p.MaxDailyHours = Hours(*maxDailyHours)
	}
	if err := check("domain priority", p); err != nil {
		return DomainPriority{}, err
	}
	return p, nil
}

// NewGoal builds a validated Goal. The domain list is copied.
func NewGoal(id, name string, domains []string, targetHoursPerWeek *float64) (Goal, error) {
	g := Goal{ID: id, Name: name, Domains: append([]string(nil), domains...)}
	if targetHoursPerWeek != nil {
		g.TargetHoursPerWeek = Hours(*targetHoursPerWeek)
	}
	if err := check("goal", g); err != nil {
		return Goal{}, err
	}
	return g, nil
}

// NewActionLog builds a validated ActionLog. Counts must be non-negative;
// there is deliberately no upper bound relative to consumed.
func NewActionLog(consumed, bookmarked, shared, applied int) (ActionLog, error) {
	l := ActionLog{Consumed: consumed, Bookmarked: bookmarked, Shared: shared, Applied: applied}
	if err := check("action log", l); err != nil {
		return ActionLog{}, err
	}
	return l, nil
}

// NewActionWeights builds validated ActionWeights.
func NewActionWeights(bookmarked, shared, applied float64) (ActionWeights, error) {
	w := ActionWeights{Bookmarked: bookmarked, Shared: shared, Applied: applied}
	if err := check("action weights", w); err != nil {
		return ActionWeights{}, err
	}
	return w, nil
}

func check(record string, v interface{}) error {
	if fieldErrors := validation.Validate(v); len(fieldErrors) > 0 {
		return &ValidationError{Record: record, Fields: fieldErrors}
	}
	return nil
}
