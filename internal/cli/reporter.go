package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/blaisecz/meaningful-metrics/internal/domain"
)

// Format selects how results are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" or "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: format must be one of text, json; got %q", domain.ErrInvalidInput, s)
	}
}

const reportTemplate = `{{define "report"}}{{if .Title}}{{.Title}}
{{end}}{{if .Description}}  {{.Description}}
{{end}}Period: {{.Report.Period}}

Core Metrics:
  Quality Time Score:   {{printf "%.2f" .Report.QualityTimeScore}}
  Raw Time:             {{printf "%.2f" .Report.RawTimeHours}}h
  Goal Alignment:       {{printf "%.1f" .Report.GoalAlignmentPercent}}%
  Distraction Ratio:    {{printf "%.1f" .Report.DistractionPercent}}%
  Actionability Score:  {{printf "%.3f" .Report.ActionabilityScore}}
{{if .Domains}}
Domain Breakdown:
{{range .Domains}}  {{printf "%-30s" .Domain}} {{printf "%-15s" (bar .Contribution)}} ({{printf "%.1f" .TimeSpent}}h -> {{printf "%.2f" .Contribution}} QTS)
{{end}}{{end}}{{if .Report.Recommendations}}
Recommendations:
{{range .Report.Recommendations}}  [{{marker .Priority}}] {{.Message}}
{{end}}{{end}}{{end}}`

const benchmarkTemplate = `{{define "benchmark"}}Run {{.RunID}} ({{.GeneratedAt.Format "2006-01-02 15:04:05"}} UTC)
{{range .Segments}}
{{rule}}
SEGMENT: {{upper .Name}}
{{if .Description}}  {{.Description}}
{{end}}  Population share: {{printf "%.0f" (percent .Share)}}%
{{rule}}
{{template "report" .View}}{{end}}
{{rule}}
POPULATION-WEIGHTED AGGREGATE (ALL SEGMENTS)
{{rule}}

  Quality Time Score:   {{printf "%.2f" .Aggregate.QualityTimeScore}}
  Goal Alignment:       {{printf "%.1f" .Aggregate.GoalAlignmentPercent}}%
  Distraction Ratio:    {{printf "%.1f" .Aggregate.DistractionPercent}}%
  Actionability Score:  {{printf "%.3f" .Aggregate.ActionabilityScore}}

Interpretation:
  Goal Alignment Rating: {{.Aggregate.Rating}}
  {{.Aggregate.Rating.Interpretation}}

Headline: {{printf "%.0f" .Aggregate.GoalAlignmentPercent}}% Goal Alignment across the population.
{{end}}`

var templates = template.Must(template.New("cli").Funcs(template.FuncMap{
	"bar": func(contribution float64) string {
		n := int(contribution * 10)
		if n < 0 {
			n = 0
		}
		return strings.Repeat("█", n)
	},
	"marker": func(p domain.RecommendationPriority) string {
		switch p {
		case domain.PriorityHigh:
			return "!!!"
		case domain.PriorityMedium:
			return "!!"
		default:
			return "i"
		}
	},
	"percent": func(share float64) float64 { return share * 100 },
	"rule":    func() string { return strings.Repeat("=", 60) },
	"upper":   strings.ToUpper,
}).Parse(reportTemplate + benchmarkTemplate))

type reportView struct {
	Title       string
	Description string
	Report      *domain.MetricsReport
	// Domains is the breakdown ordered by contribution, largest first.
	Domains []domain.DomainMetrics
}

type segmentView struct {
	Name        string
	Description string
	Share       float64
	View        reportView
}

type benchmarkView struct {
	*domain.Benchmark
	Segments []segmentView
}

func newReportView(title, description string, report *domain.MetricsReport) reportView {
	domains := append([]domain.DomainMetrics(nil), report.ByDomain...)
	sort.SliceStable(domains, func(i, j int) bool {
		return domains[i].Contribution > domains[j].Contribution
	})
	return reportView{Title: title, Description: description, Report: report, Domains: domains}
}

// Reporter writes results to the console as text or JSON.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// Report writes a single metrics report.
func (r *Reporter) Report(format Format, title, description string, report *domain.MetricsReport) error {
	if format == FormatJSON {
		return r.json(report)
	}
	return r.execute("report", newReportView(title, description, report))
}

// Benchmark writes a segment evaluation with its aggregate.
func (r *Reporter) Benchmark(format Format, b *domain.Benchmark) error {
	if format == FormatJSON {
		return r.json(b)
	}

	view := benchmarkView{Benchmark: b, Segments: make([]segmentView, 0, len(b.Profiles))}
	for i := range b.Profiles {
		p := &b.Profiles[i]
		view.Segments = append(view.Segments, segmentView{
			Name:        p.Name,
			Description: p.Description,
			Share:       p.PopulationShare,
			View:        newReportView("", "", &p.Results),
		})
	}
	return r.execute("benchmark", view)
}

// Score writes a single named score.
func (r *Reporter) Score(format Format, name string, value float64) error {
	if format == FormatJSON {
		return r.json(map[string]float64{name: value})
	}
	_, err := fmt.Fprintf(r.writer, "%s: %.4f\n", name, value)
	return err
}

func (r *Reporter) execute(name string, data interface{}) error {
	if err := templates.ExecuteTemplate(r.writer, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}

func (r *Reporter) json(v interface{}) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
