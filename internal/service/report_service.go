package service

import (
	"context"
	"encoding/json"

	"github.com/blaisecz/meaningful-metrics/internal/domain"
	"github.com/blaisecz/meaningful-metrics/internal/scoring"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "meaningful-metrics/report"

// ReportService generates metrics reports and segment benchmarks. It holds
// no state; every call is independent and safe for concurrent use.
type ReportService interface {
	// Generate builds the report for one set of records.
	Generate(ctx context.Context, req domain.ReportRequest) (*domain.MetricsReport, error)
	// EvaluateSegments builds a weekly report per segment plus the
	// population-weighted aggregate.
	EvaluateSegments(ctx context.Context, segments []domain.Segment) (*domain.Benchmark, error)
}

type reportService struct{}

// NewReportService creates a new ReportService.
func NewReportService() ReportService {
	return &reportService{}
}

func (s *reportService) Generate(ctx context.Context, req domain.ReportRequest) (*domain.MetricsReport, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ReportService.Generate",
		trace.WithAttributes(
			attribute.String("report.period", string(req.Period)),
			attribute.Int("report.entries", len(req.Entries)),
			attribute.Int("report.priorities", len(req.Priorities)),
			attribute.Int("report.goals", len(req.Goals)),
			attribute.Bool("report.has_actions", req.Actions != nil),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(ctx)

	report, err := scoring.GenerateReport(req.Entries, req.Priorities, req.Goals, req.Actions, req.Period)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn().Err(err).Msg("report generation failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("report.quality_time_score", report.QualityTimeScore),
		attribute.Float64("report.goal_alignment_percent", report.GoalAlignmentPercent),
		attribute.Float64("report.actionability_score", report.ActionabilityScore),
		attribute.Int("report.recommendations", len(report.Recommendations)),
	)

	// Attach output payload for Langfuse
	if outputJSON, err := json.Marshal(report); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}

	logger.Debug().
		Str("period", string(report.Period)).
		Float64("qts", report.QualityTimeScore).
		Float64("goal_alignment", report.GoalAlignmentPercent).
		Int("recommendations", len(report.Recommendations)).
		Msg("report generated")

	return report, nil
}

func (s *reportService) EvaluateSegments(ctx context.Context, segments []domain.Segment) (*domain.Benchmark, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ReportService.EvaluateSegments",
		trace.WithAttributes(attribute.Int("segments.count", len(segments))),
	)
	defer span.End()

	logger := zerolog.Ctx(ctx)

	results := make([]domain.SegmentResult, 0, len(segments))
	for _, seg := range segments {
		actions := seg.Actions
		report, err := s.Generate(logger.With().Str("segment", seg.Name).Logger().WithContext(ctx), domain.ReportRequest{
			Entries:    seg.Entries,
			Priorities: seg.Priorities,
			Goals:      seg.Goals,
			Actions:    &actions,
			Period:     domain.PeriodWeekly,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		results = append(results, domain.SegmentResult{
			Name:            seg.Name,
			Description:     seg.Description,
			PopulationShare: seg.PopulationShare,
			Results:         *report,
		})
	}

	aggregate, err := scoring.WeightedAggregate(results)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("aggregate.goal_alignment_percent", aggregate.GoalAlignmentPercent),
		attribute.String("aggregate.rating", string(aggregate.Rating)),
	)
	logger.Info().
		Int("segments", len(results)).
		Float64("goal_alignment", aggregate.GoalAlignmentPercent).
		Str("rating", string(aggregate.Rating)).
		Msg("segments evaluated")

	return domain.NewBenchmark(results, aggregate), nil
}
