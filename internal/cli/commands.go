package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/blaisecz/meaningful-metrics/internal/casestudy"
	"github.com/blaisecz/meaningful-metrics/internal/domain"
	"github.com/blaisecz/meaningful-metrics/internal/metrics"
	"github.com/blaisecz/meaningful-metrics/internal/profile"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return nil
	}
}

func parseFloat(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", domain.ErrInvalidInput, name, value)
	}
	return f, nil
}

type reportCmd struct {
	cli         *CLI
	profilePath string
	period      string
	publish     bool
}

func (cli *CLI) newReportCmd() *cobra.Command {
	rc := &reportCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a metrics report from a profile file",
		Args:  exactArgs(0),
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profilePath, "profile", "", "Path to the profile file (yaml, json or toml)")
	cmd.Flags().StringVar(&rc.period, "period", "", "Reporting period (daily, weekly); overrides the profile")
	cmd.Flags().BoolVar(&rc.publish, "publish", false, "Publish the report scores to Langfuse")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (rc *reportCmd) run(cmd *cobra.Command, _ []string) error {
	format, err := rc.cli.outputFormat()
	if err != nil {
		return err
	}
	if rc.publish {
		if err := rc.cli.checkPublisher(); err != nil {
			return err
		}
	}

	p, err := profile.LoadFile(rc.profilePath)
	if err != nil {
		return err
	}

	// --period wins over the profile, which wins over REPORT_PERIOD.
	req := p.Request
	switch {
	case cmd.Flags().Changed("period"):
		if req.Period, err = domain.ParsePeriod(rc.period); err != nil {
			return err
		}
	case req.Period == "":
		if req.Period, err = domain.ParsePeriod(rc.cli.cfg.ReportPeriod); err != nil {
			return err
		}
	}

	report, err := rc.cli.service.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	if rc.publish {
		traceID, err := rc.cli.publisher.PublishReport(cmd.Context(), p.Name, report)
		if err != nil {
			return publishFailed(err)
		}
		zerolog.Ctx(cmd.Context()).Info().Str("trace_id", traceID).Msg("report published")
	}
	return writeFailed(rc.cli.reporter.Report(format, p.Name, p.Description, report))
}

type caseStudyCmd struct {
	cli          *CLI
	segmentsPath string
	publish      bool
}

func (cli *CLI) newCaseStudyCmd() *cobra.Command {
	cc := &caseStudyCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "casestudy",
		Short: "Evaluate population segments and their weighted aggregate",
		Long: "Evaluates the built-in assistant-usage case study (knowledge worker, student, casual explorer), " +
			"or the segments in --segments, and prints a benchmark.",
		Args: exactArgs(0),
		RunE: cc.run,
	}

	cmd.Flags().StringVar(&cc.segmentsPath, "segments", "", "Path to a segments file; defaults to the built-in case study")
	cmd.Flags().BoolVar(&cc.publish, "publish", false, "Publish the benchmark scores to Langfuse")

	return cmd
}

func (cc *caseStudyCmd) run(cmd *cobra.Command, _ []string) error {
	format, err := cc.cli.outputFormat()
	if err != nil {
		return err
	}
	if cc.publish {
		if err := cc.cli.checkPublisher(); err != nil {
			return err
		}
	}

	var segments []domain.Segment
	if cc.segmentsPath != "" {
		segments, err = profile.LoadSegments(cc.segmentsPath)
	} else {
		segments, err = casestudy.Segments()
	}
	if err != nil {
		return err
	}

	bench, err := cc.cli.service.EvaluateSegments(cmd.Context(), segments)
	if err != nil {
		return err
	}

	if cc.publish {
		if err := cc.cli.publisher.PublishBenchmark(cmd.Context(), bench); err != nil {
			return publishFailed(err)
		}
		zerolog.Ctx(cmd.Context()).Info().Str("run_id", bench.RunID.String()).Msg("benchmark published")
	}
	return writeFailed(cc.cli.reporter.Benchmark(format, bench))
}

func (cli *CLI) newLocalityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locality RELEVANCE ENGAGEMENT",
		Short: "Score local relevance times engagement, both in [0, 1]",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.outputFormat()
			if err != nil {
				return err
			}
			relevance, err := parseFloat("local_relevance", args[0])
			if err != nil {
				return err
			}
			engagement, err := parseFloat("engagement", args[1])
			if err != nil {
				return err
			}

			score, err := metrics.LocalityScore(relevance, engagement)
			if err != nil {
				return err
			}
			return writeFailed(cli.reporter.Score(format, "locality_score", score))
		},
	}
}

func (cli *CLI) newSoftMinCmd() *cobra.Command {
	var alpha float64
	cmd := &cobra.Command{
		Use:   "softmin A B",
		Short: "Smooth minimum of two scores",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.outputFormat()
			if err != nil {
				return err
			}
			a, err := parseFloat("a", args[0])
			if err != nil {
				return err
			}
			b, err := parseFloat("b", args[1])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("alpha") {
				alpha = cli.cfg.SoftMinAlpha
			}

			score, err := metrics.SoftMin(a, b, alpha)
			if err != nil {
				return err
			}
			return writeFailed(cli.reporter.Score(format, "soft_min", score))
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", metrics.DefaultSoftMinAlpha, "Sharpness; larger values approach the hard minimum (default SOFTMIN_ALPHA)")

	return cmd
}

type actionabilityCmd struct {
	cli        *CLI
	bookmarked int
	shared     int
	applied    int
	weights    domain.ActionWeights
}

func (cli *CLI) newActionabilityCmd() *cobra.Command {
	ac := &actionabilityCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "actionability CONSUMED",
		Short: "Weighted follow-through per consumed item",
		Args:  exactArgs(1),
		RunE:  ac.run,
	}

	defaults := domain.DefaultActionWeights()
	cmd.Flags().IntVar(&ac.bookmarked, "bookmarked", 0, "Items bookmarked")
	cmd.Flags().IntVar(&ac.shared, "shared", 0, "Items shared")
	cmd.Flags().IntVar(&ac.applied, "applied", 0, "Items applied")
	cmd.Flags().Float64Var(&ac.weights.Bookmarked, "bookmark-weight", defaults.Bookmarked, "Weight of a bookmark")
	cmd.Flags().Float64Var(&ac.weights.Shared, "share-weight", defaults.Shared, "Weight of a share")
	cmd.Flags().Float64Var(&ac.weights.Applied, "apply-weight", defaults.Applied, "Weight of an application")

	return cmd
}

func (ac *actionabilityCmd) run(_ *cobra.Command, args []string) error {
	format, err := ac.cli.outputFormat()
	if err != nil {
		return err
	}
	consumed, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: consumed must be an integer, got %q", domain.ErrInvalidInput, args[0])
	}

	log, err := domain.NewActionLog(consumed, ac.bookmarked, ac.shared, ac.applied)
	if err != nil {
		return err
	}
	weights, err := domain.NewActionWeights(ac.weights.Bookmarked, ac.weights.Shared, ac.weights.Applied)
	if err != nil {
		return err
	}

	return writeFailed(ac.cli.reporter.Score(format, "actionability_score", metrics.ActionabilityScoreFromLog(log, &weights)))
}
