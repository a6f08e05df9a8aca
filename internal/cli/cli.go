package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/blaisecz/meaningful-metrics/internal/config"
	"github.com/blaisecz/meaningful-metrics/internal/domain"
	"github.com/blaisecz/meaningful-metrics/internal/langfuse"
	"github.com/blaisecz/meaningful-metrics/internal/service"
	"github.com/blaisecz/meaningful-metrics/pkg/problem"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	cfg       *config.Config
	service   service.ReportService
	publisher langfuse.Client
	reporter  *Reporter
	errOutput io.Writer
	format    string
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Config    *config.Config
	Service   service.ReportService
	Publisher langfuse.Client
	Output    io.Writer
	ErrOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.Config == nil {
		opts.Config = &config.Config{ReportPeriod: string(domain.PeriodDaily), SoftMinAlpha: 10}
	}
	if opts.Service == nil {
		opts.Service = service.NewReportService()
	}
	if opts.Publisher == nil {
		opts.Publisher = langfuse.NewClient(langfuse.Config{
			BaseURL:     opts.Config.LangfuseBaseURL,
			PublicKey:   opts.Config.LangfusePublicKey,
			SecretKey:   opts.Config.LangfuseSecretKey,
			Environment: opts.Config.LangfuseEnv,
		})
	}

	cli := &CLI{
		cfg:       opts.Config,
		service:   opts.Service,
		publisher: opts.Publisher,
		reporter:  NewReporter(opts.Output),
		errOutput: opts.ErrOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	cli.rootCmd.SetErr(opts.ErrOutput)
	return cli
}

// Execute runs the command named by args. A failure is written to the
// error output as a problem document and returned.
func (cli *CLI) Execute(ctx context.Context, args []string) error {
	cli.rootCmd.SetArgs(args)

	err := cli.rootCmd.ExecuteContext(ctx)
	if err != nil {
		if werr := toProblem(err).Write(cli.errOutput); werr != nil {
			return fmt.Errorf("failed to write problem: %w", werr)
		}
	}
	return err
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "meaningful-metrics",
		Short:         "Score time use by priority, goal alignment and follow-through",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cli.format, "format", string(FormatText), "Output format (text, json)")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	})

	cmd.AddCommand(cli.newReportCmd())
	cmd.AddCommand(cli.newCaseStudyCmd())
	cmd.AddCommand(cli.newLocalityCmd())
	cmd.AddCommand(cli.newSoftMinCmd())
	cmd.AddCommand(cli.newActionabilityCmd())

	return cmd
}

func (cli *CLI) outputFormat() (Format, error) {
	return ParseFormat(cli.format)
}

func (cli *CLI) checkPublisher() error {
	if !cli.publisher.IsEnabled() {
		return fmt.Errorf("%w: --publish requires LANGFUSE_BASE_URL, LANGFUSE_PUBLIC_KEY and LANGFUSE_SECRET_KEY", domain.ErrInvalidInput)
	}
	return nil
}

// writeFailed reports output errors as internal errors.
func writeFailed(err error) error {
	if err == nil {
		return nil
	}
	return problem.InternalError(err.Error())
}

func publishFailed(err error) error {
	return problem.New("publish-failed", "Publish Failed", err.Error())
}
