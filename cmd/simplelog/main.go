// Package main implements the simplelog CLI.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/simplelog/internal/config"
	"github.com/fyrsmithlabs/simplelog/internal/logging"
)

// version information
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "simplelog",
		Short: "Filtered, colored logging with duplicate suppression and redaction",
		Long: `simplelog writes log lines through a named logger that drops consecutive
duplicates, masks values following sensitive keywords and renders colored
ISO timestamps to the console and an optional rotating file.`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newPipeCmd())
	return rootCmd
}

// newDemoCmd logs a few lines containing secrets through a masking logger.
func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Log sample lines through a masking logger",
		Long: `Log sample lines through a logger named "test" that masks the
"password" and "token" keywords. The apikey and secret lines are printed
unmasked because those keywords are not configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := logging.NewDefaultConfig()
			cfg.ConsoleWriter = cmd.ErrOrStderr()
			cfg.MaskSensitive = true
			cfg.MaskSensitivePatterns = []string{"password", "token"}

			reg := newRegistry(cmd.ErrOrStderr())
			log, err := reg.Get("test", cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			log.Info(ctx, "This is my password: pass123")
			log.Info(ctx, "This is my token tok456!")
			log.Info(ctx, "This is my apikey - api#$789")
			log.Info(ctx, "This is my secret -> sec1234abc")

			return reg.Close()
		},
	}
}

type pipeOptions struct {
	configPath string
	name       string
	level      string
	emitLevel  string
	file       string
	mask       bool
	requestID  string
}

// newPipeCmd logs each stdin line through a configured logger.
func newPipeCmd() *cobra.Command {
	opts := &pipeOptions{}

	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Log each line read from stdin",
		Long: `Log each line read from stdin through a named logger.

Settings are read from the config file and SIMPLELOG_ environment variables,
then overridden by any flags given.

Examples:
  # Collapse repeated lines from a noisy command
  noisy-job 2>&1 | simplelog pipe --name job

  # Mask credentials and keep a rotating copy on disk
  cat deploy.log | simplelog pipe --mask --file /var/log/deploy.log

  # Correlate the lines of one job run
  ./nightly.sh | simplelog pipe --request-id nightly-0412`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/simplelog/config.yaml)")
	cmd.Flags().StringVar(&opts.name, "name", "", "logger name")
	cmd.Flags().StringVar(&opts.level, "level", "", "minimum level logged")
	cmd.Flags().StringVar(&opts.emitLevel, "as", "INFO", "level each input line is logged at")
	cmd.Flags().StringVar(&opts.file, "file", "", "also write to this rotating log file")
	cmd.Flags().BoolVar(&opts.mask, "mask", false, "mask values following sensitive keywords")
	cmd.Flags().StringVar(&opts.requestID, "request-id", "", "tag every record with this request.id")

	return cmd
}

func runPipe(cmd *cobra.Command, opts *pipeOptions) (err error) {
	cfg, err := config.LoadWithFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = opts.name
	}
	if flags.Changed("level") {
		cfg.Logger.Level = opts.level
	}
	if flags.Changed("file") {
		cfg.Logger.Filename = opts.file
	}
	if flags.Changed("mask") {
		cfg.Logger.MaskSensitive = opts.mask
	}
	cfg.Logger.ConsoleWriter = cmd.ErrOrStderr()

	emit, err := logging.ParseLevel(opts.emitLevel)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if flags.Changed("request-id") {
		if ctx, err = logging.ContextWithRequestID(ctx, opts.requestID); err != nil {
			return err
		}
	}

	reg := newRegistry(cmd.ErrOrStderr())
	defer func() { err = multierr.Append(err, reg.Close()) }()

	log, err := reg.Get(cfg.Name, &cfg.Logger)
	if err != nil {
		return err
	}

	return pipeLines(logging.ContextWithLogger(ctx, log), cmd.InOrStdin(), emit)
}

// pipeLines logs each line of r at lvl through the logger carried by ctx.
func pipeLines(ctx context.Context, r io.Reader, lvl zapcore.Level) error {
	log := logging.LoggerFromContext(ctx)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		log.Log(ctx, lvl, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}
	return nil
}

func newRegistry(w io.Writer) *logging.Registry {
	return logging.NewRegistry(logging.WithNoticeLogger(logging.NewNoticeLogger(w)))
}
