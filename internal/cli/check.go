package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/goldif/internal/logging"
	"github.com/yaklabco/goldif/pkg/config"
	"github.com/yaklabco/goldif/pkg/reporter"
	"github.com/yaklabco/goldif/pkg/runner"
)

type checkFlags struct {
	format         string
	jobs           int
	ignore         []string
	extensions     []string
	requireVersion bool
	strictRecords  bool
	noContext      bool
	noSummary      bool
	compact        bool
	followSymlinks bool
	maxFileSize    int64
}

func newCheckCommand(globals *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:     "check [paths...]",
		Aliases: []string{"lint", "validate"},
		Short:   "Check LDIF files for syntax errors",
		Long:    checkLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, globals, flags)
		},
	}

	addCheckFlags(cmd, flags)

	return cmd
}

const checkLongDescription = `Parse LDIF files and report syntax errors.

By default, checks all .ldif files in the current directory and its
subdirectories. Specify paths to check specific files or directories,
or "-" to read standard input.

Examples:
  goldif check                        # Check current directory
  goldif check exports/               # Check a directory
  goldif check people.ldif            # Check a single file
  cat people.ldif | goldif check -    # Check standard input
  goldif check --require-version      # Report files without "version: 1"
  goldif check --format json          # Output as JSON for CI`

func addCheckFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: "+strings.Join(reporter.Formats(), ", "))
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to collect from directories")
	cmd.Flags().BoolVar(&flags.requireVersion, "require-version", false, `report files without a "version: 1" line`)
	cmd.Flags().BoolVar(&flags.strictRecords, "strict-records", false,
		"report files that mix content and change records")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")
	cmd.Flags().Int64Var(&flags.maxFileSize, "max-file-size", 0, "skip files larger than this many bytes (0 = no limit)")
}

// checkConfig builds the CLI layer of the configuration. Only flags that
// were explicitly set override lower layers.
func checkConfig(cmd *cobra.Command, flags *checkFlags) (*config.Config, error) {
	cliCfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		format, err := config.ParseOutputFormat(flags.format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		cliCfg.Format = format
	}
	if changed("jobs") {
		cliCfg.Jobs = flags.jobs
	}
	if changed("ignore") {
		cliCfg.Ignore = flags.ignore
	}
	if changed("ext") {
		cliCfg.Extensions = flags.extensions
	}
	if changed("require-version") {
		cliCfg.RequireVersion = config.Bool(flags.requireVersion)
	}
	if changed("strict-records") {
		cliCfg.StrictRecords = config.Bool(flags.strictRecords)
	}
	if changed("no-context") {
		cliCfg.ShowContext = config.Bool(!flags.noContext)
	}

	return cliCfg, nil
}

func runCheck(cmd *cobra.Command, args []string, globals *globalFlags, flags *checkFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg, err := checkConfig(cmd, flags)
	if err != nil {
		return err
	}

	loaded, err := loadConfig(cmd, globals, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir
	runOpts.FollowSymlinks = flags.followSymlinks
	runOpts.MaxFileSize = flags.maxFileSize
	runOpts.Stdin = cmd.InOrStdin()

	logger.Debug("starting check",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, workDir,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldRequireVersion, runOpts.Parser.RequireVersion,
		logging.FieldStrictRecords, runOpts.Parser.StrictRecords,
	)

	run, err := runner.New(runOpts)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	result, err := run.Run(ctx)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       string(cfg.Color),
		ShowContext: cfg.ShowContextEnabled(),
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return errorForExitCode(ExitCodeFromResult(result))
}
