package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/goldif/internal/logging"
	"github.com/yaklabco/goldif/pkg/config"
	"github.com/yaklabco/goldif/pkg/dump"
	"github.com/yaklabco/goldif/pkg/reporter"
	"github.com/yaklabco/goldif/pkg/runner"
)

type dumpFlags struct {
	format         string
	output         string
	resolveURLs    bool
	maxURLSize     int64
	requireVersion bool
	strictRecords  bool
}

func newDumpCommand(globals *globalFlags) *cobra.Command {
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the records of an LDIF file as JSON or YAML",
		Long: `Parse one LDIF file and print its records as JSON or YAML.

Values that are not valid UTF-8 text are printed as base64. URL values are
printed as references unless --resolve-urls is given, in which case the
referenced file:// content is read and included. When the file has syntax
errors they are reported on stderr and nothing is dumped.

Examples:
  goldif dump people.ldif                    # JSON to stdout
  goldif dump --format yaml people.ldif      # YAML to stdout
  goldif dump -o people.json people.ldif     # Write to a file
  goldif dump --resolve-urls photos.ldif     # Include file:// content`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0], globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "json", "dump format: json, yaml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.resolveURLs, "resolve-urls", false, "include the content of file:// URL values")
	cmd.Flags().Int64Var(&flags.maxURLSize, "max-url-size", 0, "largest URL content to include in bytes (0 = default)")
	cmd.Flags().BoolVar(&flags.requireVersion, "require-version", false, `report a missing "version: 1" line`)
	cmd.Flags().BoolVar(&flags.strictRecords, "strict-records", false,
		"report files that mix content and change records")

	return cmd
}

func dumpConfig(cmd *cobra.Command, flags *dumpFlags) (*config.Config, error) {
	cliCfg := &config.Config{}
	changed := cmd.Flags().Changed

	if changed("format") {
		format, err := config.ParseDumpFormat(flags.format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		cliCfg.DumpFormat = format
	}
	if changed("resolve-urls") {
		cliCfg.ResolveURLs = config.Bool(flags.resolveURLs)
	}
	if changed("max-url-size") {
		cliCfg.MaxURLSize = flags.maxURLSize
	}
	if changed("require-version") {
		cliCfg.RequireVersion = config.Bool(flags.requireVersion)
	}
	if changed("strict-records") {
		cliCfg.StrictRecords = config.Bool(flags.strictRecords)
	}

	return cliCfg, nil
}

func runDump(cmd *cobra.Command, path string, globals *globalFlags, flags *dumpFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg, err := dumpConfig(cmd, flags)
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

	runOpts := runner.OptionsFromConfig(cfg, []string{path})
	runOpts.WorkingDir = workDir
	runOpts.Stdin = cmd.InOrStdin()

	run, err := runner.New(runOpts)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	if path != runner.StdinPath && !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	outcome := run.ParseFile(ctx, path)
	if outcome.Error != nil {
		return fmt.Errorf("%w: %w", ErrIO, outcome.Error)
	}

	if !outcome.OK() {
		rep := reporter.NewTextReporter(reporter.Options{
			Writer:      cmd.ErrOrStderr(),
			Color:       string(cfg.Color),
			ShowContext: cfg.ShowContextEnabled(),
		})
		result := &runner.Result{Files: []runner.FileOutcome{outcome}}
		if _, err := rep.Report(ctx, result); err != nil {
			return fmt.Errorf("report results: %w", err)
		}
		return ErrParseErrorsFound
	}

	converter := dump.NewConverter(dump.Options{
		ResolveURLs: cfg.ResolveURLsEnabled(),
		MaxURLSize:  cfg.MaxURLSize,
	})
	doc, err := converter.FromState(ctx, outcome.State)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if flags.output == "" {
		if err := dump.Encode(cmd.OutOrStdout(), doc, cfg.DumpFormat); err != nil {
			return fmt.Errorf("write dump: %w", err)
		}
		return nil
	}

	if err := dump.WriteFile(ctx, flags.output, doc, cfg.DumpFormat); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	logger.Info("wrote dump",
		logging.FieldOutput, flags.output,
		logging.FieldRecords, len(doc.Records),
		logging.FieldFormat, cfg.DumpFormat,
	)

	return nil
}
