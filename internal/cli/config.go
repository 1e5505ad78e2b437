package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/goldif/internal/configloader"
	"github.com/yaklabco/goldif/internal/logging"
	"github.com/yaklabco/goldif/pkg/config"
	"github.com/yaklabco/goldif/pkg/fsutil"
)

func newConfigCommand(globals *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and inspect goldif configuration",
		Long: `Create and inspect goldif configuration.

Configuration is merged from, in increasing precedence: built-in defaults,
the system config, the user config ($XDG_CONFIG_HOME/goldif/config.yaml),
the nearest .goldif.yml found upward from the working directory, the file
named by --config, GOLDIF_* environment variables and command-line flags.`,
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand(globals))
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

type configInitFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newConfigInitCommand() *cobra.Command {
	flags := &configInitFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file in the current directory",
		Long: `Create a new .goldif.yml configuration file in the current directory.

Examples:
  goldif config init                     Create minimal .goldif.yml
  goldif config init --full              Write every setting with its default
  goldif config init --format json       Create .goldif.json instead
  goldif config init -o custom.yml       Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting with its default value")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .goldif.yml or .goldif.json)")

	return cmd
}

func runConfigInit(cmd *cobra.Command, flags *configInitFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigFiles[0]
		if flags.format == "json" {
			outputPath = ".goldif.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	return nil
}

func newConfigShowCommand(globals *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration that results from merging every config source.
The files that contributed are listed in the header.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, globals, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")

	return cmd
}

func runConfigShow(cmd *cobra.Command, globals *globalFlags, format string) error {
	loaded, err := loadConfig(cmd, globals, &config.Config{})
	if err != nil {
		return err
	}

	var out []byte
	switch format {
	case "yaml":
		out, err = loaded.Config.ToYAMLWithHeader(showHeader(loaded.LoadedFrom))
	case "json":
		out, err = json.MarshalIndent(loaded.Config, "", "  ")
		out = append(out, '\n')
	default:
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, format)
	}
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// showHeader lists the config files that were merged.
func showHeader(loadedFrom []string) string {
	var b strings.Builder
	b.WriteString("# Effective goldif configuration\n")
	if len(loadedFrom) == 0 {
		b.WriteString("# Sources: defaults only\n")
		return b.String()
	}
	b.WriteString("# Sources:\n")
	for _, path := range loadedFrom {
		b.WriteString("#   " + path + "\n")
	}
	return b.String()
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the supported GOLDIF_* environment variables",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			vars := configloader.ListEnvVars()
			names := make([]string, 0, len(vars))
			width := 0
			for name := range vars {
				names = append(names, name)
				width = max(width, len(name))
			}
			slices.Sort(names)

			for _, name := range names {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", rpad(name, width), vars[name]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
