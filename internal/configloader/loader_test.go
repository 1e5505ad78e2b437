package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/goldif/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolatedOptions(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	// A VCS marker keeps the upward search inside the temp dir.
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Format != config.FormatText {
		t.Errorf("expected format %q, got %q", config.FormatText, result.Config.Format)
	}
	if result.Config.RequireVersionEnabled() {
		t.Error("require_version should default to false")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(root, ".goldif.yml"), "strict_records: true\njobs: 3\n")

	// Discovery searches upward from a nested directory.
	nested := filepath.Join(root, "data", "people")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolatedOptions(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !result.Config.StrictRecordsEnabled() {
		t.Error("expected strict_records from project config")
	}
	if result.Config.Jobs != 3 {
		t.Errorf("expected jobs 3, got %d", result.Config.Jobs)
	}
	if result.Paths.Project != filepath.Join(root, ".goldif.yml") {
		t.Errorf("unexpected project path %q", result.Paths.Project)
	}
}

func TestLoad_Precedence(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	xdg := filepath.Join(root, "xdg")
	writeFile(t, filepath.Join(xdg, "goldif", "config.yaml"),
		"format: json\ncolor: never\njobs: 1\nrequire_version: true\n")
	writeFile(t, filepath.Join(root, ".goldif.yml"), "jobs: 2\nrequire_version: false\n")
	explicit := filepath.Join(root, "explicit.yaml")
	writeFile(t, explicit, "jobs: 4\ndump_format: yaml\n")

	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("GOLDIF_JOBS", "5")
	t.Setenv("GOLDIF_STRICT_RECORDS", "true")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:         root,
		ExplicitPath:       explicit,
		IgnoreSystemConfig: true,
		CLIConfig:          &config.Config{Color: config.ColorAlways},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Format != config.FormatJSON {
		t.Errorf("format: want json from user config, got %q", cfg.Format)
	}
	if cfg.Color != config.ColorAlways {
		t.Errorf("color: want always from CLI, got %q", cfg.Color)
	}
	if cfg.RequireVersionEnabled() {
		t.Error("require_version: project config should turn off the user setting")
	}
	if cfg.DumpFormat != config.DumpYAML {
		t.Errorf("dump_format: want yaml from explicit config, got %q", cfg.DumpFormat)
	}
	if cfg.Jobs != 5 {
		t.Errorf("jobs: want 5 from environment, got %d", cfg.Jobs)
	}
	if !cfg.StrictRecordsEnabled() {
		t.Error("strict_records: want true from environment")
	}

	want := []string{
		filepath.Join(xdg, "goldif", "config.yaml"),
		filepath.Join(root, ".goldif.yml"),
		explicit,
	}
	if strings.Join(result.LoadedFrom, ",") != strings.Join(want, ",") {
		t.Errorf("LoadedFrom = %v, want %v", result.LoadedFrom, want)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad format", "format: sarif\n", `unknown output format "sarif"`},
		{"negative jobs", "jobs: -1\n", "jobs: must not be negative"},
		{"bad extension", "extensions: [ldif]\n", `extensions[0]: "ldif" is not a file extension`},
		{"bad glob", "ignore: ['[']\n", `bad glob "["`},
		{"unknown key", "flavor: gfm\n", "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, "bad.yaml")
			writeFile(t, path, tt.content)

			opts := isolatedOptions(tmpDir)
			opts.IgnoreProjectConfig = true
			opts.ExplicitPath = path

			_, err := Load(context.Background(), opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	opts := isolatedOptions(tmpDir)
	opts.IgnoreProjectConfig = true
	opts.ExplicitPath = filepath.Join(tmpDir, "missing.yaml")

	_, err := Load(context.Background(), opts)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "load explicit config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(t.TempDir()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GOLDIF_IGNORE", " a/** , ,b.ldif ")
	t.Setenv("GOLDIF_RESOLVE_URLS", "1")
	t.Setenv("GOLDIF_MAX_URL_SIZE", "4096")

	cfg := &config.Config{}
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if strings.Join(cfg.Ignore, "|") != "a/**|b.ldif" {
		t.Errorf("ignore = %v", cfg.Ignore)
	}
	if !cfg.ResolveURLsEnabled() {
		t.Error("resolve_urls should be enabled")
	}
	if cfg.MaxURLSize != 4096 {
		t.Errorf("max_url_size = %d", cfg.MaxURLSize)
	}

	t.Setenv("GOLDIF_STRICT_RECORDS", "maybe")
	err := LoadFromEnv(cfg)
	if err == nil || !strings.Contains(err.Error(), "GOLDIF_STRICT_RECORDS") {
		t.Errorf("expected boolean error naming the variable, got %v", err)
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("require_version"); got != "GOLDIF_REQUIRE_VERSION" {
		t.Errorf("GetEnvVarName = %q", got)
	}
	if got := GetEnvVarName("nope"); got != "" {
		t.Errorf("GetEnvVarName(unknown) = %q", got)
	}
	if _, ok := ListEnvVars()["GOLDIF_DUMP_FORMAT"]; !ok {
		t.Error("ListEnvVars is missing GOLDIF_DUMP_FORMAT")
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	cfg := MergeAll(
		base,
		&config.Config{Ignore: []string{"x"}, ShowContext: config.Bool(false)},
		&config.Config{Ignore: []string{}},
	)

	if cfg.ShowContextEnabled() {
		t.Error("show_context should be turned off")
	}
	if cfg.Ignore == nil || len(cfg.Ignore) != 0 {
		t.Errorf("an empty non-nil slice replaces the base, got %v", cfg.Ignore)
	}
	if !base.ShowContextEnabled() {
		t.Error("merge must not modify its inputs")
	}
	if MergeAll() != nil {
		t.Error("MergeAll() with no configs should be nil")
	}
}
