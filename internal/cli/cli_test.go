package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goldif/internal/cli"
	"github.com/yaklabco/goldif/pkg/runner"
)

const validLDIF = "version: 1\n\n" +
	"dn: cn=Barbara Jensen,dc=example,dc=com\n" +
	"objectclass: person\n" +
	"cn: Barbara Jensen\n" +
	"sn: Jensen\n"

const invalidLDIF = "version: 1\n\n" +
	"dn: cn=a,dc=org\n" +
	"this line is not an attribute\n"

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-01-01"}
}

// execute runs the root command with args and returns stdout, stderr and the
// command error. Config files are never consulted unless args name one.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-config", "--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "goldif", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"check", "dump", "config", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	sub, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)
	assert.Equal(t, "check", sub.Name())

	for _, name := range []string{"debug", "config", "color", "no-config"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "goldif")
	assert.Contains(t, stdout, "1.2.3")
	assert.Contains(t, stdout, "abc123")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "check", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "--require-version")
	assert.Contains(t, stdout, "Global Flags:")
	assert.Contains(t, stdout, "lint, validate")
}

func TestCheck_ValidFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "people.ldif", validLDIF)

	stdout, _, err := execute(t, "", "check", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No errors found")
	assert.Contains(t, stdout, "1 file checked")
}

func TestCheck_SyntaxErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.ldif", invalidLDIF)
	writeFile(t, dir, "good.ldif", validLDIF)

	stdout, _, err := execute(t, "", "check", dir)
	require.ErrorIs(t, err, cli.ErrParseErrorsFound)
	assert.Equal(t, cli.ExitParseErrors, cli.ExitCode(err))
	assert.True(t, cli.IsReported(err))

	assert.Contains(t, stdout, bad)
	assert.Contains(t, stdout, "syntax error")
	assert.Contains(t, stdout, "2 files checked")
}

func TestCheck_NoContext(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "bad.ldif", invalidLDIF)

	stdout, _, err := execute(t, "", "check", "--no-context", "--no-summary", path)
	require.ErrorIs(t, err, cli.ErrParseErrorsFound)
	assert.NotContains(t, stdout, "^")
	assert.NotContains(t, stdout, "checked")
}

func TestCheck_JSONFormat(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "bad.ldif", invalidLDIF)

	stdout, _, err := execute(t, "", "check", "--format", "json", path)
	require.ErrorIs(t, err, cli.ErrParseErrorsFound)

	var out struct {
		Files []struct {
			Path   string `json:"path"`
			Errors []struct {
				Line int `json:"line"`
			} `json:"errors"`
		} `json:"files"`
		Summary struct {
			FilesChecked int `json:"filesChecked"`
			Errors       int `json:"errors"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Files, 1)
	assert.Equal(t, path, out.Files[0].Path)
	require.NotEmpty(t, out.Files[0].Errors)
	assert.Equal(t, 4, out.Files[0].Errors[0].Line)
	assert.Equal(t, 1, out.Summary.FilesChecked)
}

func TestCheck_RequireVersion(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "noversion.ldif", "dn: cn=a,dc=org\ncn: a\n")

	_, _, err := execute(t, "", "check", path)
	require.NoError(t, err)

	stdout, _, err := execute(t, "", "check", "--require-version", path)
	require.ErrorIs(t, err, cli.ErrParseErrorsFound)
	assert.Contains(t, stdout, "noversion.ldif")
}

func TestCheck_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, validLDIF, "check", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No errors found")

	_, _, err = execute(t, invalidLDIF, "check", "-")
	require.ErrorIs(t, err, cli.ErrParseErrorsFound)
}

func TestCheck_UsageErrors(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.ldif")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{name: "unknown format", args: []string{"check", "--format", "xml"}, code: cli.ExitInvalidUsage},
		{name: "unknown flag", args: []string{"check", "--bogus"}, code: cli.ExitInvalidUsage},
		{name: "bad color", args: []string{"--color", "purple", "check"}, code: cli.ExitInvalidUsage},
		{name: "missing path", args: []string{"check", missing}, code: cli.ExitIOError},
		{name: "missing config", args: []string{"--config", missing, "check"}, code: cli.ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, cli.ExitCode(err), err)
			assert.False(t, cli.IsReported(err))
		})
	}
}

func TestCheck_ExplicitConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "goldif.yaml", "format: json\n")
	path := writeFile(t, dir, "people.ldif", validLDIF)

	stdout, _, err := execute(t, "", "--config", cfgPath, "check", path)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)), stdout)

	// Flags take precedence over the config file.
	stdout, _, err = execute(t, "", "--config", cfgPath, "check", "--format", "text", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No errors found")
}

func TestDump(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "people.ldif", validLDIF)

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, "", "dump", path)
		require.NoError(t, err)

		var doc struct {
			Version int `json:"version"`
			Records []struct {
				DN         string `json:"dn"`
				Attributes []struct {
					Name  string `json:"name"`
					Value string `json:"value"`
				} `json:"attributes"`
			} `json:"records"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
		assert.Equal(t, 1, doc.Version)
		require.Len(t, doc.Records, 1)
		assert.Equal(t, "cn=Barbara Jensen,dc=example,dc=com", doc.Records[0].DN)
		require.Len(t, doc.Records[0].Attributes, 3)
		assert.Equal(t, "sn", doc.Records[0].Attributes[2].Name)
		assert.Equal(t, "Jensen", doc.Records[0].Attributes[2].Value)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, "", "dump", "--format", "yaml", path)
		require.NoError(t, err)
		assert.Contains(t, stdout, "dn: cn=Barbara Jensen,dc=example,dc=com")
		assert.Contains(t, stdout, "version: 1")
	})

	t.Run("output file", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "people.json")
		stdout, _, err := execute(t, "", "dump", "-o", out, path)
		require.NoError(t, err)
		assert.Empty(t, stdout)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"dn": "cn=Barbara Jensen,dc=example,dc=com"`)
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, validLDIF, "dump", "-")
		require.NoError(t, err)
		assert.Contains(t, stdout, `"dn": "cn=Barbara Jensen,dc=example,dc=com"`)
	})
}

func TestDump_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.ldif", invalidLDIF)

	stdout, stderr, err := execute(t, "", "dump", bad)
	require.ErrorIs(t, err, cli.ErrParseErrorsFound)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "syntax error")

	_, _, err = execute(t, "", "dump")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, _, err = execute(t, "", "dump", filepath.Join(dir, "missing.ldif"))
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))

	_, _, err = execute(t, "", "dump", "--format", "toml", bad)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestConfigInit(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), ".goldif.yml")

	_, _, err := execute(t, "", "config", "init", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# goldif configuration"))

	_, _, err = execute(t, "", "config", "init", "-o", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "", "config", "init", "--full", "--force", "-o", out)
	require.NoError(t, err)

	data, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "format: text")

	_, _, err = execute(t, "", "config", "init", "--format", "toml", "-o", out)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "goldif.yaml", "jobs: 3\nstrict_records: true\n")

	stdout, _, err := execute(t, "", "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Effective goldif configuration")
	assert.Contains(t, stdout, cfgPath)
	assert.Contains(t, stdout, "jobs: 3")
	assert.Contains(t, stdout, "strict_records: true")

	stdout, _, err = execute(t, "", "config", "show", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"format": "text"`)
}

func TestConfigEnv(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "config", "env")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "GOLDIF_"))
	assert.Contains(t, stdout, "GOLDIF_FORMAT")
	assert.Contains(t, stdout, "GOLDIF_STRICT_RECORDS")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitParseErrors, cli.ExitCode(cli.ErrParseErrorsFound))
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(runner.ErrNoInput))
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(errors.New("boom")))

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(&runner.Result{}))
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromResult(&runner.Result{
		Stats: runner.Stats{FilesDiscovered: 1, FilesFailed: 1},
	}))
	assert.Equal(t, cli.ExitParseErrors, cli.ExitCodeFromResult(&runner.Result{
		Stats: runner.Stats{FilesDiscovered: 2, FilesFailed: 1, FilesWithErrors: 1, Errors: 3},
	}))
}
