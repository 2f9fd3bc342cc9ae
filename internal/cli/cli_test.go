package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigitcukuren/phpfmt/pkg/format"
	"github.com/yigitcukuren/phpfmt/pkg/runner"
)

const formattedSource = "<?php\n\necho 'hello';\n"
const unformattedSource = "<?php\necho   \"hello\"  ;\n"

// execRoot runs the root command with args against an isolated stdout
// and stderr, returning the captured output and the execution error.
func execRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand(BuildInfo{Version: "test"})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// isolateEnv keeps the developer's own configuration out of tests.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
}

func requireExitCode(t *testing.T, err error, want int) *ExitError {
	t.Helper()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, want, exitErr.Code)
	return exitErr
}

func TestWriteAndCheckAreMutuallyExclusive(t *testing.T) {
	isolateEnv(t)
	_, _, err := execRoot(t, "", "--write", "--check", ".")
	requireExitCode(t, err, ExitInvalidUsage)
}

func TestDefaultModeReportsChanges(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirty.php"), []byte(unformattedSource), 0o644))
	t.Chdir(dir)

	out, _, err := execRoot(t, "")
	exitErr := requireExitCode(t, err, ExitChangesNeeded)
	assert.True(t, exitErr.Silent())
	assert.Contains(t, out, "dirty.php: needs formatting")
	assert.Contains(t, out, "1 need formatting")
}

func TestDefaultModeCleanTree(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clean.php"), []byte(formattedSource), 0o644))
	t.Chdir(dir)

	_, _, err := execRoot(t, "")
	require.NoError(t, err)
}

func TestWriteMode(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "dirty.php")
	require.NoError(t, os.WriteFile(target, []byte(unformattedSource), 0o644))
	t.Chdir(dir)

	_, _, err := execRoot(t, "", "-w")
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, formattedSource, string(content))

	_, err = os.Stat(target + ".phpfmt.bak")
	assert.NoError(t, err, "backups are on by default")
}

func TestWriteModeNoBackups(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "dirty.php")
	require.NoError(t, os.WriteFile(target, []byte(unformattedSource), 0o644))
	t.Chdir(dir)

	_, _, err := execRoot(t, "", "-w", "--no-backups")
	require.NoError(t, err)

	_, err = os.Stat(target + ".phpfmt.bak")
	assert.True(t, os.IsNotExist(err))
}

func TestListMode(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirty.php"), []byte(unformattedSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clean.php"), []byte(formattedSource), 0o644))
	t.Chdir(dir)

	out, _, err := execRoot(t, "", "-l")
	requireExitCode(t, err, ExitChangesNeeded)
	assert.Equal(t, "dirty.php\n", out)
}

func TestDiffMode(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirty.php"), []byte(unformattedSource), 0o644))
	t.Chdir(dir)

	out, _, err := execRoot(t, "", "-d")
	requireExitCode(t, err, ExitChangesNeeded)
	assert.Contains(t, out, "-echo   \"hello\"  ;")
	assert.Contains(t, out, "+echo 'hello';")
}

func TestParseErrorExitCode(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.php"), []byte("<?php if (\n"), 0o644))
	t.Chdir(dir)

	_, _, err := execRoot(t, "")
	requireExitCode(t, err, ExitFatal)
}

func TestMissingConfigFile(t *testing.T) {
	isolateEnv(t)
	t.Chdir(t.TempDir())

	_, _, err := execRoot(t, "", "--config", "no-such-config.yaml", ".")
	requireExitCode(t, err, ExitConfigError)
}

func TestStdinFilter(t *testing.T) {
	isolateEnv(t)
	t.Chdir(t.TempDir())

	out, _, err := execRoot(t, unformattedSource, "--stdin")
	require.NoError(t, err)
	assert.Equal(t, formattedSource, out)
}

func TestStdinCheck(t *testing.T) {
	isolateEnv(t)
	t.Chdir(t.TempDir())

	out, _, err := execRoot(t, unformattedSource, "--stdin", "--check")
	requireExitCode(t, err, ExitChangesNeeded)
	assert.Empty(t, out, "check mode prints nothing")

	out, _, err = execRoot(t, formattedSource, "--stdin", "--check")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestInitCommand(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	target := filepath.Join(dir, ".phpfmt.yaml")

	_, _, err := execRoot(t, "", "init", "-o", target)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "print_width")

	// Refuses to clobber without --force.
	_, _, err = execRoot(t, "", "init", "-o", target)
	requireExitCode(t, err, ExitInvalidUsage)

	_, _, err = execRoot(t, "", "init", "-o", target, "--force")
	require.NoError(t, err)
}

func TestOptionsCommand(t *testing.T) {
	isolateEnv(t)
	out, _, err := execRoot(t, "", "options")
	require.NoError(t, err)
	assert.Contains(t, out, "print_width")
	assert.Contains(t, out, "method_chain_min_links")
}

func TestOptionsCommandEnv(t *testing.T) {
	isolateEnv(t)
	out, _, err := execRoot(t, "", "options", "--env")
	require.NoError(t, err)
	assert.Contains(t, out, "PHPFMT_PRINT_WIDTH")
}

func TestResolveOutputFormat(t *testing.T) {
	tests := []struct {
		name  string
		flags fmtFlags
		want  string
	}{
		{"default text", fmtFlags{}, "text"},
		{"diff flag", fmtFlags{diff: true}, "diff"},
		{"list flag", fmtFlags{list: true}, "list"},
		{"explicit format wins", fmtFlags{diff: true, format: "json"}, "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveOutputFormat(&tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := resolveOutputFormat(&fmtFlags{format: "xml"})
	require.Error(t, err)
}

func TestExitCodeFromResult(t *testing.T) {
	withStats := func(stats runner.Stats, files ...runner.FileOutcome) *runner.Result {
		return &runner.Result{Files: files, Stats: stats}
	}

	parseErr := fmt.Errorf("broken.php: %w", format.ErrParseFailure)
	ioErr := fmt.Errorf("gone.php: %w", format.ErrFileNotFound)

	tests := []struct {
		name   string
		result *runner.Result
		write  bool
		want   int
	}{
		{"nil result", nil, false, ExitSuccess},
		{"clean run", withStats(runner.Stats{FilesProcessed: 2}), false, ExitSuccess},
		{"changes in check mode", withStats(runner.Stats{FilesChanged: 1}), false, ExitChangesNeeded},
		{"changes in write mode", withStats(runner.Stats{FilesChanged: 1, FilesWritten: 1}), true, ExitSuccess},
		{
			"parse error",
			withStats(runner.Stats{FilesErrored: 1}, runner.FileOutcome{Path: "broken.php", Error: parseErr}),
			false,
			ExitFatal,
		},
		{
			"io error",
			withStats(runner.Stats{FilesErrored: 1}, runner.FileOutcome{Path: "gone.php", Error: ioErr}),
			false,
			ExitIOError,
		},
		{
			"parse error dominates io error",
			withStats(runner.Stats{FilesErrored: 2},
				runner.FileOutcome{Path: "gone.php", Error: ioErr},
				runner.FileOutcome{Path: "broken.php", Error: parseErr},
			),
			false,
			ExitFatal,
		},
		{
			"errors dominate changes",
			withStats(runner.Stats{FilesChanged: 1, FilesErrored: 1},
				runner.FileOutcome{Path: "broken.php", Error: parseErr},
			),
			false,
			ExitFatal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromResult(tt.result, tt.write))
		})
	}
}

func TestExitErrorSilent(t *testing.T) {
	assert.True(t, exitWith(ExitChangesNeeded).Silent())
	assert.False(t, (&ExitError{Code: ExitFatal, Err: errors.New("boom")}).Silent())

	var target *ExitError
	wrapped := fmt.Errorf("outer: %w", exitWith(ExitIOError))
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, ExitIOError, target.Code)
}
