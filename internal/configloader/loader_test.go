package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigitcukuren/phpfmt/pkg/style"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// isolateUserConfig points XDG_CONFIG_HOME at an empty directory so the
// test never picks up a real user-level config.
func isolateUserConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadDefaultsWhenNoConfig(t *testing.T) {
	isolateUserConfig(t)
	dir := t.TempDir()
	// VCS marker stops the upward search inside the temp dir.
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir, IgnoreEnv: true})
	require.NoError(t, err)

	assert.Empty(t, result.Source)
	assert.Equal(t, style.NewConfig(), result.Config)
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".phpfmt.yaml"), "print_width: 80\nuse_tabs: true\n")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir, IgnoreEnv: true})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ".phpfmt.yaml"), result.Source)
	assert.Equal(t, 80, result.Config.PrintWidth)
	assert.True(t, result.Config.UseTabs)
	// Unset options keep their defaults.
	assert.Equal(t, 4, result.Config.TabWidth)
}

func TestLoadSearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".phpfmt.yaml"), "print_width: 100\n")
	nested := filepath.Join(root, "src", "Controller")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), LoadOptions{WorkingDir: nested, IgnoreEnv: true})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, ".phpfmt.yaml"), result.Source)
	assert.Equal(t, 100, result.Config.PrintWidth)
}

func TestLoadStopsAtVCSRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".phpfmt.yaml"), "print_width: 100\n")
	project := filepath.Join(root, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(project, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), project)
	require.NoError(t, err)
	assert.Empty(t, path, "search must not cross a VCS root")
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "custom.yaml")
	writeFile(t, cfgPath, "single_quote: false\n")
	// A project config that must be ignored.
	writeFile(t, filepath.Join(dir, ".phpfmt.yaml"), "single_quote: true\n")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:   dir,
		ExplicitPath: cfgPath,
		IgnoreEnv:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, cfgPath, result.Source)
	assert.False(t, result.Config.SingleQuote)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(context.Background(), LoadOptions{
		WorkingDir:   dir,
		ExplicitPath: filepath.Join(dir, "nope.yaml"),
		IgnoreEnv:    true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".phpfmt.yaml"), "print_wdith: 80\n")

	_, err := Load(context.Background(), LoadOptions{WorkingDir: dir, IgnoreEnv: true})
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "zero print width", yaml: "print_width: 0\n"},
		{name: "bad end of line", yaml: "end_of_line: mac\n"},
		{name: "bad array style", yaml: "array_style: wide\n"},
		{name: "bad chain style", yaml: "method_chain_breaking_style: diagonal\n"},
		{name: "negative spacing", yaml: "method_spacing: -1\n"},
		{name: "bad backup mode", yaml: "backups:\n  enabled: true\n  mode: cloud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ".phpfmt.yaml"), tt.yaml)

			_, err := Load(context.Background(), LoadOptions{WorkingDir: dir, IgnoreEnv: true})
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolateUserConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	t.Setenv("PHPFMT_PRINT_WIDTH", "90")
	t.Setenv("PHPFMT_USE_TABS", "true")
	t.Setenv("PHPFMT_EXCLUDE", "vendor/**, cache/**")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, 90, result.Config.PrintWidth)
	assert.True(t, result.Config.UseTabs)
	assert.Equal(t, []string{"vendor/**", "cache/**"}, result.Config.Exclude)
}

func TestLoadEnvInvalidInteger(t *testing.T) {
	isolateUserConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	t.Setenv("PHPFMT_PRINT_WIDTH", "wide")

	_, err := Load(context.Background(), LoadOptions{WorkingDir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PHPFMT_PRINT_WIDTH")
}

func TestValidateWarnsOnHugePrintWidth(t *testing.T) {
	cfg := style.NewConfig()
	cfg.PrintWidth = 5000

	result := Validate(cfg)
	assert.True(t, result.Valid())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "line breaking")
}
