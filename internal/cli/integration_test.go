package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/headertool/internal/cli"
	"github.com/yaklabco/headertool/pkg/reporter"
	"github.com/yaklabco/headertool/pkg/runner"
)

const actorHeader = `#pragma once
UCLASS(Blueprintable)
class ENGINE_API AActor : public UObject
{
	GENERATED_BODY()

	UFUNCTION(BlueprintCallable)
	void Jump(float Height);
};
`

const brokenHeader = `UENUM()
enum class EMode
{
	Idle
	Busy
};
`

const generatedHeader = `UCLASS()
class AGenerated
{
	GENERATED_BODY()
};
`

// fixture writes files under a fresh directory together with an empty
// config file, and returns the directory and the config path.
func fixture(t *testing.T, files map[string]string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfgPath := filepath.Join(t.TempDir(), "headertool.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("jobs: 2\n"), 0o644))
	return dir, cfgPath
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_ParseText(t *testing.T) {
	t.Parallel()

	dir, cfg := fixture(t, map[string]string{"Source/Actor.h": actorHeader})

	out, _, err := execute(t, "parse", "--config", cfg, dir)
	require.NoError(t, err)

	assert.Contains(t, out, "class AActor ENGINE_API (Blueprintable) 2:1")
	assert.Contains(t, out, "function AActor::Jump(Height) (BlueprintCallable) 7:2")
	assert.Contains(t, out, "1 class, 1 function, 0 enums, 0 enum items in 1 file (1 file parsed)")
}

func TestIntegration_ParseFailureStillReportsAllFiles(t *testing.T) {
	t.Parallel()

	dir, cfg := fixture(t, map[string]string{
		"Actor.h":  actorHeader,
		"Broken.h": brokenHeader,
	})

	out, _, err := execute(t, "parse", "--config", cfg, "--no-context", dir)
	require.ErrorIs(t, err, cli.ErrParseFailed)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))

	assert.Contains(t, out, "Broken.h:5:2: error: expected \",\" or \"}\" in enum EMode, found \"Busy\" [MissingExpectedToken]")
	assert.Contains(t, out, "class AActor")
	assert.Contains(t, out, "1 failed")
	assert.NotContains(t, out, "    \tBusy")
}

func TestIntegration_JSONToFile(t *testing.T) {
	t.Parallel()

	dir, cfg := fixture(t, map[string]string{"Actor.h": actorHeader})
	outPath := filepath.Join(t.TempDir(), "report.json")

	out, _, err := execute(t, "parse", "--config", cfg, "--format", "json", "-o", outPath, dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var doc reporter.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "1.2.3", doc.ToolVersion)
	require.Len(t, doc.Files, 1)
	require.Len(t, doc.Files[0].Classes, 1)
	assert.Equal(t, "AActor", doc.Files[0].Classes[0].Name)
	assert.Equal(t, "Jump", doc.Files[0].Classes[0].Functions[0].Name)
}

func TestIntegration_InvalidFormatIsConfigError(t *testing.T) {
	t.Parallel()

	dir, cfg := fixture(t, map[string]string{"Actor.h": actorHeader})

	_, _, err := execute(t, "parse", "--config", cfg, "--format", "xml", dir)
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_InvalidConfigFile(t *testing.T) {
	t.Parallel()

	dir, _ := fixture(t, map[string]string{"Actor.h": actorHeader})
	cfg := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("jobs: -3\n"), 0o644))

	_, _, err := execute(t, "parse", "--config", cfg, dir)
	require.ErrorIs(t, err, cli.ErrConfig)
}

func TestIntegration_Filters(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"Actor.h":                      actorHeader,
		"Actor.generated.h":            generatedHeader,
		"Other.hpp":                    actorHeader,
		"ThirdParty/Lib/Include/Lib.h": brokenHeader,
	}

	tests := []struct {
		name  string
		args  []string
		files []string
	}{
		{
			name:  "defaults skip generated and vendored",
			files: []string{"Actor.generated.h", "Actor.h", "Other.hpp"},
		},
		{
			name:  "extensions",
			args:  []string{"--ext", "hpp"},
			files: []string{"Other.hpp"},
		},
		{
			name:  "ignore",
			args:  []string{"--ignore", "*.hpp"},
			files: []string{"Actor.generated.h", "Actor.h"},
		},
		{
			name:  "include",
			args:  []string{"--include", "Actor*"},
			files: []string{"Actor.generated.h", "Actor.h"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir, cfg := fixture(t, files)
			args := append([]string{"parse", "--config", cfg, "--format", "json", dir}, tt.args...)

			out, _, err := execute(t, args...)
			require.NoError(t, err)

			var doc reporter.Document
			require.NoError(t, json.Unmarshal([]byte(out), &doc))

			got := make([]string, 0, len(doc.Files))
			for _, f := range doc.Files {
				rel, relErr := filepath.Rel(dir, f.Path)
				require.NoError(t, relErr)
				got = append(got, filepath.ToSlash(rel))
			}
			assert.Equal(t, tt.files, got)
		})
	}
}

func TestIntegration_GeneratedSkippedUnlessIncluded(t *testing.T) {
	t.Parallel()

	dir, cfg := fixture(t, map[string]string{"Actor.generated.h": generatedHeader})

	out, _, err := execute(t, "parse", "--config", cfg, "--format", "json", dir)
	require.NoError(t, err)
	var doc reporter.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 1)
	assert.True(t, doc.Files[0].Skipped)
	assert.Empty(t, doc.Files[0].Classes)

	out, _, err = execute(t, "parse", "--config", cfg, "--format", "json", "--include-generated", dir)
	require.NoError(t, err)
	doc = reporter.Document{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 1)
	assert.False(t, doc.Files[0].Skipped)
	require.Len(t, doc.Files[0].Classes, 1)
	assert.Equal(t, "AGenerated", doc.Files[0].Classes[0].Name)
}

func TestIntegration_CFamilyOnly(t *testing.T) {
	t.Parallel()

	dir, cfg := fixture(t, map[string]string{
		"Actor.h":  actorHeader,
		"Notes.md": "# Notes\n\nSome text.\n",
	})

	out, _, err := execute(t, "parse", "--config", cfg, "--format", "json", "--ext", "h,md", "--c-family-only", dir)
	require.NoError(t, err)

	var doc reporter.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 2)
	assert.False(t, doc.Files[0].Skipped)
	assert.True(t, doc.Files[1].Skipped)
	assert.Equal(t, runner.SkipReasonLanguage, doc.Files[1].SkipReason)
}

func TestIntegration_Tokens(t *testing.T) {
	t.Parallel()

	dir, _ := fixture(t, map[string]string{"E.h": "UENUM() // note\nenum E {};\n"})

	out, _, err := execute(t, "tokens", filepath.Join(dir, "E.h"))
	require.NoError(t, err)

	assert.Contains(t, out, "     1:1  HeaderMacro      UENUM\n")
	assert.Contains(t, out, "     2:1  Keyword          enum\n")
	assert.Contains(t, out, "     2:6  Identifier       E\n")
	assert.Contains(t, out, "EndOfFile\n")
	assert.NotContains(t, out, "note")
}

func TestIntegration_TokensMissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "tokens", filepath.Join(t.TempDir(), "Missing.h"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "cfg.yml")
	tomlPath := filepath.Join(dir, "cfg.toml")

	_, _, err := execute(t, "init", "--output", yamlPath)
	require.NoError(t, err)
	content, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "extensions:")

	_, _, err = execute(t, "init", "--format", "toml", "--output", tomlPath)
	require.NoError(t, err)
	assert.FileExists(t, tomlPath)

	// The generated file is a valid config for parse.
	src, _ := fixture(t, map[string]string{"Actor.h": actorHeader})
	_, _, err = execute(t, "parse", "--config", tomlPath, "--format", "summary", src)
	require.NoError(t, err)

	_, _, err = execute(t, "init", "--force", "--output", yamlPath)
	require.NoError(t, err)

	_, _, err = execute(t, "init", "--format", "json", "--output", filepath.Join(dir, "x.json"))
	require.Error(t, err)
}
