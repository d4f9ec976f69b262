// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package commands

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bellflight/asyncgen/internal/compile"
	"github.com/bellflight/asyncgen/internal/docgen"
	"github.com/bellflight/asyncgen/internal/session"
	"github.com/bellflight/asyncgen/internal/translate"
	"github.com/bellflight/asyncgen/internal/translate/gotypes"
	"github.com/bellflight/asyncgen/internal/translate/markdown"
	"github.com/bellflight/asyncgen/internal/translate/pydantic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTranslators() translate.Register {
	return translate.Register{
		"pydantic": &pydantic.Translator{},
		"gotypes":  &gotypes.Translator{},
		"markdown": &markdown.Translator{},
	}
}

// openProject loads testdata/<name> and redirects generated output into a temp dir.
func openProject(t *testing.T, name string) (*session.Context, string) {
	t.Helper()
	sc, err := session.Open(filepath.Join("testdata", name))
	require.NoError(t, err)

	out := t.TempDir()
	sc.Config.Output = filepath.Join(out, "payloads.py")
	return sc, out
}

func TestRunGenerate(t *testing.T) {
	sc, out := openProject(t, "project")

	res, err := runGenerate(context.Background(), sc, testTranslators(), &generateOptions{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "payloads.py"), res.output)
	assert.Len(t, res.unit.Classes, 2)
	assert.Equal(t, []string{filepath.Join(out, "topics.py")}, res.templates)

	payloads, err := os.ReadFile(res.output)
	require.NoError(t, err)
	assert.Contains(t, string(payloads), "class AVRPCMServo(BaseModel):")
	assert.Contains(t, string(payloads), "class _AVRPCMColorCallable(Protocol):")

	topics, err := os.ReadFile(filepath.Join(out, "topics.py"))
	require.NoError(t, err)
	assert.Equal(t, `# AVR MQTT API 1.2.0
from .payloads import AVRPCMColor, AVRPCMServo

TOPIC_CLASSES = {
    "avr/pcm/set_base_color": AVRPCMColor,
    "avr/pcm/set_servo_open_close": AVRPCMServo,
}
`, string(topics))
}

func TestRunGenerate_FormatOverrideSwapsExtension(t *testing.T) {
	sc, out := openProject(t, "project")
	sc.Config.Templates = ""

	res, err := runGenerate(context.Background(), sc, testTranslators(), &generateOptions{
		format:  "gotypes",
		pkg:        "avr",
		workers:    4,
		workersSet: true,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "payloads.go"), res.output)
	assert.Empty(t, res.templates)

	data, err := os.ReadFile(res.output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package avr")
}

func TestRunGenerate_ExplicitOutput(t *testing.T) {
	sc, _ := openProject(t, "project")
	sc.Config.Templates = ""
	target := filepath.Join(t.TempDir(), "nested", "PAYLOADS.md")

	res, err := runGenerate(context.Background(), sc, testTranslators(), &generateOptions{
		format: "markdown",
		output: target,
	})
	require.NoError(t, err)
	assert.Equal(t, target, res.output)
	assert.FileExists(t, target)
}

func TestRunGenerate_Errors(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		sc, _ := openProject(t, "project")
		_, err := runGenerate(context.Background(), sc, testTranslators(), &generateOptions{format: "cobol"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown format "cobol"`)
	})

	t.Run("missing templates directory", func(t *testing.T) {
		sc, out := openProject(t, "project")
		sc.Config.Templates = "tmpl"
		_, err := runGenerate(context.Background(), sc, testTranslators(), &generateOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.NoFileExists(t, filepath.Join(out, "payloads.py"))
	})

	t.Run("templates path is a file", func(t *testing.T) {
		sc, _ := openProject(t, "project")
		sc.Config.Templates = "asyncapi.yml"
		_, err := runGenerate(context.Background(), sc, testTranslators(), &generateOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a directory")
	})

	t.Run("open object", func(t *testing.T) {
		sc, out := openProject(t, "broken")
		_, err := runGenerate(context.Background(), sc, testTranslators(), &generateOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, compile.ErrInvalidSchemaShape)
		assert.NoFileExists(t, filepath.Join(out, "payloads.py"))
	})
}

func TestResolveWorkers(t *testing.T) {
	tests := []struct {
		name string
		opts generateOptions
		want int
	}{
		{name: "config value", opts: generateOptions{}, want: 4},
		{name: "flag overrides", opts: generateOptions{workers: 8, workersSet: true}, want: 8},
		{name: "flag zero forces sequential", opts: generateOptions{workers: 0, workersSet: true}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, _ := openProject(t, "project")
			sc.Config.Workers = 4
			assert.Equal(t, tt.want, resolveWorkers(sc, &tt.opts))
		})
	}
}

func TestGenerateCmd_WorkersFlagMarksSet(t *testing.T) {
	root := NewRootCmd(testTranslators())
	cmd, _, err := root.Find([]string{"generate"})
	require.NoError(t, err)

	require.NoError(t, cmd.Flags().Parse([]string{"--workers", "0"}))
	assert.True(t, cmd.Flags().Changed("workers"))
}

func TestRunTopics(t *testing.T) {
	sc, _ := openProject(t, "project")

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runTopics(&buf, sc, &topicsOptions{}))
		assert.Contains(t, buf.String(), "avr/pcm/set_servo_open_close")
		assert.Contains(t, buf.String(), "_AVRPCMServoCallable")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runTopics(&buf, sc, &topicsOptions{json: true}))
		assert.JSONEq(t, `{
			"avr/pcm/set_base_color": "AVRPCMColor",
			"avr/pcm/set_servo_open_close": "AVRPCMServo"
		}`, buf.String())
	})
}

func TestRenderMarkdown_Raw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderMarkdown(&buf, []byte("# Payloads\n"), &showOptions{raw: true}))
	assert.Equal(t, "# Payloads\n", buf.String())
}

func TestRenderMarkdown_Styled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderMarkdown(&buf, []byte("# AVR MQTT API\n\n| Topic | Payload |\n|---|---|\n| a | B |\n"), &showOptions{width: 60}))
	assert.Contains(t, buf.String(), "AVR MQTT API")
}

func TestDocsVersion(t *testing.T) {
	tests := []struct {
		name      string
		flag      string
		pyproject string
		want      string
	}{
		{name: "flag wins", flag: "9.9.9", pyproject: "pyproject.toml", want: "9.9.9"},
		{name: "pyproject", pyproject: "pyproject.toml", want: "2.0.1"},
		{name: "missing pyproject falls back to document", pyproject: "missing.toml", want: "1.2.0"},
		{name: "no pyproject configured", want: "1.2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, _ := openProject(t, "project")
			sc.Config.Docs.Pyproject = tt.pyproject

			got, err := docsVersion(sc, &docsOptions{version: tt.flag})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunDocs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses echo")
	}
	echo, err := exec.LookPath("echo")
	if err != nil {
		t.Skip("echo not available")
	}

	sc, _ := openProject(t, "project")
	var stdout bytes.Buffer
	runner := &docgen.Runner{
		Stdout:   &stdout,
		LookPath: func(string) (string, error) { return echo, nil },
	}

	require.NoError(t, runDocs(context.Background(), runner, sc, &docsOptions{output: "site"}))
	assert.Contains(t, stdout.String(), "@asyncapi/html-template")
	assert.Contains(t, stdout.String(), "version=2.0.1")
	assert.Contains(t, stdout.String(), filepath.Join(sc.Dir, "site"))
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	opts := &initOptions{
		spec:           "mqtt/asyncapi.yml",
		output:         "mqtt/payloads.py",
		format:         "pydantic",
		nonInteractive: true,
	}

	var buf bytes.Buffer
	require.NoError(t, runInit(&buf, dir, testTranslators(), opts))
	assert.Contains(t, buf.String(), "Initialization completed")

	data, err := os.ReadFile(filepath.Join(dir, session.ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "spec: mqtt/asyncapi.yml")
	assert.Contains(t, string(data), "format: pydantic")

	t.Run("already initialized", func(t *testing.T) {
		err := runInit(&buf, dir, testTranslators(), opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already initialized")
	})

	t.Run("unknown format", func(t *testing.T) {
		err := runInit(&buf, t.TempDir(), testTranslators(), &initOptions{
			spec: "asyncapi.yml", output: "out.x", format: "cobol", nonInteractive: true,
		})
		require.Error(t, err)
	})
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd(testTranslators())

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"init", "generate", "topics", "show", "docs", "version"})

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version", "--short"})
	require.NoError(t, root.Execute())
	assert.NotEmpty(t, buf.String())
}
