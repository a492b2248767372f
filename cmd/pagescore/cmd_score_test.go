package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spboyer/pagescore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yellowDoc = `checks:
  - id: title_length
    status: pass
    weight: 1
    label: Title length
  - id: meta_description
    status: warn
    weight: 1
    label: Meta description
    fix_hint: Write a 120-160 character description.
`

// runRoot executes the root command with a config search rooted at configDir.
func runRoot(t *testing.T, configDir string, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config-dir", configDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScoreCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "page.yaml", yellowDoc)

	out, err := runRoot(t, dir, "", "score", doc, "--format", "json")
	require.NoError(t, err)

	var p models.ScorePayload
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, 75, p.Score)
	assert.Equal(t, models.LightYellow, p.Status)
	assert.Equal(t, []string{"Meta description: Write a 120-160 character description."}, p.Recommendations)
	assert.Len(t, p.Breakdown, 2)
}

func TestScoreCommand_Formats(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "page.yaml", yellowDoc)

	tests := []struct {
		format string
		want   string
	}{
		{"text", "CONTENT SCORE"},
		{"markdown", "# Content score: 75/100"},
		{"md", "## Recommendations"},
		{"html", "<table>"},
		{"junit", `<testsuite name="page"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := runRoot(t, dir, "", "score", doc, "-f", tt.format)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestScoreCommand_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "page.yaml", yellowDoc)

	_, err := runRoot(t, dir, "", "score", doc, "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
	assert.Equal(t, ExitError, exitCode(err))
}

func TestScoreCommand_Stdin(t *testing.T) {
	dir := t.TempDir()

	out, err := runRoot(t, dir, `{"checks": {"title_length": {"status": "fail", "weight": 1}}}`,
		"score", "-", "--format", "json")
	require.NoError(t, err)

	var p models.ScorePayload
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, 0, p.Score)
	assert.Equal(t, models.LightRed, p.Status)
	assert.Equal(t, []string{"title_length: Review this check and address the reported issue."}, p.Recommendations)
}

func TestScoreCommand_FailUnder(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "page.yaml", yellowDoc)

	t.Run("met", func(t *testing.T) {
		_, err := runRoot(t, dir, "", "score", doc, "--fail-under", "yellow")
		assert.NoError(t, err)
	})

	t.Run("not met", func(t *testing.T) {
		out, err := runRoot(t, dir, "", "score", doc, "--fail-under", "green")
		require.Error(t, err)
		assert.Equal(t, ExitGateFailed, exitCode(err))
		assert.Contains(t, err.Error(), "below green")
		// The report is still written.
		assert.Contains(t, out, "CONTENT SCORE")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := runRoot(t, dir, "", "score", doc, "--fail-under", "blue")
		require.Error(t, err)
		assert.Equal(t, ExitError, exitCode(err))
	})
}

func TestScoreCommand_WeightPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".pagescore.yaml", "weights:\n  meta_description: 3\n")
	doc := writeFile(t, dir, "page.yaml", yellowDoc)

	score := func(t *testing.T, args ...string) *models.ScorePayload {
		t.Helper()
		out, err := runRoot(t, dir, "", append([]string{"score", doc, "-f", "json"}, args...)...)
		require.NoError(t, err)
		var p models.ScorePayload
		require.NoError(t, json.Unmarshal([]byte(out), &p))
		return &p
	}

	t.Run("config", func(t *testing.T) {
		p := score(t)
		// 1 + 3*0.5 achieved of 4.
		assert.InDelta(t, 4.0, p.WeightTotal, 1e-9)
		assert.Equal(t, 63, p.Score)
	})

	t.Run("weights file overrides config", func(t *testing.T) {
		wf := writeFile(t, dir, "weights.json", `{"meta_description": 1}`)
		p := score(t, "--weights", wf)
		assert.InDelta(t, 2.0, p.WeightTotal, 1e-9)
		assert.Equal(t, 75, p.Score)
	})

	t.Run("document overrides weights file", func(t *testing.T) {
		wf := writeFile(t, dir, "weights.json", `{"meta_description": 1}`)
		withDoc := writeFile(t, dir, "weighted.yaml", yellowDoc+"weights:\n  meta_description: 0\n")
		out, err := runRoot(t, dir, "", "score", withDoc, "-f", "json", "--weights", wf)
		require.NoError(t, err)
		var p models.ScorePayload
		require.NoError(t, json.Unmarshal([]byte(out), &p))
		assert.InDelta(t, 1.0, p.WeightTotal, 1e-9)
		assert.Equal(t, 100, p.Score)
		// A zero weight does not silence the recommendation.
		assert.Len(t, p.Recommendations, 1)
	})
}

func TestScoreCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := runRoot(t, dir, "", "score", filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.Equal(t, ExitError, exitCode(err))
	})

	t.Run("not a mapping", func(t *testing.T) {
		doc := writeFile(t, dir, "list.yaml", "- a\n- b\n")
		_, err := runRoot(t, dir, "", "score", doc)
		require.Error(t, err)
	})

	t.Run("missing weights file", func(t *testing.T) {
		doc := writeFile(t, dir, "page.yaml", yellowDoc)
		_, err := runRoot(t, dir, "", "score", doc, "--weights", filepath.Join(dir, "missing.json"))
		require.Error(t, err)
	})

	t.Run("requires an argument", func(t *testing.T) {
		_, err := runRoot(t, dir, "", "score")
		require.Error(t, err)
	})
}
