package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisdev/praxis/internal/adapters/inbound/cli"
)

func writeProjectFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func cleanProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeProjectFile(t, dir, "src/app.js", "// application entry point\nfunction main() {\n  return 0;\n}\n")
	return dir
}

func halfCommentedProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeProjectFile(t, dir, "src/a.js", "function add(a, b) {\n  return a + b;\n}\n")
	writeProjectFile(t, dir, "src/b.js", "// multiply two numbers\nfunction multiply(a, b) {\n  return a * b;\n}\n")
	return dir
}

func TestValidateCommand_JSON(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validate", cleanProject(t), "--json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), `"overall_score"`)
	assert.Contains(t, buf.String(), `"standards"`)
}

func TestValidateCommand_DefaultRender(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validate", cleanProject(t)})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "praxis")
	assert.Contains(t, buf.String(), "PASSED")
}

func TestValidateCommand_MinScoreFails(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"validate", halfCommentedProject(t), "--min", "90"})
	assert.Error(t, cmd.Execute())
}

func TestValidateCommand_MinScorePasses(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"validate", halfCommentedProject(t), "--min", "50"})
	assert.NoError(t, cmd.Execute())
}

func TestValidateCommand_Badge(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validate", cleanProject(t), "--badge"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "img.shields.io")
}

func TestValidateCommand_SingleStandard(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validate", halfCommentedProject(t), "--standards", "code", "--json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), `"overall_score": 60`)
}

func TestValidateCommand_UnknownStandard(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"validate", cleanProject(t), "--standards", "style"})
	assert.Error(t, cmd.Execute())
}

func TestValidateCommand_WritesReportFile(t *testing.T) {
	dir := cleanProject(t)
	out := filepath.Join(t.TempDir(), "report.md")

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"validate", dir, "--output", out, "--format", "markdown"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Praxis Validation Report")
}

func TestValidateCommand_SavesHistory(t *testing.T) {
	dir := cleanProject(t)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"validate", dir})
	require.NoError(t, cmd.Execute())

	histCmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	histCmd.SetOut(buf)
	histCmd.SetArgs([]string{"validate", dir, "--history"})
	require.NoError(t, histCmd.Execute())

	assert.Contains(t, buf.String(), "100/100")
}

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "praxis")
}
