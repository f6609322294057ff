package scanning_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisdev/praxis/internal/domain"
	"github.com/praxisdev/praxis/internal/domain/scanning"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const uncommentedFn = `function add(a, b) {
  const sum = a + b;
  const twice = sum * 2;
  return twice;
}
`

const commentedFn = `// multiply two numbers
function multiply(a, b) {
  const product = a * b;
  return product;
}
`

func defaultCodeConfig() domain.CodeConfig {
	return domain.DefaultConfig().Standards.Code
}

func TestCodeScanner_HalfCommented(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "src/a.js", uncommentedFn)
	b := writeFile(t, dir, "src/b.js", commentedFn)

	result := scanning.NewCodeScanner(defaultCodeConfig()).Scan([]string{a, b}, false)

	assert.Equal(t, 2, result.Metrics["totalFunctions"])
	assert.Equal(t, 1, result.Metrics["commentedFunctions"])
	assert.Equal(t, 0, result.Metrics["longFunctions"])

	require.Len(t, result.Issues, 1)
	issue := result.Issues[0]
	assert.Equal(t, a, issue.File)
	assert.Equal(t, "missing-comment", issue.Kind)
	assert.Equal(t, "enforce-comments", issue.Rule)
	assert.Equal(t, domain.SeverityWarning, issue.Severity)
	assert.Equal(t, 1, issue.Line)

	// round(0.5*80 + 20)
	assert.Equal(t, 60, result.Score)
}

func TestCodeScanner_NoFunctionsScores100(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "constants.js", "const x = 1;\nconst y = 2;\n")

	result := scanning.NewCodeScanner(defaultCodeConfig()).Scan([]string{f}, false)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 0, result.Metrics["totalFunctions"])
	assert.Empty(t, result.Issues)
}

func TestCodeScanner_AllCommentedScores100(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "src/ok.js", commentedFn)

	result := scanning.NewCodeScanner(defaultCodeConfig()).Scan([]string{f}, false)

	assert.Equal(t, 100, result.Score)
	assert.Empty(t, result.Issues)
}

func TestCodeScanner_LongFunction(t *testing.T) {
	long := "// does many things\nfunction busy() {\n"
	for i := 0; i < 10; i++ {
		long += "  work();\n"
	}
	long += "}\n"

	dir := t.TempDir()
	f := writeFile(t, dir, "src/busy.js", long)

	cfg := defaultCodeConfig()
	cfg.MaxFunctionLines = 5
	result := scanning.NewCodeScanner(cfg).Scan([]string{f}, false)

	assert.Equal(t, 1, result.Metrics["totalFunctions"])
	assert.Equal(t, 1, result.Metrics["longFunctions"])
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "long-function", result.Issues[0].Kind)
	assert.Equal(t, "max-function-lines", result.Issues[0].Rule)
	// 1*80 + 20 - (1/1)*20
	assert.Equal(t, 80, result.Score)
}

func TestCodeScanner_DetectsArrowAndExpressionShapes(t *testing.T) {
	content := `// double a number
const double = (x) => x * 2;
const handler = async (req, res) => {
  res.send("ok");
};
var legacy = function () {
  return 1;
};
`
	dir := t.TempDir()
	f := writeFile(t, dir, "src/shapes.js", content)

	result := scanning.NewCodeScanner(defaultCodeConfig()).Scan([]string{f}, false)

	assert.Equal(t, 3, result.Metrics["totalFunctions"])
	assert.Equal(t, 1, result.Metrics["commentedFunctions"])
	assert.Len(t, result.Issues, 2, "the handler and legacy functions have code, not a comment, above them")
}

func TestCodeScanner_ControlFlowIsNotAFunction(t *testing.T) {
	content := `// guard clause heavy code
function check(x) {
  if (x > 0) {
    return true;
  }
  while (x < 0) {
    x++;
  }
  return false;
}
`
	dir := t.TempDir()
	f := writeFile(t, dir, "src/flow.js", content)

	result := scanning.NewCodeScanner(defaultCodeConfig()).Scan([]string{f}, false)

	assert.Equal(t, 1, result.Metrics["totalFunctions"])
	assert.Empty(t, result.Issues)
}

func TestCodeScanner_BlockCommentCounts(t *testing.T) {
	content := `/**
 * Adds two numbers.
 */
function add(a, b) {
  return a + b;
}
`
	dir := t.TempDir()
	f := writeFile(t, dir, "src/doc.js", content)

	result := scanning.NewCodeScanner(defaultCodeConfig()).Scan([]string{f}, false)

	assert.Equal(t, 1, result.Metrics["commentedFunctions"])
	assert.Empty(t, result.Issues)
}

func TestCodeScanner_EnforceCommentsDisabled(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "src/a.js", uncommentedFn)

	cfg := defaultCodeConfig()
	cfg.EnforceComments = false
	result := scanning.NewCodeScanner(cfg).Scan([]string{f}, false)

	assert.Empty(t, result.Issues, "no issues reported when comment enforcement is off")
	assert.Equal(t, 20, result.Score, "score still reflects the comment ratio")
}

func TestCodeScanner_AutoFixInsertsPlaceholder(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "src/a.js", uncommentedFn)

	scanner := scanning.NewCodeScanner(defaultCodeConfig())
	result := scanner.Scan([]string{f}, true)

	require.Len(t, result.Fixed, 1)
	assert.Equal(t, f, result.Fixed[0].File)
	assert.Equal(t, "enforce-comments", result.Fixed[0].Rule)

	data, err := os.ReadFile(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), "// TODO: describe what add does")
}

func TestCodeScanner_AutoFixConverges(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "src/a.js", uncommentedFn)

	scanner := scanning.NewCodeScanner(defaultCodeConfig())
	first := scanner.Scan([]string{f}, true)
	require.Len(t, first.Fixed, 1)

	second := scanner.Scan([]string{f}, true)
	assert.Empty(t, second.Fixed, "second fix run finds nothing left to fix")
	assert.Empty(t, second.Issues)
	assert.Equal(t, 100, second.Score)
	assert.Equal(t, 1, second.Metrics["commentedFunctions"])
}

func TestCodeScanner_SkipsUnreadableAndBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	bin := writeFile(t, dir, "blob.js", "function f() {\x00}")
	missing := filepath.Join(dir, "gone.js")

	result := scanning.NewCodeScanner(defaultCodeConfig()).Scan([]string{bin, missing}, false)

	assert.Equal(t, 0, result.Metrics["totalFunctions"])
	assert.Equal(t, 100, result.Score)
}
