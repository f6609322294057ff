package scanning

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/praxisdev/praxis/internal/domain"
)

// functionShape matches one line form that denotes a function-like construct.
// Shapes are tried in order, first match wins.
type functionShape struct {
	name    string
	pattern *regexp.Regexp
}

var functionShapes = []functionShape{
	{"function-declaration", regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s+([A-Za-z_$][\w$]*)\s*\(`)},
	{"arrow-assignment", regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?\([^)]*\)\s*=>`)},
	{"function-expression", regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?function\b`)},
	{"object-method", regexp.MustCompile(`^\s*([A-Za-z_$][\w$]*)\s*:\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>)`)},
	{"method-signature", regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|async)\s+)*([A-Za-z_$][\w$]*)\s*\([^)]*\)\s*\{`)},
}

// reservedWords keeps the bare method-signature shape from matching control
// flow statements.
var reservedWords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "else": true, "do": true, "try": true, "new": true,
	"typeof": true, "await": true,
}

// detectedFunction is one function-like construct found by line matching.
type detectedFunction struct {
	name      string
	shape     string
	startLine int // 1-based
	endLine   int // 1-based
	commented bool
}

// CodeScanner checks function-like constructs for adjacent comments and
// excessive length.
type CodeScanner struct {
	cfg domain.CodeConfig
}

func NewCodeScanner(cfg domain.CodeConfig) *CodeScanner {
	return &CodeScanner{cfg: cfg}
}

// Scan walks every file, detects functions, and tallies missing-comment and
// long-function issues. With autoFix enabled it inserts placeholder comments
// above uncommented functions and rewrites the file in place.
func (s *CodeScanner) Scan(files []string, autoFix bool) domain.StandardResult {
	result := domain.StandardResult{
		Standard: domain.StandardCode,
		Metrics:  map[string]int{},
	}

	totalFunctions := 0
	commentedFunctions := 0
	longFunctions := 0

	for _, file := range files {
		lines, ok := readLines(file)
		if !ok {
			continue
		}

		functions := detectFunctions(lines)
		var insertAt []int // 0-based indices needing a placeholder comment

		for _, fn := range functions {
			totalFunctions++
			if fn.commented {
				commentedFunctions++
			} else if s.cfg.EnforceComments {
				result.Issues = append(result.Issues, domain.Issue{
					File:     file,
					Line:     fn.startLine,
					Kind:     "missing-comment",
					Severity: domain.SeverityWarning,
					Rule:     "enforce-comments",
					Message:  fmt.Sprintf("function %q has no comment explaining what it does", fn.name),
				})
				if autoFix {
					insertAt = append(insertAt, fn.startLine-1)
				}
			}

			span := fn.endLine - fn.startLine + 1
			if span > s.cfg.MaxFunctionLines {
				longFunctions++
				result.Issues = append(result.Issues, domain.Issue{
					File:     file,
					Line:     fn.startLine,
					Kind:     "long-function",
					Severity: domain.SeverityWarning,
					Rule:     "max-function-lines",
					Message:  fmt.Sprintf("function %q spans %d lines (max %d)", fn.name, span, s.cfg.MaxFunctionLines),
				})
			}
		}

		if len(insertAt) > 0 {
			fixed, err := insertPlaceholderComments(file, lines, functions, insertAt)
			if err == nil {
				result.Fixed = append(result.Fixed, fixed...)
			}
		}
	}

	result.Metrics["totalFunctions"] = totalFunctions
	result.Metrics["commentedFunctions"] = commentedFunctions
	result.Metrics["longFunctions"] = longFunctions
	result.Score = codeScore(totalFunctions, commentedFunctions, longFunctions)
	return result
}

// detectFunctions runs the shape matchers over every line and computes each
// match's extent by brace counting.
func detectFunctions(lines []string) []detectedFunction {
	var out []detectedFunction
	for i, line := range lines {
		name, shape, ok := matchFunctionShape(line)
		if !ok {
			continue
		}
		out = append(out, detectedFunction{
			name:      name,
			shape:     shape,
			startLine: i + 1,
			endLine:   functionEnd(lines, i) + 1,
			commented: hasAdjacentComment(lines, i),
		})
	}
	return out
}

func matchFunctionShape(line string) (name, shape string, ok bool) {
	if isCommentLine(line) {
		return "", "", false
	}
	for _, fs := range functionShapes {
		m := fs.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if fs.name == "method-signature" && reservedWords[m[1]] {
			continue
		}
		return m[1], fs.name, true
	}
	return "", "", false
}

// functionEnd counts braces from the start line until the running count first
// returns to zero. Single-line constructs (or bodies without braces) end on
// their own line. Returns a 0-based index.
func functionEnd(lines []string, start int) int {
	depth := 0
	entered := false
	for i := start; i < len(lines); i++ {
		depth += braceDelta(lines[i])
		if depth > 0 {
			entered = true
		}
		if entered && depth <= 0 {
			return i
		}
		if !entered && i > start {
			// no opening brace on the declaration line: treat as one-liner
			return start
		}
	}
	return len(lines) - 1
}

// hasAdjacentComment checks the line immediately above, or the line two above
// when a block-comment closer sits between.
func hasAdjacentComment(lines []string, idx int) bool {
	if idx == 0 {
		return false
	}
	if isCommentLine(lines[idx-1]) {
		return true
	}
	if idx >= 2 && strings.HasSuffix(strings.TrimSpace(lines[idx-1]), "*/") {
		return isCommentLine(lines[idx-2])
	}
	return false
}

// insertPlaceholderComments splices a comment line above each uncommented
// function and rewrites the whole file.
func insertPlaceholderComments(file string, lines []string, functions []detectedFunction, insertAt []int) ([]domain.AppliedFix, error) {
	pending := make(map[int]bool, len(insertAt))
	for _, idx := range insertAt {
		pending[idx] = true
	}
	nameAt := make(map[int]string, len(functions))
	for _, fn := range functions {
		nameAt[fn.startLine-1] = fn.name
	}

	var merged []string
	var fixes []domain.AppliedFix
	for i, line := range lines {
		if pending[i] {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			merged = append(merged, fmt.Sprintf("%s// TODO: describe what %s does", indent, nameAt[i]))
			fixes = append(fixes, domain.AppliedFix{
				File:        file,
				Line:        i + 1,
				Rule:        "enforce-comments",
				Description: fmt.Sprintf("inserted placeholder comment above %q", nameAt[i]),
			})
		}
		merged = append(merged, line)
	}

	if err := os.WriteFile(file, []byte(strings.Join(merged, "\n")), 0644); err != nil {
		return nil, err
	}
	return fixes, nil
}

// codeScore implements: commentRatio*80 + 20 - (longFunctions/total)*20,
// clamped and rounded. No functions at all scores 100.
func codeScore(total, commented, long int) int {
	if total == 0 {
		return 100
	}
	commentRatio := float64(commented) / float64(total)
	longPenalty := float64(long) / float64(total) * 20
	return domain.ClampScore(commentRatio*80 + 20 - longPenalty)
}
