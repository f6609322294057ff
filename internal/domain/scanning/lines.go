package scanning

import (
	"bytes"
	"os"
	"strings"
)

// readLines loads a file as a line slice. Binary content (NUL byte in the
// first 800 bytes) and read failures return ok=false; such files are skipped
// silently, they are unscannable artifacts rather than project defects.
func readLines(path string) ([]string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	if looksBinary(data) {
		return nil, false
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n"), true
}

func looksBinary(b []byte) bool {
	sniff := 800
	if len(b) < sniff {
		sniff = len(b)
	}
	return bytes.IndexByte(b[:sniff], 0) >= 0
}

var commentMarkers = []string{"//", "/*", "*", "#", "<!--"}

// isCommentLine reports whether a line is a comment by prefix marker. No
// deeper comment-content validation is performed.
func isCommentLine(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	for _, m := range commentMarkers {
		if strings.HasPrefix(t, m) {
			return true
		}
	}
	return false
}

// braceDelta returns open minus close brace count for a line. Braces inside
// string literals are counted too; extents derived from it are intentionally
// approximate.
func braceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}
