package docstring

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	contextBefore = 5
	contextAfter  = 30
	maxSnippetLen = 2000
	truncatedMark = "\n# ... (truncated)"
)

// ExtractSnippet returns the parts of content that import or use library.
//
// Lines importing the library are preferred; when there are none, lines
// referencing "<library>." are used instead. Each matching line contributes
// a window of five lines before and thirty after. Windows are joined by a
// blank line and the result is capped at 2000 characters. The boolean is
// false only when no line matched.
func ExtractSnippet(content, library string) (string, bool) {
	if library == "" {
		return "", false
	}
	lines := strings.Split(content, "\n")

	lib := regexp.QuoteMeta(library)
	importRE := regexp.MustCompile(fmt.Sprintf(`^\s*(import\s+%s\b|from\s+%s(\.\w+)*\s+import\b)`, lib, lib))

	var hits []int
	for i, l := range lines {
		if importRE.MatchString(l) {
			hits = append(hits, i)
		}
	}
	if len(hits) == 0 {
		usage := library + "."
		for i, l := range lines {
			if strings.Contains(l, usage) {
				hits = append(hits, i)
			}
		}
	}
	if len(hits) == 0 {
		return "", false
	}

	snippets := make([]string, 0, len(hits))
	for _, i := range hits {
		start := max(0, i-contextBefore)
		end := min(len(lines), i+contextAfter+1)
		snippets = append(snippets, strings.Join(lines[start:end], "\n"))
	}
	return truncate(strings.Join(snippets, "\n\n")), true
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxSnippetLen {
		return s
	}
	return string([]rune(s)[:maxSnippetLen]) + truncatedMark
}
