package docstring

import (
	"regexp"
	"strings"
)

var (
	fencedRE  = regexp.MustCompile("(?s)```python[ \\t]*\\n(.*?)```")
	keywordRE = regexp.MustCompile(`\b(def|class|if|for|import|with)\b`)
)

const indent = "    "

// ExtractCodeBlocks returns the code examples embedded in doc: fenced
// python blocks first, then interactive sessions, then indented blocks that
// look like code. It returns an empty (non-nil) slice when nothing is found.
func ExtractCodeBlocks(doc string) []string {
	blocks := []string{}
	for _, m := range fencedRE.FindAllStringSubmatch(doc, -1) {
		if code := strings.Trim(m[1], "\n"); code != "" {
			blocks = append(blocks, code)
		}
	}
	lines := strings.Split(doc, "\n")
	blocks = append(blocks, interactiveBlocks(lines)...)
	blocks = append(blocks, indentedBlocks(lines)...)
	return blocks
}

// interactiveBlocks collects >>> sessions. Prompt and continuation markers
// are stripped; output lines are dropped; a blank line ends the session.
func interactiveBlocks(lines []string) []string {
	var (
		blocks []string
		cur    []string
		inRun  bool
	)
	flush := func() {
		if inRun && len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n"))
		}
		cur, inRun = nil, false
	}
	for _, line := range lines {
		t := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(t, ">>> "):
			inRun = true
			cur = append(cur, t[4:])
		case !inRun:
		case strings.TrimSpace(t) == "":
			flush()
		case t == ">>>" || t == "...":
			cur = append(cur, "")
		case strings.HasPrefix(t, "... "):
			cur = append(cur, t[4:])
		}
	}
	flush()
	return blocks
}

func indentedBlocks(lines []string) []string {
	var (
		blocks []string
		run    []string
	)
	flush := func() {
		if len(run) > 0 {
			if code := dedent(run); keywordRE.MatchString(code) {
				blocks = append(blocks, code)
			}
		}
		run = nil
	}
	for _, line := range lines {
		if strings.HasPrefix(line, indent) && strings.TrimSpace(line) != "" {
			run = append(run, line)
			continue
		}
		flush()
	}
	flush()
	return blocks
}

func dedent(lines []string) string {
	shortest := -1
	for _, l := range lines {
		n := len(l) - len(strings.TrimLeft(l, " "))
		if shortest < 0 || n < shortest {
			shortest = n
		}
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l[shortest:]
	}
	return strings.Join(out, "\n")
}
