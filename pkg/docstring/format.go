package docstring

import (
	"regexp"
	"strings"
)

// NoDocumentation is returned by [Format] for empty input.
const NoDocumentation = "No documentation available"

var (
	codeBlockRE  = regexp.MustCompile(`\.\. code-block:: *\w+[ \t]*\n[ \t]*\n`)
	roleRE       = regexp.MustCompile("~?:(?:class|func|mimetype|data|ref):`~?([^`]+)`")
	changedRE    = regexp.MustCompile(`\.\. versionchanged:: (\S+)`)
	addedRE      = regexp.MustCompile(`\.\. versionadded:: (\S+)`)
	deprecatedRE = regexp.MustCompile(`\.\. deprecated:: (\S+)`)
	blankRunRE   = regexp.MustCompile(`\n{3,}`)
)

// Format converts a raw docstring into display text.
//
// The rewrite steps run in a fixed order and the result never contains
// three consecutive newlines. Format is idempotent on its own output.
func Format(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return NoDocumentation
	}
	s := codeBlockRE.ReplaceAllString(raw, "Code example:\n")
	s = roleRE.ReplaceAllString(s, "${1}")
	s = changedRE.ReplaceAllString(s, "[Changed in version ${1}]:")
	s = addedRE.ReplaceAllString(s, "[Added in version ${1}]:")
	s = deprecatedRE.ReplaceAllString(s, "[Deprecated in version ${1}]:")
	s = blankRunRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
