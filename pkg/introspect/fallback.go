package introspect

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/libscope/pkg/docstring"
)

const (
	noSourceHeader = "Source code not available (possibly built-in or binary extension)\n\n"
	maxReprLen     = 1000
)

// Fallback describes an object whose source text is unavailable.
//
// The sections always appear in this order: module file, object type,
// builtin notes, class origin, documentation, representation. Sections
// without data are omitted.
func Fallback(info *ObjectInfo) string {
	var b strings.Builder
	b.WriteString(noSourceHeader)
	if info.ModuleFile != "" {
		b.WriteString("Module file path: " + info.ModuleFile + "\n\n")
	}
	b.WriteString("Object type: " + info.ObjectType + "\n")
	if info.Builtin {
		b.WriteString("This is a built-in function or method written in C.\n")
	}
	if info.IsClass {
		if info.ClassModule == "" || info.ClassModule == "builtins" {
			b.WriteString("This is a built-in class written in C.\n")
		} else {
			b.WriteString("Class defined in module: " + info.ClassModule + "\n")
		}
	}
	if strings.TrimSpace(info.Doc) != "" {
		b.WriteString("\nDocumentation:\n" + docstring.Format(info.Doc))
	}
	if info.HasRepr && utf8.RuneCountInString(info.Repr) < maxReprLen {
		b.WriteString("\n\nObject representation:\n" + info.Repr)
	}
	return b.String()
}
