package docstring

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", NoDocumentation},
		{"whitespace", "  \n\t\n ", NoDocumentation},
		{"plain", "  Return the thing.  ", "Return the thing."},
		{
			"code block",
			"Example:\n\n.. code-block:: python\n\n    run()",
			"Example:\n\nCode example:\n    run()",
		},
		{"class role", "See :class:`Session`.", "See Session."},
		{"tilde target", "Uses :func:`~json.dumps` here.", "Uses json.dumps here."},
		{"tilde role", "A ~:data:`VALUE`.", "A VALUE."},
		{"mimetype and ref", ":mimetype:`text/html` and :ref:`intro`", "text/html and intro"},
		{"version changed", ".. versionchanged:: 3.1\n   Now lazy.", "[Changed in version 3.1]:\n   Now lazy."},
		{"version added", ".. versionadded:: 2.0", "[Added in version 2.0]:"},
		{"deprecated", ".. deprecated:: 1.5 use other", "[Deprecated in version 1.5]: use other"},
		{"blank runs", "a\n\n\n\nb\n\n\nc", "a\n\nb\n\nc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.in); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := []string{
		"Simple text.",
		"See :class:`~pkg.Thing`.\n\n\n\n.. versionadded:: 1.0\n",
		".. code-block:: python\n\n    x = 1\n",
		"",
	}
	for _, in := range inputs {
		once := Format(in)
		if twice := Format(once); twice != once {
			t.Errorf("Format not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestFormat_NoTripleNewlines(t *testing.T) {
	in := strings.Repeat("para\n\n\n\n\n", 10) + ".. code-block:: python\n\n\n\n\nx"
	if got := Format(in); strings.Contains(got, "\n\n\n") {
		t.Errorf("Format left a run of 3+ newlines: %q", got)
	}
}
