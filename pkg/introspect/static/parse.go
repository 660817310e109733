package static

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// definition is a class or function found in a source file.
type definition struct {
	name    string
	kind    string // "class" or "function"
	doc     string
	source  string
	methods []definition
}

// assignment is a module-level name bound to a literal or expression.
type assignment struct {
	name  string
	typ   string
	value string
}

type parsedModule struct {
	doc         string
	definitions []definition
	assignments []assignment
}

func parseSource(src []byte) *parsedModule {
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(sitter.NewLanguage(python.Language())); err != nil {
		return &parsedModule{}
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return &parsedModule{}
	}
	defer tree.Close()

	root := tree.RootNode()
	mod := &parsedModule{doc: blockDocstring(root, src)}
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		switch child.Kind() {
		case "class_definition", "function_definition", "decorated_definition":
			if def, ok := parseDefinition(child, src); ok {
				mod.definitions = append(mod.definitions, def)
			}
		case "expression_statement":
			if a, ok := parseAssignment(child, src); ok {
				mod.assignments = append(mod.assignments, a)
			}
		}
	}
	return mod
}

func parseDefinition(node *sitter.Node, src []byte) (definition, bool) {
	whole := node
	if node.Kind() == "decorated_definition" {
		node = node.ChildByFieldName("definition")
		if node == nil {
			return definition{}, false
		}
	}
	name := node.ChildByFieldName("name")
	if name == nil {
		return definition{}, false
	}

	def := definition{
		name:   name.Utf8Text(src),
		source: whole.Utf8Text(src) + "\n",
	}
	body := node.ChildByFieldName("body")
	if body != nil {
		def.doc = blockDocstring(body, src)
	}

	switch node.Kind() {
	case "class_definition":
		def.kind = "class"
		if body != nil {
			for i := uint(0); i < body.ChildCount(); i++ {
				child := body.Child(i)
				if k := child.Kind(); k != "function_definition" && k != "decorated_definition" {
					continue
				}
				if m, ok := parseDefinition(child, src); ok && m.kind == "function" {
					def.methods = append(def.methods, m)
				}
			}
		}
	case "function_definition":
		def.kind = "function"
	default:
		return definition{}, false
	}
	return def, true
}

func parseAssignment(stmt *sitter.Node, src []byte) (assignment, bool) {
	if stmt.ChildCount() == 0 {
		return assignment{}, false
	}
	node := stmt.Child(0)
	if node.Kind() != "assignment" {
		return assignment{}, false
	}
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if left == nil || right == nil || left.Kind() != "identifier" {
		return assignment{}, false
	}
	return assignment{
		name:  left.Utf8Text(src),
		typ:   literalType(right),
		value: right.Utf8Text(src),
	}, true
}

// blockDocstring returns the cleaned docstring of a module or block node.
func blockDocstring(block *sitter.Node, src []byte) string {
	for i := uint(0); i < block.ChildCount(); i++ {
		child := block.Child(i)
		switch child.Kind() {
		case "comment":
			continue
		case "expression_statement":
			if child.ChildCount() > 0 && child.Child(0).Kind() == "string" {
				return cleandoc(unquote(child.Child(0).Utf8Text(src)))
			}
		}
		return ""
	}
	return ""
}

var literalTypes = map[string]string{
	"integer":    "int",
	"float":      "float",
	"string":     "str",
	"true":       "bool",
	"false":      "bool",
	"none":       "NoneType",
	"list":       "list",
	"dictionary": "dict",
	"tuple":      "tuple",
	"set":        "set",
}

func literalType(n *sitter.Node) string {
	if t, ok := literalTypes[n.Kind()]; ok {
		return t
	}
	return n.Kind()
}

// unquote strips string prefixes and quotes without processing escapes.
func unquote(s string) string {
	s = strings.TrimLeft(s, "rRbBuUfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(s) >= 2*len(q) && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}

// cleandoc trims a docstring the way Python's inspect.cleandoc does: the
// first line is stripped, the remaining lines lose their common indentation,
// and leading and trailing blank lines are removed.
func cleandoc(doc string) string {
	lines := strings.Split(strings.ReplaceAll(doc, "\t", "        "), "\n")
	margin := -1
	for _, l := range lines[1:] {
		trimmed := strings.TrimLeft(l, " ")
		if trimmed == "" {
			continue
		}
		if n := len(l) - len(trimmed); margin < 0 || n < margin {
			margin = n
		}
	}
	lines[0] = strings.TrimSpace(lines[0])
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " ")
			}
		}
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
