package docstring

import (
	"reflect"
	"testing"
)

func TestExtractCodeBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"prose only", "Just words.\nMore words.", []string{}},
		{
			"fenced",
			"Intro\n```python\nimport json\njson.dumps(1)\n```\nafter",
			[]string{"import json\njson.dumps(1)"},
		},
		{
			"interactive",
			">>> import json\n>>> json.dumps({'a': 1})\n'{\"a\": 1}'\n\nText",
			[]string{"import json\njson.dumps({'a': 1})"},
		},
		{
			"interactive continuation",
			"  >>> for i in range(2):\n  ...     print(i)\n  ...\n  0\n  1\n",
			[]string{"for i in range(2):\n    print(i)\n"},
		},
		{
			"two sessions",
			">>> a = 1\n\n>>> b = 2",
			[]string{"a = 1", "b = 2"},
		},
		{
			"indented code",
			"Usage:\n\n    import requests\n      r = requests.get(url)\n\nDone.",
			[]string{"import requests\n  r = requests.get(url)"},
		},
		{
			"indented prose dropped",
			"Params:\n    name: the name to use\n    value: the value",
			[]string{},
		},
		{
			"keyword must be a whole word",
			"    classification is done here",
			[]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCodeBlocks(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractCodeBlocks() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestExtractCodeBlocks_Order(t *testing.T) {
	doc := "    import os\n\n>>> x = 1\n\n```python\nprint(2)\n```"
	got := ExtractCodeBlocks(doc)
	want := []string{"print(2)", "x = 1", "import os"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}
