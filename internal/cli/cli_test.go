package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/libscope/pkg/introspect"
	"github.com/matzehuels/libscope/pkg/introspect/introspecttest"
	"github.com/matzehuels/libscope/pkg/recommend"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func describeJSON(t *testing.T) *introspect.Library {
	t.Helper()
	lib, err := introspect.New(introspecttest.JSON(), introspect.Options{}).Describe(context.Background(), "json")
	if err != nil {
		t.Fatal(err)
	}
	return lib
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"serve", "inspect", "source", "examples", "search", "package", "recommend", "diagram", "browse", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(dir, "cache", "libscope")
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := isolate(t)
	shard := filepath.Join(dir, "cache", "libscope", "ab")
	if err := os.MkdirAll(shard, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(shard, "abcd.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 1 cached entries") || !strings.Contains(out, "Directory:") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("second cache clear: %v", err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestMissingConfigFileFails(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "--config", "nope.toml", "cache", "path"); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "libscope") {
		t.Error("bash completion should mention the command name")
	}
}

func TestWriteLibrary(t *testing.T) {
	var buf bytes.Buffer
	writeLibrary(&buf, describeJSON(t), false)
	out := buf.String()

	for _, want := range []string{"json", "Classes (3)", "JSONEncoder", ".raw_decode()", "Functions (3)", "dumps()", "Constants (1)", "codecs"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "_private") {
		t.Error("private members should not be listed")
	}
}

func TestWriteRecommendation(t *testing.T) {
	rec, err := recommend.New(recommend.Options{}).Recommend(context.Background(), "plot statistics with dataframes")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	writeRecommendation(&buf, rec)
	if !strings.Contains(buf.String(), "pandas") {
		t.Errorf("expected pandas in:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("truncate = %q", got)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseItems(t *testing.T) {
	items := browseItems(describeJSON(t))

	// 3 classes, 2 + 2 methods, 3 functions
	if len(items) != 10 {
		t.Fatalf("len(items) = %d", len(items))
	}
	first := items[0].req
	if first.Kind != introspect.KindClass || first.Name != "JSONDecodeError" {
		t.Errorf("first item = %+v", first)
	}
	method := items[2].req
	if method.Kind != introspect.KindMethod || method.Parent != "JSONDecoder" || method.Name != "decode" {
		t.Errorf("method item = %+v", method)
	}
	last := items[len(items)-1].req
	if last.Kind != introspect.KindFunction || last.Name != "loads" {
		t.Errorf("last item = %+v", last)
	}
}

func TestBrowseModelOpensSource(t *testing.T) {
	var got introspect.SourceRequest
	fetch := func(_ context.Context, req introspect.SourceRequest) (string, error) {
		got = req
		return "def decode(self, s):\n    pass\n", nil
	}
	var m tea.Model = NewBrowseModel(context.Background(), describeJSON(t), fetch)

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	m, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter should return a fetch command")
	}
	if !strings.Contains(m.View(), "Loading") {
		t.Error("expected loading view")
	}

	m, _ = m.Update(cmd())
	if got.Name != "decode" || got.Parent != "JSONDecoder" {
		t.Errorf("fetched %+v", got)
	}
	if !strings.Contains(m.View(), "def decode") {
		t.Errorf("source view:\n%s", m.View())
	}

	m, _ = m.Update(key("esc"))
	bm := m.(BrowseModel)
	if bm.viewingSource() || bm.Cursor != 2 {
		t.Errorf("esc should return to the list at the same cursor, got %+v", bm)
	}
}

func TestBrowseModelShowsError(t *testing.T) {
	fetch := func(context.Context, introspect.SourceRequest) (string, error) {
		return "", errors.New("element not found")
	}
	var m tea.Model = NewBrowseModel(context.Background(), describeJSON(t), fetch)
	m, cmd := m.Update(key("enter"))
	m, _ = m.Update(cmd())
	if !strings.Contains(m.View(), "element not found") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestBrowseModelCursorBounds(t *testing.T) {
	var m tea.Model = NewBrowseModel(context.Background(), describeJSON(t), nil)
	m, _ = m.Update(key("up"))
	if m.(BrowseModel).Cursor != 0 {
		t.Error("cursor moved above the first item")
	}
	for range 20 {
		m, _ = m.Update(key("j"))
	}
	if c := m.(BrowseModel).Cursor; c != 9 {
		t.Errorf("cursor = %d, want 9", c)
	}
}
