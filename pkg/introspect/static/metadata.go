package static

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/matzehuels/libscope/pkg/introspect"
)

var (
	distInfoGlob  = glob.MustCompile("{*.dist-info,*.egg-info}")
	metadataFiles = []string{"METADATA", "PKG-INFO"}
)

type distMetadata struct {
	Name     string
	Version  string
	Summary  *string
	topLevel []string
}

func (d distMetadata) Package() introspect.Package {
	summary := introspect.NoDescription
	if d.Summary != nil {
		summary = *d.Summary
	}
	return introspect.Package{Name: d.Name, Version: d.Version, Summary: summary}
}

func (d distMetadata) Distribution() *introspect.Distribution {
	return &introspect.Distribution{Version: d.Version, Summary: d.Summary}
}

func (d distMetadata) provides(module string) bool {
	for _, t := range d.topLevel {
		if normalize(t) == module {
			return true
		}
	}
	return false
}

// scanDistributions reads the metadata of every installed distribution
// directly under root.
func scanDistributions(root string) ([]distMetadata, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var out []distMetadata
	for _, e := range entries {
		if !e.IsDir() || !distInfoGlob.Match(e.Name()) {
			continue
		}
		dir := filepath.Join(root, e.Name())
		for _, f := range metadataFiles {
			md, err := readMetadata(filepath.Join(dir, f))
			if err != nil {
				continue
			}
			md.topLevel = readLines(filepath.Join(dir, "top_level.txt"))
			out = append(out, md)
			break
		}
	}
	return out, nil
}

// readMetadata parses the RFC 822 style header block of a METADATA file.
func readMetadata(path string) (distMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return distMetadata{}, err
	}
	defer f.Close()

	var md distMetadata
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Name":
			md.Name = value
		case "Version":
			md.Version = value
		case "Summary":
			s := value
			md.Summary = &s
		}
	}
	if md.Name == "" {
		return distMetadata{}, os.ErrNotExist
	}
	return md, sc.Err()
}

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var out []string
	for _, l := range strings.Split(string(data), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func normalize(name string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(strings.ToLower(name))
}
