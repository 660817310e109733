package recommend

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var embeddedCatalog []byte

// Library is a recommended package.
type Library struct {
	Name    string `toml:"name" json:"name"`
	Version string `toml:"version" json:"version,omitempty"`
	Summary string `toml:"summary" json:"summary"`
}

// Category is one taxonomy entry with its keyword phrases and curated libraries.
type Category struct {
	Name      string    `toml:"name"`
	Keywords  []string  `toml:"keywords"`
	Libraries []Library `toml:"library"`
}

// Catalog is the immutable taxonomy table. Category order is significant:
// it breaks ties between equal scores.
type Catalog struct {
	Categories []Category `toml:"category"`
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(embeddedCatalog)
})

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("recommend: embedded catalog: %v", err))
	}
	return c
}

// LoadCatalog reads a catalog file. An empty path returns [DefaultCatalog].
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a TOML catalog. Keywords are lowercased.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Categories) == 0 {
		return nil, fmt.Errorf("parse catalog: no categories")
	}
	seen := make(map[string]bool, len(c.Categories))
	for i := range c.Categories {
		cat := &c.Categories[i]
		if cat.Name == "" {
			return nil, fmt.Errorf("parse catalog: category %d has no name", i)
		}
		if seen[cat.Name] {
			return nil, fmt.Errorf("parse catalog: duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true
		for j, kw := range cat.Keywords {
			cat.Keywords[j] = strings.ToLower(kw)
		}
	}
	return &c, nil
}

// Libraries returns the curated libraries for a category, or nil.
func (c *Catalog) Libraries(category string) []Library {
	for _, cat := range c.Categories {
		if cat.Name == category {
			return cat.Libraries
		}
	}
	return nil
}
