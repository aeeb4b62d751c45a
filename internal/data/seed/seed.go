package seed

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Part struct {
	Name string `yaml:"name"`
	Unit string `yaml:"unit"`
}

type Complex struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Parts       map[string]int `yaml:"parts"`
}

// Catalog is the seed document: parts first, then complexes that reference
// parts by name.
type Catalog struct {
	Parts     []Part    `yaml:"parts"`
	Complexes []Complex `yaml:"complexes"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that part names are unique and non-blank and that every
// complex only references declared parts. Names are compared exactly.
func (c *Catalog) Validate() error {
	names := map[string]bool{}
	for i, p := range c.Parts {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("seed part %d: empty name", i)
		}
		if names[p.Name] {
			return fmt.Errorf("seed part %q declared twice", p.Name)
		}
		names[p.Name] = true
	}
	for _, cx := range c.Complexes {
		for part := range cx.Parts {
			if !names[part] {
				return fmt.Errorf("seed complex %q references unknown part %q", cx.Name, part)
			}
		}
	}
	return nil
}

// PartNames returns the part names a complex references, sorted so inserts
// happen in a stable order.
func (c Complex) PartNames() []string {
	out := make([]string, 0, len(c.Parts))
	for name := range c.Parts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
