package group

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// manifestFile mirrors the on-disk TOML schema.
type manifestFile struct {
	Name       string   `toml:"name"`
	Generators []string `toml:"generators"`
	Relators   []string `toml:"relators"`
	Subgroup   []string `toml:"subgroup"`
}

// ParseManifest decodes a TOML presentation manifest.
// The presentation is returned as-is; call [Presentation.Compile] to
// validate it.
func ParseManifest(data []byte) (Presentation, error) {
	var m manifestFile
	if err := toml.Unmarshal(data, &m); err != nil {
		return Presentation{}, fmt.Errorf("decode manifest: %w", err)
	}
	return Presentation{
		Name:       m.Name,
		Generators: m.Generators,
		Relators:   m.Relators,
		Subgroup:   m.Subgroup,
	}, nil
}

// LoadManifest reads a TOML presentation manifest from disk.
// If the manifest has no name, the file's base name (without extension) is
// used.
func LoadManifest(path string) (Presentation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Presentation{}, err
	}
	p, err := ParseManifest(data)
	if err != nil {
		return Presentation{}, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		base := filepath.Base(path)
		p.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return p, nil
}
