// Package sourcing acquires candidate activities for a destination: first by
// best-effort extraction from an external catalog, and failing that by
// deterministic synthetic generation from travel-style templates.
package sourcing

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jdevries/tripwise/backend/internal/domain"
)

//go:embed styles.yaml
var stylesYAML []byte

// styleEntry holds the per-style lookup tables loaded from styles.yaml.
type styleEntry struct {
	Keywords  []string `yaml:"keywords"`
	Templates []string `yaml:"templates"`
}

var styleTable map[string]styleEntry

func init() {
	if err := yaml.Unmarshal(stylesYAML, &styleTable); err != nil {
		panic(fmt.Sprintf("sourcing: invalid embedded styles.yaml: %v", err))
	}
	for _, style := range []domain.TravelStyle{
		domain.StyleAdventure, domain.StyleBeach, domain.StyleCulture,
		domain.StyleNature, domain.StyleMixed,
	} {
		entry, ok := styleTable[string(style)]
		if !ok || len(entry.Keywords) == 0 || len(entry.Templates) == 0 {
			panic(fmt.Sprintf("sourcing: styles.yaml is missing tables for %q", style))
		}
	}
}

// styleFor resolves the lookup tables for a travel style.
// Unknown styles resolve to the mixed tables.
func styleFor(style domain.TravelStyle) styleEntry {
	if entry, ok := styleTable[string(style)]; ok {
		return entry
	}
	return styleTable[string(domain.StyleMixed)]
}
