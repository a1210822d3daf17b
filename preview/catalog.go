package preview

import (
	"fmt"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FallbackTemplate is returned when neither the garment nor the T-Shirt front entry is known
const FallbackTemplate = "/templates/tshirt-front.png"

// Catalog maps a garment type and view to the base template image.
// Lookup must always return a usable reference.
type Catalog interface {
	Lookup(garment GarmentType, view View) string
}

// TemplateCatalog is the static garment template table
type TemplateCatalog struct {
	entries map[GarmentType]map[View]string
}

var _ Catalog = (*TemplateCatalog)(nil)

// DefaultCatalog returns the templates shipped under /templates
func DefaultCatalog() *TemplateCatalog {
	return &TemplateCatalog{
		entries: map[GarmentType]map[View]string{
			GarmentTShirt: {
				ViewFront: "/templates/tshirt-front.png",
				ViewBack:  "/templates/tshirt-back.png",
				ViewLeft:  "/templates/tshirt-left.png",
				ViewRight: "/templates/tshirt-right.png",
			},
			GarmentHoodie: {
				ViewFront: "/templates/hoodie-front.png",
				ViewBack:  "/templates/hoodie-back.png",
				ViewLeft:  "/templates/hoodie-left.png",
				ViewRight: "/templates/hoodie-right.png",
			},
		},
	}
}

// Lookup returns the template for (garment, view), falling back to the T-Shirt front template
func (c *TemplateCatalog) Lookup(garment GarmentType, view View) string {
	if views, ok := c.entries[garment]; ok {
		if ref, ok := views[view]; ok && ref != "" {
			return ref
		}
	}
	if ref := c.entries[GarmentTShirt][ViewFront]; ref != "" {
		return ref
	}
	return FallbackTemplate
}

// Garments lists the garment types the catalog knows about, sorted by name
func (c *TemplateCatalog) Garments() []GarmentType {
	out := make([]GarmentType, 0, len(c.entries))
	for g := range c.entries {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// catalogFile is the YAML layout of a template catalog override file:
//
//	templates:
//	  Hoodie:
//	    front: /templates/hoodie-front.png
type catalogFile struct {
	Templates map[string]map[string]string `yaml:"templates"`
}

// LoadCatalog reads a YAML override file and merges it over DefaultCatalog.
// An empty path returns the default catalog unchanged.
func LoadCatalog(path string) (*TemplateCatalog, error) {
	catalog := DefaultCatalog()
	if path == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template catalog: %w", err)
	}
	if err := catalog.merge(data); err != nil {
		return nil, err
	}

	log.Printf("✅ TemplateCatalog: loaded overrides from %s (%d garment types)", path, len(catalog.entries))
	return catalog, nil
}

func (c *TemplateCatalog) merge(data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse template catalog: %w", err)
	}

	for garment, views := range file.Templates {
		g := GarmentType(garment)
		if c.entries[g] == nil {
			c.entries[g] = map[View]string{}
		}
		for key, ref := range views {
			v, err := ParseView(key)
			if err != nil {
				return fmt.Errorf("invalid template catalog entry %s.%s: %w", garment, key, err)
			}
			c.entries[g][v] = ref
		}
	}
	return nil
}
