package preview

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// GarmentType selects the template family of a design
type GarmentType string

const (
	GarmentTShirt GarmentType = "T-Shirt"
	GarmentHoodie GarmentType = "Hoodie"
)

// Placement positions the image layer of one view.
// Nil fields mean "not provided" and resolve to the documented defaults.
type Placement struct {
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
	Scale *float64 `json:"scale,omitempty"`
}

// TextConfig is the text layer configuration of one view
type TextConfig struct {
	Content   string   `json:"content,omitempty"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
	FontSize  *float64 `json:"fontSize,omitempty"`
	Thickness *float64 `json:"thickness,omitempty"`
	Color     string   `json:"color,omitempty"`
	// Curve bends the text around the garment in the 3D scene; the flat renderers ignore it
	Curve *float64 `json:"curve,omitempty"`
}

// DesignRecord is one user-submitted customization, read-only from the resolver's point of view
type DesignRecord struct {
	GarmentType GarmentType
	BaseColor   string
	Images      map[View]string
	Placements  map[View]Placement
	Texts       map[View]TextConfig
}

// Float returns a pointer to f, for building placements in code
func Float(f float64) *float64 {
	return &f
}

// DecodePlacements decodes a {"front": {...}, ...} JSON object.
// Keys that are not one of the four views are dropped with a warning.
func DecodePlacements(raw []byte) (map[View]Placement, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[View]Placement{}, nil
	}
	var byKey map[string]Placement
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return nil, fmt.Errorf("failed to decode placements: %w", err)
	}
	out := make(map[View]Placement, len(byKey))
	for key, p := range byKey {
		v, err := ParseView(key)
		if err != nil {
			log.Warnf("⚠️  DecodePlacements: dropping placement for %v", err)
			continue
		}
		out[v] = p
	}
	return out, nil
}

// DecodeTexts decodes a {"front": {...}, ...} JSON object of text configs.
// Keys that are not one of the four views are dropped with a warning.
func DecodeTexts(raw []byte) (map[View]TextConfig, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[View]TextConfig{}, nil
	}
	var byKey map[string]TextConfig
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return nil, fmt.Errorf("failed to decode text config: %w", err)
	}
	out := make(map[View]TextConfig, len(byKey))
	for key, t := range byKey {
		v, err := ParseView(key)
		if err != nil {
			log.Warnf("⚠️  DecodeTexts: dropping text config for %v", err)
			continue
		}
		out[v] = t
	}
	return out, nil
}
