package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFallsBackForMissingView(t *testing.T) {
	c := DefaultCatalog()
	delete(c.entries[GarmentHoodie], ViewLeft)

	assert.Equal(t, "/templates/tshirt-front.png", c.Lookup(GarmentHoodie, ViewLeft))
	assert.Equal(t, "/templates/hoodie-right.png", c.Lookup(GarmentHoodie, ViewRight))
}

func TestLookupIsTotalOnEmptyCatalog(t *testing.T) {
	c := &TemplateCatalog{entries: map[GarmentType]map[View]string{}}
	assert.Equal(t, FallbackTemplate, c.Lookup("anything", ViewBack))
}

func TestLoadCatalogMergesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yaml")
	yamlDoc := `templates:
  Hoodie:
    front: /cdn/hoodie-front-v2.png
  Crewneck:
    front: /templates/crew-front.png
    back: /templates/crew-back.png
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.Equal(t, "/cdn/hoodie-front-v2.png", c.Lookup(GarmentHoodie, ViewFront))
	assert.Equal(t, "/templates/hoodie-back.png", c.Lookup(GarmentHoodie, ViewBack))
	assert.Equal(t, "/templates/crew-back.png", c.Lookup("Crewneck", ViewBack))
	assert.Equal(t, "/templates/tshirt-front.png", c.Lookup("Crewneck", ViewLeft))
	assert.Equal(t, []GarmentType{"Crewneck", GarmentHoodie, GarmentTShirt}, c.Garments())
}

func TestLoadCatalogRejectsUnknownView(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("templates:\n  Hoodie:\n    collar: /x.png\n"), 0o644))

	_, err := LoadCatalog(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestLoadCatalogEmptyPathReturnsDefaults(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, "/templates/tshirt-back.png", c.Lookup(GarmentTShirt, ViewBack))
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
