package preview

import "math"

// Vec3 is an (x, y, z) triple in model space
type Vec3 [3]float64

// Model tuning for the two garment meshes
const (
	hoodieModel      = "/models/hoodie.glb"
	tshirtModel      = "/models/oversized_t-shirt.glb"
	hoodieModelScale = 3.8
	tshirtModelScale = 4.0
	hoodieYOffset    = -0.6
	tshirtYOffset    = -0.3

	chestLift   = 0.2
	decalDepth  = 0.3
	textDepth   = 0.25
	sleeveReach = 0.6

	// textUnit3D turns a text config font size into scene units (1 -> 0.15)
	textUnit3D = 0.15
	// outlineUnit3D turns a stroke thickness in pixels into scene units
	outlineUnit3D = 0.01
)

// Material is the recoloured garment surface
type Material struct {
	Color     string  `json:"color"`
	Roughness float64 `json:"roughness"`
	Metalness float64 `json:"metalness"`
}

// Decal is an image projected onto the garment mesh
type Decal struct {
	View     View   `json:"view"`
	Image    string `json:"image"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
	Scale    Vec3   `json:"scale"`
}

// SceneText is a text label floating just above the garment surface
type SceneText struct {
	View         View    `json:"view"`
	Content      string  `json:"content"`
	Position     Vec3    `json:"position"`
	Rotation     Vec3    `json:"rotation"`
	FontSize     float64 `json:"fontSize"`
	Color        string  `json:"color"`
	OutlineWidth float64 `json:"outlineWidth"`
	OutlineColor string  `json:"outlineColor"`
	CurveRadius  float64 `json:"curveRadius"`
}

// Scene is the 3D description of a design, consumed by a three.js client
type Scene struct {
	Model      string      `json:"model"`
	ModelScale float64     `json:"modelScale"`
	Offset     Vec3        `json:"offset"`
	Material   Material    `json:"material"`
	Decals     []Decal     `json:"decals"`
	Texts      []SceneText `json:"texts"`
}

// surface is where a view sits on the mesh and which way it faces
type surface struct {
	anchor   Vec3
	rotation Vec3
}

func surfaceFor(view View, depth float64) surface {
	switch view {
	case ViewBack:
		return surface{anchor: Vec3{0, chestLift, -depth}, rotation: Vec3{0, math.Pi, 0}}
	case ViewRight:
		return surface{anchor: Vec3{sleeveReach, 0, 0}, rotation: Vec3{0, math.Pi / 2, 0}}
	case ViewLeft:
		return surface{anchor: Vec3{-sleeveReach, 0, 0}, rotation: Vec3{0, -math.Pi / 2, 0}}
	default:
		return surface{anchor: Vec3{0, chestLift, depth}, rotation: Vec3{0, 0, 0}}
	}
}

// PlaceDecals projects resolved plans onto the garment mesh. It uses the same normalized
// coordinates as the flat renderers; only the surface anchor differs per view.
func PlaceDecals(plans []RenderPlan) Scene {
	scene := Scene{
		Model:      tshirtModel,
		ModelScale: tshirtModelScale,
		Offset:     Vec3{0, tshirtYOffset, 0},
		Material:   Material{Color: DefaultBaseColor, Roughness: 0.7, Metalness: 0},
		Decals:     []Decal{},
		Texts:      []SceneText{},
	}
	if len(plans) == 0 {
		return scene
	}

	if plans[0].Garment == GarmentHoodie {
		scene.Model = hoodieModel
		scene.ModelScale = hoodieModelScale
		scene.Offset = Vec3{0, hoodieYOffset, 0}
	}
	scene.Material.Color = plans[0].ColorMask.Color

	for _, plan := range plans {
		if layer := plan.ImageLayer; layer != nil {
			s := surfaceFor(plan.View, decalDepth)
			scene.Decals = append(scene.Decals, Decal{
				View:     plan.View,
				Image:    layer.Image,
				Position: Vec3{s.anchor[0] + layer.NormX, s.anchor[1] + layer.NormY, s.anchor[2]},
				Rotation: s.rotation,
				Scale:    Vec3{layer.Scale, layer.Scale, 1},
			})
		}
		if text := plan.TextLayer; text != nil {
			s := surfaceFor(plan.View, textDepth)
			scene.Texts = append(scene.Texts, SceneText{
				View:         plan.View,
				Content:      text.Content,
				Position:     Vec3{s.anchor[0] + text.NormX, s.anchor[1] + text.NormY, s.anchor[2]},
				Rotation:     s.rotation,
				FontSize:     text.FontSize * textUnit3D,
				Color:        text.Color,
				OutlineWidth: text.StrokeThickness * outlineUnit3D,
				OutlineColor: text.Color,
				CurveRadius:  text.Curve,
			})
		}
	}
	return scene
}
