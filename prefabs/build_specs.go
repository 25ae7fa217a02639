package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type NameComponentSpec struct {
	Value string `yaml:"value"`
}

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Color              *YAMLColor `yaml:"color"`
	Width              int        `yaml:"width"`
	Height             int        `yaml:"height"`
	OriginX            float64    `yaml:"origin_x"`
	OriginY            float64    `yaml:"origin_y"`
	CenterOriginIfZero bool       `yaml:"center_origin_if_zero"`
	FacingMarker       bool       `yaml:"facing_marker"`
	FlipX              bool       `yaml:"flip_x"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type YSortComponentSpec struct {
	OffsetY float64 `yaml:"offset_y"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type AnimatorComponentSpec struct {
	Defs    map[string]AnimationDefSpec `yaml:"defs"`
	Current string                      `yaml:"current"`
}

type AnimationDefSpec struct {
	FrameCount int     `yaml:"frame_count"`
	FPS        float64 `yaml:"fps"`
	BobPixels  float64 `yaml:"bob_pixels"`
	Loop       bool    `yaml:"loop"`
}

type PhysicsBodyComponentSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Radius   float64 `yaml:"radius"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
	Static   bool    `yaml:"static"`
}

type InteractableComponentSpec struct {
	IsCharacter   bool   `yaml:"is_character"`
	StartNode     string `yaml:"start_node"`
	CountVariable string `yaml:"count_variable"`
}

type InteractionZoneComponentSpec struct {
	Radius float64 `yaml:"radius"`
}

type FacingComponentSpec struct {
	Default string `yaml:"default"`
}
