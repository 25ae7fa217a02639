package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a flat top-down map: a size in pixels, wall rectangles and
// entity placements.
type Level struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Walls    []Wall   `json:"walls,omitempty"`
	Entities []Entity `json:"entities,omitempty"`
}

// Wall is an axis-aligned solid rectangle; X and Y are its top-left corner.
type Wall struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w"`
	H     int    `json:"h"`
	Color string `json:"color,omitempty"`
}

type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// PropString returns a string prop, or "" when missing or not a string.
func (e Entity) PropString(key string) string {
	if v, ok := e.Props[key].(string); ok {
		return v
	}
	return ""
}

// PropBool returns a boolean prop and whether it was present.
func (e Entity) PropBool(key string) (bool, bool) {
	v, ok := e.Props[key].(bool)
	return v, ok
}

func LoadLevelFromFS(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return ParseLevel(data)
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("level size must be positive, got %dx%d", lvl.Width, lvl.Height)
	}
	for i, wall := range lvl.Walls {
		if wall.W <= 0 || wall.H <= 0 {
			return nil, fmt.Errorf("wall %d: size must be positive, got %dx%d", i, wall.W, wall.H)
		}
	}
	return &lvl, nil
}
