package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const facingMarkerWidth = 3

var defaultSpriteColor = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	camX, camY, zoom := cameraView(w)
	for _, e := range DrawOrder(w) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}
		img := ensureSpriteImage(s)
		if img == nil {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		if s.FlipX {
			sx = -sx
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Translate(0, s.OffsetY)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate((t.X-camX)*zoom, (t.Y-camY)*zoom)

		screen.DrawImage(img, op)
	}
}

// DrawOrder returns the drawable entities sorted by render layer, then
// sorting order, then entity id.
func DrawOrder(w *ecs.World) []ecs.Entity {
	entities := w.Query(component.TransformComponent.Kind().ID(), component.SpriteComponent.Kind().ID())
	layers := make(map[ecs.Entity]int, len(entities))
	orders := make(map[ecs.Entity]int, len(entities))
	for _, e := range entities {
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layers[e] = layer.Index
		}
		if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			orders[e] = s.SortingOrder
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if layers[a] != layers[b] {
			return layers[a] < layers[b]
		}
		if orders[a] != orders[b] {
			return orders[a] < orders[b]
		}
		return uint64(a) < uint64(b)
	})
	return entities
}

func ensureSpriteImage(s *component.Sprite) *ebiten.Image {
	if s.Image != nil {
		return s.Image
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil
	}
	clr := s.Color
	if clr == nil {
		clr = defaultSpriteColor
	}
	img := ebiten.NewImage(s.Width, s.Height)
	img.Fill(clr)
	if s.FacingMarker {
		stripe := min(facingMarkerWidth, s.Width)
		vector.FillRect(img, float32(s.Width-stripe), 0, float32(stripe), float32(s.Height), darken(clr), false)
	}
	s.Image = img
	return img
}

func darken(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA64{R: uint16(r / 2), G: uint16(g / 2), B: uint16(b / 2), A: uint16(a)}
}
