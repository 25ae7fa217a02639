package system

import (
	"math"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const ySortPrecision = 100.0

// YSortSystem orders sprites by their feet: lower on screen draws on top.
type YSortSystem struct{}

func NewYSortSystem() *YSortSystem { return &YSortSystem{} }

func (s *YSortSystem) Update(w *ecs.World) {
	ecs.ForEach3(w, component.YSortComponent.Kind(), component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, ys *component.YSort, t *component.Transform, sprite *component.Sprite) {
		sprite.SortingOrder = SortingOrderFor(t.Y, ys.OffsetY)
	})
}

func SortingOrderFor(y, offsetY float64) int {
	return int(math.Round((y + offsetY) * ySortPrecision))
}
