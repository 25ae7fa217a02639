package component

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a solid placeholder quad. Image is created lazily by the render
// system from Color, Width and Height.
type Sprite struct {
	Image   *ebiten.Image
	Color   color.Color
	Width   int
	Height  int
	OriginX float64
	OriginY float64
	// FacingMarker paints a darker stripe on the right edge so mirroring is
	// visible on a plain quad.
	FacingMarker bool
	// FlipX mirrors the sprite horizontally.
	FlipX bool
	// SortingOrder breaks ties inside a render layer; higher draws later.
	SortingOrder int
	// OffsetY is a transient visual offset written by the animation system.
	OffsetY float64
}

var SpriteComponent = NewComponent[Sprite]()
