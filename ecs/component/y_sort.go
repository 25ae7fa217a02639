package component

// YSort drives Sprite.SortingOrder from the entity's vertical position.
// OffsetY moves the sort point, usually down to the sprite's feet.
type YSort struct {
	OffsetY float64
}

var YSortComponent = NewComponent[YSort]()
