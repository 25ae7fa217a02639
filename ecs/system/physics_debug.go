package system

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/dialogue"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

var (
	debugZoneIdle    = color.NRGBA{R: 230, G: 200, B: 40, A: 200}
	debugZoneInRange = color.NRGBA{R: 60, G: 230, B: 90, A: 220}
)

// DrawPhysicsDebug draws every shape in the space, outlining sensors in a
// separate colour from solid geometry.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	camX, camY, zoom := cameraView(w)
	drawer := &physicsDebugDrawer{
		screen: screen,
		camX:   camX,
		camY:   camY,
		zoom:   zoom,
	}
	cp.DrawSpace(space, drawer)
}

// DrawInteractionDebug outlines each interaction radius, green while the
// player is tracked.
func DrawInteractionDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	camX, camY, zoom := cameraView(w)
	ecs.ForEach2(w, component.InteractionZoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, zone *component.InteractionZone, t *component.Transform) {
		clr := debugZoneIdle
		if zone.InRange {
			clr = debugZoneInRange
		}
		x := float32((t.X - camX) * zoom)
		y := float32((t.Y - camY) * zoom)
		vector.StrokeCircle(screen, x, y, float32(zone.Radius*zoom), 1, clr, true)
	})
}

// DrawStateDebug prints the player's lock state, the session state and the
// dialogue variables.
func DrawStateDebug(w *ecs.World, runner *dialogue.Runner, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	var b strings.Builder
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		locked := false
		if lock, ok := ecs.Get(w, player, component.MovementLockComponent.Kind()); ok {
			locked = lock.Locked
		}
		running := false
		if anim, ok := ecs.Get(w, player, component.AnimatorComponent.Kind()); ok {
			running = anim.Params[component.AnimParamRunning]
		}
		fmt.Fprintf(&b, "Locked: %v\nRunning: %v\n", locked, running)
	}

	ecs.ForEach2(w, component.InteractableComponent.Kind(), component.InteractionZoneComponent.Kind(), func(e ecs.Entity, it *component.Interactable, zone *component.InteractionZone) {
		name := e.String()
		if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
			name = n.Value
		}
		fmt.Fprintf(&b, "%s: inRange=%v session=%v\n", name, zone.InRange, it.SessionActive)
	})

	if runner != nil {
		fmt.Fprintf(&b, "Dialogue: %v\n", runner.IsDialogueRunning())
		if storage, ok := runner.VariableStorage().(*dialogue.MemoryVariableStorage); ok {
			for _, name := range storage.Names() {
				v, _ := storage.GetValue(name)
				fmt.Fprintf(&b, "%s = %s\n", name, dialogue.FormatValue(v))
			}
		}
	}
	ebitenutil.DebugPrintAt(screen, b.String(), 10, 10)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, fill)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], fill)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape != nil && shape.Sensor() {
		return cp.FColor{R: 0.9, G: 0.8, B: 0.15, A: 0.6}
	}
	if shape != nil && shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.5, B: 0.9, A: 0.8}
	}
	return cp.FColor{R: 0.1, G: 0.8, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, clr cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(clr), true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, clr cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], clr)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, clr cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, clr)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return (v.X - d.camX) * d.zoom, (v.Y - d.camY) * d.zoom
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
