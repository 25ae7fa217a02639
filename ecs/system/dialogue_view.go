package system

import (
	"errors"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/dialogue"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"golang.org/x/image/font/basicfont"
)

const (
	dialogueBoxMargin  = 12
	dialogueBoxHeight  = 96
	dialogueBoxPadding = 10
	dialogueLineHeight = 16
)

var (
	dialogueBoxColor     = color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 220}
	dialogueBorderColor  = color.NRGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 255}
	dialogueTextColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	dialogueSpeakerColor = color.NRGBA{R: 0xff, G: 0xd8, B: 0x60, A: 0xff}
	dialogueSelectColor  = color.NRGBA{R: 0x80, G: 0xe0, B: 0xff, A: 0xff}
)

// DialogueView presents the runner's current line or options and forwards the
// player's advance and selection input to it.
type DialogueView struct {
	runner   *dialogue.Runner
	face     text.Face
	selected int
	// armed is false on the first tick a line or option set is on screen so
	// the press that started the dialogue does not also advance it.
	armed bool
}

func NewDialogueView(runner *dialogue.Runner) *DialogueView {
	return &DialogueView{
		runner: runner,
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

// Showing reports whether a line or options are on screen.
func (v *DialogueView) Showing() bool {
	if v == nil || v.runner == nil {
		return false
	}
	if _, ok := v.runner.CurrentLine(); ok {
		return true
	}
	return len(v.runner.CurrentOptions()) > 0
}

// Selected is the highlighted option index.
func (v *DialogueView) Selected() int {
	return v.selected
}

func (v *DialogueView) Update(w *ecs.World) {
	if v == nil || v.runner == nil || w == nil {
		return
	}
	if !v.Showing() {
		v.armed = false
		v.selected = 0
		return
	}
	if !v.armed {
		v.armed = true
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}

	options := v.runner.CurrentOptions()
	if len(options) == 0 {
		if input.AdvancePressed {
			if err := v.runner.Continue(); err != nil && !errors.Is(err, dialogue.ErrNotRunning) {
				log.Printf("dialogue view: continue: %v", err)
			}
		}
		return
	}

	if v.selected >= len(options) {
		v.selected = len(options) - 1
	}
	if input.OptionUp {
		v.selected = (v.selected - 1 + len(options)) % len(options)
	}
	if input.OptionDown {
		v.selected = (v.selected + 1) % len(options)
	}
	if input.AdvancePressed {
		id := options[v.selected].ID
		v.selected = 0
		if err := v.runner.SelectOption(id); err != nil {
			log.Printf("dialogue view: select option=%d: %v", id, err)
		}
	}
}

func (v *DialogueView) Draw(screen *ebiten.Image) {
	if v == nil || screen == nil || !v.Showing() {
		return
	}

	x := float32(dialogueBoxMargin)
	y := float32(common.BaseHeight - dialogueBoxHeight - dialogueBoxMargin)
	width := float32(common.BaseWidth - 2*dialogueBoxMargin)
	vector.FillRect(screen, x, y, width, dialogueBoxHeight, dialogueBoxColor, false)
	vector.StrokeRect(screen, x, y, width, dialogueBoxHeight, 1, dialogueBorderColor, false)

	tx := float64(x) + dialogueBoxPadding
	ty := float64(y) + dialogueBoxPadding

	if line, ok := v.runner.CurrentLine(); ok {
		if line.Speaker != "" {
			v.drawText(screen, line.Speaker, tx, ty, dialogueSpeakerColor)
			ty += dialogueLineHeight
		}
		v.drawText(screen, line.Text, tx, ty, dialogueTextColor)
		return
	}

	for i, opt := range v.runner.CurrentOptions() {
		clr := dialogueTextColor
		prefix := "  "
		if i == v.selected {
			clr = dialogueSelectColor
			prefix = "> "
		}
		v.drawText(screen, prefix+opt.Text, tx, ty, clr)
		ty += dialogueLineHeight
	}
}

func (v *DialogueView) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, v.face, op)
}
