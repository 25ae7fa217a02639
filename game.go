package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/config"
	"github.com/milk9111/topdown/dialogue"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/ecs/system"
	"github.com/milk9111/topdown/levels"
	"github.com/milk9111/topdown/prefabs"
)

const runnerName = "main"

var backgroundColor = color.NRGBA{R: 0x2e, G: 0x5a, B: 0x3a, A: 0xff}

type Game struct {
	cfg config.Config

	world     *ecs.World
	scheduler *ecs.Scheduler
	runner    *dialogue.Runner

	physics      *system.PhysicsSystem
	lock         *system.DialogueLockSystem
	interaction  *system.InteractionSystem
	dialogueView *system.DialogueView
	render       *system.RenderSystem

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool

	watcher        *prefabs.Watcher
	pendingProgram *dialogue.Program
}

func NewGame(cfg config.Config) (*Game, error) {
	g := &Game{cfg: cfg, render: system.NewRenderSystem()}
	if err := g.loadWorld(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if cfg.HotReload {
		dirs := prefabs.WatchDirs()
		if len(dirs) == 0 {
			log.Printf("game: hot reload requested but no prefab directory on disk")
		} else if w, err := prefabs.NewWatcher(dirs...); err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func loadProgram() (*dialogue.Program, error) {
	sources, err := prefabs.LoadDialogueSources()
	if err != nil {
		return nil, fmt.Errorf("load dialogue: %w", err)
	}
	return dialogue.ParseProgram(sources...)
}

// loadWorld builds a fresh world, runner and system set. Variable storage is
// reset along with the world.
func (g *Game) loadWorld() error {
	program, err := loadProgram()
	if err != nil {
		return err
	}
	lvl, err := levels.LoadLevelFromFS(g.cfg.Level)
	if err != nil {
		return fmt.Errorf("load level %q: %w", g.cfg.Level, err)
	}

	world := ecs.NewWorld()
	if err := entity.LoadLevelToWorld(world, lvl); err != nil {
		return err
	}

	g.closeSystems()

	runner := dialogue.NewRunner(runnerName, program, dialogue.NewMemoryVariableStorage(), &dialogue.SessionGate{})
	g.world = world
	g.runner = runner
	g.physics = system.NewPhysicsSystem()
	g.lock = system.NewDialogueLockSystem(runner)
	g.interaction = system.NewInteractionSystem(runner)
	g.dialogueView = system.NewDialogueView(runner)
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewQuestFlagSystem(runner, g.cfg.QuestFlag),
		g.lock,
		system.NewPlayerControllerSystem(g.cfg.SpeedScale),
		g.physics,
		system.NewProximitySystem(),
		g.interaction,
		g.dialogueView,
		system.NewYSortSystem(),
		system.NewAnimationSystem(),
		system.NewCameraSystem(),
	)
	g.pendingProgram = nil
	log.Printf("game: loaded level=%s nodes=%d", g.cfg.Level, len(program.Nodes))
	return nil
}

func (g *Game) closeSystems() {
	if g.lock != nil {
		g.lock.Close()
	}
	if g.interaction != nil {
		g.interaction.Close()
	}
}

func (g *Game) reload() {
	if err := g.loadWorld(); err != nil {
		log.Printf("game: reload failed: %v", err)
	}
}

func (g *Game) Update() error {
	if g.quit {
		g.shutdown()
		return ebiten.Termination
	}

	g.pollWatcher()
	g.applyPendingProgram()

	if g.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.paused = false
			return nil
		}
		g.pauseUI.Update()
		return nil
	}

	g.scheduler.Update(g.world)
	g.handleRequests()
	return nil
}

// handleRequests consumes the one-shot request entities spawned this tick.
func (g *Game) handleRequests() {
	reload := false
	for _, e := range g.world.Query(component.ReloadRequestComponent.Kind().ID()) {
		reload = true
		ecs.DestroyEntity(g.world, e)
	}
	for _, e := range g.world.Query(component.PauseRequestComponent.Kind().ID()) {
		g.paused = true
		ecs.DestroyEntity(g.world, e)
	}
	if reload {
		g.reload()
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if prefabs.IsDialogueFile(name) {
				program, err := loadProgram()
				if err != nil {
					log.Printf("game: hot reload %s: %v", name, err)
					continue
				}
				g.pendingProgram = program
				log.Printf("game: dialogue changed: %s", name)
				continue
			}
			log.Printf("game: prefab changed: %s; reloading level", name)
			g.reload()
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("game: watcher: %v", err)
			}
		default:
			return
		}
	}
}

// applyPendingProgram swaps in reloaded dialogue once no session is running.
func (g *Game) applyPendingProgram() {
	if g.pendingProgram == nil || g.runner == nil {
		return
	}
	if err := g.runner.SetProgram(g.pendingProgram); err != nil {
		return
	}
	g.pendingProgram = nil
}

func (g *Game) shutdown() {
	g.closeSystems()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("game: close watcher: %v", err)
		}
		g.watcher = nil
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.render.Draw(g.world, screen)

	if g.cfg.Debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
		system.DrawInteractionDebug(g.world, screen)
		system.DrawStateDebug(g.world, g.runner, screen)
	}

	g.dialogueView.Draw(screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
