package main

import (
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/fpsplayground/config"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/entity"
	"github.com/milk9111/fpsplayground/ecs/system"
	"github.com/milk9111/fpsplayground/input"
	"github.com/milk9111/fpsplayground/physics"
	"github.com/milk9111/fpsplayground/render"
	"github.com/milk9111/fpsplayground/timer"
	"github.com/sirupsen/logrus"
)

type Game struct {
	cfg    *config.Config
	log    *logrus.Entry
	debug  bool
	paused bool
	seed   *uint64

	world   *ecs.World
	physics *physics.World
	timers  *timer.Scheduler
	sched   *ecs.Scheduler
	weapons *system.WeaponSystem
	input   *system.InputSystem
	lock    cursorLock

	player   ecs.Entity
	clusters *orderedmap.OrderedMap[string, ecs.Entity]

	watcher  *config.Watcher
	renderer *render.Renderer
	settings *settingsUI
}

// NewGame builds the scene described by cfg. watcher may be nil.
func NewGame(cfg *config.Config, watcher *config.Watcher, log *logrus.Entry, debug bool, seed *uint64) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		log:      log,
		debug:    debug,
		seed:     seed,
		world:    ecs.NewWorld(),
		physics:  physics.NewWorld(log),
		timers:   timer.NewScheduler(),
		clusters: orderedmap.NewOrderedMap[string, ecs.Entity](),
		watcher:  watcher,
		renderer: render.NewRenderer(cfg.Window.Width, cfg.Window.Height),
	}
	g.physics.SetGravity(cfg.Scene.Gravity)
	g.overrideSeeds(cfg)

	// Clusters snap to the ground, so it has to be registered first.
	if _, err := entity.NewGround(g.world, g.physics, cfg.Scene.Ground); err != nil {
		g.Close()
		return nil, err
	}
	player, err := entity.NewPlayer(g.world, cfg.Player, cfg.Controller)
	if err != nil {
		g.Close()
		return nil, err
	}
	g.player = player
	if err := g.syncClusters(cfg); err != nil {
		g.Close()
		return nil, err
	}

	dispatcher := input.NewDispatcher()
	g.weapons = system.NewWeaponSystem(g.timers, log)
	g.input = system.NewInputSystem(dispatcher, newDevice(cfg.Window.Width, cfg.Window.Height), g.lock, g.weapons, log)
	g.sched = ecs.NewScheduler(
		g.input,
		system.NewMovementSystem(),
		system.NewJumpSystem(),
		system.NewPhysicsSystem(g.physics, log),
		system.NewContactSystem(),
		system.NewCameraSystem(),
		system.NewSwaySystem(),
		g.weapons,
	)
	g.settings = newSettingsUI(g)
	return g, nil
}

func (g *Game) Update() error {
	g.pollConfig()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.settings.ui.Update()
		return nil
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	g.timers.Advance(dt)
	g.world.Tick(dt)
	g.sched.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world, g.player)
	render.DrawHUD(screen, g.world, g.player, g.debug)
	if g.paused {
		g.settings.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Close tears the scene down. Pending timers are dropped before the world so
// nothing fires into a closed world.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.WithError(err).Warn("closing config watcher")
		}
	}
	g.timers.Close()
	g.world.Close()
	g.physics.Close()
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if paused {
		g.lock.Release()
		g.input.Suspend(g.world)
	}
	g.log.WithField("paused", paused).Debug("pause toggled")
}

func (g *Game) setInvertY(on bool) {
	g.cfg.Controller.InvertY = on
	entity.ApplyController(g.world, g.player, g.cfg.Controller)
	g.settings.setInvertY(on)
}

func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-g.watcher.Configs:
			if !ok {
				return
			}
			g.applyConfig(cfg)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				return
			}
			g.log.WithError(err).Warn("config watcher")
		default:
			return
		}
	}
}

// applyConfig hot-swaps the tunable parts of the scene. Window size, the
// player body and the ground are fixed at startup.
func (g *Game) applyConfig(cfg *config.Config) {
	g.overrideSeeds(cfg)
	cfg.Window = g.cfg.Window
	g.cfg = cfg

	entity.ApplyController(g.world, g.player, cfg.Controller)
	g.physics.SetGravity(cfg.Scene.Gravity)
	if err := g.syncClusters(cfg); err != nil {
		g.log.WithError(err).Warn("scenery update failed")
	}
	g.settings.setInvertY(cfg.Controller.InvertY)
}

// syncClusters updates clusters by name: known names are updated in place,
// new names are mounted and missing names are destroyed.
func (g *Game) syncClusters(cfg *config.Config) error {
	seen := make(map[string]struct{}, len(cfg.Scene.Clusters))
	for _, cl := range cfg.Scene.Clusters {
		seen[cl.Name] = struct{}{}
		if e, ok := g.clusters.Get(cl.Name); ok {
			rebuilt, err := entity.UpdateSceneryCluster(g.world, g.physics, e, cl.Params())
			if err != nil {
				return err
			}
			if rebuilt {
				g.log.WithField("cluster", cl.Name).Info("scenery rebuilt")
			}
			continue
		}
		e, err := entity.NewSceneryCluster(g.world, g.physics, cl.Params())
		if err != nil {
			return err
		}
		g.clusters.Set(cl.Name, e)
	}

	var stale []string
	for el := g.clusters.Front(); el != nil; el = el.Next() {
		if _, ok := seen[el.Key]; !ok {
			stale = append(stale, el.Key)
		}
	}
	for _, name := range stale {
		e, _ := g.clusters.Get(name)
		ecs.DestroyEntity(g.world, e)
		g.clusters.Delete(name)
		g.log.WithField("cluster", name).Info("scenery removed")
	}
	return nil
}

func (g *Game) overrideSeeds(cfg *config.Config) {
	if g.seed == nil {
		return
	}
	for i := range cfg.Scene.Clusters {
		cfg.Scene.Clusters[i].Seed = *g.seed + uint64(i)
	}
}
