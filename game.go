package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/doomenstein/common"
	"github.com/milk9111/doomenstein/physics"
	"github.com/milk9111/doomenstein/scenes"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	defaultZoom  = 50.0
	statusFrames = 120
	spawnRadius  = 0.3
	minTimeScale = 1.0 / 16
	maxTimeScale = 4.0
)

type Game struct {
	frames int
	quit   bool

	clock     *common.GameClock
	sceneName string
	scene     *scenes.Scene
	cam       camera
	watcher   *scenes.Watcher
	debug     physics.DebugOptions

	pauseUI      *ebitenui.UI
	stepPending  bool
	status       string
	statusUntil  int
	clipboardErr error
}

func NewGame(sceneName string, debug, watch bool) (*Game, error) {
	g := &Game{
		clock:     common.NewGameClock(),
		sceneName: sceneName,
		debug:     physics.DebugOptions{Bounds: debug, Contacts: debug},
	}
	if err := g.loadScene(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if err := clipboard.Init(); err != nil {
		g.clipboardErr = err
		log.Printf("sandbox: clipboard unavailable: %v", err)
	}

	if watch {
		w, err := scenes.WatchDiskRoot()
		if err != nil {
			log.Printf("sandbox: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

// loadScene rebuilds the world from disk or the embedded copy. On error the
// current scene keeps running.
func (g *Game) loadScene() error {
	scene, err := scenes.LoadAndBuild(g.sceneName, physics.WithClock(g.clock))
	if err != nil {
		return err
	}
	g.scene = scene

	spec := scene.Spec()
	g.cam = camera{center: spec.Camera.Center.Vector(), zoom: spec.Camera.Zoom}
	if g.cam.zoom <= 0 {
		g.cam.zoom = defaultZoom
	}
	return nil
}

func (g *Game) reload() {
	if err := g.loadScene(); err != nil {
		log.Printf("sandbox: reload %s: %v", g.sceneName, err)
		g.setStatus("reload failed: %v", err)
		return
	}
	g.setStatus("reloaded %s", g.sceneName)
}

func (g *Game) setPaused(paused bool) {
	g.clock.SetPaused(paused)
}

func (g *Game) paused() bool {
	return g.clock.IsPaused()
}

func (g *Game) requestStep() {
	g.stepPending = true
}

func (g *Game) copySnapshot() {
	if g.clipboardErr != nil {
		g.setStatus("clipboard unavailable")
		return
	}
	data, err := g.scene.Snapshot().Marshal()
	if err != nil {
		log.Printf("sandbox: snapshot: %v", err)
		g.setStatus("snapshot failed: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus("copied %d bytes of scene YAML", len(data))
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusUntil = g.frames + statusFrames
}

func (g *Game) Update() error {
	g.frames++
	if g.quit {
		return ebiten.Termination
	}

	g.handleInput()
	g.drainWatcher()

	if g.stepPending {
		g.stepPending = false
		g.clock.StepSingleFrame(g.scene.Physics.FixedDeltaTime())
	} else {
		g.clock.Tick()
	}

	if g.paused() {
		g.pauseUI.Update()
	}

	g.scene.Physics.Update()
	return nil
}

func (g *Game) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.setPaused(!g.paused())
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.requestStep()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reload()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.debug.Bounds = !g.debug.Bounds
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.debug.Contacts = !g.debug.Contacts
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.copySnapshot()
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		g.clock.SetTimeScale(cp.Clamp(g.clock.TimeScale()/2, minTimeScale, maxTimeScale))
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		g.clock.SetTimeScale(cp.Clamp(g.clock.TimeScale()*2, minTimeScale, maxTimeScale))
	}

	if g.paused() {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.spawnDisc(g.cam.toWorld(ebiten.CursorPosition()))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.destroyAt(g.cam.toWorld(ebiten.CursorPosition()))
	}
}

func (g *Game) spawnDisc(at cp.Vector) {
	world := g.scene.Physics
	rb := world.CreateRigidbody()
	rb.TakeCollider(world.CreateDiscCollider(cp.Vector{}, spawnRadius))
	rb.SetPosition(at)
}

func (g *Game) destroyAt(at cp.Vector) {
	for _, c := range g.scene.Physics.QueryPoint(at) {
		if rb := c.Rigidbody(); rb != nil && rb.Mode() != physics.ModeStatic {
			rb.Destroy()
			return
		}
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("sandbox: %s changed", name)
			changed = true
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("sandbox: watch error: %v", err)
			}
		default:
			if changed {
				g.reload()
			}
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	bg := color.Color(colornames.Midnightblue)
	if c := g.scene.Spec().Background; c != nil && c.Color != nil {
		bg = c.Color
	}
	screen.Fill(bg)

	drawer := &screenDrawer{screen: screen, cam: g.cam}
	g.scene.Physics.DebugRender(drawer, g.debug)
	for _, sb := range g.scene.Bodies() {
		if sb.Color == nil || sb.Body.Collider() == nil {
			continue
		}
		sb.Body.Collider().AddVerticesToDebugRender(drawer, toFColor(sb.Color))
	}

	ebitenutil.DebugPrint(screen, g.hud())

	if g.paused() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) hud() string {
	world := g.scene.Physics
	var b strings.Builder
	fmt.Fprintf(&b, "Scene: %s    Frame: %d    FPS: %.2f\n", g.scene.Name, world.FrameID(), ebiten.ActualFPS())
	fmt.Fprintf(&b, "Bodies: %d    Contacts: %d    Time scale: %.3g\n", len(world.Rigidbodies()), len(world.ActiveContacts()), g.clock.TimeScale())
	b.WriteString("[P] pause  [N] step  [R] reload  [B] bounds  [C] contacts  [Y] copy  [ [ ] ] speed  LMB spawn  RMB remove\n")
	if g.status != "" && g.frames < g.statusUntil {
		b.WriteString(g.status)
	}
	return b.String()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
