// Package zaptastic implements a side-scrolling space shooter: waves of enemy
// ships fly in from the right, the player steers vertically and fires back.
package zaptastic

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/catalog"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

// Visual characters for rendering
const (
	PlayerChar       = '▶'
	EnemyChar        = '◀'
	PlayerWeaponChar = '━'
	EnemyWeaponChar  = '•'
)

// explosionFrames animate an effect from fresh to fading.
var explosionFrames = []rune{'✹', '*', '+', '·'}

// enemyColors tints enemies by archetype index.
var enemyColors = []core.Color{
	core.ColorGreen,
	core.ColorYellow,
	core.ColorMagenta,
	core.ColorBrightRed,
	core.ColorRed,
}

// Minimum screen size the playfield can be drawn in.
const (
	MinScreenW = 30
	MinScreenH = 12
)

// Explosions last this many ticks.
const effectLifetime = 24

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	enemyTypesPath   string
	wavesPath        string
	logger           *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the config file's values.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetCatalogPaths overrides the enemy type and wave tables named in the
// config. Empty paths keep the config's choice.
func SetCatalogPaths(enemyTypes, waves string) {
	enemyTypesPath = enemyTypes
	wavesPath = waves
}

// SetLogger routes simulation logs; nil discards them.
func SetLogger(l *log.Logger) {
	logger = l
}

// Prepare loads the configuration and catalogs the package settings point
// at. Catalog problems surface here, before any session starts.
func Prepare() (config.ShooterConfig, catalog.Catalogs, error) {
	cfg, err := config.LoadShooter(configPath)
	if err != nil {
		return cfg, catalog.Catalogs{}, err
	}
	if difficultyPreset != "" {
		config.ApplyShooterPreset(&cfg, difficultyPreset)
	}
	if enemyTypesPath != "" {
		cfg.Catalogs.EnemyTypes = enemyTypesPath
	}
	if wavesPath != "" {
		cfg.Catalogs.Waves = wavesPath
	}

	cats, err := catalog.Load(cfg.Catalogs.EnemyTypes, cfg.Catalogs.Waves, len(cfg.Lanes))
	if err != nil {
		return cfg, catalog.Catalogs{}, err
	}
	return cfg, cats, nil
}

// Game adapts a Simulation to the terminal platform.
type Game struct {
	sim     *Simulation
	effects *EffectLog
	waves   int
	paused  bool
	err     error // load failure; the game shows it and stays over
}

// New creates a new Zaptastic game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "zaptastic"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Zaptastic"
}

// Reset loads configuration and starts a fresh session.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.paused = false
	g.sim = nil
	g.err = nil
	g.effects = NewEffectLog(effectLifetime)

	cfg, cats, err := Prepare()
	if err != nil {
		g.err = err
		return
	}
	sim, err := NewSimulation(cfg, cats, Options{
		TickRate: rc.TickRate,
		Seed:     rc.Seed,
		Effects:  g.effects,
		Logger:   logger,
	})
	if err != nil {
		g.err = err
		return
	}
	g.sim = sim
	g.waves = cats.Waves.Len()
}

// Err returns the load error that stopped the session from starting.
func (g *Game) Err() error {
	return g.err
}

// Simulation exposes the running session, or nil after a load failure.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim == nil || !g.sim.Player().Alive {
		if g.sim != nil {
			g.effects.Tick()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	step := g.sim.Config().Player.TiltStep
	var input Input
	if in.Has(core.ActionUp) {
		input.VerticalDisplacement += step
	}
	if in.Has(core.ActionDown) {
		input.VerticalDisplacement -= step
	}
	input.Fire = in.Has(core.ActionFire)

	g.effects.Tick()
	g.sim.Step(input)
	return core.StepResult{State: g.State()}
}

// RunReport summarizes the session for storage.
func (g *Game) RunReport() registry.RunReport {
	if g.sim == nil {
		return registry.RunReport{}
	}
	return g.sim.Report()
}

// Report summarizes the session so far.
func (s *Simulation) Report() registry.RunReport {
	return registry.RunReport{
		Frames:         s.tick,
		Level:          s.progression.Level,
		WavesSpawned:   s.stats.WavesSpawned,
		EnemiesSpawned: s.stats.EnemiesSpawned,
		Kills:          s.stats.Kills,
		Escaped:        s.stats.Escaped,
		ShotsFired:     s.stats.ShotsFired,
		EnemyShots:     s.stats.EnemyShots,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:    g.sim.Score(),
		GameOver: !g.sim.Player().Alive,
		Paused:   g.paused,
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()

	if w < MinScreenW || h < MinScreenH {
		dst.DrawTextCentered(h/2, "Terminal too small", core.ColorRed)
		return
	}
	if g.err != nil {
		g.drawError(dst)
		return
	}
	if g.sim == nil {
		return
	}

	dst.DrawBox(core.NewRect(0, 1, w, h-1), core.ColorGray)
	g.drawHUD(dst)

	view := newViewport(g.sim.Config().Playfield, w, h)
	g.sim.Each(func(_ Handle, a *Actor) {
		x, y := view.cell(a.Pos)
		switch a.Kind {
		case KindPlayer:
			dst.SetColored(x, y, PlayerChar, core.ColorCyan)
		case KindPlayerWeapon:
			dst.SetColored(x, y, PlayerWeaponChar, core.ColorBrightYellow)
		case KindEnemy:
			dst.SetColored(x, y, EnemyChar, enemyColors[a.Enemy.ArchetypeIndex%len(enemyColors)])
		case KindEnemyWeapon:
			dst.SetColored(x, y, EnemyWeaponChar, core.ColorRed)
		}
	})

	for _, e := range g.effects.Active() {
		x, y := view.cell(e.Pos)
		frame := int(g.effects.Progress(e) * float64(len(explosionFrames)))
		frame = core.Clamp(frame, 0, len(explosionFrames)-1)
		dst.SetColored(x, y, explosionFrames[frame], core.ColorOrange)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if !g.sim.Player().Alive {
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.sim.Score()))
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	p := g.sim.Progression()
	wave := p.WaveIndex
	if wave == 0 {
		wave = 1
	}
	hud := fmt.Sprintf(" Score: %d  Shields: %d  Level: %d  Wave: %d/%d ",
		g.sim.Score(), g.sim.Player().Shields, p.Level+1, wave, g.waves)
	dst.DrawTextColored(1, 0, hud, core.ColorWhite)

	if shields := g.sim.Player().Shields; shields <= 3 && g.sim.Player().Alive {
		dst.DrawTextColored(dst.Width()-12, 0, "LOW SHIELDS", core.ColorBrightRed)
	}
}

func (g *Game) drawError(dst *core.Screen) {
	h := dst.Height()
	dst.DrawTextCentered(h/2-1, "Cannot start Zaptastic", core.ColorBrightRed)
	msg := g.err.Error()
	if limit := dst.Width() - 2; len([]rune(msg)) > limit {
		msg = string([]rune(msg)[:limit])
	}
	dst.DrawTextCentered(h/2+1, msg, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w, h := dst.Width(), dst.Height()
	boxW := min(max(len(title), len(subtitle))+4, w)
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorDefault)
}

// viewport maps world coordinates into the bordered area below the HUD.
type viewport struct {
	field          config.ShooterPlayfield
	left, top      int
	width, height  int
	scaleX, scaleY float64
}

func newViewport(field config.ShooterPlayfield, screenW, screenH int) viewport {
	v := viewport{field: field, left: 1, top: 2, width: screenW - 2, height: screenH - 3}
	v.scaleX = float64(v.width-1) / (field.MaxX - field.MinX)
	v.scaleY = float64(v.height-1) / (field.MaxY - field.MinY)
	return v
}

// cell returns the screen cell for a world point. Points outside the
// playfield land outside the drawable area and are clipped by the screen.
func (v viewport) cell(p core.Vec2) (int, int) {
	x := v.left + int(math.Round((p.X-v.field.MinX)*v.scaleX))
	y := v.top + int(math.Round((v.field.MaxY-p.Y)*v.scaleY))
	if x < v.left || x >= v.left+v.width || y < v.top || y >= v.top+v.height {
		return -1, -1
	}
	return x, y
}

var _ registry.RunReporter = (*Game)(nil)

// Register the game with the registry
func init() {
	registry.Register("zaptastic", func() registry.Game {
		return New()
	})
}
