package zaptastic

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/catalog"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Input is what the host supplies each frame.
type Input struct {
	VerticalDisplacement float64 // world units, positive is up
	Fire                 bool    // edge-triggered fire command
}

// Stats are running totals for a session.
type Stats struct {
	WavesSpawned   int `msgpack:"waves_spawned"`
	EnemiesSpawned int `msgpack:"enemies_spawned"`
	Kills          int `msgpack:"kills"`
	Escaped        int `msgpack:"escaped"` // enemies that left the world unharmed
	ShotsFired     int `msgpack:"shots_fired"`
	EnemyShots     int `msgpack:"enemy_shots"`
}

// FrameResult summarizes one Step.
type FrameResult struct {
	Tick           uint64
	EnemiesSpawned int
	EnemyShots     int
	Resolutions    []Resolution
	GameOver       bool // the player died during this frame
}

// Options injects collaborators. Zero values select the built-in ones.
type Options struct {
	TickRate int           // frames per second, default 60
	Random   RandomSource  // default: seeded from Seed
	Seed     int64         // seeds the default Random
	Physics  Physics       // default: NewWorld()
	Contacts ContactSource // default: Physics when it implements ContactSource
	Effects  EffectSink    // default: discards effects
	Logger   *log.Logger   // default: discards output
}

// Simulation advances one session frame by frame. It is not safe for
// concurrent use; one goroutine owns it.
type Simulation struct {
	cfg      config.ShooterConfig
	scene    *scene
	contacts ContactSource
	effects  EffectSink
	director *WaveDirector
	fire     *FireScheduler
	resolver *ContactResolver
	logger   *log.Logger

	player      PlayerState
	progression Progression
	score       int
	stats       Stats

	dt             float64
	now            float64
	tick           uint64
	lastPlayerShot float64
}

type discardEffects struct{}

func (discardEffects) SpawnEffect(EffectKind, core.Vec2) {}

// NewSimulation validates the configuration and catalogs and places the
// player. No enemies exist until the first Step.
func NewSimulation(cfg config.ShooterConfig, cats catalog.Catalogs, opts Options) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cats.EnemyTypes == nil || cats.Waves == nil {
		return nil, catalog.ValidationError{Code: catalog.CodeEmptyCatalog, Message: "catalogs are not loaded"}
	}
	if err := cats.Waves.CheckLanes(len(cfg.Lanes)); err != nil {
		return nil, fmt.Errorf("zaptastic: waves do not fit lane table: %w", err)
	}

	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Random == nil {
		opts.Random = NewRandomSource(opts.Seed)
	}
	if opts.Physics == nil {
		world := NewWorld()
		opts.Physics = world
		if opts.Contacts == nil {
			opts.Contacts = world
		}
	}
	if opts.Contacts == nil {
		src, ok := opts.Physics.(ContactSource)
		if !ok {
			return nil, errors.New("zaptastic: physics does not report contacts and no contact source was given")
		}
		opts.Contacts = src
	}
	if opts.Effects == nil {
		opts.Effects = discardEffects{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	s := &Simulation{
		cfg:            cfg,
		scene:          &scene{arena: NewArena(), physics: opts.Physics},
		contacts:       opts.Contacts,
		effects:        opts.Effects,
		director:       NewWaveDirector(cats, cfg.Lanes, cfg.Enemies.StartX, cfg.Enemies.BaseOffset, opts.Random),
		fire:           NewFireScheduler(cfg.Enemies.FireCooldown, cfg.Enemies.FireOdds, opts.Random),
		logger:         opts.Logger,
		progression:    Progression{Level: cfg.Player.StartLevel},
		dt:             1.0 / float64(opts.TickRate),
		lastPlayerShot: math.Inf(-1),
	}

	pos := core.V(cfg.Playfield.MinX+cfg.Player.Inset, 0)
	s.player = PlayerState{
		Handle: s.scene.spawn(Actor{
			Kind:     KindPlayer,
			Pos:      pos,
			Size:     core.V(cfg.Player.Width, cfg.Player.Height),
			Rotation: -math.Pi / 2,
		}),
		Shields: cfg.Player.Shields,
		Alive:   true,
	}
	s.resolver = &ContactResolver{
		scene:           s.scene,
		effects:         s.effects,
		player:          &s.player,
		pointsPerShield: cfg.Scoring.PointsPerShield,
	}
	return s, nil
}

// Step advances one frame: player input, culling, wave spawning and enemy
// fire, then motion and contact resolution.
func (s *Simulation) Step(in Input) FrameResult {
	s.tick++
	s.now += s.dt
	res := FrameResult{Tick: s.tick}

	s.applyInput(in)
	s.cull()
	res.EnemiesSpawned = s.spawnWave()
	res.EnemyShots = s.scheduleFire()

	s.move()
	for _, c := range s.contacts.Contacts() {
		r := s.resolver.Resolve(c.A, c.B)
		if r.Kind == ContactIgnored {
			continue
		}
		s.score += r.Points
		if r.Killed {
			s.stats.Kills++
		}
		if r.GameOver {
			res.GameOver = true
			s.logger.Info("game over", "tick", s.tick, "score", s.score, "level", s.progression.Level, "kills", s.stats.Kills)
		}
		res.Resolutions = append(res.Resolutions, r)
	}
	return res
}

// applyInput moves the player vertically and fires the player weapon.
func (s *Simulation) applyInput(in Input) {
	if !s.player.Alive {
		return
	}
	p, ok := s.scene.arena.Get(s.player.Handle)
	if !ok {
		return
	}

	pf := s.cfg.Playfield
	p.Pos.Y = core.ClampF(p.Pos.Y+in.VerticalDisplacement, pf.MinY, pf.MaxY)
	s.scene.physics.SetPosition(s.player.Handle, p.Pos)

	if in.Fire && s.now-s.lastPlayerShot >= s.cfg.Player.FireCooldown {
		s.lastPlayerShot = s.now
		s.spawnProjectile(KindPlayerWeapon, p.Pos, -math.Pi/2,
			core.V(s.cfg.Player.WeaponWidth, s.cfg.Player.WeaponHeight), s.cfg.Player.WeaponSpeed)
		s.stats.ShotsFired++
	}
}

// cull removes actors that left the playfield to the left, and projectiles
// that left it in any direction.
func (s *Simulation) cull() {
	field := s.playfield()
	for _, h := range s.scene.arena.Handles(0) {
		a, _ := s.scene.arena.Get(h)
		if a.Kind == KindPlayer {
			continue
		}
		b := a.Bounds()
		gone := b.Max.X < field.Min.X
		if a.Kind.IsProjectile() && !b.Intersects(field) {
			gone = true
		}
		if !gone {
			continue
		}
		if a.Kind == KindEnemy {
			s.stats.Escaped++
		}
		s.scene.despawn(h)
	}
}

// spawnWave instantiates the next wave when the field is clear.
func (s *Simulation) spawnWave() int {
	active := s.scene.arena.Count(KindEnemy)
	requests := s.director.MaybeSpawnNextWave(active, s.player.Alive, &s.progression)
	if len(requests) == 0 {
		return 0
	}

	size := core.V(s.cfg.Enemies.Width, s.cfg.Enemies.Height)
	for _, req := range requests {
		e := NewEnemy(req, s.cfg.Enemies)
		pos, rot := e.Pose()
		s.scene.spawn(Actor{Kind: KindEnemy, Pos: pos, Size: size, Rotation: rot, Enemy: e})
	}
	s.stats.WavesSpawned++
	s.stats.EnemiesSpawned += len(requests)
	s.logger.Debug("wave spawned",
		"level", s.progression.Level,
		"wave", s.progression.WaveIndex-1,
		"archetype", requests[0].Archetype.Name,
		"enemies", len(requests),
	)
	return len(requests)
}

// scheduleFire gives every visible enemy its fire attempt.
func (s *Simulation) scheduleFire() int {
	if !s.player.Alive {
		return 0
	}
	field := s.playfield()
	shots := 0
	for _, h := range s.scene.arena.Handles(KindEnemy) {
		a, _ := s.scene.arena.Get(h)
		visible := a.Bounds().Intersects(field)
		if !s.fire.TryFire(a.Enemy, s.now, visible) {
			continue
		}
		s.spawnProjectile(KindEnemyWeapon, a.Pos, a.Rotation,
			core.V(s.cfg.Enemies.WeaponWidth, s.cfg.Enemies.WeaponHeight), s.cfg.Enemies.WeaponSpeed)
		shots++
	}
	s.stats.EnemyShots += shots
	return shots
}

// spawnProjectile creates a weapon at pos and pushes it along the heading
// implied by rotation.
func (s *Simulation) spawnProjectile(kind ActorKind, pos core.Vec2, rotation float64, size core.Vec2, speed float64) Handle {
	h := s.scene.spawn(Actor{Kind: kind, Pos: pos, Size: size, Rotation: rotation})
	s.scene.physics.ApplyImpulse(h, core.FromAngle(rotation+math.Pi/2, speed))
	return h
}

// move advances enemies along their paths and integrates projectiles.
func (s *Simulation) move() {
	for _, h := range s.scene.arena.Handles(KindEnemy) {
		a, _ := s.scene.arena.Get(h)
		pos, rot, done := a.Enemy.Advance(s.dt)
		if done {
			s.stats.Escaped++
			s.scene.despawn(h)
			continue
		}
		a.Pos, a.Rotation = pos, rot
		s.scene.physics.SetPosition(h, pos)
	}

	s.scene.physics.Integrate(s.dt)

	for _, h := range s.scene.arena.Handles(0) {
		a, _ := s.scene.arena.Get(h)
		if !a.Kind.IsProjectile() {
			continue
		}
		if pos, ok := s.scene.physics.Position(h); ok {
			a.Pos = pos
		}
	}
}

func (s *Simulation) playfield() core.Box {
	pf := s.cfg.Playfield
	return core.Box{Min: core.V(pf.MinX, pf.MinY), Max: core.V(pf.MaxX, pf.MaxY)}
}

// Player returns the player's status.
func (s *Simulation) Player() PlayerState {
	return s.player
}

// PlayerPosition returns where the player is, or was when it died.
func (s *Simulation) PlayerPosition() core.Vec2 {
	if a, ok := s.scene.arena.Get(s.player.Handle); ok {
		return a.Pos
	}
	return core.V(s.cfg.Playfield.MinX+s.cfg.Player.Inset, 0)
}

// Progression returns the wave cycle position.
func (s *Simulation) Progression() Progression {
	return s.progression
}

// Score returns the accumulated score.
func (s *Simulation) Score() int {
	return s.score
}

// Stats returns running totals.
func (s *Simulation) Stats() Stats {
	return s.stats
}

// Tick returns the number of frames stepped.
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Now returns the simulation time in seconds.
func (s *Simulation) Now() float64 {
	return s.now
}

// Config returns the configuration the session runs with.
func (s *Simulation) Config() config.ShooterConfig {
	return s.cfg
}

// Each calls fn for every live actor in slot order.
func (s *Simulation) Each(fn func(h Handle, a *Actor)) {
	for _, h := range s.scene.arena.Handles(0) {
		a, _ := s.scene.arena.Get(h)
		fn(h, a)
	}
}

// ActiveEnemies returns the number of live enemies.
func (s *Simulation) ActiveEnemies() int {
	return s.scene.arena.Count(KindEnemy)
}
