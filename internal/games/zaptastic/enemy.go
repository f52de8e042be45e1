package zaptastic

import (
	"math"

	"github.com/vovakirdan/tui-shooter/internal/catalog"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Enemy is the payload of a KindEnemy actor.
type Enemy struct {
	Archetype      catalog.EnemyType
	ArchetypeIndex int
	Shields        int
	Origin         core.Vec2 // spawn point; the path is relative to it
	Path           *Path
	Travelled      float64 // arc length covered so far
	LastFire       float64 // simulation time of the last fire attempt
	Straight       bool
}

// NewEnemy builds the enemy for a spawn request, choosing its path from the
// enemy config.
func NewEnemy(req SpawnRequest, cfg config.ShooterEnemies) *Enemy {
	var path *Path
	if req.MoveStraight {
		path = StraightPath(core.V(cfg.StraightEndX, 0))
	} else {
		y := req.Position.Y
		path = CurvedPath(core.V(0, -y*4), core.V(cfg.CurveControlX, -y), core.V(cfg.CurveEndX, 0), cfg.PathResolution)
	}
	return &Enemy{
		Archetype:      req.Archetype,
		ArchetypeIndex: req.ArchetypeIndex,
		Shields:        req.Archetype.Shields,
		Origin:         req.Position,
		Path:           path,
		Straight:       req.MoveStraight,
	}
}

// Pose returns the current world position and rotation.
func (e *Enemy) Pose() (core.Vec2, float64) {
	off, heading, _ := e.Path.Sample(e.Travelled)
	return e.Origin.Add(off), heading - math.Pi/2
}

// Advance moves the enemy dt seconds along its path at archetype speed.
// finished is true once the path is exhausted.
func (e *Enemy) Advance(dt float64) (pos core.Vec2, rotation float64, finished bool) {
	e.Travelled += e.Archetype.Speed * dt
	off, heading, done := e.Path.Sample(e.Travelled)
	return e.Origin.Add(off), heading - math.Pi/2, done
}

// Hit removes one shield and reports whether the enemy is destroyed.
func (e *Enemy) Hit() bool {
	if e.Shields > 0 {
		e.Shields--
	}
	return e.Shields == 0
}

// FireScheduler gates enemy fire: at most one attempt per cooldown, and each
// attempt succeeds with probability 1/Odds.
type FireScheduler struct {
	Cooldown float64
	Odds     int
	rng      RandomSource
}

// NewFireScheduler creates a scheduler drawing from rng.
func NewFireScheduler(cooldown float64, odds int, rng RandomSource) *FireScheduler {
	return &FireScheduler{Cooldown: cooldown, Odds: odds, rng: rng}
}

// TryFire decides whether e fires at time now. Enemies outside the playfield
// never attempt. An attempt resets the cooldown whether or not the roll hits.
func (f *FireScheduler) TryFire(e *Enemy, now float64, visible bool) bool {
	if !visible {
		return false
	}
	if now-e.LastFire <= f.Cooldown {
		return false
	}
	e.LastFire = now
	return f.rng.Intn(f.Odds) == 0
}
