package zaptastic

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-shooter/internal/catalog"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

const eps = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func nearVec(a, b core.Vec2) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestStraightPathSample(t *testing.T) {
	p := StraightPath(core.V(-1000, 0))

	if !near(p.Length(), 1000) {
		t.Errorf("Length() = %v, expected 1000", p.Length())
	}

	off, heading, done := p.Sample(250)
	if !nearVec(off, core.V(-250, 0)) {
		t.Errorf("Sample(250) offset = %v, expected (-250, 0)", off)
	}
	if !near(heading, math.Pi) {
		t.Errorf("Sample(250) heading = %v, expected pi", heading)
	}
	if done {
		t.Error("Sample(250) reported done")
	}

	off, _, done = p.Sample(1500)
	if !done {
		t.Error("Sample past end not done")
	}
	if !nearVec(off, core.V(-1000, 0)) {
		t.Errorf("Sample past end offset = %v, expected end point", off)
	}
}

func TestCurvedPathEndpoints(t *testing.T) {
	end := core.V(-3500, 0)
	p := CurvedPath(core.V(0, -800), core.V(-1000, -200), end, 64)

	off, _, _ := p.Sample(0)
	if !nearVec(off, core.Vec2{}) {
		t.Errorf("Sample(0) = %v, expected origin", off)
	}
	off, _, done := p.Sample(p.Length())
	if !done || !nearVec(off, end) {
		t.Errorf("Sample(Length) = %v done=%v, expected %v done", off, done, end)
	}
	if p.Length() <= 3500 {
		t.Errorf("curved Length() = %v, expected more than the chord", p.Length())
	}
}

func TestNewEnemyPaths(t *testing.T) {
	cfg := config.DefaultShooterConfig().Enemies
	scout := catalog.EnemyType{Name: "scout", Shields: 2, Speed: 100}

	straight := NewEnemy(SpawnRequest{Archetype: scout, Position: core.V(600, 80), MoveStraight: true}, cfg)
	if straight.Shields != 2 {
		t.Errorf("Shields = %d, expected archetype's 2", straight.Shields)
	}
	pos, rot := straight.Pose()
	if !nearVec(pos, core.V(600, 80)) {
		t.Errorf("Pose() = %v, expected spawn point", pos)
	}
	if !near(rot, math.Pi/2) {
		t.Errorf("straight rotation = %v, expected pi/2", rot)
	}

	pos, _, done := straight.Advance(1)
	if !nearVec(pos, core.V(500, 80)) || done {
		t.Errorf("Advance(1) = %v done=%v, expected (500, 80)", pos, done)
	}
	// Fire direction follows the travel heading
	if dir := core.FromAngle(rot+math.Pi/2, 1); !nearVec(dir, core.V(-1, 0)) {
		t.Errorf("fire direction = %v, expected (-1, 0)", dir)
	}

	low := NewEnemy(SpawnRequest{Archetype: scout, Position: core.V(600, 80)}, cfg)
	high := NewEnemy(SpawnRequest{Archetype: scout, Position: core.V(600, 320)}, cfg)
	if high.Path.Length() <= low.Path.Length() {
		t.Errorf("curve for |y|=320 (%v) not longer than for |y|=80 (%v)", high.Path.Length(), low.Path.Length())
	}
}

func TestEnemyLeavesAtPathEnd(t *testing.T) {
	cfg := config.DefaultShooterConfig().Enemies
	e := NewEnemy(SpawnRequest{
		Archetype:    catalog.EnemyType{Name: "scout", Shields: 1, Speed: 1000},
		Position:     core.V(600, 0),
		MoveStraight: true,
	}, cfg)

	for i := 0; i < 9; i++ {
		if _, _, done := e.Advance(1); done {
			t.Fatalf("finished after %d seconds, expected 10", i+1)
		}
	}
	if _, _, done := e.Advance(1); !done {
		t.Error("not finished after covering the path")
	}
}

func TestEnemyHit(t *testing.T) {
	e := &Enemy{Shields: 2}
	if e.Hit() {
		t.Error("first Hit() destroyed a 2-shield enemy")
	}
	if !e.Hit() {
		t.Error("second Hit() did not destroy")
	}
	e.Hit()
	if e.Shields != 0 {
		t.Errorf("Shields = %d, expected 0", e.Shields)
	}
}

func TestFireScheduler(t *testing.T) {
	rng := &scriptedRandom{ints: []int{3, 0}}
	f := NewFireScheduler(1.0, 7, rng)
	e := &Enemy{}

	steps := []struct {
		now      float64
		visible  bool
		fired    bool
		lastFire float64
	}{
		{0.5, true, false, 0},   // inside the first cooldown
		{1.5, false, false, 0},  // off screen, no attempt
		{1.5, true, false, 1.5}, // attempt, roll 3 misses
		{2.5, true, false, 1.5}, // exactly one cooldown later is still gated
		{2.6, true, true, 2.6},  // roll 0 fires
		{3.0, true, false, 2.6},
	}

	for i, s := range steps {
		if got := f.TryFire(e, s.now, s.visible); got != s.fired {
			t.Errorf("step %d: TryFire() = %v, expected %v", i, got, s.fired)
		}
		if !near(e.LastFire, s.lastFire) {
			t.Errorf("step %d: LastFire = %v, expected %v", i, e.LastFire, s.lastFire)
		}
	}

	if len(rng.bounds) != 2 {
		t.Fatalf("random draws = %d, expected 2", len(rng.bounds))
	}
	for _, n := range rng.bounds {
		if n != 7 {
			t.Errorf("Intn(%d), expected Intn(7)", n)
		}
	}
}
