package zaptastic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/catalog"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

func newDefaultSim(t *testing.T, seed int64, mutate func(*config.ShooterConfig)) *Simulation {
	t.Helper()
	cfg := config.DefaultShooterConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	cats, err := catalog.Default(len(cfg.Lanes))
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	s, err := NewSimulation(cfg, cats, Options{Seed: seed})
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}
	return s
}

func TestNewSimulationRejectsBadCatalogs(t *testing.T) {
	cfg := config.DefaultShooterConfig()

	_, err := NewSimulation(cfg, catalog.Catalogs{}, Options{})
	if !catalog.IsValidationError(err, catalog.CodeEmptyCatalog) {
		t.Errorf("NewSimulation() with no catalogs error = %v, expected %s", err, catalog.CodeEmptyCatalog)
	}

	cats, err := catalog.Default(len(cfg.Lanes))
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	cfg.Lanes = cfg.Lanes[:3]
	_, err = NewSimulation(cfg, cats, Options{})
	if !catalog.IsValidationError(err, catalog.CodeLaneOutOfRange) {
		t.Errorf("NewSimulation() with short lane table error = %v, expected %s", err, catalog.CodeLaneOutOfRange)
	}

	bad := config.DefaultShooterConfig()
	bad.Player.Shields = 0
	if _, err := NewSimulation(bad, cats, Options{}); err == nil {
		t.Error("NewSimulation() accepted zero player shields")
	}
}

func TestSimulationInitialState(t *testing.T) {
	s := newDefaultSim(t, 1, nil)
	cfg := s.Config()

	p := s.Player()
	if !p.Alive || p.Shields != cfg.Player.Shields {
		t.Errorf("Player() = %+v, expected alive with %d shields", p, cfg.Player.Shields)
	}
	if pos := s.PlayerPosition(); pos != core.V(cfg.Playfield.MinX+cfg.Player.Inset, 0) {
		t.Errorf("PlayerPosition() = %v", pos)
	}
	if s.ActiveEnemies() != 0 {
		t.Errorf("ActiveEnemies() = %d before the first step, expected 0", s.ActiveEnemies())
	}
}

func TestSimulationSpawnsFirstWave(t *testing.T) {
	s := newDefaultSim(t, 1, nil)

	res := s.Step(Input{})
	if res.EnemiesSpawned != 3 {
		t.Errorf("EnemiesSpawned = %d, expected the opener's 3", res.EnemiesSpawned)
	}
	if s.Progression() != (Progression{Level: 0, WaveIndex: 1}) {
		t.Errorf("Progression() = %+v, expected level 0, index 1", s.Progression())
	}

	res = s.Step(Input{})
	if res.EnemiesSpawned != 0 {
		t.Errorf("second step spawned %d enemies", res.EnemiesSpawned)
	}
	if s.ActiveEnemies() != 3 {
		t.Errorf("ActiveEnemies() = %d, expected 3", s.ActiveEnemies())
	}
}

func TestSimulationClampsPlayer(t *testing.T) {
	s := newDefaultSim(t, 1, nil)
	pf := s.Config().Playfield

	s.Step(Input{VerticalDisplacement: 10000})
	if y := s.PlayerPosition().Y; y != pf.MaxY {
		t.Errorf("player y = %v, expected %v", y, pf.MaxY)
	}
	s.Step(Input{VerticalDisplacement: -50000})
	if y := s.PlayerPosition().Y; y != pf.MinY {
		t.Errorf("player y = %v, expected %v", y, pf.MinY)
	}
}

func TestSimulationPlayerFireCooldown(t *testing.T) {
	s := newDefaultSim(t, 1, nil)

	s.Step(Input{Fire: true})
	s.Step(Input{Fire: true})
	if got := s.Stats().ShotsFired; got != 1 {
		t.Errorf("ShotsFired = %d, expected 1 inside the cooldown", got)
	}
}

func TestSimulationCullsBeforeSpawning(t *testing.T) {
	s := newDefaultSim(t, 1, nil)
	cfg := s.Config()
	cats, _ := catalog.Default(len(cfg.Lanes))

	far := core.V(cfg.Playfield.MinX-300, 0)
	s.scene.spawn(Actor{
		Kind:  KindEnemy,
		Pos:   far,
		Size:  core.V(cfg.Enemies.Width, cfg.Enemies.Height),
		Enemy: NewEnemy(SpawnRequest{Archetype: cats.EnemyTypes.At(0), Position: far, MoveStraight: true}, cfg.Enemies),
	})
	s.scene.spawn(Actor{Kind: KindEnemyWeapon, Pos: core.V(0, cfg.Playfield.MaxY+100), Size: core.V(24, 8)})
	s.scene.spawn(Actor{Kind: KindPlayerWeapon, Pos: core.V(cfg.Playfield.MaxX+100, 0), Size: core.V(32, 8)})

	res := s.Step(Input{})
	if got := s.Stats().Escaped; got != 1 {
		t.Errorf("Escaped = %d, expected 1", got)
	}
	if res.EnemiesSpawned != 3 {
		t.Errorf("EnemiesSpawned = %d, expected a wave in the same frame", res.EnemiesSpawned)
	}
	if n := s.scene.arena.Count(KindEnemyWeapon) + s.scene.arena.Count(KindPlayerWeapon); n != 0 {
		t.Errorf("%d projectiles outside the playfield survived", n)
	}
	if s.ActiveEnemies() != 3 {
		t.Errorf("ActiveEnemies() = %d, expected the 3 entering from the right", s.ActiveEnemies())
	}
}

func TestSimulationPlayerScoresKill(t *testing.T) {
	cfg := config.DefaultShooterConfig()
	cfg.Enemies.StartX = 0
	types, err := catalog.NewEnemyTypeCatalog([]catalog.EnemyType{{Name: "drone", Shields: 1, Speed: 1}})
	if err != nil {
		t.Fatal(err)
	}
	waves, err := catalog.NewWaveCatalog([]catalog.Wave{
		{Name: "single", Enemies: []catalog.WaveEnemySpec{{Position: 4, MoveStraight: true}}},
	}, len(cfg.Lanes))
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSimulation(cfg, catalog.Catalogs{EnemyTypes: types, Waves: waves}, Options{Seed: 3})
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}

	for i := 0; i < 120 && s.Stats().Kills == 0; i++ {
		s.Step(Input{Fire: i%2 == 0})
	}
	if s.Stats().Kills == 0 {
		t.Fatal("no kill within 120 frames")
	}
	if s.Score() != cfg.Scoring.PointsPerShield {
		t.Errorf("Score() = %d, expected %d", s.Score(), cfg.Scoring.PointsPerShield)
	}
}

func TestSimulationDeterminism(t *testing.T) {
	run := func() []uint64 {
		s := newDefaultSim(t, 99, nil)
		ap := NewAutopilot(s.Config().Player.TiltStep)
		var hashes []uint64
		for i := 0; i < 2000; i++ {
			s.Step(ap.Next(s))
			snap := s.Snapshot()
			hashes = append(hashes, snap.Hash())
		}
		return hashes
	}

	h1, h2 := run(), run()
	for i := range h1 {
		if h1[i] != h2[i] {
			t.Fatalf("Determinism failed at frame %d: %d vs %d", i+1, h1[i], h2[i])
		}
	}
}

func TestSimulationShieldsMonotone(t *testing.T) {
	s := newDefaultSim(t, 5, nil)
	ap := NewAutopilot(s.Config().Player.TiltStep)

	prev := s.Player().Shields
	for i := 0; i < 3000; i++ {
		s.Step(ap.Next(s))
		cur := s.Player().Shields
		if cur > prev {
			t.Fatalf("frame %d: shields rose from %d to %d", i+1, prev, cur)
		}
		if cur < 0 {
			t.Fatalf("frame %d: shields negative: %d", i+1, cur)
		}
		prev = cur
	}
}

func TestSimulationInertAfterDeath(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultShooterConfig()
	cfg.Player.Shields = 1
	cats, err := catalog.Default(len(cfg.Lanes))
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSimulation(cfg, cats, Options{
		Seed:   1,
		Logger: log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}),
	})
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}

	gameOvers := 0
	for i := 0; i < 1200 && s.Player().Alive; i++ {
		if s.Step(Input{}).GameOver {
			gameOvers++
		}
	}
	if s.Player().Alive {
		t.Fatal("player survived an enemy flying through its lane")
	}
	if gameOvers != 1 {
		t.Errorf("GameOver reported %d times, expected 1", gameOvers)
	}

	progression := s.Progression()
	score := s.Score()
	for i := 0; i < 600; i++ {
		res := s.Step(Input{VerticalDisplacement: 50, Fire: true})
		if res.EnemiesSpawned != 0 || res.EnemyShots != 0 || res.GameOver {
			t.Fatalf("frame after death not inert: %+v", res)
		}
	}
	if s.Progression() != progression {
		t.Errorf("Progression() moved after death: %+v -> %+v", progression, s.Progression())
	}
	if s.Score() != score || s.Player().Shields != 0 {
		t.Errorf("score %d -> %d, shields %d", score, s.Score(), s.Player().Shields)
	}

	logs := buf.String()
	for _, want := range []string{"wave spawned", "game over"} {
		if !strings.Contains(logs, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}
