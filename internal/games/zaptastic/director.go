package zaptastic

import (
	"github.com/vovakirdan/tui-shooter/internal/catalog"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Progression tracks where the session is in the wave cycle.
// It only resets when a new session starts.
type Progression struct {
	Level     int // completed passes over the wave catalog
	WaveIndex int // next wave to read; equals the catalog size right after the last wave
}

// SpawnRequest describes one enemy the director wants instantiated.
type SpawnRequest struct {
	Archetype      catalog.EnemyType
	ArchetypeIndex int
	Lane           int
	Position       core.Vec2 // spawn point in world space
	MoveStraight   bool
}

// WaveDirector decides when a wave spawns, which wave it is, how hard it is
// and where each enemy enters.
type WaveDirector struct {
	types      *catalog.EnemyTypeCatalog
	waves      *catalog.WaveCatalog
	lanes      []float64
	startX     float64
	baseOffset float64
	rng        RandomSource
}

// NewWaveDirector creates a director over validated catalogs.
func NewWaveDirector(cats catalog.Catalogs, lanes []float64, startX, baseOffset float64, rng RandomSource) *WaveDirector {
	return &WaveDirector{
		types:      cats.EnemyTypes,
		waves:      cats.Waves,
		lanes:      append([]float64(nil), lanes...),
		startX:     startX,
		baseOffset: baseOffset,
		rng:        rng,
	}
}

// PoolSize returns how many archetypes, counted from the start of the
// catalog, are eligible at the given level.
func (d *WaveDirector) PoolSize(level int) int {
	return min(d.types.Len(), level+1)
}

// MaybeSpawnNextWave returns the next wave's spawn requests, or nil when
// enemies are still active or the player is dead. It advances p.
func (d *WaveDirector) MaybeSpawnNextWave(activeEnemies int, playerAlive bool, p *Progression) []SpawnRequest {
	if activeEnemies != 0 || !playerAlive {
		return nil
	}

	if p.WaveIndex >= d.waves.Len() {
		p.Level++
		p.WaveIndex = 0
	}
	wave := d.waves.At(p.WaveIndex)
	p.WaveIndex++

	// One archetype per wave
	archetypeIndex := d.rng.Intn(d.PoolSize(p.Level))
	archetype := d.types.At(archetypeIndex)

	if wave.Procedural() {
		return d.proceduralWave(archetype, archetypeIndex)
	}

	requests := make([]SpawnRequest, 0, len(wave.Enemies))
	for _, spec := range wave.Enemies {
		requests = append(requests, SpawnRequest{
			Archetype:      archetype,
			ArchetypeIndex: archetypeIndex,
			Lane:           spec.Position,
			Position:       core.V(d.startX+d.baseOffset*spec.XOffset, d.lanes[spec.Position]),
			MoveStraight:   spec.MoveStraight,
		})
	}
	return requests
}

// proceduralWave puts one straight-flying enemy in every lane, lanes taken
// in shuffled order and staggered further right each time.
func (d *WaveDirector) proceduralWave(archetype catalog.EnemyType, archetypeIndex int) []SpawnRequest {
	order := make([]int, len(d.lanes))
	for i := range order {
		order[i] = i
	}
	d.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	requests := make([]SpawnRequest, 0, len(order))
	for i, lane := range order {
		xOffset := d.baseOffset * float64(i*3)
		requests = append(requests, SpawnRequest{
			Archetype:      archetype,
			ArchetypeIndex: archetypeIndex,
			Lane:           lane,
			Position:       core.V(d.startX+xOffset, d.lanes[lane]),
			MoveStraight:   true,
		})
	}
	return requests
}
