package zaptastic

import "github.com/vovakirdan/tui-shooter/internal/core"

// EffectKind identifies a visual effect.
type EffectKind uint8

const (
	EffectExplosion EffectKind = iota + 1
)

// EffectSink receives fire-and-forget visual effect requests.
type EffectSink interface {
	SpawnEffect(kind EffectKind, pos core.Vec2)
}

// Effect is one effect instance tracked by an EffectLog.
type Effect struct {
	Kind EffectKind
	Pos  core.Vec2
	Age  int // frames since spawn
}

// EffectLog is an EffectSink that keeps effects alive for a number of
// frames so a renderer can draw them.
type EffectLog struct {
	lifetime int
	active   []Effect
	total    int
}

// NewEffectLog creates a log whose effects last lifetime frames.
func NewEffectLog(lifetime int) *EffectLog {
	if lifetime < 1 {
		lifetime = 1
	}
	return &EffectLog{lifetime: lifetime}
}

// SpawnEffect records a new effect.
func (l *EffectLog) SpawnEffect(kind EffectKind, pos core.Vec2) {
	l.active = append(l.active, Effect{Kind: kind, Pos: pos})
	l.total++
}

// Tick ages every effect and drops expired ones.
func (l *EffectLog) Tick() {
	kept := l.active[:0]
	for _, e := range l.active {
		e.Age++
		if e.Age < l.lifetime {
			kept = append(kept, e)
		}
	}
	l.active = kept
}

// Active returns the effects currently alive.
func (l *EffectLog) Active() []Effect {
	return l.active
}

// Total returns how many effects were ever spawned.
func (l *EffectLog) Total() int {
	return l.total
}

// Progress returns how far through its lifetime e is, in [0, 1).
func (l *EffectLog) Progress(e Effect) float64 {
	return float64(e.Age) / float64(l.lifetime)
}
