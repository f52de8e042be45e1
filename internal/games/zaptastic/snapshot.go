package zaptastic

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

// ActorState is the serialized form of one actor.
type ActorState struct {
	Kind     uint8   `msgpack:"k"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Rotation float64 `msgpack:"r"`
	Shields  int     `msgpack:"s,omitempty"` // enemies only
	Type     string  `msgpack:"t,omitempty"` // archetype name, enemies only
}

// Snapshot is the frame-boundary state of a session, for traces and
// determinism checks.
type Snapshot struct {
	Tick          uint64       `msgpack:"tick"`
	Now           float64      `msgpack:"now"`
	Score         int          `msgpack:"score"`
	Level         int          `msgpack:"level"`
	WaveIndex     int          `msgpack:"wave"`
	PlayerShields int          `msgpack:"shields"`
	PlayerAlive   bool         `msgpack:"alive"`
	PlayerY       float64      `msgpack:"py"`
	Actors        []ActorState `msgpack:"actors"`
	Stats         Stats        `msgpack:"stats"`
}

// Snapshot captures the current state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:          s.tick,
		Now:           s.now,
		Score:         s.score,
		Level:         s.progression.Level,
		WaveIndex:     s.progression.WaveIndex,
		PlayerShields: s.player.Shields,
		PlayerAlive:   s.player.Alive,
		PlayerY:       s.PlayerPosition().Y,
		Stats:         s.stats,
	}
	s.Each(func(_ Handle, a *Actor) {
		st := ActorState{Kind: uint8(a.Kind), X: a.Pos.X, Y: a.Pos.Y, Rotation: a.Rotation}
		if a.Enemy != nil {
			st.Shields = a.Enemy.Shields
			st.Type = a.Enemy.Archetype.Name
		}
		snap.Actors = append(snap.Actors, st)
	})
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Positions are rounded to whole units.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.WaveIndex)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerShields) //#nosec G115 -- hash computation
	if snap.PlayerAlive {
		h = h*31 + 1
	}
	h = h*31 + uint64(int64(math.Round(snap.PlayerY))) //#nosec G115 -- hash computation
	for _, a := range snap.Actors {
		h = h*31 + uint64(a.Kind)
		h = h*31 + uint64(int64(math.Round(a.X))) //#nosec G115 -- hash computation
		h = h*31 + uint64(int64(math.Round(a.Y))) //#nosec G115 -- hash computation
		h = h*31 + uint64(a.Shields)              //#nosec G115 -- hash computation
	}
	return h
}

// EncodeSnapshot serializes a snapshot with msgpack.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	b, err := msgpack.Marshal(&snap)
	if err != nil {
		return nil, fmt.Errorf("zaptastic: encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses a snapshot produced by EncodeSnapshot.
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("zaptastic: decode snapshot: %w", err)
	}
	return snap, nil
}

// TraceFrame is one recorded frame: the input applied and the state after it.
type TraceFrame struct {
	VerticalDisplacement float64  `msgpack:"dy"`
	Fire                 bool     `msgpack:"fire"`
	State                Snapshot `msgpack:"state"`
}

// TraceWriter streams frames as consecutive msgpack values.
type TraceWriter struct {
	enc    *msgpack.Encoder
	frames int
}

// NewTraceWriter writes frames to w.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{enc: msgpack.NewEncoder(w)}
}

// Write appends one frame.
func (tw *TraceWriter) Write(in Input, snap Snapshot) error {
	frame := TraceFrame{VerticalDisplacement: in.VerticalDisplacement, Fire: in.Fire, State: snap}
	if err := tw.enc.Encode(&frame); err != nil {
		return fmt.Errorf("zaptastic: write trace frame %d: %w", tw.frames, err)
	}
	tw.frames++
	return nil
}

// Frames returns how many frames were written.
func (tw *TraceWriter) Frames() int {
	return tw.frames
}

// ReadTrace reads every frame written by a TraceWriter.
func ReadTrace(r io.Reader) ([]TraceFrame, error) {
	dec := msgpack.NewDecoder(r)
	var frames []TraceFrame
	for {
		var f TraceFrame
		err := dec.Decode(&f)
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return nil, fmt.Errorf("zaptastic: read trace frame %d: %w", len(frames), err)
		}
		frames = append(frames, f)
	}
}
