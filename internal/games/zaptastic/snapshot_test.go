package zaptastic

import (
	"bytes"
	"testing"
)

func TestSnapshotEncodeDecode(t *testing.T) {
	s := newDefaultSim(t, 11, nil)
	ap := NewAutopilot(s.Config().Player.TiltStep)
	for i := 0; i < 400; i++ {
		s.Step(ap.Next(s))
	}

	snap := s.Snapshot()
	if len(snap.Actors) == 0 {
		t.Fatal("Snapshot() has no actors")
	}

	data, err := EncodeSnapshot(snap)
	if err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}
	decoded, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}

	if decoded.Hash() != snap.Hash() {
		t.Errorf("decoded Hash() = %d, expected %d", decoded.Hash(), snap.Hash())
	}
	if decoded.Stats != snap.Stats {
		t.Errorf("decoded Stats = %+v, expected %+v", decoded.Stats, snap.Stats)
	}
	if len(decoded.Actors) != len(snap.Actors) {
		t.Errorf("decoded %d actors, expected %d", len(decoded.Actors), len(snap.Actors))
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte{0xc1}); err == nil {
		t.Error("DecodeSnapshot() accepted an invalid msgpack code")
	}
}

func TestSnapshotHashChangesWithState(t *testing.T) {
	s := newDefaultSim(t, 11, nil)
	before := s.Snapshot()
	s.Step(Input{VerticalDisplacement: 50})
	after := s.Snapshot()
	if before.Hash() == after.Hash() {
		t.Error("Hash() unchanged after a step")
	}
}

func TestTraceRoundTrip(t *testing.T) {
	s := newDefaultSim(t, 4, nil)
	var buf bytes.Buffer
	tw := NewTraceWriter(&buf)

	inputs := []Input{
		{VerticalDisplacement: 50},
		{Fire: true},
		{VerticalDisplacement: -50},
	}
	var hashes []uint64
	for _, in := range inputs {
		s.Step(in)
		snap := s.Snapshot()
		hashes = append(hashes, snap.Hash())
		if err := tw.Write(in, snap); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if tw.Frames() != len(inputs) {
		t.Errorf("Frames() = %d, expected %d", tw.Frames(), len(inputs))
	}

	frames, err := ReadTrace(&buf)
	if err != nil {
		t.Fatalf("ReadTrace() error = %v", err)
	}
	if len(frames) != len(inputs) {
		t.Fatalf("ReadTrace() returned %d frames, expected %d", len(frames), len(inputs))
	}
	for i, f := range frames {
		if f.VerticalDisplacement != inputs[i].VerticalDisplacement || f.Fire != inputs[i].Fire {
			t.Errorf("frame %d input = (%v, %v), expected %+v", i, f.VerticalDisplacement, f.Fire, inputs[i])
		}
		if f.State.Hash() != hashes[i] {
			t.Errorf("frame %d Hash() = %d, expected %d", i, f.State.Hash(), hashes[i])
		}
	}
}
