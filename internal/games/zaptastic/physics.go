package zaptastic

import (
	"sort"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Physics is the body-simulation collaborator. Bodies are keyed by arena
// handles. Bodies have unit mass, so an impulse is a velocity change.
type Physics interface {
	CreateBody(h Handle, kind ActorKind, size, pos core.Vec2)
	SetPosition(h Handle, pos core.Vec2)
	ApplyImpulse(h Handle, impulse core.Vec2)
	RemoveBody(h Handle)
	Integrate(dt float64)
	Position(h Handle) (core.Vec2, bool)
}

// Contact is an unordered pair of touching bodies.
type Contact struct {
	A, B Handle
}

// ContactSource reports contacts that began since the previous call.
// Each overlap is reported once, when it starts.
type ContactSource interface {
	Contacts() []Contact
}

// Collision categories.
const (
	categoryPlayer       uint8 = 1
	categoryPlayerWeapon uint8 = 2
	categoryEnemy        uint8 = 4
	categoryEnemyWeapon  uint8 = 8
)

func category(k ActorKind) uint8 {
	switch k {
	case KindPlayer:
		return categoryPlayer
	case KindPlayerWeapon:
		return categoryPlayerWeapon
	case KindEnemy:
		return categoryEnemy
	case KindEnemyWeapon:
		return categoryEnemyWeapon
	}
	return 0
}

// contactMask lists the categories a kind wants to hear about.
func contactMask(k ActorKind) uint8 {
	switch k {
	case KindPlayer:
		return categoryEnemy | categoryEnemyWeapon
	case KindPlayerWeapon:
		return categoryEnemy
	case KindEnemy:
		return categoryPlayer | categoryPlayerWeapon
	case KindEnemyWeapon:
		return categoryPlayer
	}
	return 0
}

// canContact reports whether either side is interested in the other.
func canContact(a, b ActorKind) bool {
	return contactMask(a)&category(b) != 0 || contactMask(b)&category(a) != 0
}

type body struct {
	handle Handle
	kind   ActorKind
	pos    core.Vec2
	size   core.Vec2
	vel    core.Vec2
}

func (b *body) bounds() core.Box {
	return core.BoxAt(b.pos, b.size)
}

type pairKey struct {
	a, b Handle
}

func makePair(a, b Handle) pairKey {
	if b.Less(a) {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// World is a minimal AABB physics: bodies move at constant velocity and
// overlaps are found with a sort-and-sweep on the x axis.
type World struct {
	bodies   map[Handle]*body
	touching map[pairKey]bool
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		bodies:   make(map[Handle]*body),
		touching: make(map[pairKey]bool),
	}
}

// CreateBody adds a body at rest.
func (w *World) CreateBody(h Handle, kind ActorKind, size, pos core.Vec2) {
	w.bodies[h] = &body{handle: h, kind: kind, pos: pos, size: size}
}

// SetPosition teleports a body; used for kinematic actors.
func (w *World) SetPosition(h Handle, pos core.Vec2) {
	if b, ok := w.bodies[h]; ok {
		b.pos = pos
	}
}

// ApplyImpulse adds impulse to the body's velocity.
func (w *World) ApplyImpulse(h Handle, impulse core.Vec2) {
	if b, ok := w.bodies[h]; ok {
		b.vel = b.vel.Add(impulse)
	}
}

// RemoveBody drops a body and any contact state it was part of.
func (w *World) RemoveBody(h Handle) {
	if _, ok := w.bodies[h]; !ok {
		return
	}
	delete(w.bodies, h)
	for k := range w.touching {
		if k.a == h || k.b == h {
			delete(w.touching, k)
		}
	}
}

// Integrate advances every body by its velocity.
func (w *World) Integrate(dt float64) {
	for _, b := range w.bodies {
		b.pos = b.pos.Add(b.vel.Scale(dt))
	}
}

// Position returns a body's current position.
func (w *World) Position(h Handle) (core.Vec2, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return core.Vec2{}, false
	}
	return b.pos, true
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Contacts returns pairs that started overlapping since the last call,
// ordered by the handles involved.
func (w *World) Contacts() []Contact {
	sorted := make([]*body, 0, len(w.bodies))
	for _, b := range w.bodies {
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool {
		bi, bj := sorted[i].bounds(), sorted[j].bounds()
		if bi.Min.X != bj.Min.X {
			return bi.Min.X < bj.Min.X
		}
		return sorted[i].handle.Less(sorted[j].handle)
	})

	now := make(map[pairKey]bool)
	for i, a := range sorted {
		ab := a.bounds()
		for _, b := range sorted[i+1:] {
			bb := b.bounds()
			if bb.Min.X >= ab.Max.X {
				break
			}
			if !canContact(a.kind, b.kind) || !ab.Intersects(bb) {
				continue
			}
			now[makePair(a.handle, b.handle)] = true
		}
	}

	var began []Contact
	for k := range now {
		if !w.touching[k] {
			began = append(began, Contact{A: k.a, B: k.b})
		}
	}
	w.touching = now

	sort.Slice(began, func(i, j int) bool {
		if began[i].A != began[j].A {
			return began[i].A.Less(began[j].A)
		}
		return began[i].B.Less(began[j].B)
	})
	return began
}
