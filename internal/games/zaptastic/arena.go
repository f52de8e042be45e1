package zaptastic

import (
	"math"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// ActorKind tags the variant an actor slot holds.
type ActorKind uint8

const (
	KindPlayer ActorKind = iota + 1
	KindPlayerWeapon
	KindEnemy
	KindEnemyWeapon
)

// String returns the actor name used as the contact sort key.
func (k ActorKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPlayerWeapon:
		return "playerWeapon"
	case KindEnemy:
		return "enemy"
	case KindEnemyWeapon:
		return "enemyWeapon"
	default:
		return "unknown"
	}
}

// IsProjectile reports whether the kind is a weapon.
func (k ActorKind) IsProjectile() bool {
	return k == KindPlayerWeapon || k == KindEnemyWeapon
}

// Handle is a generational reference to an actor slot.
// The zero Handle never refers to a live actor.
type Handle struct {
	Index   uint32
	Version uint32
}

// Less orders handles by slot index, then version.
func (h Handle) Less(o Handle) bool {
	if h.Index != o.Index {
		return h.Index < o.Index
	}
	return h.Version < o.Version
}

// Actor is one live entity in the arena.
type Actor struct {
	Kind     ActorKind
	Pos      core.Vec2
	Size     core.Vec2
	Rotation float64 // radians; the sprite's up axis points along Rotation + pi/2
	Enemy    *Enemy  // set only for KindEnemy
}

// Name returns the contact sort key of the actor.
func (a *Actor) Name() string {
	return a.Kind.String()
}

// Bounds returns the actor's bounding box.
func (a *Actor) Bounds() core.Box {
	return core.BoxAt(a.Pos, a.Size)
}

// Heading returns the travel direction implied by Rotation.
func (a *Actor) Heading() float64 {
	return a.Rotation + math.Pi/2
}

type slot struct {
	version uint32
	alive   bool
	actor   Actor
}

// Arena owns every actor. Removed slots are recycled with a bumped version,
// so handles to removed actors resolve to nothing instead of to a newcomer.
type Arena struct {
	slots []slot
	free  []uint32
	live  int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Spawn stores the actor and returns its handle.
func (a *Arena) Spawn(actor Actor) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots)) //#nosec G115 -- arena size stays far below 2^32
		a.slots = append(a.slots, slot{})
	}

	s := &a.slots[idx]
	s.version++
	s.alive = true
	s.actor = actor
	a.live++
	return Handle{Index: idx, Version: s.version}
}

// Get returns the live actor for h, or false if h is stale.
func (a *Arena) Get(h Handle) (*Actor, bool) {
	if int(h.Index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.Index]
	if !s.alive || s.version != h.Version {
		return nil, false
	}
	return &s.actor, true
}

// Alive reports whether h refers to a live actor.
func (a *Arena) Alive(h Handle) bool {
	_, ok := a.Get(h)
	return ok
}

// Remove frees the slot for h. Removing a stale handle is a no-op and
// returns false.
func (a *Arena) Remove(h Handle) bool {
	if !a.Alive(h) {
		return false
	}
	s := &a.slots[h.Index]
	s.alive = false
	s.actor = Actor{}
	a.free = append(a.free, h.Index)
	a.live--
	return true
}

// Len returns the number of live actors.
func (a *Arena) Len() int {
	return a.live
}

// Count returns the number of live actors of the given kind.
func (a *Arena) Count(kind ActorKind) int {
	n := 0
	for i := range a.slots {
		if a.slots[i].alive && a.slots[i].actor.Kind == kind {
			n++
		}
	}
	return n
}

// Handles returns live handles in slot order, optionally filtered by kind.
// Pass 0 for every kind.
func (a *Arena) Handles(kind ActorKind) []Handle {
	out := make([]Handle, 0, a.live)
	for i := range a.slots {
		s := &a.slots[i]
		if !s.alive || (kind != 0 && s.actor.Kind != kind) {
			continue
		}
		out = append(out, Handle{Index: uint32(i), Version: s.version}) //#nosec G115 -- bounded by slot count
	}
	return out
}
