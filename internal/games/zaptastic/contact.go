package zaptastic

import "github.com/vovakirdan/tui-shooter/internal/core"

// scene keeps the arena and the physics bodies in step.
type scene struct {
	arena   *Arena
	physics Physics
}

func (s *scene) spawn(actor Actor) Handle {
	h := s.arena.Spawn(actor)
	s.physics.CreateBody(h, actor.Kind, actor.Size, actor.Pos)
	return h
}

// despawn removes the actor and its body. Stale handles are ignored.
func (s *scene) despawn(h Handle) bool {
	if !s.arena.Remove(h) {
		return false
	}
	s.physics.RemoveBody(h)
	return true
}

// PlayerState is the player's mutable status. Death is terminal.
type PlayerState struct {
	Handle  Handle
	Shields int
	Alive   bool
}

// ContactKind classifies a resolved contact.
type ContactKind uint8

const (
	ContactIgnored   ContactKind = iota // stale handle or dead player
	ContactPlayerHit                    // something struck the player
	ContactEnemyHit                     // something struck an enemy
	ContactOther                        // neither, e.g. two projectiles
)

// String returns a short label for logs.
func (k ContactKind) String() string {
	switch k {
	case ContactPlayerHit:
		return "player-hit"
	case ContactEnemyHit:
		return "enemy-hit"
	case ContactOther:
		return "other"
	default:
		return "ignored"
	}
}

// Resolution reports what a contact did.
type Resolution struct {
	Kind     ContactKind
	Killed   bool // an enemy was destroyed
	GameOver bool // the player died on this contact
	Points   int  // score awarded
}

// ContactResolver turns contacts into damage, effects and removals.
type ContactResolver struct {
	scene           *scene
	effects         EffectSink
	player          *PlayerState
	pointsPerShield int
}

// Resolve applies one contact. Handles may arrive in either order and may
// already be stale; stale contacts do nothing.
func (r *ContactResolver) Resolve(a, b Handle) Resolution {
	actorA, okA := r.scene.arena.Get(a)
	actorB, okB := r.scene.arena.Get(b)
	if !okA || !okB || a == b {
		return Resolution{Kind: ContactIgnored}
	}

	first, second := a, b
	firstActor, secondActor := actorA, actorB
	if contactOrderSwapped(actorA, a, actorB, b) {
		first, second = b, a
		firstActor, secondActor = actorB, actorA
	}

	switch {
	case secondActor.Kind == KindPlayer:
		return r.playerHit(first, firstActor.Pos)
	case firstActor.Kind == KindEnemy:
		return r.enemyHit(first, firstActor, second, secondActor.Pos)
	default:
		r.effects.SpawnEffect(EffectExplosion, secondActor.Pos)
		r.scene.despawn(first)
		r.scene.despawn(second)
		return Resolution{Kind: ContactOther}
	}
}

// contactOrderSwapped reports whether b sorts before a. Names decide;
// equal names fall back to handle order.
func contactOrderSwapped(actorA *Actor, a Handle, actorB *Actor, b Handle) bool {
	na, nb := actorA.Name(), actorB.Name()
	if na != nb {
		return nb < na
	}
	return b.Less(a)
}

func (r *ContactResolver) playerHit(striker Handle, strikerPos core.Vec2) Resolution {
	if !r.player.Alive {
		return Resolution{Kind: ContactIgnored}
	}

	res := Resolution{Kind: ContactPlayerHit}
	r.effects.SpawnEffect(EffectExplosion, strikerPos)
	if r.player.Shields > 0 {
		r.player.Shields--
	}
	if r.player.Shields == 0 {
		r.gameOver()
		res.GameOver = true
	}
	r.scene.despawn(striker)
	return res
}

func (r *ContactResolver) gameOver() {
	r.player.Alive = false
	if p, ok := r.scene.arena.Get(r.player.Handle); ok {
		r.effects.SpawnEffect(EffectExplosion, p.Pos)
	}
	r.scene.despawn(r.player.Handle)
}

func (r *ContactResolver) enemyHit(enemy Handle, enemyActor *Actor, striker Handle, strikerPos core.Vec2) Resolution {
	res := Resolution{Kind: ContactEnemyHit}
	if e := enemyActor.Enemy; e != nil && e.Hit() {
		r.effects.SpawnEffect(EffectExplosion, enemyActor.Pos)
		res.Killed = true
		res.Points = e.Archetype.Shields * r.pointsPerShield
		r.scene.despawn(enemy)
	}
	r.effects.SpawnEffect(EffectExplosion, strikerPos)
	r.scene.despawn(striker)
	return res
}
