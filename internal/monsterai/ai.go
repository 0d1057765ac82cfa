// Package monsterai runs one task per monster (spec §4.7): drain
// WorldResponses, acquire a target within aggro range, and alternate
// between wandering and attacking. Grounded on the teacher's
// internal/system/npc_ai.go loop shape, adapted from the teacher's
// tick-driven Update() to the spec's independent per-monster task model.
package monsterai

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/silverkeep/realmd/internal/world"
)

// Task drives one Monster's behavior loop for its lifetime.
type Task struct {
	monster *world.Monster
	router  *world.Router
	log     *zap.Logger

	wanderInterval time.Duration
	aggroRange     float64
}

func NewTask(monster *world.Monster, router *world.Router, log *zap.Logger, wanderInterval time.Duration, aggroRange float64) *Task {
	return &Task{
		monster:        monster,
		router:         router,
		log:            log.With(zap.Uint32("monster_id", uint32(monster.ID()))),
		wanderInterval: wanderInterval,
		aggroRange:     aggroRange,
	}
}

// Run registers the monster with the router and then loops until ctx is
// cancelled or the monster dies.
func (t *Task) Run(ctx context.Context) {
	resp := t.router.Request(world.RegisterMonster{Monster: t.monster})
	if assigned, ok := resp.(world.AssignedID); ok {
		t.log.Debug("monster registered", zap.Uint32("id", uint32(assigned.ID)))
	}
	defer t.router.Send(world.UnregisterMonster{ID: t.monster.ID()})

	outbound := t.monster.SendChannel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-outbound:
			// Drain PutObject/MoveObject/RemoveObject notifications the
			// router queued for this monster's known-set updates; a real
			// monster has no client to forward them to, but draining keeps
			// the channel from filling and looking dead to the router.
		case <-time.After(t.stepInterval()):
			if t.monster.Dead() {
				return
			}
			t.step()
		}
	}
}

func (t *Task) stepInterval() time.Duration {
	if target, ok := t.acquireTarget(); ok {
		_ = target
		return time.Duration(1000+rand.Intn(1000)) * time.Millisecond
	}
	return time.Duration(500+rand.Intn(500)) * time.Millisecond
}

// acquireTarget scans the monster's known set for the nearest hostile
// Player within aggro range.
func (t *Task) acquireTarget() (world.Object, bool) {
	var nearest world.Object
	best := t.aggroRange
	for _, obj := range t.monster.KnownSet {
		if obj.AttackType() != world.AttackPlayer {
			continue
		}
		d := world.EuclideanDistance(t.monster.Location(), obj.Location())
		if d < best {
			best = d
			nearest = obj
		}
	}
	return nearest, nearest != nil
}

func (t *Task) step() {
	if target, ok := t.acquireTarget(); ok {
		t.attack(target)
		return
	}
	t.wander()
}

func (t *Task) attack(target world.Object) {
	result := t.router.ResolveAttack(t.monster, target)
	if result.Hit {
		target.ApplyDamage(result.Damage)
	}
}

func (t *Task) wander() {
	heading := uint8(rand.Intn(8))
	next := t.monster.Location().Step(heading)
	t.router.Send(world.MoveRequest{ID: t.monster.ID(), To: next})
}
