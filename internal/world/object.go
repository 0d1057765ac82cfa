package world

import (
	"github.com/silverkeep/realmd/internal/wire"
)

// AttackType classifies an object for combat-formula branching (spec §4.5).
type AttackType int

const (
	AttackOther AttackType = iota
	AttackPlayer
	AttackNpc
	AttackMonster
)

// Effect is a status effect id (e.g. poison, paralysis); the core tracks
// only presence, not per-effect parameters, which live in the persistence
// layer's skill/buff tables (out of scope for this module's core).
type Effect uint16

// Object is the capability set every entity on a map exposes. Every
// variant (Player, Npc, Monster, GroundItem) implements every method,
// trivially for the ones that do not apply — a tagged sum with a uniform
// method set, per spec §9's design note on trait-object polymorphism.
type Object interface {
	ID() ObjectID
	Location() Location
	SetLocation(Location)
	Name() string
	PlayerName() (string, bool)

	PutOnMapPacket() wire.ServerPacket
	MovePacket() wire.ServerPacket

	// Sender is the object's one-way outbound channel, populated only for
	// Players and Monsters. The Object never holds a reference back to its
	// owner's Session or AI task beyond this channel (spec §9: cyclic
	// references are decomposed into a one-way channel).
	Sender() (chan<- wire.ServerPacket, bool)

	Items() ([]*ItemInstance, bool)

	AttackType() AttackType
	BaseAttackRate() int
	StrHitBonus() int
	DexHitBonus() int
	HitRateBonus() int
	RangedHitRateBonus() int
	Weapon() (*ItemDefinition, bool)
	ArmorClass() int8
	MaxWeight() int32
	WeightPercentage() float64

	Effects() []Effect
	ApplyDamage(uint16)
	Dead() bool
}

// baseObject factors the fields and trivial method bodies shared by every
// variant so each concrete type only overrides what differs.
type baseObject struct {
	id      ObjectID
	loc     Location
	name    string
	dead    bool
	hp      int32
	maxHP   int32
	effects []Effect
}

func (o *baseObject) ID() ObjectID            { return o.id }
func (o *baseObject) Location() Location      { return o.loc }
func (o *baseObject) SetLocation(l Location)  { o.loc = l }
func (o *baseObject) Name() string            { return o.name }
func (o *baseObject) Effects() []Effect       { return o.effects }
func (o *baseObject) Dead() bool              { return o.dead }

func (o *baseObject) ApplyDamage(dmg uint16) {
	o.hp -= int32(dmg)
	if o.hp <= 0 {
		o.hp = 0
		o.dead = true
	}
}

// PlayerName default: only Players return Some. GroundItem/Npc/Monster
// trivially return "", false.
func (o *baseObject) PlayerName() (string, bool) { return "", false }

// Items default: only Players carry an inventory in the capability sense.
func (o *baseObject) Items() ([]*ItemInstance, bool) { return nil, false }

// Sender default: Npc and GroundItem have none.
func (o *baseObject) Sender() (chan<- wire.ServerPacket, bool) { return nil, false }

// Weapon default: unarmed.
func (o *baseObject) Weapon() (*ItemDefinition, bool) { return nil, false }
