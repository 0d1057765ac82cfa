package world

import "github.com/silverkeep/realmd/internal/wire"

// NpcDefinition is a loaded-once template for a passive (non-hostile, non-
// wandering) non-player, e.g. a shopkeeper or quest giver.
type NpcDefinition struct {
	DefID   uint32
	Name    string
	Icon    uint16
	Level   uint8
	MaxHP   int32
}

// Npc is a passive entity: no outbound channel (it never initiates a
// message to a client; dialogue is driven by the client's own request/
// response opcodes against the persistence/content layer), no inventory,
// no combat stance beyond the capability set's zero values.
type Npc struct {
	baseObject
	DefID uint32
	Icon  uint16
}

func NewNpc(id ObjectID, loc Location, def *NpcDefinition) *Npc {
	return &Npc{
		baseObject: baseObject{id: id, loc: loc, name: def.Name, hp: def.MaxHP, maxHP: def.MaxHP},
		DefID:      def.DefID,
		Icon:       def.Icon,
	}
}

func (n *Npc) AttackType() AttackType { return AttackNpc }
func (n *Npc) BaseAttackRate() int    { return 0 }
func (n *Npc) StrHitBonus() int       { return 0 }
func (n *Npc) DexHitBonus() int       { return 0 }
func (n *Npc) HitRateBonus() int      { return 0 }
func (n *Npc) RangedHitRateBonus() int { return 0 }
func (n *Npc) ArmorClass() int8       { return 0 }
func (n *Npc) MaxWeight() int32       { return 0 }
func (n *Npc) WeightPercentage() float64 { return 0 }

func (n *Npc) PutOnMapPacket() wire.ServerPacket {
	return wire.PutObject{
		X:         n.loc.X,
		Y:         n.loc.Y,
		ID:        uint32(n.id),
		Icon:      n.Icon,
		Direction: n.loc.Direction,
		Name:      n.name,
		HPBar:     hpBarPercent(n.hp, n.maxHP),
	}
}

func (n *Npc) MovePacket() wire.ServerPacket {
	return wire.MoveObject{
		ID:        uint32(n.id),
		X:         n.loc.X,
		Y:         n.loc.Y,
		Direction: n.loc.Direction,
	}
}
