package world

import "github.com/silverkeep/realmd/internal/wire"

// GroundItem is an item lying on the map: created on drop or monster death,
// destroyed on pickup or TTL expiry (spec §3). It carries no combat
// capability and no sender; it exists purely to be seen and picked up.
type GroundItem struct {
	baseObject
	Item *ItemInstance
	Icon uint16
}

func NewGroundItem(id ObjectID, loc Location, item *ItemInstance, icon uint16) *GroundItem {
	return &GroundItem{
		baseObject: baseObject{id: id, loc: loc, name: ""},
		Item:       item,
		Icon:       icon,
	}
}

func (g *GroundItem) AttackType() AttackType   { return AttackOther }
func (g *GroundItem) BaseAttackRate() int      { return 0 }
func (g *GroundItem) StrHitBonus() int         { return 0 }
func (g *GroundItem) DexHitBonus() int         { return 0 }
func (g *GroundItem) HitRateBonus() int        { return 0 }
func (g *GroundItem) RangedHitRateBonus() int  { return 0 }
func (g *GroundItem) ArmorClass() int8         { return 0 }
func (g *GroundItem) MaxWeight() int32         { return 0 }
func (g *GroundItem) WeightPercentage() float64 { return 0 }

func (g *GroundItem) PutOnMapPacket() wire.ServerPacket {
	return wire.PutObject{
		X:    g.loc.X,
		Y:    g.loc.Y,
		ID:   uint32(g.id),
		Icon: g.Icon,
	}
}

func (g *GroundItem) MovePacket() wire.ServerPacket {
	// Ground items never move; the router never calls this, but the
	// capability set requires an implementation.
	return wire.MoveObject{ID: uint32(g.id), X: g.loc.X, Y: g.loc.Y}
}
