package world

import (
	"github.com/silverkeep/realmd/internal/wire"
)

// Class is a player character class (spec §3).
type Class uint8

const (
	ClassPrince Class = iota
	ClassKnight
	ClassElf
	ClassWizard
	ClassDarkElf
	ClassDragonKnight
	ClassIllusionist
)

// Stats holds the six base attributes.
type Stats struct {
	Str, Dex, Con, Wis, Cha, Intel uint8
}

// Player is a connected character on the map. A Player's Sender channel
// feeds its owning Session's writer goroutine; the Player never references
// the Session directly (spec §9).
type Player struct {
	baseObject

	AccountName string
	Class       Class
	Gender      uint8
	Level       uint8
	Alignment   int16
	MaxMP       int32
	MP          int32
	Stats       Stats
	AC          int8
	PledgeName  string
	PledgeID    uint32
	XP          uint32
	Food        uint8

	WeightCarried int32
	WeightLimit   int32
	Resists       [4]uint8

	inventory      []*ItemInstance
	equippedWeapon *ItemDefinition

	sendCh chan wire.ServerPacket

	// KnownSet is the interest-managed set of objects this player currently
	// observes, diffed on every move (spec §4.4).
	KnownSet ObjectList
}

// NewPlayer constructs an in-game Player with a buffered outbound channel
// of the given capacity, sized by the caller to absorb bursts without
// blocking the World router (spec §4.3).
func NewPlayer(id ObjectID, loc Location, name string, chanCap int) *Player {
	return &Player{
		baseObject: baseObject{id: id, loc: loc, name: name},
		sendCh:     make(chan wire.ServerPacket, chanCap),
	}
}

func (p *Player) PlayerName() (string, bool) { return p.name, true }

func (p *Player) Sender() (chan<- wire.ServerPacket, bool) { return p.sendCh, true }

// SendChannel exposes the receive side for the owning Session's writer loop.
func (p *Player) SendChannel() chan wire.ServerPacket { return p.sendCh }

func (p *Player) Items() ([]*ItemInstance, bool) { return p.inventory, true }

func (p *Player) SetItems(items []*ItemInstance) { p.inventory = items }

func (p *Player) AttackType() AttackType { return AttackPlayer }

func (p *Player) BaseAttackRate() int { return int(p.Level) }

func (p *Player) StrHitBonus() int { return strHitBonus(p.Stats.Str) }

func (p *Player) DexHitBonus() int { return dexHitBonus(p.Stats.Dex) }

func (p *Player) HitRateBonus() int {
	if p.equippedWeapon != nil {
		return int(p.equippedWeapon.HitBonus)
	}
	return 0
}

func (p *Player) RangedHitRateBonus() int {
	return p.HitRateBonus()
}

func (p *Player) Weapon() (*ItemDefinition, bool) {
	if p.equippedWeapon == nil {
		return nil, false
	}
	return p.equippedWeapon, true
}

func (p *Player) SetWeapon(def *ItemDefinition) { p.equippedWeapon = def }

func (p *Player) ArmorClass() int8 { return p.AC }

func (p *Player) MaxWeight() int32 { return p.WeightLimit }

// WeightPercentage returns carried weight as a fraction of capacity in
// [0,1], the unit combat.encumbrancePenalty's brackets are written against.
func (p *Player) WeightPercentage() float64 {
	if p.WeightLimit == 0 {
		return 0
	}
	return float64(p.WeightCarried) / float64(p.WeightLimit)
}

// strHitBonus mirrors the teacher's internal/handler/attr.go STR-to-hit
// table, linearized to the formula it implements.
func strHitBonus(str uint8) int {
	return (int(str) - 12) / 2
}

// dexHitBonus mirrors the teacher's DEX-to-hit table.
func dexHitBonus(dex uint8) int {
	return (int(dex) - 12) / 3
}

// hpBarPercent renders hp/maxHP into the 0-100 scale PutObject packets
// carry on the wire.
func hpBarPercent(hp, maxHP int32) uint8 {
	if maxHP <= 0 {
		return 0
	}
	pct := hp * 100 / maxHP
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return uint8(pct)
}

func (p *Player) HP() int32    { return p.hp }
func (p *Player) MaxHP() int32 { return p.maxHP }
func (p *Player) SetHP(hp, maxHP int32) {
	p.hp = hp
	p.maxHP = maxHP
}

func (p *Player) PutOnMapPacket() wire.ServerPacket {
	return wire.PutObject{
		X:         p.loc.X,
		Y:         p.loc.Y,
		ID:        uint32(p.id),
		Direction: p.loc.Direction,
		XP:        p.XP,
		Alignment: p.Alignment,
		Name:      p.name,
		PledgeID:  p.PledgeID,
		PledgeName: p.PledgeName,
		HPBar:     hpBarPercent(p.hp, p.maxHP),
		Level:     p.Level,
	}
}

func (p *Player) MovePacket() wire.ServerPacket {
	return wire.MoveObject{
		ID:        uint32(p.id),
		X:         p.loc.X,
		Y:         p.loc.Y,
		Direction: p.loc.Direction,
	}
}
