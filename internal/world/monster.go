package world

import "github.com/silverkeep/realmd/internal/wire"

// MonsterDefinition is the loaded-once template a monster spawn instantiates
// (spec §4.7): combat stats plus the AI's wander/aggro tuning.
type MonsterDefinition struct {
	DefID          uint32
	Name           string
	Icon           uint16
	Level          uint8
	MaxHP          int32
	AC             int8
	DmgSmall       int
	DmgMax         int
	HitBonus       int16
	AggroRange     float64
	WanderInterval int // milliseconds; passed to monsterai.NewTask, whose idle step interval is a random 500-1000 ms that does not use it
}

// Monster is a hostile, AI-driven entity. Its Sender channel feeds the
// monster's own AI task rather than a Session's writer goroutine, but the
// shape is identical from the router's point of view (spec §9: Player and
// Monster both "have a mailbox", only who drains it differs).
type Monster struct {
	baseObject

	DefID      uint32
	Icon       uint16
	Level      uint8
	AC         int8
	DmgSmall   int
	DmgMax     int
	HitBonus   int16
	AggroRange float64

	// SpawnOrigin is the tile the monster was spawned at. The AI task's
	// wander step does not consult it, so wandering is not bounded around
	// the spawn point.
	SpawnOrigin Location

	sendCh chan wire.ServerPacket

	KnownSet ObjectList
}

func NewMonster(id ObjectID, loc Location, def *MonsterDefinition, chanCap int) *Monster {
	return &Monster{
		baseObject:  baseObject{id: id, loc: loc, name: def.Name, hp: def.MaxHP, maxHP: def.MaxHP},
		DefID:       def.DefID,
		Icon:        def.Icon,
		Level:       def.Level,
		AC:          def.AC,
		DmgSmall:    def.DmgSmall,
		DmgMax:      def.DmgMax,
		HitBonus:    def.HitBonus,
		AggroRange:  def.AggroRange,
		SpawnOrigin: loc,
		sendCh:      make(chan wire.ServerPacket, chanCap),
	}
}

func (m *Monster) Sender() (chan<- wire.ServerPacket, bool) { return m.sendCh, true }

// SendChannel exposes the receive side for the owning AI task.
func (m *Monster) SendChannel() chan wire.ServerPacket { return m.sendCh }

func (m *Monster) AttackType() AttackType { return AttackMonster }
func (m *Monster) BaseAttackRate() int    { return int(m.Level) }
func (m *Monster) StrHitBonus() int       { return 0 }
func (m *Monster) DexHitBonus() int       { return 0 }
func (m *Monster) HitRateBonus() int      { return int(m.HitBonus) }
func (m *Monster) RangedHitRateBonus() int { return int(m.HitBonus) }

func (m *Monster) Weapon() (*ItemDefinition, bool) { return nil, false }

func (m *Monster) ArmorClass() int8 { return m.AC }
func (m *Monster) MaxWeight() int32 { return 0 }
func (m *Monster) WeightPercentage() float64 { return 0 }

func (m *Monster) PutOnMapPacket() wire.ServerPacket {
	return wire.PutObject{
		X:         m.loc.X,
		Y:         m.loc.Y,
		ID:        uint32(m.id),
		Icon:      m.Icon,
		Direction: m.loc.Direction,
		Name:      m.name,
		HPBar:     hpBarPercent(m.hp, m.maxHP),
	}
}

func (m *Monster) MovePacket() wire.ServerPacket {
	return wire.MoveObject{
		ID:        uint32(m.id),
		X:         m.loc.X,
		Y:         m.loc.Y,
		Direction: m.loc.Direction,
	}
}
