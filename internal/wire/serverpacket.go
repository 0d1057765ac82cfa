package wire

// ServerPacket is the sum type of every outbound message shape. Each
// concrete type's Encode method produces the exact bit-level layout pinned
// in spec §6. Encode is the single entry point used by Session and World.
type ServerPacket interface {
	Encode() []byte
}

// InitSeed is the one S->C packet sent unencrypted, before the cipher
// exists: opcode 65 followed by the little-endian seed.
type InitSeed struct{ Seed uint32 }

func (m InitSeed) Encode() []byte {
	p := NewWritePacket(OpInitPacket)
	p.WriteU32(m.Seed)
	return p.Payload()
}

type ServerVersion struct {
	ID                               uint8
	V1, V2, V3, V4                   uint32
	Time                             uint32
	NewAccounts, English, Country    uint8
}

func (m ServerVersion) Encode() []byte {
	p := NewWritePacket(OpServerVersion)
	p.WriteU8(0)
	p.WriteU8(m.ID)
	p.WriteU32(m.V1)
	p.WriteU32(m.V2)
	p.WriteU32(m.V3)
	p.WriteU32(m.V4)
	p.WriteU32(m.Time)
	p.WriteU8(m.NewAccounts)
	p.WriteU8(m.English)
	p.WriteU8(m.Country)
	return p.Payload()
}

type News struct{ Text string }

func (m News) Encode() []byte {
	p := NewWritePacket(OpNews)
	p.WriteCString(m.Text)
	return p.Payload()
}

type LoginResult struct{ Code uint8 }

func (m LoginResult) Encode() []byte {
	p := NewWritePacket(OpLoginResult)
	p.WriteU8(m.Code)
	p.WriteU32(0)
	return p.Payload()
}

type NumberCharacters struct{ Count, MaxSlots uint8 }

func (m NumberCharacters) Encode() []byte {
	p := NewWritePacket(OpNumberCharacters)
	p.WriteU8(m.Count)
	p.WriteU8(m.MaxSlots)
	return p.Payload()
}

// CharacterSummary is the shared field set for LoginCharacterDetails and
// NewCharacterDetails, per spec §3's Character entity.
type CharacterSummary struct {
	Name, Pledge                                string
	Class, Gender                               uint8
	Alignment                                    int16
	HP, MP                                       uint16
	AC                                            int8
	Level                                        uint8
	Str, Dex, Con, Wis, Cha, Intel                uint8
}

func (c CharacterSummary) encodeInto(p *Packet) {
	p.WriteCString(c.Name)
	p.WriteCString(c.Pledge)
	p.WriteU8(c.Class)
	p.WriteU8(c.Gender)
	p.WriteI16(c.Alignment)
	p.WriteU16(c.HP)
	p.WriteU16(c.MP)
	p.WriteI8(c.AC)
	p.WriteU8(c.Level)
	p.WriteU8(c.Str)
	p.WriteU8(c.Dex)
	p.WriteU8(c.Con)
	p.WriteU8(c.Wis)
	p.WriteU8(c.Cha)
	p.WriteU8(c.Intel)
}

type LoginCharacterDetails struct{ CharacterSummary }

func (m LoginCharacterDetails) Encode() []byte {
	p := NewWritePacket(OpLoginCharacterDetails)
	m.CharacterSummary.encodeInto(p)
	return p.Payload()
}

type NewCharacterDetails struct{ CharacterSummary }

func (m NewCharacterDetails) Encode() []byte {
	p := NewWritePacket(OpNewCharacterDetails)
	m.CharacterSummary.encodeInto(p)
	return p.Payload()
}

type CharacterCreationStatus struct{ Code uint8 }

func (m CharacterCreationStatus) Encode() []byte {
	p := NewWritePacket(OpCharacterCreationStatus)
	p.WriteU8(m.Code)
	p.WriteU32(0)
	p.WriteU32(0)
	return p.Payload()
}

// deleteCharacterResult is not exported; use DeleteCharacterOk/Wait.
type deleteCharacterResult struct{ code uint8 }

func (m deleteCharacterResult) Encode() []byte {
	p := NewWritePacket(OpDeleteCharacterResult)
	p.WriteU8(m.code)
	return p.Payload()
}

func DeleteCharacterOk() ServerPacket   { return deleteCharacterResult{code: deleteCharacterResultOK} }
func DeleteCharacterWait() ServerPacket { return deleteCharacterResult{code: deleteCharacterResultWait} }

// FullCharacterDetails is CharacterDetails per spec §6, sent once at
// character-select completion.
type FullCharacterDetails struct {
	ID                                               uint32
	Level                                             uint8
	XP                                                uint32
	Str, Dex, Con, Wis, Cha, Intel                     uint8
	CurHP, MaxHP, CurMP, MaxMP                         uint16
	AC                                                 int8
	Time                                               uint32
	Food, Weight                                       float32
	Alignment                                          int16
	FireResist, WaterResist, WindResist, EarthResist    uint8
}

func (m FullCharacterDetails) Encode() []byte {
	p := NewWritePacket(OpCharacterDetails)
	p.WriteU32(m.ID)
	p.WriteU8(m.Level)
	p.WriteU32(m.XP)
	p.WriteU8(m.Str)
	p.WriteU8(m.Dex)
	p.WriteU8(m.Con)
	p.WriteU8(m.Wis)
	p.WriteU8(m.Cha)
	p.WriteU8(m.Intel)
	p.WriteU16(m.CurHP)
	p.WriteU16(m.MaxHP)
	p.WriteU16(m.CurMP)
	p.WriteU16(m.MaxMP)
	p.WriteI8(m.AC)
	p.WriteU32(m.Time)
	p.WriteU32(uint32(m.Food))
	p.WriteU32(uint32(m.Weight))
	p.WriteI16(m.Alignment)
	p.WriteU8(m.FireResist)
	p.WriteU8(m.WaterResist)
	p.WriteU8(m.WindResist)
	p.WriteU8(m.EarthResist)
	return p.Payload()
}

type StartGame struct{ ObjectID uint32 }

func (m StartGame) Encode() []byte {
	p := NewWritePacket(OpStartGame)
	p.WriteU8(3)
	p.WriteU32(m.ObjectID)
	return p.Payload()
}

type MapID struct {
	Map        uint16
	Underwater uint8
}

func (m MapID) Encode() []byte {
	p := NewWritePacket(OpMapID)
	p.WriteU16(m.Map)
	p.WriteU8(m.Underwater)
	return p.Payload()
}

// PutObject introduces an object into an observer's known set. Field
// layout is pinned exactly per spec §6.
type PutObject struct {
	X, Y                            uint16
	ID                               uint32
	Icon                             uint16
	Status                           uint8
	Direction                        uint8
	Light, Speed                     uint8
	XP                               uint32
	Alignment                        int16
	Name, Title                      string
	Status2                         uint8
	PledgeID                        uint32
	PledgeName, OwnerName           string
	V1, HPBar, V2                   uint8
	Level                           uint8
}

func (m PutObject) Encode() []byte {
	p := NewWritePacket(OpPutObject)
	p.WriteU16(m.X)
	p.WriteU16(m.Y)
	p.WriteU32(m.ID)
	p.WriteU16(m.Icon)
	p.WriteU8(m.Status)
	p.WriteU8(m.Direction)
	p.WriteU8(m.Light)
	p.WriteU8(m.Speed)
	p.WriteU32(m.XP)
	p.WriteI16(m.Alignment)
	p.WriteCString(m.Name)
	p.WriteCString(m.Title)
	p.WriteU8(m.Status2)
	p.WriteU32(m.PledgeID)
	p.WriteCString(m.PledgeName)
	p.WriteCString(m.OwnerName)
	p.WriteU8(m.V1)
	p.WriteU8(m.HPBar)
	p.WriteU8(m.V2)
	p.WriteU8(m.Level)
	return p.Payload()
}

type MoveObject struct {
	ID        uint32
	X, Y      uint16
	Direction uint8
}

func (m MoveObject) Encode() []byte {
	p := NewWritePacket(OpMoveObject)
	p.WriteU32(m.ID)
	p.WriteU16(m.X)
	p.WriteU16(m.Y)
	p.WriteU8(m.Direction)
	return p.Payload()
}

type RemoveObject struct{ ID uint32 }

func (m RemoveObject) Encode() []byte {
	p := NewWritePacket(OpRemoveObject)
	p.WriteU32(m.ID)
	return p.Payload()
}

// ChatBroadcast covers the regular/whisper/system chat shapes, which the
// router distinguishes only by opcode — channel/name routing happens
// upstream when the message is queued.
type ChatBroadcast struct {
	SourceID uint32
	Text     string
}

func (m ChatBroadcast) Encode() []byte {
	p := NewWritePacket(OpChatBroadcast)
	p.WriteU32(m.SourceID)
	p.WriteCString(m.Text)
	return p.Payload()
}

type WhisperBroadcast struct{ From, Text string }

func (m WhisperBroadcast) Encode() []byte {
	p := NewWritePacket(OpWhisperBroadcast)
	p.WriteCString(m.From)
	p.WriteCString(m.Text)
	return p.Payload()
}

type SystemBroadcast struct{ Text string }

func (m SystemBroadcast) Encode() []byte {
	p := NewWritePacket(OpSystemBroadcast)
	p.WriteCString(m.Text)
	return p.Payload()
}

// InventoryEntry is one element of an InventoryVec.
type InventoryEntry struct {
	ObjectID, DefID              uint32
	Count                         uint32
	Equipped, Identified          uint8
	EnchantLevel                  int8
	Name                          string
}

type InventoryVec struct{ Items []InventoryEntry }

func (m InventoryVec) Encode() []byte {
	p := NewWritePacket(OpInventoryVec)
	p.WriteU8(uint8(len(m.Items)))
	for _, it := range m.Items {
		p.WriteU32(it.ObjectID)
		p.WriteU32(it.DefID)
		p.WriteU32(it.Count)
		p.WriteU8(it.Equipped)
		p.WriteU8(it.Identified)
		p.WriteI8(it.EnchantLevel)
		p.WriteCString(it.Name)
	}
	return p.Payload()
}

// Weather is the periodic world-tick broadcast (SUPPLEMENTED FEATURES:
// "Weather broadcast"), grounded on original_source's ServerPacket::Weather.
type Weather struct{ Value uint8 }

func (m Weather) Encode() []byte {
	p := NewWritePacket(OpWeather)
	p.WriteU8(m.Value)
	return p.Payload()
}

// BookmarkEntry is one saved location recalled at character-select.
type BookmarkEntry struct {
	Name      string
	Map, X, Y uint16
}

type BookmarkList struct{ Bookmarks []BookmarkEntry }

func (m BookmarkList) Encode() []byte {
	p := NewWritePacket(OpBookmarkList)
	p.WriteU8(uint8(len(m.Bookmarks)))
	for _, b := range m.Bookmarks {
		p.WriteCString(b.Name)
		p.WriteU16(b.Map)
		p.WriteU16(b.X)
		p.WriteU16(b.Y)
	}
	return p.Payload()
}

type Disconnect struct{}

func (Disconnect) Encode() []byte {
	p := NewWritePacket(OpDisconnect)
	p.WriteU16(500)
	p.WriteU32(0)
	return p.Payload()
}
