package wire

// ClientPacket is the sum type of every inbound message the server
// understands. Each concrete type is a distinct Go struct; DecodeClient
// produces one from a decrypted payload, defaulting to Unknown for anything
// it cannot parse. Malformed inbound packets surface as Unknown and are
// logged by the caller, never treated as fatal by the codec itself.
type ClientPacket interface {
	isClientPacket()
}

type Version struct {
	Version   uint16
	Extra     uint32
	Kind      uint8
	Timestamp uint32
}

type Login struct {
	Account  string
	Password string
	A, B, C, D, E, F, G uint32
}

type CharacterSelect struct{ Name string }

type NewCharacter struct {
	Name                                                    string
	Class, Gender, Str, Dex, Con, Wis, Cha, Intel            uint8
}

type DeleteCharacter struct{ Name string }

type MoveFrom struct {
	X, Y    uint16
	Heading uint8
}

type ChangeDirection struct{ Heading uint8 }

// ChatKind distinguishes the channel a Chat message multiplexes onto, per
// the opcode-multiplexed prefix characters in spec §4.1.
type ChatKind int

const (
	ChatNormal ChatKind = iota
	ChatYell
	ChatCommand
	ChatSpecial
	ChatPledge
	ChatParty
)

type Chat struct {
	Kind    ChatKind
	Channel uint8
	Text    string
}

type UseItem struct {
	ID        uint32
	Remainder []byte
}

type Ping struct{ Value uint8 }

type Who struct{ Filter string }

type Bookmark struct{ Name string }

type FriendAdd struct{ Name string }

type FriendRemove struct{ Name string }

type ChangePassword struct {
	Account, OldPass, NewPass string
}

type Restart struct{}
type NewsDone struct{}
type KeepAlive struct{}
type Save struct{}
type GameInitDone struct{}
type WindowActivate struct{ Value uint8 }

// Unknown wraps any payload the codec could not interpret, keyed by the
// opcode byte that was actually present.
type Unknown struct {
	Opcode byte
	Raw    []byte
}

func (Version) isClientPacket()         {}
func (Login) isClientPacket()           {}
func (CharacterSelect) isClientPacket() {}
func (NewCharacter) isClientPacket()    {}
func (DeleteCharacter) isClientPacket() {}
func (MoveFrom) isClientPacket()        {}
func (ChangeDirection) isClientPacket() {}
func (Chat) isClientPacket()            {}
func (UseItem) isClientPacket()         {}
func (Ping) isClientPacket()            {}
func (Who) isClientPacket()             {}
func (Bookmark) isClientPacket()        {}
func (FriendAdd) isClientPacket()       {}
func (FriendRemove) isClientPacket()    {}
func (ChangePassword) isClientPacket()  {}
func (Restart) isClientPacket()         {}
func (NewsDone) isClientPacket()        {}
func (KeepAlive) isClientPacket()       {}
func (Save) isClientPacket()            {}
func (GameInitDone) isClientPacket()    {}
func (WindowActivate) isClientPacket()  {}
func (Unknown) isClientPacket()         {}

// DecodeClient parses a decrypted, unpadded inbound payload into a
// ClientPacket. It never returns an error: anything it cannot make sense of
// becomes Unknown, per the codec's "malformed inbound packets are logged,
// never fatal" contract.
func DecodeClient(payload []byte) ClientPacket {
	if len(payload) == 0 {
		return Unknown{}
	}
	p := NewPacket(payload)
	op := p.Opcode()
	switch op {
	case OpVersion:
		return Version{
			Version:   p.ReadU16(),
			Extra:     p.ReadU32(),
			Kind:      p.ReadU8(),
			Timestamp: p.ReadU32(),
		}
	case OpLogin:
		return Login{
			Account:  p.ReadCString(),
			Password: p.ReadCString(),
			A:        p.ReadU32(), B: p.ReadU32(), C: p.ReadU32(), D: p.ReadU32(),
			E: p.ReadU32(), F: p.ReadU32(), G: p.ReadU32(),
		}
	case OpCharacterSelect:
		return CharacterSelect{Name: p.ReadCString()}
	case OpNewCharacter:
		return NewCharacter{
			Name: p.ReadCString(),
			Class: p.ReadU8(), Gender: p.ReadU8(),
			Str: p.ReadU8(), Dex: p.ReadU8(), Con: p.ReadU8(),
			Wis: p.ReadU8(), Cha: p.ReadU8(), Intel: p.ReadU8(),
		}
	case OpDeleteCharacter:
		return DeleteCharacter{Name: p.ReadCString()}
	case OpMoveFrom:
		return MoveFrom{X: p.ReadU16(), Y: p.ReadU16(), Heading: p.ReadU8()}
	case OpChangeDirection:
		return ChangeDirection{Heading: p.ReadU8()}
	case OpChat:
		channel := p.ReadU8()
		text := p.ReadCString()
		return decodeChat(channel, text)
	case OpUseItem:
		id := p.ReadU32()
		return UseItem{ID: id, Remainder: p.ReadBytes(p.Remaining())}
	case OpPing:
		return Ping{Value: p.ReadU8()}
	case OpWho:
		return Who{Filter: p.ReadCString()}
	case OpBookmark:
		return Bookmark{Name: p.ReadCString()}
	case OpFriendAdd:
		return FriendAdd{Name: p.ReadCString()}
	case OpFriendRemove:
		return FriendRemove{Name: p.ReadCString()}
	case OpChangePassword:
		return ChangePassword{
			Account: p.ReadCString(),
			OldPass: p.ReadCString(),
			NewPass: p.ReadCString(),
		}
	case OpRestart:
		return Restart{}
	case OpNewsDone:
		return NewsDone{}
	case OpKeepAlive:
		return KeepAlive{}
	case OpSave:
		return Save{}
	case OpGameInitDone:
		return GameInitDone{}
	case OpWindowActivate:
		return WindowActivate{Value: p.ReadU8()}
	default:
		return Unknown{Opcode: op, Raw: append([]byte(nil), payload...)}
	}
}

// decodeChat maps a chat message onto its ChatKind: the pledge and party
// channel ids first, then the '!', '-' and '.' prefix characters. Text with
// any other first character is ChatNormal with the text unchanged.
func decodeChat(channel uint8, text string) Chat {
	switch channel {
	case ChatChannelPledge:
		return Chat{Kind: ChatPledge, Channel: channel, Text: text}
	case ChatChannelParty:
		return Chat{Kind: ChatParty, Channel: channel, Text: text}
	}
	if len(text) > 0 {
		switch text[0] {
		case ChatPrefixYell:
			return Chat{Kind: ChatYell, Channel: channel, Text: text[1:]}
		case ChatPrefixCommand:
			return Chat{Kind: ChatCommand, Channel: channel, Text: text[1:]}
		case ChatPrefixSpecial:
			return Chat{Kind: ChatSpecial, Channel: channel, Text: text[1:]}
		}
	}
	return Chat{Kind: ChatNormal, Channel: channel, Text: text}
}

// BuildClient is the inverse of DecodeClient, used by round-trip tests only.
func BuildClient(msg ClientPacket) []byte {
	switch m := msg.(type) {
	case Version:
		p := NewWritePacket(OpVersion)
		p.WriteU16(m.Version)
		p.WriteU32(m.Extra)
		p.WriteU8(m.Kind)
		p.WriteU32(m.Timestamp)
		return p.Payload()
	case Login:
		p := NewWritePacket(OpLogin)
		p.WriteCString(m.Account)
		p.WriteCString(m.Password)
		p.WriteU32(m.A)
		p.WriteU32(m.B)
		p.WriteU32(m.C)
		p.WriteU32(m.D)
		p.WriteU32(m.E)
		p.WriteU32(m.F)
		p.WriteU32(m.G)
		return p.Payload()
	case CharacterSelect:
		p := NewWritePacket(OpCharacterSelect)
		p.WriteCString(m.Name)
		return p.Payload()
	case NewCharacter:
		p := NewWritePacket(OpNewCharacter)
		p.WriteCString(m.Name)
		p.WriteU8(m.Class)
		p.WriteU8(m.Gender)
		p.WriteU8(m.Str)
		p.WriteU8(m.Dex)
		p.WriteU8(m.Con)
		p.WriteU8(m.Wis)
		p.WriteU8(m.Cha)
		p.WriteU8(m.Intel)
		return p.Payload()
	case DeleteCharacter:
		p := NewWritePacket(OpDeleteCharacter)
		p.WriteCString(m.Name)
		return p.Payload()
	case MoveFrom:
		p := NewWritePacket(OpMoveFrom)
		p.WriteU16(m.X)
		p.WriteU16(m.Y)
		p.WriteU8(m.Heading)
		return p.Payload()
	case ChangeDirection:
		p := NewWritePacket(OpChangeDirection)
		p.WriteU8(m.Heading)
		return p.Payload()
	case Chat:
		p := NewWritePacket(OpChat)
		p.WriteU8(m.Channel)
		text := m.Text
		switch m.Kind {
		case ChatYell:
			text = string(ChatPrefixYell) + text
		case ChatCommand:
			text = string(ChatPrefixCommand) + text
		case ChatSpecial:
			text = string(ChatPrefixSpecial) + text
		}
		p.WriteCString(text)
		return p.Payload()
	case UseItem:
		p := NewWritePacket(OpUseItem)
		p.WriteU32(m.ID)
		p.WriteBytes(m.Remainder)
		return p.Payload()
	case Ping:
		p := NewWritePacket(OpPing)
		p.WriteU8(m.Value)
		return p.Payload()
	case Who:
		p := NewWritePacket(OpWho)
		p.WriteCString(m.Filter)
		return p.Payload()
	case Bookmark:
		p := NewWritePacket(OpBookmark)
		p.WriteCString(m.Name)
		return p.Payload()
	case FriendAdd:
		p := NewWritePacket(OpFriendAdd)
		p.WriteCString(m.Name)
		return p.Payload()
	case FriendRemove:
		p := NewWritePacket(OpFriendRemove)
		p.WriteCString(m.Name)
		return p.Payload()
	case ChangePassword:
		p := NewWritePacket(OpChangePassword)
		p.WriteCString(m.Account)
		p.WriteCString(m.OldPass)
		p.WriteCString(m.NewPass)
		return p.Payload()
	case Restart:
		return NewWritePacket(OpRestart).Payload()
	case NewsDone:
		return NewWritePacket(OpNewsDone).Payload()
	case KeepAlive:
		return NewWritePacket(OpKeepAlive).Payload()
	case Save:
		return NewWritePacket(OpSave).Payload()
	case GameInitDone:
		return NewWritePacket(OpGameInitDone).Payload()
	case WindowActivate:
		p := NewWritePacket(OpWindowActivate)
		p.WriteU8(m.Value)
		return p.Payload()
	case Unknown:
		return m.Raw
	default:
		return nil
	}
}
