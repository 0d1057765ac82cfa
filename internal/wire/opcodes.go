package wire

// Client-to-server opcodes, pinned in spec §4.1/§6.
const (
	OpUseItem           = 1
	OpLogin              = 12
	OpVersion            = 71
	OpCharacterSelect    = 83
	OpNewCharacter       = 72
	OpDeleteCharacter    = 34
	OpMoveFrom           = 88
	OpChangeDirection    = 74
	OpChat               = 104
	OpRestart            = 47
	OpNewsDone           = 43
	OpKeepAlive          = 57
	OpSave               = 111
	OpPing               = 112
	OpWho                = 92
	OpBookmark           = 97
	OpFriendAdd          = 100
	OpFriendRemove       = 119
	OpGameInitDone       = 79
	OpWindowActivate     = 20
	OpChangePassword     = 13
)

// Server-to-client opcodes, pinned in spec §6. Some numbers are shared
// across semantically distinct shapes (e.g. 47 is both client Restart and
// server InventoryVec) because the original wire protocol multiplexes on
// connection state; each ServerPacket constructor only ever emits its own
// fixed opcode so there is no ambiguity on the outbound side.
const (
	OpInitPacket              = 65 // S->C, unencrypted seed handshake
	OpServerVersion           = 10
	OpNews                    = 90
	OpLoginResult             = 21
	OpNumberCharacters        = 113
	OpLoginCharacterDetails   = 99
	OpDeleteCharacterResult   = 33
	OpNewCharacterDetails     = 98
	OpCharacterCreationStatus = 106
	OpCharacterDetails        = 69
	OpStartGame               = 63
	OpMapID                   = 76
	OpPutObject               = 64
	OpMoveObject              = 61
	OpRemoveObject            = 9
	OpChatBroadcast           = 8
	OpWhisperBroadcast        = 91
	OpSystemBroadcast         = 105
	OpInventoryVec            = 47
	OpDisconnect              = 18
	OpWeather                 = 116
	OpBookmarkList            = 117
)

// Chat-channel prefixes multiplexed on the client Chat opcode, per spec §6.
const (
	ChatPrefixYell    = '!'
	ChatPrefixCommand = '-'
	ChatPrefixSpecial = '.'
)

// Chat channel ids used inside ClientPacket.Chat / ServerPacket chat variants.
const (
	ChatChannelPledge = 4
	ChatChannelParty  = 11
)

const (
	deleteCharacterResultOK   = 0x05
	deleteCharacterResultWait = 0x51
)
