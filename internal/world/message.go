package world

import "github.com/silverkeep/realmd/internal/wire"

// WorldMessage is the sum type the World router's single inbound channel
// accepts. Every mutation of world state arrives as one of these — the
// router is the only goroutine that ever touches a Map's contents (spec
// §4.3), grounded on original_source's ClientMessage enum (server/src/
// client_message.rs) translated from Rust match-arms into a Go marker
// interface plus concrete message structs.
type WorldMessage interface {
	isWorldMessage()
}

// RegisterSender introduces a newly-authenticated Player into the world:
// the router allocates (or reuses) the object, inserts it into its map,
// and begins routing ClientPacket messages addressed to its id.
type RegisterSender struct {
	Player *Player
}

// UnregisterClient removes a Player from its map and tears down its known
// set, in response to disconnect or session end.
type UnregisterClient struct {
	ID ObjectID
}

// RegisterMonster introduces a spawned Monster, analogous to
// RegisterSender but for AI-driven objects (spec §4.7).
type RegisterMonster struct {
	Monster *Monster
}

// UnregisterMonster removes a dead or despawned Monster.
type UnregisterMonster struct {
	ID ObjectID
}

// ClientPacket carries one decoded client packet, tagged with the id of
// the Player that sent it, for the router to interpret against world
// state (movement, chat, combat, etc).
type ClientPacketMsg struct {
	ID     ObjectID
	Packet wire.ClientPacket
}

// MoveRequest relocates an AI-driven object (a Monster has no
// wire.ClientPacket of its own to send — its AI task issues this instead).
type MoveRequest struct {
	ID ObjectID
	To Location
}

// ServerShutdown asks the router to drain and stop.
type ServerShutdown struct{}

// WhoQuery asks the router for every online character name matching Filter
// (a case-insensitive substring; empty matches everyone), grounded on the
// "/who" SUPPLEMENTED FEATURE answered from the router's own registry
// rather than a single map scan.
type WhoQuery struct{ Filter string }

// FindSender looks up the outbound channel for an online player by exact
// character name, used to notify a player that someone added them as a
// friend.
type FindSender struct{ Name string }

// WeatherTick asks the router to roll and broadcast a new weather value to
// every connected session, on a timer owned by internal/game.
type WeatherTick struct{}

func (RegisterSender) isWorldMessage()    {}
func (UnregisterClient) isWorldMessage()  {}
func (RegisterMonster) isWorldMessage()   {}
func (UnregisterMonster) isWorldMessage() {}
func (ClientPacketMsg) isWorldMessage()   {}
func (MoveRequest) isWorldMessage()       {}
func (ServerShutdown) isWorldMessage()    {}
func (WhoQuery) isWorldMessage()          {}
func (FindSender) isWorldMessage()        {}
func (WeatherTick) isWorldMessage()       {}

// WorldResponse is sent back to the caller that enqueued a WorldMessage
// needing a reply, e.g. the Session waiting to learn the ObjectID the
// router assigned it. Most WorldMessages are fire-and-forget and carry no
// response.
type WorldResponse interface {
	isWorldResponse()
}

// AssignedID reports the ObjectID the router allocated for a
// RegisterSender or RegisterMonster request, grounded on
// ServerMessage::AssignId in original_source/server/src/server_message.rs.
type AssignedID struct {
	ID ObjectID
}

// WhoResult answers a WhoQuery with the matching online character names.
type WhoResult struct{ Names []string }

// FoundSender answers a FindSender: Ch is only valid when Found is true.
type FoundSender struct {
	Ch    chan<- wire.ServerPacket
	Found bool
}

func (AssignedID) isWorldResponse() {}
func (WhoResult) isWorldResponse()  {}
func (FoundSender) isWorldResponse() {}
