// Package session implements the per-connection state machine (spec
// §4.2): Accepted -> KeyNegotiated -> VersionChecked -> Authenticated ->
// CharSelect -> (Creating|Deleting)* -> InGame -> Ended, plus the
// reader/writer goroutine pair that turns raw TCP bytes into
// wire.ClientPacket / wire.ServerPacket values. Grounded on the teacher's
// internal/net/session.go, generalized from its fixed-opcode handshake to
// the state machine spec.md names explicitly.
package session

// State is one node of the connection's lifecycle state machine.
type State int32

const (
	StateAccepted State = iota
	StateKeyNegotiated
	StateVersionChecked
	StateAuthenticated
	StateCharSelect
	StateCreatingCharacter
	StateDeletingCharacter
	StateInGame
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateAccepted:
		return "Accepted"
	case StateKeyNegotiated:
		return "KeyNegotiated"
	case StateVersionChecked:
		return "VersionChecked"
	case StateAuthenticated:
		return "Authenticated"
	case StateCharSelect:
		return "CharSelect"
	case StateCreatingCharacter:
		return "CreatingCharacter"
	case StateDeletingCharacter:
		return "DeletingCharacter"
	case StateInGame:
		return "InGame"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}
