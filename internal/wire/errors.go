package wire

import "errors"

// Error taxonomy for the codec and session layers, per the error handling
// design: IoError is a transport failure, ContentError a malformed frame,
// ProtocolError a semantically invalid opcode for the current state.
var (
	ErrIO       = errors.New("wire: io error")
	ErrContent  = errors.New("wire: content error")
	ErrProtocol = errors.New("wire: protocol error")
)
