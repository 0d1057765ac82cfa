package session

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/silverkeep/realmd/internal/wire"
)

// Session is a single client connection. Network I/O runs in dedicated
// reader/writer goroutines; the state machine field is the only thing
// touched from both goroutines, hence the atomic store/load (spec §5:
// no task holds a world mutex across an await — the two goroutines
// never share anything but the state and the queues below).
type Session struct {
	ID   uint64
	conn net.Conn

	cipher *wire.Cipher
	state  atomic.Int32

	mu sync.Mutex // guards conn.Write during the unencrypted init send

	InQueue  chan wire.ClientPacket
	OutQueue chan wire.ServerPacket

	IP          string
	AccountName string
	CharName    string

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	log *zap.Logger
}

func NewSession(conn net.Conn, id uint64, inSize, outSize int, log *zap.Logger) *Session {
	s := &Session{
		ID:       id,
		conn:     conn,
		InQueue:  make(chan wire.ClientPacket, inSize),
		OutQueue: make(chan wire.ServerPacket, outSize),
		IP:       conn.RemoteAddr().String(),
		closeCh:  make(chan struct{}),
		log:      log.With(zap.Uint64("session", id)),
	}
	s.state.Store(int32(StateAccepted))
	return s
}

func (s *Session) State() State      { return State(s.state.Load()) }
func (s *Session) SetState(st State) { s.state.Store(int32(st)) }

// Start sends the plaintext InitSeed packet, derives the cipher from the
// chosen seed, and launches the reader and writer goroutines. This is
// the Accepted -> KeyNegotiated transition.
func (s *Session) Start() {
	seed := rand.Int31n(0x7FFFFFFE) + 1

	initPkt := wire.InitSeed{Seed: uint32(seed)}.Encode()
	header := make([]byte, 2)
	binary.LittleEndian.PutUint16(header, uint16(len(initPkt)+2))

	s.mu.Lock()
	_, err := s.conn.Write(append(header, initPkt...))
	s.mu.Unlock()
	if err != nil {
		s.log.Debug("init packet send failed", zap.Error(err))
		s.Close()
		return
	}

	s.cipher = wire.NewCipher(uint32(seed))
	s.SetState(StateKeyNegotiated)

	go s.readLoop()
	go s.writeLoop()
}

// Send queues an outbound packet. Non-blocking: per spec §5's
// backpressure rule, a full OutQueue marks the session dead rather than
// stalling whichever task (router, session, monster AI) tried to send.
func (s *Session) Send(pkt wire.ServerPacket) {
	if s.closed.Load() {
		return
	}
	select {
	case s.OutQueue <- pkt:
	default:
		s.log.Warn("outbound queue full, disconnecting slow session")
		s.Close()
	}
}

func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.SetState(StateEnded)
		close(s.closeCh)
		s.conn.Close()
	})
}

func (s *Session) IsClosed() bool { return s.closed.Load() }

// readLoop reads frames, decrypts them with the receiver-direction key,
// decodes them into ClientPacket values, and pushes them onto InQueue.
// It blocks when InQueue is full rather than dropping: dropping a
// movement packet desyncs this session's server-tracked position
// permanently, so backpressure here only ever stalls this one
// connection, never the router.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		select {
		case <-s.closeCh:
			return
		default:
		}

		payload, err := wire.ReadFrame(s.conn)
		if err != nil {
			if !s.closed.Load() {
				s.log.Debug("read error", zap.Error(err))
			}
			return
		}

		decrypted := s.cipher.Decrypt(payload)
		pkt := wire.DecodeClient(decrypted)

		select {
		case s.InQueue <- pkt:
		case <-s.closeCh:
			return
		}
	}
}

// writeLoop drains OutQueue, encrypts each packet with the
// sender-direction key, frames it, and writes it to the connection.
func (s *Session) writeLoop() {
	defer s.Close()

	for {
		select {
		case pkt := <-s.OutQueue:
			raw := wire.PadToMinimum(pkt.Encode())
			encrypted := make([]byte, len(raw))
			copy(encrypted, raw)
			s.cipher.Encrypt(encrypted)

			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := wire.WriteFrame(s.conn, encrypted); err != nil {
				if !s.closed.Load() {
					s.log.Debug("write error", zap.Error(err))
				}
				return
			}
		case <-s.closeCh:
			return
		}
	}
}

func (s *Session) String() string {
	return fmt.Sprintf("session(%d,%s,%s)", s.ID, s.IP, s.State())
}
