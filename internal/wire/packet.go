// Package wire implements the framed, stream-encrypted protocol between a
// client and the game server: packet buffers, the per-connection cipher,
// and the typed client/server message sum types.
package wire

import (
	"encoding/binary"

	"golang.org/x/text/encoding/traditionalchinese"
)

// Packet is a byte buffer plus a read cursor, little-endian throughout.
// Peek operations never advance the cursor.
type Packet struct {
	buf []byte
	pos int
}

// NewPacket wraps an existing decrypted payload for reading. Byte 0 is the
// opcode; the cursor starts past it.
func NewPacket(payload []byte) *Packet {
	return &Packet{buf: payload, pos: 1}
}

// NewWritePacket starts a new outbound packet with the given opcode.
func NewWritePacket(opcode byte) *Packet {
	p := &Packet{buf: make([]byte, 0, 64)}
	p.WriteU8(opcode)
	return p
}

func (p *Packet) Opcode() byte {
	if len(p.buf) == 0 {
		return 0
	}
	return p.buf[0]
}

func (p *Packet) Remaining() int { return len(p.buf) - p.pos }

// ReadU8 reads one unsigned byte.
func (p *Packet) ReadU8() uint8 {
	if p.pos >= len(p.buf) {
		return 0
	}
	v := p.buf[p.pos]
	p.pos++
	return v
}

// ReadI8 reads one sign-extended byte.
func (p *Packet) ReadI8() int8 { return int8(p.ReadU8()) }

// ReadU16 reads two little-endian bytes.
func (p *Packet) ReadU16() uint16 {
	if p.pos+2 > len(p.buf) {
		p.pos = len(p.buf)
		return 0
	}
	v := binary.LittleEndian.Uint16(p.buf[p.pos:])
	p.pos += 2
	return v
}

// ReadI16 reads two little-endian, sign-extended bytes.
func (p *Packet) ReadI16() int16 { return int16(p.ReadU16()) }

// ReadU32 reads four little-endian bytes.
func (p *Packet) ReadU32() uint32 {
	if p.pos+4 > len(p.buf) {
		p.pos = len(p.buf)
		return 0
	}
	v := binary.LittleEndian.Uint32(p.buf[p.pos:])
	p.pos += 4
	return v
}

// ReadI32 reads four little-endian, sign-extended bytes.
func (p *Packet) ReadI32() int32 { return int32(p.ReadU32()) }

// PeekU32 reads four little-endian bytes without advancing the cursor.
func (p *Packet) PeekU32() uint32 {
	if p.pos+4 > len(p.buf) {
		return 0
	}
	return binary.LittleEndian.Uint32(p.buf[p.pos:])
}

// ReadBytes reads n raw bytes, returning fewer if the buffer is short.
func (p *Packet) ReadBytes(n int) []byte {
	if p.pos+n > len(p.buf) {
		rest := p.buf[p.pos:]
		p.pos = len(p.buf)
		out := make([]byte, len(rest))
		copy(out, rest)
		return out
	}
	out := make([]byte, n)
	copy(out, p.buf[p.pos:p.pos+n])
	p.pos += n
	return out
}

// ReadCString reads a zero-terminated, MS950 (Big5) encoded string and
// returns it converted to UTF-8.
func (p *Packet) ReadCString() string {
	start := p.pos
	for p.pos < len(p.buf) && p.buf[p.pos] != 0 {
		p.pos++
	}
	raw := p.buf[start:p.pos]
	if p.pos < len(p.buf) {
		p.pos++ // skip terminator
	}
	return decodeBig5(raw)
}

func decodeBig5(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	ascii := true
	for _, b := range raw {
		if b >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(raw)
	}
	decoded, err := traditionalchinese.Big5.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// WriteU8 appends one byte.
func (p *Packet) WriteU8(v uint8) { p.buf = append(p.buf, v) }

// WriteI8 appends one signed byte.
func (p *Packet) WriteI8(v int8) { p.buf = append(p.buf, byte(v)) }

// WriteU16 appends two little-endian bytes.
func (p *Packet) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	p.buf = append(p.buf, b[:]...)
}

// WriteI16 appends two little-endian bytes.
func (p *Packet) WriteI16(v int16) { p.WriteU16(uint16(v)) }

// WriteU32 appends four little-endian bytes.
func (p *Packet) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	p.buf = append(p.buf, b[:]...)
}

// WriteI32 appends four little-endian bytes.
func (p *Packet) WriteI32(v int32) { p.WriteU32(uint32(v)) }

// WriteCString appends a zero-terminated string, encoded to MS950 (Big5).
func (p *Packet) WriteCString(s string) {
	if len(s) == 0 {
		p.buf = append(p.buf, 0)
		return
	}
	encoded, err := traditionalchinese.Big5.NewEncoder().Bytes([]byte(s))
	if err != nil {
		p.buf = append(p.buf, []byte(s)...)
	} else {
		p.buf = append(p.buf, encoded...)
	}
	p.buf = append(p.buf, 0)
}

// WriteBytes appends raw bytes verbatim.
func (p *Packet) WriteBytes(b []byte) { p.buf = append(p.buf, b...) }

// Len returns the current unpadded length of the buffer.
func (p *Packet) Len() int { return len(p.buf) }

// Payload returns the raw accumulated bytes (opcode included, no length
// header). The codec pads this to at least 4 bytes before encryption.
func (p *Packet) Payload() []byte { return p.buf }
