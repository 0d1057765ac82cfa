package wire

import "math/bits"

// Cipher is the per-connection XOR rolling cipher. It is not cryptographically
// secure; it is a protocol-mandatory compatibility requirement. A session
// keeps two independent Cipher values: one for decrypting inbound packets
// (receiver key) and one for encrypting outbound packets (sender key). Each
// evolves independently, once per packet, from that packet's plaintext.
type Cipher struct {
	enc [8]byte // encode key bytes, big-endian halves
	dec [8]byte // decode key bytes, big-endian halves
	tmp [4]byte // scratch buffer holding the pre-encrypt plaintext prefix
}

const (
	keyMaskA = 0x9c30d539
	keyMaskB = 0x930fd7e2
	keyMaskC = 0x7c72e993
	keyMaskD = 0x287effc3
)

// NewCipher derives a cipher from a 32-bit seed:
//
//	rotr = s XOR keyMaskA
//	big0 = rotateLeft32(rotr, 19)
//	big1 = big0 XOR keyMaskB XOR keyMaskC
//	key  = concat_big_endian(big1, big0)
//
// The same derived key seeds both the encode and decode halves; they
// diverge as each direction evolves independently.
func NewCipher(seed uint32) *Cipher {
	c := &Cipher{}

	big0 := bits.RotateLeft32(seed^keyMaskA, 19)
	big1 := keyMaskB ^ big0 ^ keyMaskC

	halves := [2]uint32{big0, big1}
	for i := 0; i < 2; i++ {
		for j := 0; j < 4; j++ {
			b := byte(halves[i] >> (j * 8))
			c.enc[i*4+j] = b
			c.dec[i*4+j] = b
		}
	}
	return c
}

// KeyUint64 returns the cipher's current encode-direction key bytes k0..k7
// read as a single 64-bit big-endian value, for tests pinning known vectors.
// The decode key is not included; it evolves separately in Decrypt.
func (c *Cipher) KeyUint64() uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(c.enc[i])
	}
	return v
}

// Encrypt XORs data in place using the encode key, then evolves the encode
// key from the pre-encryption plaintext. len(data) must be >= 4; callers pad
// shorter payloads with zeros first. Returns data for chaining.
func (c *Cipher) Encrypt(data []byte) []byte {
	if len(data) < 4 {
		return data
	}
	copy(c.tmp[:], data[:4])

	data[0] ^= c.enc[0]
	for i := 1; i < len(data); i++ {
		data[i] ^= data[i-1] ^ c.enc[i&7]
	}
	data[3] ^= c.enc[2]
	data[2] ^= c.enc[3] ^ data[3]
	data[1] ^= c.enc[4] ^ data[2]
	data[0] ^= c.enc[5] ^ data[1]

	evolve(c.enc[:], c.tmp[:])
	return data
}

// Decrypt is the exact inverse of Encrypt and evolves the decode key from
// the recovered plaintext.
func (c *Cipher) Decrypt(data []byte) []byte {
	if len(data) < 4 {
		return data
	}
	data[0] ^= c.dec[5] ^ data[1]
	data[1] ^= c.dec[4] ^ data[2]
	data[2] ^= c.dec[3] ^ data[3]
	data[3] ^= c.dec[2]

	for i := len(data) - 1; i >= 1; i-- {
		data[i] ^= data[i-1] ^ c.dec[i&7]
	}
	data[0] ^= c.dec[0]

	evolve(c.dec, data)
	return data
}

// evolve advances one direction's key bytes given the plaintext that was
// just processed: the low 4 key bytes are XORed with the plaintext prefix,
// and the high 4 (read little-endian) are incremented by keyMaskD mod 2^32.
func evolve(key []byte, plaintext []byte) {
	for i := 0; i < 4; i++ {
		key[i] ^= plaintext[i]
	}
	val := uint32(key[4]) | uint32(key[5])<<8 | uint32(key[6])<<16 | uint32(key[7])<<24
	val += keyMaskD
	key[4] = byte(val)
	key[5] = byte(val >> 8)
	key[6] = byte(val >> 16)
	key[7] = byte(val >> 24)
}
