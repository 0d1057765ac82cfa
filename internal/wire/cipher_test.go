package wire

import (
	"encoding/binary"
	"testing"
)

// TestKeyInitVector pins S1 from spec §8: key_init(0x12345678) == 0x24700c1a554e71f5.
func TestKeyInitVector(t *testing.T) {
	c := NewCipher(0x12345678)
	if got := c.KeyUint64(); got != 0x24700c1a554e71f5 {
		t.Fatalf("KeyUint64() = %#x, want 0x24700c1a554e71f5", got)
	}
}

// TestKnownDecrypt pins S2 from spec §8.
func TestKnownDecrypt(t *testing.T) {
	c := NewCipher(0x12345678)
	ct := []byte{0xb0, 0x9d, 0xe8, 0xde, 0x83, 0xcd, 0xbc, 0x1b, 0xd2, 0x28, 0x25, 0x3f}
	want := []byte{0x47, 0x33, 0x00, 0xe4, 0x04, 0x00, 0x00, 0x52, 0xed, 0x8a, 0x01, 0x00}

	got := c.Decrypt(append([]byte(nil), ct...))
	if string(got) != string(want) {
		t.Fatalf("Decrypt = % x, want % x", got, want)
	}
	// Peek from the first plaintext byte (NewPacket would start the cursor
	// past the opcode), and read the decode key, which Decrypt evolves.
	p := &Packet{buf: got}
	if peek := p.PeekU32(); peek != 0xe4003347 {
		t.Fatalf("PeekU32() = %#x, want 0xe4003347", peek)
	}
	if got := binary.BigEndian.Uint64(c.dec[:]); got != 0x63430cfe184ef01d {
		t.Fatalf("evolved key = %#x, want 0x63430cfe184ef01d", got)
	}
}

// TestKnownEncrypt pins S3 from spec §8.
func TestKnownEncrypt(t *testing.T) {
	c := NewCipher(0x12345678)
	pt := []byte{0x47, 0x33, 0x00, 0xe4, 0x04, 0x00, 0x00, 0x52, 0xed, 0x8a, 0x01, 0x00}
	want := []byte{0xb0, 0x9d, 0xe8, 0xde, 0x83, 0xcd, 0xbc, 0x1b, 0xd2, 0x28, 0x25, 0x3f}

	got := c.Encrypt(append([]byte(nil), pt...))
	if string(got) != string(want) {
		t.Fatalf("Encrypt = % x, want % x", got, want)
	}
}

// TestEncryptDecryptRoundTrip is the quantified invariant 1 from spec §8:
// for every payload >= 4 bytes and every key, decrypt(encrypt(p,k),k) == p.
func TestEncryptDecryptRoundTrip(t *testing.T) {
	seeds := []uint32{0, 1, 0x12345678, 0xDEADBEEF, 0xFFFFFFFF}
	payloads := [][]byte{
		{1, 2, 3, 4},
		{0xFF, 0, 0, 0, 0xAB, 0xCD},
		append([]byte{42}, make([]byte, 200)...),
	}
	for _, seed := range seeds {
		for _, original := range payloads {
			encKey := NewCipher(seed)
			decKey := NewCipher(seed)

			plaintext := append([]byte(nil), original...)
			ciphertext := encKey.Encrypt(append([]byte(nil), plaintext...))
			recovered := decKey.Decrypt(ciphertext)

			if string(recovered) != string(plaintext) {
				t.Fatalf("seed %#x: round trip failed: got % x want % x", seed, recovered, plaintext)
			}
		}
	}
}

// TestCipherEvolutionIndependence confirms encode/decode keys evolve
// independently once packets start flowing in both directions.
func TestCipherEvolutionIndependence(t *testing.T) {
	c := NewCipher(7)
	before := c.KeyUint64()
	c.Encrypt([]byte{1, 2, 3, 4, 5})
	afterEncrypt := c.KeyUint64()
	if before == afterEncrypt {
		t.Fatal("encrypt did not evolve the key")
	}
	if c.dec != NewCipher(7).dec {
		t.Fatal("encrypt also evolved the decode key")
	}
}

func TestKeyInitDeterministic(t *testing.T) {
	for _, seed := range []uint32{0, 1, 12345, 0x7fffffff} {
		a := NewCipher(seed).KeyUint64()
		b := NewCipher(seed).KeyUint64()
		if a != b {
			t.Fatalf("seed %d not deterministic: %#x vs %#x", seed, a, b)
		}
	}
}
