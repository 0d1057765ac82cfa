package session

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword implements spec §4.2's pinned login hash exactly:
//
//	hash_password(name, salt, pw) = SHA256(salt || pw || MD5_hex(name))
//
// This is the only password hash spec.md names; it must not be swapped
// for bcrypt (bcrypt is used elsewhere, for the recovery-token extension
// only — see internal/persist).
func HashPassword(name, salt, pw string) string {
	nameHash := md5.Sum([]byte(name))
	nameHex := hex.EncodeToString(nameHash[:])

	h := sha256.New()
	h.Write([]byte(salt))
	h.Write([]byte(pw))
	h.Write([]byte(nameHex))
	return hex.EncodeToString(h.Sum(nil))
}
