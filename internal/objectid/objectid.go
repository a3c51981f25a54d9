// Package objectid generates and validates the 24-character hex identifiers
// used for every stored document.
package objectid

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Len is the length of an encoded identifier.
const Len = 24

// New returns a fresh identifier: 4 bytes of big-endian unix seconds followed
// by 8 random bytes, hex encoded. Identifiers created later sort later at
// second granularity.
func New() string {
	var raw [12]byte
	binary.BigEndian.PutUint32(raw[:4], uint32(time.Now().Unix()))
	u := uuid.New()
	copy(raw[4:], u[:8])
	return hex.EncodeToString(raw[:])
}

// IsValid reports whether s is a well-formed identifier.
func IsValid(s string) bool {
	if len(s) != Len {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
