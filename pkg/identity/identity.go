package identity

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// ID is an opaque 32-bit identifier, time-ordered under normal clock
// behavior. IDs are collision-resistant within a process, not globally
// unique: their job is to distinguish backups and captured values, not
// to act as cryptographic tokens.
type ID uint32

var (
	mu   sync.Mutex
	last ID
)

// New returns a fresh ID. The value is derived from the millisecond
// timestamp of a UUIDv7, so IDs sort roughly by creation time. Because
// the timestamp only ticks once per millisecond, a monotonic fallback
// bumps past the previously issued ID whenever two calls land in the
// same tick: two IDs generated in direct succession always differ.
func New() ID {
	mu.Lock()
	defer mu.Unlock()

	id := fromClock()
	if id <= last {
		id = last + 1
	}
	last = id
	return id
}

// fromClock derives a 32-bit value from the low four timestamp bytes
// of a UUIDv7. If UUID generation fails (exhausted entropy source),
// the previously issued ID is reused; the monotonic guard in New then
// increments past it.
func fromClock() ID {
	u, err := uuid.NewV7()
	if err != nil {
		return last
	}
	// Bytes 2..6 hold the low 32 bits of the 48-bit millisecond timestamp.
	return ID(binary.BigEndian.Uint32(u[2:6]))
}

// Hex renders the ID as exactly 8 lowercase hexadecimal digits.
func (id ID) Hex() string {
	return fmt.Sprintf("%08x", uint32(id))
}

// HexPrefixed renders the ID as 8 lowercase hex digits with a prefix,
// e.g. HexPrefixed("0x") -> "0x0099f2c1".
func (id ID) HexPrefixed(prefix string) string {
	return prefix + id.Hex()
}

// Parse converts an 8-hex-digit token back into an ID.
func Parse(s string) (ID, error) {
	if len(s) != 8 {
		return 0, fmt.Errorf("identity: token %q must be exactly 8 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("identity: token %q is not valid hex: %w", s, err)
	}
	return ID(v), nil
}
