package guuid

import (
	"encoding/binary"
)

// NewV7 generates a time-ordered UUID for the generator's current time.
// UUIDs from different milliseconds sort in creation order; within one
// millisecond the order is random.
func (g *Generator) NewV7() (UUID, error) {
	return g.NewV7FromMillis(uint64(g.now().UnixMilli()))
}

// NewV7FromMillis generates a time-ordered UUID for the given Unix time in
// milliseconds. Only the low 48 bits of ms are used.
func (g *Generator) NewV7FromMillis(ms uint64) (UUID, error) {
	/*
		 0                   1                   2                   3
		 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
		+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
		|                           unix_ts_ms                          |
		+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
		|          unix_ts_ms           |  ver  |       rand_a          |
		+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
		|var|                        rand_b                             |
		+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
		|                            rand_b                             |
		+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	*/
	var uuid UUID

	// 74 random bits: rand_a is the first 12, rand_b the next 62.
	var r [10]byte
	if err := g.readRandom(r[:]); err != nil {
		return Nil, err
	}
	randA := binary.BigEndian.Uint16(r[0:2]) >> 4
	randB := uint64(r[1]&0x0f)<<58 | binary.BigEndian.Uint64(r[2:10])>>6

	binary.BigEndian.PutUint64(uuid[0:8], (ms&0xffffffffffff)<<16)
	binary.BigEndian.PutUint16(uuid[6:8], 0x7000|randA)
	binary.BigEndian.PutUint64(uuid[8:16], 0x8000000000000000|randB)

	return uuid, nil
}

// New generates a new UUIDv7 using the default generator.
func New() (UUID, error) {
	return defaultGenerator.NewV7()
}

// NewV7 is an alias for New() for explicit version specification
func NewV7() (UUID, error) {
	return defaultGenerator.NewV7()
}

// NewV7FromMillis generates a UUIDv7 for the given Unix milliseconds using
// the default generator.
func NewV7FromMillis(ms uint64) (UUID, error) {
	return defaultGenerator.NewV7FromMillis(ms)
}
