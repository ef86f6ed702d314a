package guuid

import (
	"encoding/binary"
	"sync"
	"time"
)

// MonotonicGenerator produces UUIDv7 values that strictly increase, even
// within one millisecond, by using rand_a as a counter. Unlike Generator it
// keeps state and serializes callers on a mutex.
type MonotonicGenerator struct {
	mu            sync.Mutex
	gen           *Generator
	lastTimestamp uint64
	clockSeq      uint16 // 12-bit counter for sub-millisecond ordering
}

// NewMonotonicGenerator returns a MonotonicGenerator drawing time and
// randomness from gen, or from a default Generator when gen is nil.
func NewMonotonicGenerator(gen *Generator) *MonotonicGenerator {
	if gen == nil {
		gen = NewGenerator()
	}
	return &MonotonicGenerator{gen: gen}
}

// New generates a UUIDv7 for the current time.
func (m *MonotonicGenerator) New() (UUID, error) {
	return m.NewWithTime(m.gen.now())
}

// NewWithTime generates a UUIDv7 for t that sorts after every UUID this
// generator returned before.
func (m *MonotonicGenerator) NewWithTime(t time.Time) (UUID, error) {
	var uuid UUID

	timestamp := uint64(t.UnixMilli()) & 0xffffffffffff

	m.mu.Lock()
	defer m.mu.Unlock()

	if timestamp <= m.lastTimestamp {
		timestamp = m.lastTimestamp
		m.clockSeq++
		// counter exhausted, borrow the next millisecond
		if m.clockSeq > 0xfff {
			m.clockSeq = 0
			timestamp++
			m.lastTimestamp = timestamp
		}
	} else {
		var randBytes [2]byte
		if err := m.gen.readRandom(randBytes[:]); err != nil {
			return Nil, err
		}
		// Seed in the lower half so the counter has room to grow.
		m.clockSeq = binary.BigEndian.Uint16(randBytes[:]) & 0x7ff
		m.lastTimestamp = timestamp
	}

	binary.BigEndian.PutUint64(uuid[0:8], timestamp<<16)
	uuid[6] = byte(0x70 | (m.clockSeq >> 8))
	uuid[7] = byte(m.clockSeq)

	if err := m.gen.readRandom(uuid[8:]); err != nil {
		return Nil, err
	}
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return uuid, nil
}
