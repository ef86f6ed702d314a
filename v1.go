package guuid

import (
	"encoding/binary"
	"fmt"
	"strings"
)

type nodeKind byte

const (
	nodeDefault nodeKind = iota
	nodeRandom
	nodeCustom
)

// Node selects the source of the 48-bit node field of a UUIDv1.
type Node struct {
	kind   nodeKind
	custom string
}

var (
	// DefaultNode uses the generator's hardware address, or a random node
	// when none is available.
	DefaultNode = Node{kind: nodeDefault}

	// RandomNode uses 6 random bytes with the multicast bit set.
	RandomNode = Node{kind: nodeRandom}
)

// CustomNode uses the given 12 hex digits as the node. Colons are ignored,
// so "b6:00:cd:ca:75:c7" is accepted.
func CustomNode(s string) Node {
	return Node{kind: nodeCustom, custom: s}
}

// ClockSeq selects the source of the 14-bit clock sequence of a UUIDv1.
type ClockSeq struct {
	custom bool
	seq    int
}

// RandomClockSeq draws the clock sequence from the random source.
var RandomClockSeq = ClockSeq{}

// CustomClockSeq uses seq verbatim. It must fit in 14 bits.
func CustomClockSeq(seq int) ClockSeq {
	return ClockSeq{custom: true, seq: seq}
}

// parseNode decodes a custom node string into its 6 bytes.
func parseNode(s string) ([6]byte, error) {
	var node [6]byte

	digits := strings.ReplaceAll(s, ":", "")
	if len(digits) != 12 {
		return node, fmt.Errorf("%w: %q has %d digits", ErrInvalidNode, s, len(digits))
	}
	for i := 0; i < 12; i++ {
		v, ok := fromHexChar(digits[i])
		if !ok {
			return node, fmt.Errorf("%w: %q contains %q", ErrInvalidNode, s, digits[i])
		}
		if i%2 == 0 {
			node[i/2] = v << 4
		} else {
			node[i/2] |= v
		}
	}
	return node, nil
}

func (c ClockSeq) validate() error {
	if c.custom && (c.seq < 0 || c.seq > 0x3fff) {
		return fmt.Errorf("%w: got %d", ErrInvalidClockSeq, c.seq)
	}
	return nil
}

// NewV1 generates a time-based UUID with DefaultNode and RandomClockSeq.
func (g *Generator) NewV1() (UUID, error) {
	return g.NewV1Custom(DefaultNode, RandomClockSeq)
}

// NewV1Custom generates a time-based UUID from the given node and clock
// sequence sources. Custom inputs are validated before anything else is done.
func (g *Generator) NewV1Custom(node Node, seq ClockSeq) (UUID, error) {
	var uuid UUID

	var custom [6]byte
	if node.kind == nodeCustom {
		n, err := parseNode(node.custom)
		if err != nil {
			return Nil, err
		}
		custom = n
	}
	if err := seq.validate(); err != nil {
		return Nil, err
	}

	var nodeID [6]byte
	switch node.kind {
	case nodeCustom:
		nodeID = custom
	case nodeRandom:
		n, err := g.randomNode()
		if err != nil {
			return Nil, err
		}
		nodeID = n
	default:
		n, err := g.defaultNode()
		if err != nil {
			return Nil, err
		}
		nodeID = n
	}

	clockSeq := uint16(seq.seq)
	if !seq.custom {
		var b [2]byte
		if err := g.readRandom(b[:]); err != nil {
			return Nil, err
		}
		clockSeq = binary.BigEndian.Uint16(b[:]) & 0x3fff
	}

	// 100ns ticks since 1582-10-15
	now := uint64(gregorianOffset + 10*g.now().UnixMicro())

	timeLow := uint32(now & 0xffffffff)
	timeMid := uint16((now >> 32) & 0xffff)
	timeHi := uint16((now >> 48) & 0x0fff)

	binary.BigEndian.PutUint32(uuid[0:], timeLow)
	binary.BigEndian.PutUint16(uuid[4:], timeMid)
	binary.BigEndian.PutUint16(uuid[6:], timeHi|0x1000)   // version 1
	binary.BigEndian.PutUint16(uuid[8:], clockSeq|0x8000) // variant 10
	copy(uuid[10:], nodeID[:])

	return uuid, nil
}

// randomNode draws 6 random bytes and sets the multicast bit so the node can
// never equal a real IEEE 802 address (RFC 9562, section 6.10).
func (g *Generator) randomNode() ([6]byte, error) {
	var node [6]byte
	if err := g.readRandom(node[:]); err != nil {
		return node, err
	}
	node[0] |= 0x01
	return node, nil
}

func (g *Generator) defaultNode() ([6]byte, error) {
	var node [6]byte
	if g.hwAddr != nil {
		if addr, err := g.hwAddr(); err == nil && len(addr) >= 6 {
			copy(node[:], addr)
			return node, nil
		}
	}
	return g.randomNode()
}

// NewV1 generates a time-based UUID using the default generator.
func NewV1() (UUID, error) {
	return defaultGenerator.NewV1()
}

// NewV1Custom is like Generator.NewV1Custom using the default generator.
func NewV1Custom(node Node, seq ClockSeq) (UUID, error) {
	return defaultGenerator.NewV1Custom(node, seq)
}
