package guuid

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// UUID represents a Universally Unique Identifier as defined by RFC 4122 and RFC 9562.
// The UUID is a 128-bit (16 byte) value that is used to uniquely identify information.
type UUID [16]byte

// Version represents the UUID version
type Version byte

const (
	VersionUnknown Version = iota
	VersionTimeBased
	VersionDCESecurity
	VersionNameBasedMD5
	VersionRandom
	VersionNameBasedSHA1
	_
	VersionTimeSorted // UUIDv7
)

func (v Version) String() string {
	if v == VersionUnknown {
		return "Unknown"
	}
	return fmt.Sprintf("V%d", byte(v))
}

// Variant represents the UUID variant
type Variant byte

const (
	VariantNCS Variant = iota
	VariantRFC4122
	VariantMicrosoft
	VariantFuture
)

func (v Variant) String() string {
	switch v {
	case VariantRFC4122:
		return "RFC4122"
	case VariantMicrosoft:
		return "Microsoft"
	case VariantFuture:
		return "Future"
	default:
		return "NCS"
	}
}

// gregorianOffset is the number of 100ns intervals between the UUID epoch
// (October 15, 1582) and the Unix epoch (January 1, 1970).
const gregorianOffset = 122192928000000000

const urnPrefix = "urn:uuid:"

// Nil is the nil UUID (all zeros)
var Nil UUID

// Version returns the version of the UUID. Version nibbles this package does
// not know (0, 6, 8 and above) are reported as VersionUnknown.
func (u UUID) Version() Version {
	switch v := Version(u[6] >> 4); v {
	case VersionTimeBased, VersionDCESecurity, VersionNameBasedMD5,
		VersionRandom, VersionNameBasedSHA1, VersionTimeSorted:
		return v
	default:
		return VersionUnknown
	}
}

// Variant returns the variant of the UUID
func (u UUID) Variant() Variant {
	switch {
	case (u[8] & 0x80) == 0x00:
		return VariantNCS
	case (u[8] & 0xc0) == 0x80:
		return VariantRFC4122
	case (u[8] & 0xe0) == 0xc0:
		return VariantMicrosoft
	default:
		return VariantFuture
	}
}

// GregorianTime returns the 60-bit timestamp of a time-based UUID in 100ns
// intervals since 15 Oct 1582. The fields are read regardless of version.
func (u UUID) GregorianTime() uint64 {
	low := uint64(binary.BigEndian.Uint32(u[0:4]))
	mid := uint64(binary.BigEndian.Uint16(u[4:6]))
	high := uint64(binary.BigEndian.Uint16(u[6:8]) & 0x0fff)
	return high<<48 | mid<<32 | low
}

// UnixMicro returns the GregorianTime of the UUID as microseconds since the
// Unix epoch.
func (u UUID) UnixMicro() int64 {
	return (int64(u.GregorianTime()) - gregorianOffset) / 10
}

// UnixMilli returns the top 48 bits of the UUID as milliseconds since the
// Unix epoch, which is the timestamp of a UUIDv7.
func (u UUID) UnixMilli() int64 {
	return int64(binary.BigEndian.Uint64(u[0:8]) >> 16)
}

// Time returns the embedded timestamp of a UUIDv1 or UUIDv7.
// For any other version it returns the zero time.
func (u UUID) Time() time.Time {
	switch u.Version() {
	case VersionTimeBased:
		return time.UnixMicro(u.UnixMicro())
	case VersionTimeSorted:
		return time.UnixMilli(u.UnixMilli())
	default:
		return time.Time{}
	}
}

// ClockSequence returns the 14-bit clock sequence that follows the variant bits.
func (u UUID) ClockSequence() int {
	return int(binary.BigEndian.Uint16(u[8:10]) & 0x3fff)
}

// Node returns the trailing 48 bits as 12 lowercase hex digits.
func (u UUID) Node() string {
	return hex.EncodeToString(u[10:])
}

// String returns the canonical string representation of the UUID
// in the format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	var buf [36]byte
	encodeHex(buf[:], u)
	return string(buf[:])
}

// encodeHex encodes UUID to its canonical hex representation
func encodeHex(dst []byte, u UUID) {
	hex.Encode(dst[0:8], u[0:4])
	dst[8] = '-'
	hex.Encode(dst[9:13], u[4:6])
	dst[13] = '-'
	hex.Encode(dst[14:18], u[6:8])
	dst[18] = '-'
	hex.Encode(dst[19:23], u[8:10])
	dst[23] = '-'
	hex.Encode(dst[24:36], u[10:16])
}

// Parse decodes a UUID from text. An optional "urn:uuid:" prefix is removed,
// then exactly 32 hex digits of either case must follow. Dashes are ignored
// wherever they appear among the digits; anything after the 32nd digit is an
// error. The version and variant bits are not checked.
func Parse(s string) (UUID, error) {
	var uuid UUID

	s = strings.TrimPrefix(s, urnPrefix)

	i, n := 0, 0
	for n < 32 {
		if i >= len(s) {
			return Nil, fmt.Errorf("%w: found %d of 32 hex digits", ErrInvalidFormat, n)
		}
		c := s[i]
		i++
		if c == '-' {
			continue
		}
		v, ok := fromHexChar(c)
		if !ok {
			return Nil, fmt.Errorf("%w: unexpected character %q at offset %d", ErrInvalidFormat, c, i-1)
		}
		if n%2 == 0 {
			uuid[n/2] = v << 4
		} else {
			uuid[n/2] |= v
		}
		n++
	}
	if i != len(s) {
		return Nil, fmt.Errorf("%w: trailing input %q", ErrInvalidFormat, s[i:])
	}
	return uuid, nil
}

// fromHexChar converts a hex character into its value.
func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// MustParse is like Parse but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse(s string) UUID {
	uuid, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("guuid: Parse(%q): %v", s, err))
	}
	return uuid
}

// Bytes returns the UUID as a byte slice
func (u UUID) Bytes() []byte {
	return u[:]
}

// FromBytes creates a UUID from its 16-byte big-endian representation.
// Unlike Parse it rejects values whose version is unknown.
func FromBytes(b []byte) (UUID, error) {
	var uuid UUID
	if len(b) != 16 {
		return Nil, ErrInvalidLength
	}
	copy(uuid[:], b)
	if uuid.Version() == VersionUnknown {
		return Nil, fmt.Errorf("%w: version nibble %d", ErrInvalidVersion, uuid[6]>>4)
	}
	return uuid, nil
}

// MustFromBytes is like FromBytes but panics on error
func MustFromBytes(b []byte) UUID {
	uuid, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return uuid
}

// IsNil returns true if the UUID is the nil UUID (all zeros)
func (u UUID) IsNil() bool {
	return u == Nil
}

// MarshalText implements the encoding.TextMarshaler interface
func (u UUID) MarshalText() ([]byte, error) {
	var buf [36]byte
	encodeHex(buf[:], u)
	return buf[:], nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (u *UUID) UnmarshalText(data []byte) error {
	id, err := Parse(string(data))
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (u UUID) MarshalBinary() ([]byte, error) {
	return u[:], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
// It applies the same checks as FromBytes.
func (u *UUID) UnmarshalBinary(data []byte) error {
	id, err := FromBytes(data)
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// Compare returns an integer comparing two UUIDs lexicographically.
// The result will be 0 if u==other, -1 if u < other, and +1 if u > other.
func (u UUID) Compare(other UUID) int {
	for i := 0; i < 16; i++ {
		if u[i] < other[i] {
			return -1
		}
		if u[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Equal returns true if u and other represent the same UUID
func (u UUID) Equal(other UUID) bool {
	return u == other
}
