package guuid

import (
	"crypto/md5"
	"crypto/sha1"
	"fmt"
	"hash"
)

// Well known namespace IDs for name-based UUIDs (RFC 4122, appendix C).
var (
	NamespaceDNS  = MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	NamespaceURL  = MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")
	NamespaceOID  = MustParse("6ba7b812-9dad-11d1-80b4-00c04fd430c8")
	NamespaceX500 = MustParse("6ba7b814-9dad-11d1-80b4-00c04fd430c8")
)

// newHash hashes space followed by name and lays the first 16 bytes of the
// digest out as a UUID of the given version.
func newHash(h hash.Hash, space UUID, name []byte, version Version) UUID {
	var uuid UUID
	h.Write(space[:])
	h.Write(name)
	copy(uuid[:], h.Sum(nil))
	uuid[6] = (uuid[6] & 0x0f) | byte(version)<<4
	uuid[8] = (uuid[8] & 0x3f) | 0x80
	return uuid
}

// NewV3 returns the name-based UUID of name within space using MD5.
// The same space and name always produce the same UUID.
func NewV3(space UUID, name []byte) UUID {
	return newHash(md5.New(), space, name, VersionNameBasedMD5)
}

// NewV5 returns the name-based UUID of name within space using SHA-1.
func NewV5(space UUID, name []byte) UUID {
	return newHash(sha1.New(), space, name, VersionNameBasedSHA1)
}

// NewV3Bits is NewV3 for a name given as the first bitLen bits of name.
// Names are hashed in whole bytes, so bitLen must be a multiple of 8.
func NewV3Bits(space UUID, name []byte, bitLen int) (UUID, error) {
	b, err := wholeBytes(name, bitLen)
	if err != nil {
		return Nil, err
	}
	return NewV3(space, b), nil
}

// NewV5Bits is NewV5 for a name given as the first bitLen bits of name.
func NewV5Bits(space UUID, name []byte, bitLen int) (UUID, error) {
	b, err := wholeBytes(name, bitLen)
	if err != nil {
		return Nil, err
	}
	return NewV5(space, b), nil
}

func wholeBytes(name []byte, bitLen int) ([]byte, error) {
	if bitLen < 0 || bitLen%8 != 0 {
		return nil, fmt.Errorf("%w: bit length %d", ErrInvalidName, bitLen)
	}
	if bitLen/8 > len(name) {
		return nil, fmt.Errorf("%w: bit length %d exceeds %d bytes", ErrInvalidName, bitLen, len(name))
	}
	return name[:bitLen/8], nil
}
