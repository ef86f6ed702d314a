package guuid

import (
	"encoding/base64"
	"encoding/hex"
)

// Format selects a textual encoding for Encode.
type Format int

const (
	// FormatString is the canonical 8-4-4-4-12 form.
	FormatString Format = iota
	// FormatHex is 32 contiguous hex digits.
	FormatHex
	// FormatURN is the canonical form prefixed with "urn:uuid:".
	FormatURN
)

// Encode renders the UUID as lowercase hex in the given format.
// Unrecognized formats fall back to FormatString.
func (u UUID) Encode(f Format) string {
	switch f {
	case FormatHex:
		return u.EncodeToHex()
	case FormatURN:
		return u.URN()
	default:
		return u.String()
	}
}

// URN returns the RFC 4122 URN form: urn:uuid:xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) URN() string {
	var buf [len(urnPrefix) + 36]byte
	copy(buf[:], urnPrefix)
	encodeHex(buf[len(urnPrefix):], u)
	return string(buf[:])
}

// EncodeToHex encodes the UUID to a hexadecimal string without hyphens
func (u UUID) EncodeToHex() string {
	return hex.EncodeToString(u[:])
}

// EncodeToBase64 encodes the UUID to a base64 string (URL-safe, no padding)
func (u UUID) EncodeToBase64() string {
	return base64.RawURLEncoding.EncodeToString(u[:])
}

// EncodeToBase64Std encodes the UUID to a standard base64 string
func (u UUID) EncodeToBase64Std() string {
	return base64.StdEncoding.EncodeToString(u[:])
}

// DecodeFromHex decodes exactly 32 hexadecimal digits to a UUID
func DecodeFromHex(s string) (UUID, error) {
	var uuid UUID
	if len(s) != 32 {
		return Nil, ErrInvalidFormat
	}
	if _, err := hex.Decode(uuid[:], []byte(s)); err != nil {
		return Nil, ErrInvalidFormat
	}
	return uuid, nil
}

// DecodeFromBase64 decodes a base64 string to UUID (URL-safe encoding).
// The decoded bytes are checked like FromBytes.
func DecodeFromBase64(s string) (UUID, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Nil, ErrInvalidFormat
	}
	return FromBytes(data)
}

// DecodeFromBase64Std decodes a standard base64 string to UUID
func DecodeFromBase64Std(s string) (UUID, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Nil, ErrInvalidFormat
	}
	return FromBytes(data)
}
