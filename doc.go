// Package guuid generates and decodes Universally Unique Identifiers as
// defined by RFC 4122 and RFC 9562.
//
// Supported versions:
//   - UUIDv1: Gregorian timestamp, clock sequence and node
//   - UUIDv3: MD5 hash of a namespace and a name
//   - UUIDv4: random
//   - UUIDv5: SHA-1 hash of a namespace and a name
//   - UUIDv7: Unix millisecond timestamp followed by random bits
//
// Versions 2, 6 and 8 are never generated. Parse accepts any 128-bit value,
// whatever its version; FromBytes additionally requires a known version.
//
// Basic Usage:
//
//	// Generate a new UUIDv7
//	id, err := guuid.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(id.String())
//
//	// Name-based identifiers are deterministic
//	id := guuid.NewV5(guuid.NamespaceDNS, []byte("my.domain.com"))
//	fmt.Println(id) // 016c25fd-70e0-56fe-9d1a-56e80fa20b82
//
//	// Time-based identifier with a fixed node and clock sequence
//	id, err := guuid.NewV1Custom(guuid.CustomNode("b6:00:cd:ca:75:c7"), guuid.CustomClockSeq(15000))
//
//	// Parse a UUID from string
//	id, err := guuid.Parse("urn:uuid:f47ac10b-58cc-4372-a567-0e02b2c3d479")
//
//	// Render in another format
//	fmt.Println(id.Encode(guuid.FormatHex))
//
// Custom Generator:
//
// A Generator bundles the random source, clock and hardware address lookup.
// Tests can substitute deterministic versions:
//
//	gen := guuid.NewGenerator(
//	    guuid.WithRandReader(fixedReader),
//	    guuid.WithClock(func() time.Time { return fixed }),
//	)
//	id, err := gen.NewV1()
//
// Thread Safety:
//
// Generator has no mutable state and all functions are safe for concurrent
// use. UUIDv7 values created in the same millisecond are ordered randomly;
// use a MonotonicGenerator when strictly increasing values are required.
//
// Errors:
//
// Malformed input to Parse, FromBytes and the other decoders wraps
// ErrFormat. Invalid custom generation input (node, clock sequence, name
// bit length) wraps ErrValidation. Use errors.Is to test for either.
package guuid
