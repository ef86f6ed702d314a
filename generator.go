package guuid

import (
	"crypto/rand"
	"errors"
	"io"
	"net"
	"time"
)

// Generator builds UUIDs from three host capabilities: a random source, a
// clock and a hardware address lookup. It holds no other state, so a single
// Generator may be shared by any number of goroutines.
type Generator struct {
	randReader io.Reader
	now        func() time.Time
	hwAddr     func() (net.HardwareAddr, error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithRandReader sets the random source. It defaults to crypto/rand.
func WithRandReader(r io.Reader) Option {
	return func(g *Generator) {
		g.randReader = r
	}
}

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithHardwareAddr sets the lookup used by DefaultNode. A lookup that fails
// or returns fewer than 6 bytes makes DefaultNode fall back to a random node.
func WithHardwareAddr(f func() (net.HardwareAddr, error)) Option {
	return func(g *Generator) {
		g.hwAddr = f
	}
}

// NewGenerator creates a Generator using crypto/rand, time.Now and the
// host's network interfaces unless overridden by opts.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		randReader: rand.Reader,
		now:        time.Now,
		hwAddr:     interfaceHardwareAddr,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewGeneratorWithReader creates a Generator with a custom random source.
// This is primarily useful for testing with deterministic random sources.
func NewGeneratorWithReader(r io.Reader) *Generator {
	return NewGenerator(WithRandReader(r))
}

// readRandom fills b from the generator's random source.
func (g *Generator) readRandom(b []byte) error {
	_, err := io.ReadFull(g.randReader, b)
	return err
}

var errNoHardwareAddr = errors.New("guuid: no usable hardware address")

// interfaceHardwareAddr returns the first non-zero hardware address of at
// least 6 bytes found on the host's network interfaces.
func interfaceHardwareAddr() (net.HardwareAddr, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	for _, iface := range ifaces {
		if len(iface.HardwareAddr) >= 6 && !isZero(iface.HardwareAddr[:6]) {
			return iface.HardwareAddr, nil
		}
	}
	return nil, errNoHardwareAddr
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// Must is a helper that wraps a call to a function returning (UUID, error)
// and panics if the error is non-nil. It is intended for use in variable
// initializations such as:
//
//	var id = guuid.Must(guuid.NewV4())
func Must(uuid UUID, err error) UUID {
	if err != nil {
		panic(err)
	}
	return uuid
}

// defaultGenerator is the package-level generator used by the New* functions
var defaultGenerator = NewGenerator()
