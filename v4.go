package guuid

// NewV4 generates a random UUID: 122 bits from the random source with the
// version and variant bits overwritten.
func (g *Generator) NewV4() (UUID, error) {
	var uuid UUID
	if err := g.readRandom(uuid[:]); err != nil {
		return Nil, err
	}
	uuid[6] = (uuid[6] & 0x0f) | 0x40 // version 4
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10
	return uuid, nil
}

// NewV4 generates a random UUID using the default generator.
func NewV4() (UUID, error) {
	return defaultGenerator.NewV4()
}
