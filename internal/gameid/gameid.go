// Package gameid mints identifiers for game sessions. An id is a UUIDv7
// rendered as 26 characters of Crockford base32, so ids sort by creation
// time and read cleanly in log output.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32 alphabet: lowercase, no i, l, o or u.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random portion of an id. Tests inject a
// deterministic source; production uses crypto/rand.
type RandSource interface {
	Intn(n int) int
}

// Generator produces game ids, optionally from an injected RandSource.
type Generator struct {
	randSource RandSource
}

func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate returns a fresh id using crypto/rand.
func Generate() string {
	return NewGenerator(nil).Generate()
}

func (g *Generator) Generate() string {
	return encodeBase32(g.newUUIDv7())
}

// newUUIDv7 builds a 128-bit UUIDv7: a 48-bit millisecond timestamp,
// then version and variant bits over random data.
func (g *Generator) newUUIDv7() [16]byte {
	var uuid [16]byte

	now := time.Now().UnixMilli()
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.randSource.Intn(256))
		}
	} else {
		if _, err := rand.Read(uuid[6:]); err != nil {
			panic("failed to generate random bytes: " + err.Error())
		}
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10

	return uuid
}

// encodeBase32 renders 128 bits as 26 characters, most significant bits
// first. 128 is not a multiple of 5, so the final character carries the
// trailing 3 bits padded with zeros.
func encodeBase32(data [16]byte) string {
	var out [26]byte
	var acc uint
	bits := 0
	n := 0
	for _, b := range data {
		acc = acc<<8 | uint(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[n] = alphabet[(acc>>uint(bits))&0x1f]
			n++
		}
	}
	out[n] = alphabet[(acc<<uint(5-bits))&0x1f]
	return string(out[:])
}

// Validate reports whether id has the shape Generate produces.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("game id must be exactly 26 characters, got %d", len(id))
	}
	// The first character encodes the top 5 bits of the timestamp, which
	// stay below 8 for any realistic clock.
	if id[0] > '7' {
		return fmt.Errorf("game id first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
