package service

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand/v2"

	"github.com/google/uuid"
)

// IDStrategy indica qual fonte de aleatoriedade acabou sendo usada.
// Alguns ambientes (Android antigo, WebViews) não expõem primitivas
// criptográficas; gerar o id nunca pode derrubar o checkout.
type IDStrategy string

const (
	IDStrategyUUID        IDStrategy = "uuid"
	IDStrategyRandomBytes IDStrategy = "random_bytes"
	IDStrategyPseudo      IDStrategy = "pseudo"
)

// IdentifierGenerator produces client-side booking identifiers shaped like
// RFC 4122 v4 UUIDs. The two function fields exist so tests can force each
// fallback path deterministically.
type IdentifierGenerator struct {
	newUUID  func() (uuid.UUID, error)
	randRead func(p []byte) (n int, err error)
}

func NewIdentifierGenerator() *IdentifierGenerator {
	return &IdentifierGenerator{
		newUUID:  uuid.NewRandom,
		randRead: rand.Read,
	}
}

// Generate never fails: it degrades from the crypto-backed UUID primitive
// to raw secure bytes, and in last resort to a pseudo-random source.
func (g *IdentifierGenerator) Generate() (string, IDStrategy) {
	if id, err := g.newUUID(); err == nil {
		return id.String(), IDStrategyUUID
	}

	var b [16]byte
	if _, err := g.randRead(b[:]); err == nil {
		return formatUUIDv4(b), IDStrategyRandomBytes
	}

	for i := range b {
		b[i] = byte(mrand.UintN(256))
	}
	return formatUUIDv4(b), IDStrategyPseudo
}

// formatUUIDv4 forces the version nibble and variant bits before grouping
// the bytes as 8-4-4-4-12 hex.
func formatUUIDv4(b [16]byte) string {
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	h := hex.EncodeToString(b[:])
	return h[0:8] + "-" + h[8:12] + "-" + h[12:16] + "-" + h[16:20] + "-" + h[20:32]
}
