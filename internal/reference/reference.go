package reference

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	hashids "github.com/speps/go-hashids/v2"
)

// Generator issues short public references for bookings and orders,
// e.g. "BC-7Q2MWX9A". References are opaque: they never expose row ids.
type Generator struct {
	h      *hashids.HashID
	prefix string
}

// Ambiguous characters (0/O, 1/I) are left out so references survive
// being read over the phone.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func NewGenerator(prefix, salt string) (*Generator, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 8
	hd.Alphabet = alphabet

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("init hashids: %w", err)
	}
	return &Generator{h: h, prefix: prefix}, nil
}

func (g *Generator) Generate() (string, error) {
	// Millisecond timestamp plus a random nonce keeps references unique
	// without a database round-trip.
	nonce := int64(uuid.New().ID())
	code, err := g.h.EncodeInt64([]int64{time.Now().UnixMilli(), nonce})
	if err != nil {
		return "", fmt.Errorf("encode reference: %w", err)
	}
	return fmt.Sprintf("%s-%s", g.prefix, code), nil
}
