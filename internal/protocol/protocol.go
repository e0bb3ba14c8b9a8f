// Package protocol produces the human-facing tracking code handed to a
// citizen when a manifestation is filed.
package protocol

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

const DefaultPrefix = "OUV"

// Pattern matches a well-formed protocol, e.g. OUV-2026-0481.
var Pattern = regexp.MustCompile(`^[A-Z]{2,6}-\d{4}-\d{4}$`)

type Generator struct {
	prefix string
	now    func() time.Time
	intN   func(int) int
}

func NewGenerator(prefix string) *Generator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Generator{
		prefix: prefix,
		now:    time.Now,
		intN:   rand.IntN,
	}
}

// Generate encodes the current year plus a zero-padded random 4-digit suffix.
// Uniqueness is not guaranteed here: the store enforces it with a unique
// constraint and the caller retries on collision.
func (g *Generator) Generate() string {
	return fmt.Sprintf("%s-%d-%04d", g.prefix, g.now().Year(), g.intN(10000))
}
