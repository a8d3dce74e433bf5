package music

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	shortCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	shortCodeLength   = 6
)

// ShortCodeGenerator produces the 6-character alphanumeric codes embedded in
// deep links. Codes are random; uniqueness is enforced by the database
// constraint on musics.short_code and retried by the repository.
type ShortCodeGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShortCodeGenerator seeds a generator from the current time.
func NewShortCodeGenerator() *ShortCodeGenerator {
	return &ShortCodeGenerator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Generate returns a fresh 6-character code.
func (g *ShortCodeGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var b strings.Builder
	b.Grow(shortCodeLength)
	for i := 0; i < shortCodeLength; i++ {
		b.WriteByte(shortCodeAlphabet[g.rng.Intn(len(shortCodeAlphabet))])
	}
	return b.String()
}

// ValidShortCode reports whether s is a well-formed short code.
func ValidShortCode(s string) bool {
	if len(s) != shortCodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(shortCodeAlphabet, rune(s[i])) {
			return false
		}
	}
	return true
}
