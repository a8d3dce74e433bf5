package music

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateShape(t *testing.T) {
	g := NewShortCodeGenerator()
	for i := 0; i < 100; i++ {
		code := g.Generate()
		assert.Len(t, code, shortCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(shortCodeAlphabet, r), "unexpected rune %q in %q", r, code)
		}
	}
}

func TestGenerateVaries(t *testing.T) {
	g := NewShortCodeGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[g.Generate()] = struct{}{}
	}
	// 50 draws from a 62^6 space collapsing to a handful would mean a broken source.
	assert.Greater(t, len(seen), 40)
}

func TestValidShortCode(t *testing.T) {
	assert.True(t, ValidShortCode("aB3xYz"))
	assert.False(t, ValidShortCode(""))
	assert.False(t, ValidShortCode("abc"))
	assert.False(t, ValidShortCode("toolong"))
	assert.False(t, ValidShortCode("ab-cde"))
	assert.False(t, ValidShortCode("ab cde"))
}
