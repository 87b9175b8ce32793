package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short", 100, 10)
	assert.Equal(t, []string{"short"}, chunks)
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 chars
	chunks := SplitText(text, 40, 10)

	assert.Greater(t, len(chunks), 1)
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		// Each chunk starts with the tail of the previous one.
		assert.Equal(t, prev[len(prev)-10:], chunks[i][:10])
	}
	last := chunks[len(chunks)-1]
	assert.True(t, strings.HasSuffix(text, last))
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := SplitText(text, 10, 20)

	// Degenerate overlap falls back to non-overlapping chunks.
	assert.Len(t, chunks, 5)
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplitTextRuneSafe(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 20)
	for _, chunk := range SplitText(text, 30, 5) {
		// Splitting on rune boundaries never produces a broken code point.
		assert.True(t, utf8.ValidString(chunk))
		assert.NotContains(t, chunk, string(utf8.RuneError))
	}
}
