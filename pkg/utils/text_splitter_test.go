package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText_ShortInputSingleChunk(t *testing.T) {
	chunks := SplitText("hello world", 1000, 200)

	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestSplitText_ChunkSizeAndOverlap(t *testing.T) {
	text := strings.Repeat("a", 250)

	chunks := SplitText(text, 100, 20)

	// step is 80, so chunks start at 0, 80, 160; the third chunk
	// absorbs the tail and splitting stops there
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 90)
}

func TestSplitText_OverlapPreservesBoundaryContext(t *testing.T) {
	text := "0123456789abcdefghij"

	chunks := SplitText(text, 10, 4)

	require.GreaterOrEqual(t, len(chunks), 2)
	// tail of chunk N reappears at the head of chunk N+1
	assert.Equal(t, chunks[0][6:], chunks[1][:4])
}

func TestSplitText_OverlapLargerThanChunkDoesNotLoop(t *testing.T) {
	text := strings.Repeat("x", 50)

	chunks := SplitText(text, 10, 15)

	// step falls back to chunkSize, giving disjoint chunks
	require.Len(t, chunks, 5)
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplitText_MultibyteRunesStayIntact(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 30)

	chunks := SplitText(text, 40, 10)

	for _, c := range chunks {
		assert.NotContains(t, c, string(rune(0xFFFD)))
	}
}

func TestSplitText_NoDataLost(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)

	chunks := SplitText(text, 100, 20)

	reassembled := chunks[0]
	for _, c := range chunks[1:] {
		runes := []rune(c)
		overlap := 20
		if len(runes) < overlap {
			overlap = len(runes)
		}
		reassembled += string(runes[overlap:])
	}
	assert.Equal(t, text, reassembled)
}
