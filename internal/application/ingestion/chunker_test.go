package ingestion_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elimu-hub/internal/application/ingestion"
)

func TestChunk_ShortTextIsOneChunk(t *testing.T) {
	spans := ingestion.Chunk("  Numbers up to 100.  ", 1000, 200)
	require.Len(t, spans, 1)
	assert.Equal(t, "Numbers up to 100.", spans[0].Content)
}

func TestChunk_EmptyText(t *testing.T) {
	assert.Empty(t, ingestion.Chunk("   \n ", 1000, 200))
}

func TestChunk_BreaksOnSentenceAndOverlaps(t *testing.T) {
	sentence := "Learners count objects in groups of ten. " // 41 runes
	text := strings.Repeat(sentence, 60)                   // 2460 runes

	spans := ingestion.Chunk(text, 1000, 200)
	require.GreaterOrEqual(t, len(spans), 3)

	for i, sp := range spans {
		assert.LessOrEqual(t, sp.End-sp.Start, 1000, "chunk %d too long", i)
		if sp.End < len([]rune(text)) {
			assert.True(t, strings.HasSuffix(sp.Content, "."), "chunk %d should end on a sentence", i)
		}
		if i > 0 {
			assert.Less(t, sp.Start, spans[i-1].End, "chunk %d should overlap the previous one", i)
			assert.Greater(t, sp.Start, spans[i-1].Start)
		}
	}
	assert.Equal(t, len([]rune(text)), spans[len(spans)-1].End, "last chunk reaches the end of the text")
}

func TestChunk_NeverExceedsSize(t *testing.T) {
	// Case 1: ". " starts exactly at the hard limit
	text := strings.Repeat("a", 100) + ". " + strings.Repeat("b", 150)
	spans := ingestion.Chunk(text, 100, 10)
	require.NotEmpty(t, spans)
	assert.Equal(t, 100, spans[0].End)

	// Case 2: the period is the last rune inside the limit, its space the first outside
	text = strings.Repeat("a", 99) + ". " + strings.Repeat("b", 150)
	spans = ingestion.Chunk(text, 100, 10)
	require.NotEmpty(t, spans)
	assert.Equal(t, 100, spans[0].End)

	// Case 3: a boundary that fits is still preferred
	text = strings.Repeat("a", 80) + ". " + strings.Repeat("b", 150)
	spans = ingestion.Chunk(text, 100, 10)
	require.NotEmpty(t, spans)
	assert.Equal(t, 82, spans[0].End)
	assert.Equal(t, strings.Repeat("a", 80)+".", spans[0].Content)

	for _, size := range []int{37, 64, 100, 256} {
		body := strings.Repeat("Pima urefu. Andika jibu! Je, ni sawa? ", 40)
		for i, sp := range ingestion.Chunk(body, size, size/4) {
			assert.LessOrEqual(t, sp.End-sp.Start, size, "size %d chunk %d", size, i)
		}
	}
}

func TestChunk_NoBoundaryFallsBackToHardLimit(t *testing.T) {
	text := strings.Repeat("x", 2500)
	spans := ingestion.Chunk(text, 1000, 200)

	require.Len(t, spans, 3)
	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, 1000, spans[0].End)
	assert.Equal(t, 800, spans[1].Start)
	assert.Equal(t, 1800, spans[1].End)
	assert.Equal(t, 1600, spans[2].Start)
	assert.Equal(t, 2500, spans[2].End)
}

func TestChunk_MultibyteRunes(t *testing.T) {
	text := strings.Repeat("Hisabati ni somo la nambari – ", 100)
	for _, sp := range ingestion.Chunk(text, 300, 50) {
		assert.True(t, strings.Contains(text, sp.Content))
	}
}
