package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestSpan_Text(t *testing.T) {
	source := []byte("file:src/*.go")

	t.Run("Keyword span", func(t *testing.T) {
		span := Span{Start: 0, End: 4}
		assert.Equal(t, "file", span.Text(source))
	})

	t.Run("Pattern span", func(t *testing.T) {
		span := Span{Start: 5, End: 13}
		assert.Equal(t, "src/*.go", span.Text(source))
	})

	t.Run("Zero span", func(t *testing.T) {
		span := Span{Start: 0, End: 0}
		assert.Equal(t, "", span.Text(source), "zero span should return empty string")
	})

	t.Run("Negative start", func(t *testing.T) {
		span := Span{Start: -5, End: 3}
		assert.Equal(t, "", span.Text(source), "negative start should return empty string")
	})

	t.Run("Start greater than End", func(t *testing.T) {
		span := Span{Start: 10, End: 5}
		assert.Equal(t, "", span.Text(source), "start > end should return empty string")
	})

	t.Run("End beyond source length", func(t *testing.T) {
		span := Span{Start: 0, End: 100}
		assert.Equal(t, "", span.Text(source), "end > len(source) should return empty string")
	})

	t.Run("Empty source", func(t *testing.T) {
		span := Span{Start: 0, End: 5}
		assert.Equal(t, "", span.Text([]byte("")), "should handle empty source gracefully")
	})
}

func TestSpan_IsZero(t *testing.T) {
	assert.True(t, Span{}.IsZero())
	assert.False(t, Span{Start: 0, End: 5}.IsZero())
	assert.False(t, Span{Start: -1, End: -1}.IsZero(), "negative values should not be considered zero")
}

func TestSpan_Len(t *testing.T) {
	assert.Equal(t, 5, Span{Start: 2, End: 7}.Len())
	assert.Equal(t, 0, Span{Start: 7, End: 2}.Len())
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "scopes.txt:3:14", Position{Filename: "scopes.txt", Line: 3, Column: 14}.String())
	assert.Equal(t, "1:6", Position{Line: 1, Column: 6}.String())
}
