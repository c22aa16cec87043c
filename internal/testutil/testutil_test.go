package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDGenerator_ReturnsSameID(t *testing.T) {
	gen := NewFixedIDGenerator("session-123")

	assert.Equal(t, "session-123", gen.Generate())
	assert.Equal(t, "session-123", gen.Generate())
}

func TestFixedIDGenerator_EmptyIDDefault(t *testing.T) {
	gen := NewFixedIDGenerator("")
	assert.Equal(t, "test-session-default", gen.Generate())
}

func TestScriptedSource_ReturnsValuesInOrder(t *testing.T) {
	src := NewScriptedSource(3, 0, 15)

	assert.Equal(t, 3, src.IntN(16))
	assert.Equal(t, 0, src.IntN(16))
	assert.Equal(t, 1, src.Remaining())
	assert.Equal(t, 15, src.IntN(16))
	assert.Equal(t, 0, src.Remaining())
}

func TestScriptedSource_PanicsWhenExhausted(t *testing.T) {
	src := NewScriptedSource(1)
	src.IntN(16)

	assert.Panics(t, func() { src.IntN(16) })
}

func TestScriptedSource_PanicsOutOfRange(t *testing.T) {
	src := NewScriptedSource(16)
	assert.Panics(t, func() { src.IntN(16) })
}
