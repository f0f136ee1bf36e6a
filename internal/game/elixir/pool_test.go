package elixir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegenOverOneSecond(t *testing.T) {
	p := NewPool()
	start := p.Amount

	for i := 0; i < 60; i++ {
		p.Regen(1.0 / 60.0)
	}

	assert.InDelta(t, start+1.0, p.Amount, 0.02)
}

func TestRegenCapsAtMax(t *testing.T) {
	p := NewPool()
	p.Amount = 9.5

	for i := 0; i < 600; i++ {
		p.Regen(1.0 / 60.0)
	}

	assert.Equal(t, p.Max, p.Amount)
}

func TestSpendSuccess(t *testing.T) {
	p := NewPool()
	p.Amount = 5.0

	assert.True(t, p.Spend(3.0))
	assert.InDelta(t, 2.0, p.Amount, 1e-9)
}

func TestSpendInsufficientLeavesPoolUnchanged(t *testing.T) {
	p := NewPool()
	p.Amount = 2.0

	assert.False(t, p.Spend(3.0))
	assert.Equal(t, 2.0, p.Amount)
}

func TestSpendExactAmount(t *testing.T) {
	p := NewPool()
	p.Amount = 4.0

	assert.True(t, p.Spend(4.0))
	assert.Equal(t, 0.0, p.Amount)
	assert.False(t, p.Spend(0.5))
}
