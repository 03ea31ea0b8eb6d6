package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercent_Sequence(t *testing.T) {
	want := []int{0, 17, 33, 50, 67, 83, 100}
	prev := -1
	for g := 1; g <= 7; g++ {
		got := ProgressPercent(g)
		assert.Equal(t, want[g-1], got, "gate %d", g)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestProgressPercent_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, 0, ProgressPercent(-4))
	assert.Equal(t, 100, ProgressPercent(12))
}

func TestClampGate(t *testing.T) {
	assert.Equal(t, 1, ClampGate(0))
	assert.Equal(t, 4, ClampGate(4))
	assert.Equal(t, 7, ClampGate(99))
}

func TestGate_CatalogueIsOrdered(t *testing.T) {
	for i, g := range Gates {
		assert.Equal(t, i+1, g.Number)
		assert.NotEmpty(t, g.Short)
	}
	assert.Equal(t, "Closeout", Gate(7).Short)
	assert.Equal(t, "Identification", Gate(-1).Short)
}
