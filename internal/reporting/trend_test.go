package reporting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestChange(t *testing.T) {
	t.Run("zero previous is clamped", func(t *testing.T) {
		assert.Equal(t, "0%", Change(0, 0))
		assert.Equal(t, "100%", Change(50, 0))
		assert.Equal(t, "100%", Change(0.5, 0))
	})

	t.Run("values outside the band flatten to the boundary", func(t *testing.T) {
		assert.Equal(t, "100%", Change(300, 100))
		assert.Equal(t, "-100%", Change(-150, 50))
		assert.Equal(t, "-100%", Change(-50, 100))
	})

	t.Run("in-band values get one decimal", func(t *testing.T) {
		assert.Equal(t, "-50.0%", Change(50, 100))
		assert.Equal(t, "25.0%", Change(125, 100))
		assert.Equal(t, "100.0%", Change(200, 100))
		assert.Equal(t, "-100.0%", Change(0, 100))
		assert.Equal(t, "33.3%", Change(400, 300))
	})
}

func TestChangeInt(t *testing.T) {
	assert.Equal(t, "0%", ChangeInt(0, 0))
	assert.Equal(t, "100%", ChangeInt(10, 0))
	assert.Equal(t, "-20.0%", ChangeInt(80, 100))
}

func TestChangeDecimal(t *testing.T) {
	assert.Equal(t, "50.0%", ChangeDecimal(decimal.NewFromInt(150), decimal.NewFromInt(100)))
	assert.Equal(t, "0%", ChangeDecimal(decimal.Zero, decimal.Zero))
}
