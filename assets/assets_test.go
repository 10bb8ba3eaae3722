package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLore(t *testing.T) {
	for n := 1; n < len(LevelLore); n++ {
		assert.NotEmpty(t, Lore(n), "level %d", n)
	}
	assert.Equal(t, FallbackLore, Lore(0))
	assert.Equal(t, FallbackLore, Lore(len(LevelLore)))
}
