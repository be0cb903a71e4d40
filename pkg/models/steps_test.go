package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSteps(t *testing.T) {
	steps := DefaultSteps("/usr/local/bin/vtsgen")

	require.Len(t, steps, 2)
	assert.Equal(t, "Check models and hotkeys", steps[0].Label)
	assert.Equal(t, []string{"check"}, steps[0].Args)
	assert.Equal(t, "Generate profile folders", steps[1].Label)
	assert.Equal(t, []string{"generate"}, steps[1].Args)
	for _, s := range steps {
		assert.Equal(t, "/usr/local/bin/vtsgen", s.Command)
		assert.Zero(t, s.Timeout)
	}
}
