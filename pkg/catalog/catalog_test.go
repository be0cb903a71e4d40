package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should parse a catalog written by the check stage", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "models_hotkeys.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
  "models": [
    {
      "modelName": "Akari",
      "modelID": "a1b2c3",
      "icon": "1F6E5A.png",
      "hotkeys": [
        {"hotkeyID": "hk-1", "name": "Wave", "type": "TriggerAnimation"}
      ]
    }
  ]
}`), 0644))

		c, err := Load(path)
		require.NoError(t, err)
		require.Len(t, c.Models, 1)
		assert.Equal(t, "Akari", c.Models[0].ModelName)
		require.Len(t, c.Models[0].Hotkeys, 1)
		assert.Equal(t, "Wave", c.Models[0].Hotkeys[0].Name)
	})

	t.Run("should fail with a named path when the file is missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope.json")
	})

	t.Run("should fail on malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models_hotkeys.json")
	c := &Catalog{Models: []Model{{ModelName: "Mio", ModelID: "m-1", Icon: "default.png"}}}

	require.NoError(t, c.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.Models, 1)
	assert.Equal(t, "Mio", loaded.Models[0].ModelName)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"models\"")
}
