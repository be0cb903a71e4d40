package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirabox/vtsgen/pkg/catalog"
	"github.com/mirabox/vtsgen/pkg/models"
	"github.com/mirabox/vtsgen/pkg/util"
	"github.com/mirabox/vtsgen/pkg/uuidstore"
)

func init() {
	util.IsQuiet = true
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	store, err := uuidstore.Open(filepath.Join(t.TempDir(), "profile_uuids.json"))
	require.NoError(t, err)
	return NewGenerator(filepath.Join(t.TempDir(), "out"), "", store)
}

func hotkeys(n int) []catalog.Hotkey {
	hks := make([]catalog.Hotkey, n)
	for i := range hks {
		hks[i] = catalog.Hotkey{HotkeyID: fmt.Sprintf("hk-%d", i), Name: fmt.Sprintf("Hotkey %d", i), Type: "TriggerAnimation"}
	}
	return hks
}

func modelEntries(n int) []catalog.Model {
	entries := make([]catalog.Model, n)
	for i := range entries {
		entries[i] = catalog.Model{ModelName: fmt.Sprintf("Model %d", i), ModelID: fmt.Sprintf("id-%d", i)}
	}
	return entries
}

func readManifest(t *testing.T, dir string) Manifest {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)
	var m Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestChunkHotkeys(t *testing.T) {
	t.Run("should keep an empty model on a single empty page", func(t *testing.T) {
		chunks := chunkHotkeys(nil)
		require.Len(t, chunks, 1)
		assert.Empty(t, chunks[0])
	})

	t.Run("should fit a small model on one page", func(t *testing.T) {
		chunks := chunkHotkeys(hotkeys(10))
		require.Len(t, chunks, 1)
		assert.Len(t, chunks[0], 10)
	})

	t.Run("should reserve a slot for the switch button on page one", func(t *testing.T) {
		chunks := chunkHotkeys(hotkeys(14))
		require.Len(t, chunks, 2)
		assert.Len(t, chunks[0], 13)
		assert.Len(t, chunks[1], 1)
	})

	t.Run("should spread a large model over first, middle and last pages", func(t *testing.T) {
		chunks := chunkHotkeys(hotkeys(30))
		require.Len(t, chunks, 3)
		assert.Len(t, chunks[0], 13)
		assert.Len(t, chunks[1], 13)
		assert.Len(t, chunks[2], 4)
	})
}

func TestChunkModels(t *testing.T) {
	t.Run("should split fifteen models once the rough estimate predicts two pages", func(t *testing.T) {
		chunks := chunkModels(modelEntries(15))
		require.Len(t, chunks, 2)
		assert.Len(t, chunks[0], 14)
		assert.Len(t, chunks[1], 1)
	})

	t.Run("should keep a dozen models on one page", func(t *testing.T) {
		chunks := chunkModels(modelEntries(12))
		require.Len(t, chunks, 1)
		assert.Len(t, chunks[0], 12)
	})

	t.Run("should split twenty models over two pages", func(t *testing.T) {
		chunks := chunkModels(modelEntries(20))
		require.Len(t, chunks, 2)
		assert.Len(t, chunks[0], 14)
		assert.Len(t, chunks[1], 6)
	})
}

func TestGenerateModelProfile(t *testing.T) {
	g := newTestGenerator(t)
	m := catalog.Model{ModelName: "Akari", ModelID: "id-1", Hotkeys: hotkeys(30)}
	require.NoError(t, os.MkdirAll(g.OutputDir, 0755))

	folder, err := g.GenerateModelProfile(m)
	require.NoError(t, err)

	modelUUID, err := g.Store.ModelUUID("Akari")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(g.OutputDir, modelUUID+models.ProfileSuffix), folder)

	root := readManifest(t, folder)
	assert.Equal(t, "Akari", root.Name)
	assert.Equal(t, modelUUID, root.ProfileUUID)
	assert.Empty(t, root.Actions)
	require.NotNil(t, root.Pages)
	require.Len(t, root.Pages.Pages, 3)
	assert.Equal(t, root.Pages.Pages[0], root.Pages.Current)

	pageDir := func(i int) string {
		return filepath.Join(folder, "profiles", root.Pages.Pages[i])
	}

	t.Run("page one should carry switch, home and next buttons", func(t *testing.T) {
		page := readManifest(t, pageDir(0))
		switchBtn, ok := page.Actions[prevSlot]
		require.True(t, ok, "switch button should sit on the freed previous-arrow corner")
		assert.Equal(t, models.ActionSwitchModel, switchBtn.UUID)
		assert.Equal(t, "id-1", switchBtn.Settings["selectModelID"])

		homeBtn, ok := page.Actions[homeSlot]
		require.True(t, ok)
		assert.Equal(t, models.ActionProfileRotate, homeBtn.UUID)
		assert.Equal(t, g.Store.Home, homeBtn.Settings["ProfileUUID"])

		nextBtn, ok := page.Actions[nextSlot]
		require.True(t, ok)
		assert.Equal(t, models.ActionPageNext, nextBtn.UUID)
	})

	t.Run("middle page should carry both arrows and hotkeys", func(t *testing.T) {
		page := readManifest(t, pageDir(1))
		assert.Equal(t, models.ActionPagePrevious, page.Actions[prevSlot].UUID)
		assert.Equal(t, models.ActionPageNext, page.Actions[nextSlot].UUID)
		// 13 hotkeys + 2 arrows
		assert.Len(t, page.Actions, 15)
	})

	t.Run("last page should have no next arrow", func(t *testing.T) {
		page := readManifest(t, pageDir(2))
		assert.Equal(t, models.ActionPagePrevious, page.Actions[prevSlot].UUID)
		_, hasNext := page.Actions[nextSlot]
		assert.False(t, hasNext)
	})

	t.Run("hotkey buttons should address the plugin", func(t *testing.T) {
		page := readManifest(t, pageDir(1))
		for slot, btn := range page.Actions {
			if btn.UUID != models.ActionTriggerHotkey {
				continue
			}
			assert.Equal(t, "127.0.0.1", btn.Settings["ip"], "slot %s", slot)
			assert.Equal(t, "8001", btn.Settings["port"], "slot %s", slot)
			assert.NotEmpty(t, btn.Settings["selectHotKeyID"], "slot %s", slot)
		}
	})
}

func TestGenerateModelProfileWithoutHotkeys(t *testing.T) {
	g := newTestGenerator(t)
	require.NoError(t, os.MkdirAll(g.OutputDir, 0755))

	folder, err := g.GenerateModelProfile(catalog.Model{ModelName: "Mio", ModelID: "id-2"})
	require.NoError(t, err)

	root := readManifest(t, folder)
	require.NotNil(t, root.Pages)
	require.Len(t, root.Pages.Pages, 1)

	page := readManifest(t, filepath.Join(folder, "profiles", root.Pages.Pages[0]))
	// only switch and home, no arrows
	assert.Len(t, page.Actions, 2)
}

func TestGenerateHomeProfile(t *testing.T) {
	t.Run("single page home has no arrows", func(t *testing.T) {
		g := newTestGenerator(t)
		require.NoError(t, os.MkdirAll(g.OutputDir, 0755))

		folder, err := g.GenerateHomeProfile(modelEntries(3))
		require.NoError(t, err)

		root := readManifest(t, folder)
		assert.Equal(t, "Home", root.Name)
		assert.Equal(t, g.Store.Home, root.ProfileUUID)
		require.Len(t, root.Pages.Pages, 1)

		page := readManifest(t, filepath.Join(folder, "profiles", root.Pages.Pages[0]))
		// page manifests are always numbered, only the root is plain Home
		assert.Equal(t, "Home-1", page.Name)
		assert.Len(t, page.Actions, 3)
		for _, btn := range page.Actions {
			assert.Equal(t, models.ActionProfileRotate, btn.UUID)
			assert.NotEmpty(t, btn.Settings["ProfileUUID"])
		}
	})

	t.Run("model buttons keep their stable profile UUIDs", func(t *testing.T) {
		g := newTestGenerator(t)
		require.NoError(t, os.MkdirAll(g.OutputDir, 0755))
		akariUUID, err := g.Store.ModelUUID("Model 0")
		require.NoError(t, err)

		folder, err := g.GenerateHomeProfile(modelEntries(1))
		require.NoError(t, err)

		root := readManifest(t, folder)
		page := readManifest(t, filepath.Join(folder, "profiles", root.Pages.Pages[0]))
		found := false
		for _, btn := range page.Actions {
			if btn.Name == "Model 0" {
				found = true
				assert.Equal(t, akariUUID, btn.Settings["ProfileUUID"])
			}
		}
		assert.True(t, found)
	})

	t.Run("twenty models paginate over two pages", func(t *testing.T) {
		g := newTestGenerator(t)
		require.NoError(t, os.MkdirAll(g.OutputDir, 0755))

		folder, err := g.GenerateHomeProfile(modelEntries(20))
		require.NoError(t, err)

		root := readManifest(t, folder)
		require.Len(t, root.Pages.Pages, 2)

		first := readManifest(t, filepath.Join(folder, "profiles", root.Pages.Pages[0]))
		assert.Equal(t, "Home-1", first.Name)
		assert.Equal(t, models.ActionPageNext, first.Actions[nextSlot].UUID)
		// page one reclaims the previous-arrow corner for a model button
		assert.Equal(t, models.ActionProfileRotate, first.Actions[prevSlot].UUID)
		assert.Len(t, first.Actions, 15) // 14 models + next arrow

		second := readManifest(t, filepath.Join(folder, "profiles", root.Pages.Pages[1]))
		assert.Equal(t, "Home-2", second.Name)
		assert.Equal(t, models.ActionPagePrevious, second.Actions[prevSlot].UUID)
		assert.Len(t, second.Actions, 7) // 6 models + previous arrow
	})
}

func TestGenerateAll(t *testing.T) {
	g := newTestGenerator(t)
	cat := &catalog.Catalog{Models: []catalog.Model{
		{ModelName: "Akari", ModelID: "id-1", Hotkeys: hotkeys(3)},
		{ModelName: "Mio", ModelID: "id-2", Hotkeys: hotkeys(5)},
	}}

	require.NoError(t, g.GenerateAll(cat))

	entries, err := os.ReadDir(g.OutputDir)
	require.NoError(t, err)
	profiles := 0
	for _, e := range entries {
		if e.IsDir() && filepath.Ext(e.Name()) == models.ProfileSuffix {
			profiles++
		}
	}
	assert.Equal(t, 3, profiles) // two models + home

	t.Run("regenerating wipes stale output", func(t *testing.T) {
		stale := filepath.Join(g.OutputDir, "stale.txt")
		require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))
		require.NoError(t, g.GenerateAll(cat))
		assert.False(t, util.PathExists(stale, false))
	})
}

func TestCopyToOfficial(t *testing.T) {
	g := newTestGenerator(t)
	cat := &catalog.Catalog{Models: []catalog.Model{{ModelName: "Akari", ModelID: "id-1"}}}
	require.NoError(t, g.GenerateAll(cat))

	official := filepath.Join(t.TempDir(), "StreamDock", "profiles")
	require.NoError(t, g.CopyToOfficial(official))

	entries, err := os.ReadDir(official)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // model + home

	t.Run("should replace an existing profile folder", func(t *testing.T) {
		modelUUID, err := g.Store.ModelUUID("Akari")
		require.NoError(t, err)
		marker := filepath.Join(official, modelUUID+models.ProfileSuffix, "stale.txt")
		require.NoError(t, os.WriteFile(marker, []byte("old"), 0644))

		require.NoError(t, g.CopyToOfficial(official))
		assert.False(t, util.PathExists(marker, false))
	})

	t.Run("should fail when nothing was generated", func(t *testing.T) {
		empty := NewGenerator(filepath.Join(t.TempDir(), "missing"), "", g.Store)
		assert.Error(t, empty.CopyToOfficial(official))
	})
}

func TestGridLayout(t *testing.T) {
	slots := allSlots()
	require.Len(t, slots, models.Columns*models.Rows)
	assert.Equal(t, "0,2", slots[0])
	assert.Equal(t, "4,0", slots[len(slots)-1])

	usable := usableSlots()
	assert.Len(t, usable, 13)
	assert.NotContains(t, usable, prevSlot)
	assert.NotContains(t, usable, nextSlot)
	assert.Contains(t, usable, homeSlot)
}
