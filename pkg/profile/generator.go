package profile

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/mirabox/vtsgen/pkg/catalog"
	"github.com/mirabox/vtsgen/pkg/models"
	"github.com/mirabox/vtsgen/pkg/util"
	"github.com/mirabox/vtsgen/pkg/uuidstore"
)

// Generator writes the StreamDock profile folder tree: one <UUID>.sdProfile
// per model plus the Home profile, each with paginated page folders and
// manifests. Profile UUIDs come from the store so regenerated folders keep
// their identity.
type Generator struct {
	OutputDir string
	ImagesSrc string
	Store     *uuidstore.Store

	// Address the VTube Studio plugin buttons connect to.
	PluginHost string
	PluginPort string
}

func NewGenerator(outputDir, imagesSrc string, store *uuidstore.Store) *Generator {
	return &Generator{
		OutputDir:  outputDir,
		ImagesSrc:  imagesSrc,
		Store:      store,
		PluginHost: "127.0.0.1",
		PluginPort: "8001",
	}
}

// GenerateAll resets the output directory and generates every model profile
// followed by the Home profile.
func (g *Generator) GenerateAll(cat *catalog.Catalog) error {
	if err := util.ResetDir(g.OutputDir); err != nil {
		return errors.Wrapf(err, "cannot reset output directory %s", g.OutputDir)
	}
	for _, m := range cat.Models {
		if _, err := g.GenerateModelProfile(m); err != nil {
			return errors.Wrapf(err, "cannot generate profile for %s", m.ModelName)
		}
	}
	if _, err := g.GenerateHomeProfile(cat.Models); err != nil {
		return errors.Wrap(err, "cannot generate Home profile")
	}
	util.Info("\nAll profile folders generated in %s\n", g.OutputDir)
	return nil
}

// GenerateModelProfile writes the profile folder for one model: page one
// carries the switch-model and back-to-home buttons, hotkeys fill the
// remaining slots across as many pages as needed.
func (g *Generator) GenerateModelProfile(m catalog.Model) (string, error) {
	modelUUID, err := g.Store.ModelUUID(m.ModelName)
	if err != nil {
		return "", err
	}

	util.Info("\n=== Generating %s profile folder ===\n", m.ModelName)

	folder := filepath.Join(g.OutputDir, modelUUID+models.ProfileSuffix)
	if err := util.ResetDir(folder); err != nil {
		return "", err
	}
	if err := g.copyImages(folder); err != nil {
		return "", err
	}
	profilesDir := filepath.Join(folder, "profiles")
	if err := os.MkdirAll(profilesDir, 0755); err != nil {
		return "", err
	}

	chunks := chunkHotkeys(m.Hotkeys)
	totalPages := len(chunks)
	pageIDs := make([]string, 0, totalPages)

	for pageIdx, chunk := range chunks {
		pageUUID := strings.ToUpper(uuid.New().String())
		pageFolder := filepath.Join(profilesDir, pageUUID+models.ProfileSuffix)
		if err := os.MkdirAll(pageFolder, 0755); err != nil {
			return "", err
		}
		if err := g.copyImages(pageFolder); err != nil {
			return "", err
		}
		pageIDs = append(pageIDs, pageUUID+models.ProfileSuffix)

		manifest := newManifest(m.ModelName)
		g.placeNavigation(manifest.Actions, pageIdx, totalPages)

		slots := pageSlots(pageIdx, totalPages)
		slotIdx := 0
		nextSlot := func() (string, bool) {
			if slotIdx >= len(slots) {
				return "", false
			}
			s := slots[slotIdx]
			slotIdx++
			return s, true
		}

		if pageIdx == 0 {
			switchSlot, _ := nextSlot()
			manifest.Actions[switchSlot] = makeButton(
				g.iconPath(m.Icon), "Switch model", models.ActionSwitchModel,
				map[string]interface{}{
					"ip":            g.PluginHost,
					"port":          g.PluginPort,
					"selectModelID": m.ModelID,
					"showTitle":     true,
				}, true)

			manifest.Actions[homeSlot] = makeButton(
				models.ImgVTSLogo, "Back to Home", models.ActionProfileRotate,
				map[string]interface{}{
					"DeviceUUID":  "",
					"ProfileUUID": g.Store.Home,
				}, true)
		}

		for _, hk := range chunk {
			slot, ok := nextSlot()
			if !ok {
				break
			}
			// page one pre-places the home button on this slot
			if pageIdx == 0 && slot == homeSlot {
				slot, ok = nextSlot()
				if !ok {
					break
				}
			}
			name := hk.Name
			if name == "" {
				name = hk.Type
			}
			manifest.Actions[slot] = makeButton(
				g.iconPath(m.Icon), name, models.ActionTriggerHotkey,
				map[string]interface{}{
					"ip":               g.PluginHost,
					"port":             g.PluginPort,
					"selectModelID":    m.ModelID,
					"selectHotKeyID":   hk.HotkeyID,
					"selectHotKeyName": hk.Name,
					"showTitle":        true,
				}, true)
		}

		if err := manifest.write(pageFolder); err != nil {
			return "", err
		}
		util.Info("%sPage %d: %d actions\n", util.Indent1(), pageIdx+1, len(manifest.Actions))
	}

	root := newManifest(m.ModelName)
	root.ProfileUUID = modelUUID
	root.Pages = &PageList{Current: pageIDs[0], Pages: pageIDs}
	if err := root.write(folder); err != nil {
		return "", err
	}

	util.Info("Generated: %s\n", folder)
	return folder, nil
}

// GenerateHomeProfile writes the Home profile: one jump button per model,
// paginated across the grid.
func (g *Generator) GenerateHomeProfile(entries []catalog.Model) (string, error) {
	util.Info("\n=== Generating Home profile folder ===\n")

	folder := filepath.Join(g.OutputDir, g.Store.Home+models.ProfileSuffix)
	if err := util.ResetDir(folder); err != nil {
		return "", err
	}
	if err := g.copyImages(folder); err != nil {
		return "", err
	}
	profilesDir := filepath.Join(folder, "profiles")
	if err := os.MkdirAll(profilesDir, 0755); err != nil {
		return "", err
	}

	chunks := chunkModels(entries)
	totalPages := len(chunks)
	pageIDs := make([]string, 0, totalPages)

	util.Info("%s%d models over %d pages\n", util.Indent1(), len(entries), totalPages)

	for pageIdx, chunk := range chunks {
		pageUUID := strings.ToUpper(uuid.New().String())
		pageFolder := filepath.Join(profilesDir, pageUUID+models.ProfileSuffix)
		if err := os.MkdirAll(pageFolder, 0755); err != nil {
			return "", err
		}
		if err := g.copyImages(pageFolder); err != nil {
			return "", err
		}
		pageIDs = append(pageIDs, pageUUID+models.ProfileSuffix)

		manifest := newManifest("Home-" + strconv.Itoa(pageIdx+1))
		g.placeNavigation(manifest.Actions, pageIdx, totalPages)

		slots := pageSlots(pageIdx, totalPages)
		for i, m := range chunk {
			if i >= len(slots) {
				break
			}
			modelUUID, err := g.Store.ModelUUID(m.ModelName)
			if err != nil {
				return "", err
			}
			manifest.Actions[slots[i]] = makeButton(
				g.iconPath(m.Icon), m.ModelName, models.ActionProfileRotate,
				map[string]interface{}{
					"DeviceUUID":  "",
					"ProfileUUID": modelUUID,
				}, true)
		}

		if err := manifest.write(pageFolder); err != nil {
			return "", err
		}
		util.Info("%sPage %d: %d models\n", util.Indent1(), pageIdx+1, len(chunk))
	}

	root := newManifest("Home")
	root.ProfileUUID = g.Store.Home
	root.Pages = &PageList{Current: pageIDs[0], Pages: pageIDs}
	if err := root.write(folder); err != nil {
		return "", err
	}

	util.Info("Generated: %s\n", folder)
	return folder, nil
}

// OfficialProfilesDir is where the StreamDock software keeps its profiles.
func OfficialProfilesDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "cannot determine home directory")
	}
	return filepath.Join(home, "AppData", "Roaming", "HotSpot", "StreamDock", "profiles"), nil
}

// CopyToOfficial copies every generated *.sdProfile folder into the official
// profiles directory, replacing folders with the same UUID.
func (g *Generator) CopyToOfficial(officialDir string) error {
	if !util.PathExists(g.OutputDir, true) {
		return errors.Errorf("output directory %s does not exist, generate profiles first", g.OutputDir)
	}
	if err := os.MkdirAll(officialDir, 0755); err != nil {
		return errors.Wrapf(err, "cannot create %s", officialDir)
	}

	entries, err := os.ReadDir(g.OutputDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() || !strings.HasSuffix(e.Name(), models.ProfileSuffix) {
			continue
		}
		target := filepath.Join(officialDir, e.Name())
		if err := os.RemoveAll(target); err != nil {
			return errors.Wrapf(err, "cannot replace %s", target)
		}
		if err := util.CopyDir(filepath.Join(g.OutputDir, e.Name()), target); err != nil {
			return errors.Wrapf(err, "cannot copy %s", e.Name())
		}
		util.Info("%sCopied: %s\n", util.Indent1(), e.Name())
	}
	return nil
}

func (g *Generator) placeNavigation(actions map[string]Button, pageIdx, totalPages int) {
	if pageIdx > 0 {
		actions[prevSlot] = makeButton(models.ImgPrevPage, "Previous", models.ActionPagePrevious, nil, false)
	}
	if pageIdx < totalPages-1 {
		actions[nextSlot] = makeButton(models.ImgNextPage, "Next", models.ActionPageNext, nil, false)
	}
}

// pageSlots returns the slots available for content on a page: the first
// page regains the previous-arrow corner, the last the next-arrow corner.
func pageSlots(pageIdx, totalPages int) []string {
	slots := usableSlots()
	if pageIdx == 0 {
		slots = append([]string{prevSlot}, slots...)
	}
	if pageIdx == totalPages-1 {
		slots = append(slots, nextSlot)
	}
	return slots
}

func (g *Generator) iconPath(icon string) string {
	if icon == "" || icon == models.DefaultIcon {
		return models.ImgVTSLogo
	}
	return models.ImagesDir + "/" + icon
}

func (g *Generator) copyImages(folder string) error {
	dst := filepath.Join(folder, models.ImagesDir)
	if util.PathExists(g.ImagesSrc, true) {
		return util.CopyDir(g.ImagesSrc, dst)
	}
	return os.MkdirAll(dst, 0755)
}

// chunkHotkeys splits the hotkeys over pages. Page one loses one slot to
// the switch-model button; the page count is estimated up front the way the
// capacities are interdependent.
func chunkHotkeys(hotkeys []catalog.Hotkey) [][]catalog.Hotkey {
	if len(hotkeys) == 0 {
		return [][]catalog.Hotkey{{}}
	}
	roughPages := (len(hotkeys) + 12) / 13
	if roughPages < 1 {
		roughPages = 1
	}

	var chunks [][]catalog.Hotkey
	remaining := hotkeys
	for pageIdx := 0; len(remaining) > 0; pageIdx++ {
		capacity := pageCapacity(pageIdx, roughPages)
		if pageIdx == 0 {
			capacity-- // switch-model button
		}
		if capacity > len(remaining) {
			capacity = len(remaining)
		}
		chunks = append(chunks, remaining[:capacity])
		remaining = remaining[capacity:]
	}
	return chunks
}

// chunkModels splits the model list over Home pages.
func chunkModels(entries []catalog.Model) [][]catalog.Model {
	if len(entries) == 0 {
		return [][]catalog.Model{{}}
	}
	roughPages := (len(entries) + 12) / 13
	if roughPages < 1 {
		roughPages = 1
	}

	var chunks [][]catalog.Model
	remaining := entries
	for pageIdx := 0; len(remaining) > 0; pageIdx++ {
		capacity := homePageCapacity(pageIdx, roughPages)
		if capacity > len(remaining) {
			capacity = len(remaining)
		}
		chunks = append(chunks, remaining[:capacity])
		remaining = remaining[capacity:]
	}
	return chunks
}
