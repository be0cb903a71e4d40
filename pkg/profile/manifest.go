package profile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mirabox/vtsgen/pkg/models"
)

// ButtonState is the visual state of a button. Untitled buttons (the page
// navigation arrows) carry only the image.
type ButtonState struct {
	Image          string `json:"Image"`
	Title          string `json:"Title,omitempty"`
	TitleAlignment string `json:"TitleAlignment,omitempty"`
	FontSize       int    `json:"FontSize,omitempty"`
	FontStyle      string `json:"FontStyle,omitempty"`
}

// Button is one action placed on a slot of a page.
type Button struct {
	ActionID   string                 `json:"ActionID"`
	Controller string                 `json:"Controller"`
	Name       string                 `json:"Name"`
	Settings   map[string]interface{} `json:"Settings"`
	State      int                    `json:"State"`
	States     []ButtonState          `json:"States"`
	UUID       string                 `json:"UUID"`
}

// Manifest is a StreamDock manifest.json, used both for pages (Actions set,
// no Pages) and for profile roots (Pages set, Actions empty).
type Manifest struct {
	DeviceModel string            `json:"DeviceModel"`
	DeviceUUID  string            `json:"DeviceUUID"`
	Name        string            `json:"Name"`
	Version     string            `json:"Version"`
	Actions     map[string]Button `json:"Actions"`
	Pages       *PageList         `json:"Pages,omitempty"`
	ProfileUUID string            `json:"ProfileUUID,omitempty"`
}

type PageList struct {
	Current string   `json:"Current"`
	Pages   []string `json:"Pages"`
}

func newManifest(name string) Manifest {
	return Manifest{
		DeviceModel: models.DeviceModel,
		DeviceUUID:  models.DeviceUUID,
		Name:        name,
		Version:     models.ManifestVersion,
		Actions:     map[string]Button{},
	}
}

func (m Manifest) write(dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode manifest")
	}
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "cannot write %s", path)
	}
	return nil
}

// makeButton builds a button. The action UUID selects the behavior inside
// the StreamDock software; per-action parameters go into settings.
func makeButton(img, name, actionUUID string, settings map[string]interface{}, showTitle bool) Button {
	state := ButtonState{Image: img}
	if showTitle {
		state.Title = name
		state.TitleAlignment = "middle"
		state.FontSize = 14
		state.FontStyle = "Bold"
	}
	if settings == nil {
		settings = map[string]interface{}{}
	}
	return Button{
		ActionID: uuid.New().String(),
		Name:     name,
		Settings: settings,
		States:   []ButtonState{state},
		UUID:     actionUUID,
	}
}
