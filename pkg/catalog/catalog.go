package catalog

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Hotkey is one triggerable action of a model. Field names follow the
// VTube Studio API so entries can be copied straight from responses.
type Hotkey struct {
	HotkeyID string `json:"hotkeyID"`
	Name     string `json:"name"`
	Type     string `json:"type"`
}

// Model is one catalog entry: the model identity, its resolved icon file
// (relative to the Images directory) and the hotkeys discovered for it.
type Model struct {
	ModelName string   `json:"modelName"`
	ModelID   string   `json:"modelID"`
	Icon      string   `json:"icon"`
	Hotkeys   []Hotkey `json:"hotkeys"`
}

// Catalog is the output of the check stage and the input of the generate
// stage, persisted as models_hotkeys.json between the two.
type Catalog struct {
	Models []Model `json:"models"`
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read catalog %s", path)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "cannot parse catalog %s", path)
	}
	return &c, nil
}

func (c *Catalog) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode catalog")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "cannot write catalog %s", path)
	}
	return nil
}
