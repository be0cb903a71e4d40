package uuidstore

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Store keeps the stable profile UUIDs across runs so regenerated profiles
// keep their identity inside the StreamDock software. The file holds one
// UUID for the Home profile and one per model, all uppercase.
type Store struct {
	path string

	Home   string            `json:"home"`
	Models map[string]string `json:"models"`
}

// Open loads the store from path, migrating the legacy flat format
// ({"Home": ..., "<model>": ...}) when found. A missing or unreadable file
// starts a fresh store, persisted immediately.
func Open(path string) (*Store, error) {
	s := &Store{path: path, Models: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "cannot read uuid store %s", path)
		}
		s.Home = newUUID()
		return s, s.save()
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.Home = newUUID()
		return s, s.save()
	}

	_, hasHome := raw["home"]
	_, hasModels := raw["models"]
	if !hasHome && !hasModels {
		return migrateLegacy(path, raw)
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "cannot parse uuid store %s", path)
	}
	if s.Models == nil {
		s.Models = map[string]string{}
	}
	if s.Home == "" {
		s.Home = newUUID()
		return s, s.save()
	}
	return s, nil
}

// migrateLegacy converts the old flat layout where the home UUID lived under
// the "Home" key and every other key was a model name.
func migrateLegacy(path string, raw map[string]json.RawMessage) (*Store, error) {
	s := &Store{path: path, Models: map[string]string{}}
	for k, v := range raw {
		var val string
		if err := json.Unmarshal(v, &val); err != nil {
			continue
		}
		if k == "Home" {
			s.Home = val
		} else {
			s.Models[k] = val
		}
	}
	if s.Home == "" {
		s.Home = newUUID()
	}
	return s, s.save()
}

// ModelUUID returns the stable UUID for the named model, generating and
// persisting one on first use.
func (s *Store) ModelUUID(name string) (string, error) {
	if id, ok := s.Models[name]; ok {
		return id, nil
	}
	id := newUUID()
	s.Models[name] = id
	return id, s.save()
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode uuid store")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, "cannot write uuid store %s", s.path)
	}
	return nil
}

func newUUID() string {
	return strings.ToUpper(uuid.New().String())
}
