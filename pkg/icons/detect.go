package icons

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/mirabox/vtsgen/pkg/util"
)

// detectRoot is swapped out in tests.
var detectRoot = DetectRoot

// DetectRoot locates the Live2D models directory next to the executable of
// the running VTube Studio process. Processes that cannot be inspected are
// skipped; VTube Studio must be running for detection to succeed.
func DetectRoot() (string, error) {
	procs, err := process.Processes()
	if err != nil {
		return "", errors.Wrap(err, "cannot list processes")
	}
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || !isVTSProcess(name) {
			continue
		}
		exe, err := p.Exe()
		if err != nil || exe == "" {
			continue
		}
		dir := modelsDirFromExe(exe)
		if !util.PathExists(dir, true) {
			continue
		}
		util.Info("Detected running VTube Studio: %s\n", name)
		util.Verbose("Models directory: %s\n", dir)
		return dir, nil
	}
	return "", errors.New("no running VTube Studio with a models directory found")
}

func isVTSProcess(name string) bool {
	return strings.Contains(strings.ToLower(name), "vtube")
}

// modelsDirFromExe maps the VTube Studio executable to the Live2D models
// directory the installer places beside it.
func modelsDirFromExe(exe string) string {
	return filepath.Join(filepath.Dir(exe), "VTube Studio_Data", "StreamingAssets", "Live2DModels")
}
