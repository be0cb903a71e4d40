package icons

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/mirabox/vtsgen/pkg/models"
	"github.com/mirabox/vtsgen/pkg/util"
)

// Live2DRootEnv overrides the configured Live2D models directory.
const Live2DRootEnv = "VTS_LIVE2D_ROOT"

var vtsFolderSuffix = regexp.MustCompile(`(?i)_vts$`)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// ResolveRoot returns the Live2D models directory: the explicit configuration
// wins, then the VTS_LIVE2D_ROOT environment variable, then detection from
// the running VTube Studio process. An explicitly given directory must exist.
func ResolveRoot(configured string) (string, error) {
	root := configured
	if env := os.Getenv(Live2DRootEnv); env != "" {
		root = env
	}
	if root == "" {
		detected, err := detectRoot()
		if err != nil {
			return "", errors.Wrapf(err, "no Live2D models directory; set live2d.root or %s, or start VTube Studio", Live2DRootEnv)
		}
		return detected, nil
	}
	if !util.PathExists(root, true) {
		return "", errors.Errorf("Live2D models directory does not exist: %s", root)
	}
	return root, nil
}

// Finder resolves a thumbnail for each model from its Live2D folder and
// copies it into the shared Images directory under a content-hashed name.
type Finder struct {
	Live2DRoot  string
	ImagesDir   string
	DefaultIcon string
}

func NewFinder(live2DRoot, imagesDir string) *Finder {
	return &Finder{
		Live2DRoot:  live2DRoot,
		ImagesDir:   imagesDir,
		DefaultIcon: models.DefaultIcon,
	}
}

// FindIcon locates the icon for a model. The model file name, when present,
// points at the model's folder directly; otherwise the folder is matched by
// model name. Both misses fall back to the default icon.
func (f *Finder) FindIcon(modelFileName, modelName string) string {
	if modelFileName != "" {
		dir := filepath.Join(f.Live2DRoot, filepath.Dir(filepath.FromSlash(modelFileName)))
		if util.PathExists(dir, true) {
			util.Verbose("Model [%s] folder: %s (from model file name)\n", modelName, dir)
			return f.pickFromDir(dir, modelName)
		}
	}

	if dir := f.folderByModelName(modelName); dir != "" {
		util.Verbose("Model [%s] folder: %s (name match)\n", modelName, dir)
		return f.pickFromDir(dir, modelName)
	}

	util.Info("No folder found for [%s] under %s, using default icon\n", modelName, f.Live2DRoot)
	return f.DefaultIcon
}

// folderByModelName matches a folder under the Live2D root by model name,
// case-insensitive, with and without the `_vts` suffix.
func (f *Finder) folderByModelName(modelName string) string {
	entries, err := os.ReadDir(f.Live2DRoot)
	if err != nil {
		return ""
	}
	want := strings.ToLower(modelName)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if name == want || strings.ToLower(vtsFolderSuffix.ReplaceAllString(e.Name(), "")) == want {
			return filepath.Join(f.Live2DRoot, e.Name())
		}
	}
	return ""
}

// pickFromDir chooses the icon file inside a model folder: icon.* and
// ico_*.* take precedence, then any image file.
func (f *Finder) pickFromDir(dir, modelName string) string {
	for _, pattern := range []string{"icon.*", "ico_*.*"} {
		hits, _ := filepath.Glob(filepath.Join(dir, pattern))
		if len(hits) > 0 {
			util.Verbose("%sUsing %s\n", util.Indent1(), filepath.Base(hits[0]))
			return f.copyToImages(hits[0], modelName)
		}
	}

	entries, err := os.ReadDir(dir)
	if err == nil {
		for _, e := range entries {
			if !e.IsDir() && imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
				util.Verbose("%sUsing %s\n", util.Indent1(), e.Name())
				return f.copyToImages(filepath.Join(dir, e.Name()), modelName)
			}
		}
	}

	util.Info("%sNo image found in %s, using default icon\n", util.Indent1(), dir)
	return f.DefaultIcon
}

// copyToImages copies the icon into the Images directory under a name hashed
// from the model name and file size, so regenerating reuses the same file.
func (f *Finder) copyToImages(src, modelName string) string {
	info, err := os.Stat(src)
	if err != nil {
		return f.DefaultIcon
	}

	sum := md5.Sum([]byte(fmt.Sprintf("%s_%d", modelName, info.Size())))
	name := strings.ToUpper(fmt.Sprintf("%x", sum))[:26] + filepath.Ext(src)
	target := filepath.Join(f.ImagesDir, name)

	if util.PathExists(target, false) {
		util.Verbose("%sIcon already present: %s\n", util.Indent1(), name)
		return name
	}
	if err := util.CopyFile(src, target); err != nil {
		util.Error("cannot copy icon %s: %s\n", src, err)
		return f.DefaultIcon
	}
	util.Verbose("%sCopied icon: %s -> %s\n", util.Indent1(), filepath.Base(src), name)
	return name
}
