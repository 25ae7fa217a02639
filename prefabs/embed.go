package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed dialogue/*.yaml
var DialogueFS embed.FS

const dialogueDir = "dialogue"

// Load returns a prefab file, preferring the copy on disk so edits are picked
// up without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadDialogueSources returns every dialogue YAML file in name order. The
// on-disk directory wins over the embedded copy when it exists.
func LoadDialogueSources() ([][]byte, error) {
	var fsys fs.FS = DialogueFS
	root := dialogueDir
	if info, err := os.Stat(diskPrefabPath(dialogueDir)); err == nil && info.IsDir() {
		fsys = os.DirFS(diskPrefabPath(dialogueDir))
		root = "."
	}

	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isSpecFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	sources := make([][]byte, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, pathJoin(root, name))
		if err != nil {
			return nil, err
		}
		sources = append(sources, data)
	}
	return sources, nil
}

func ModTime(name string) (time.Time, bool) {
	clean := cleanPrefabPath(name)
	info, err := os.Stat(diskPrefabPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// WatchDirs lists the on-disk directories worth watching for hot reload.
func WatchDirs() []string {
	var dirs []string
	for _, dir := range []string{"prefabs", diskPrefabPath(dialogueDir)} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}

func pathJoin(root, name string) string {
	if root == "." {
		return name
	}
	return root + "/" + name
}
