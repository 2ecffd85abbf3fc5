package tiles

import (
	"embed"
	"os"
	"path/filepath"
	"time"
)

// DefinitionsFile is the catalog file name, embedded and on disk.
const DefinitionsFile = "tiles.yaml"

//go:embed tiles.yaml
var DefinitionsFS embed.FS

// LoadDefinitions reads the definitions file from dir, falling back to the
// embedded copy when dir is empty or has no such file.
func LoadDefinitions(dir string) ([]byte, error) {
	if dir != "" {
		if data, err := os.ReadFile(diskDefinitionsPath(dir)); err == nil {
			return data, nil
		}
	}
	return DefinitionsFS.ReadFile(DefinitionsFile)
}

// ModTime reports the modification time of the on-disk definitions file.
func ModTime(dir string) (time.Time, bool) {
	if dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(diskDefinitionsPath(dir))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func diskDefinitionsPath(dir string) string {
	return filepath.Join(dir, DefinitionsFile)
}
