package capability

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskFiles reads from the local filesystem and saves into a download directory.
type DiskFiles struct {
	Dir string
}

// NewDiskFiles saves into dir, or into ~/Downloads (then the working
// directory) when dir is empty.
func NewDiskFiles(dir string) *DiskFiles {
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, "Downloads")
		} else {
			dir = "."
		}
	}
	return &DiskFiles{Dir: dir}
}

func (f *DiskFiles) ReadText(path string) (string, error) {
	data, err := f.ReadBytes(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *DiskFiles) ReadBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// SaveText never overwrites: an existing name gets a " (n)" suffix.
func (f *DiskFiles) SaveText(text, filename string) (string, error) {
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return "", fmt.Errorf("save: empty file name")
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	target := filepath.Join(f.Dir, filename)
	for n := 1; ; n++ {
		fh, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			target = filepath.Join(f.Dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
			continue
		}
		if err != nil {
			return "", fmt.Errorf("save %s: %w", target, err)
		}
		if _, err := fh.WriteString(text); err != nil {
			_ = fh.Close()
			return "", fmt.Errorf("save %s: %w", target, err)
		}
		if err := fh.Close(); err != nil {
			return "", fmt.Errorf("save %s: %w", target, err)
		}
		return target, nil
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
