package imaging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// inputExtensions lists the file extensions offered as editor inputs.
var inputExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// hostAnnotations are the suffixes the host appends to file names to name
// the directory they live in.
var hostAnnotations = []string{" [input]", " [output]", " [temp]"}

// ListInputImages returns the sorted names of the image files directly
// inside dir. Extensions are matched case-insensitively. A missing directory
// yields an empty list.
func ListInputImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if inputExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// ResolveInputPath maps a file name chosen in the host UI to a path inside
// dir. A trailing host annotation such as " [input]" is removed. Names that
// would escape dir are rejected.
func ResolveInputPath(dir, name string) (string, error) {
	for _, a := range hostAnnotations {
		name = strings.TrimSuffix(name, a)
	}
	name = filepath.FromSlash(name)
	if name == "" || !filepath.IsLocal(name) {
		return "", fmt.Errorf("invalid image file name %q", name)
	}
	return filepath.Join(dir, name), nil
}
