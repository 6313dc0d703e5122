package imaging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListInputImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.PNG", "a.jpg", "c.webp", "notes.txt", "d.jpeg", "e.bmp", "f.gif"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	files, err := ListInputImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.PNG", "c.webp", "d.jpeg", "e.bmp", "f.gif"}, files)
}

func TestListInputImages_MissingDir(t *testing.T) {
	files, err := ListInputImages(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestResolveInputPath(t *testing.T) {
	dir := filepath.Join("srv", "input")

	tests := []struct {
		name    string
		file    string
		want    string
		wantErr bool
	}{
		{"plain", "cat.png", filepath.Join(dir, "cat.png"), false},
		{"annotated", "cat.png [input]", filepath.Join(dir, "cat.png"), false},
		{"subfolder", "pets/cat.png", filepath.Join(dir, "pets", "cat.png"), false},
		{"parent escape", "../secret.png", "", true},
		{"absolute", "/etc/passwd", "", true},
		{"empty", "", "", true},
		{"annotation only", " [input]", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveInputPath(dir, tt.file)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
