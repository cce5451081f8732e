package loaders

import (
	"path/filepath"
	"testing"
)

func TestLoadGLTF_MissingFileIsError(t *testing.T) {
	if _, _, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.gltf")); err == nil {
		t.Error("expected error for missing glTF file")
	}
}
