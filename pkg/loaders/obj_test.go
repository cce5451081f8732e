package loaders

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempOBJ(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.obj")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write temp OBJ: %v", err)
	}
	return path
}

func TestLoadOBJ_TriangleFace(t *testing.T) {
	path := writeTempOBJ(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	data, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Vertices) != 3 || len(data.Faces) != 1 {
		t.Fatalf("expected 3 vertices, 1 face, got %d/%d", len(data.Vertices), len(data.Faces))
	}
	if data.Faces[0] != [3]int{0, 1, 2} {
		t.Errorf("expected 0-based face (0,1,2), got %v", data.Faces[0])
	}
}

func TestLoadOBJ_QuadFaceIsFanTriangulated(t *testing.T) {
	path := writeTempOBJ(t, "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n")
	data, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Faces) != 2 {
		t.Fatalf("expected quad to fan-triangulate into 2 faces, got %d", len(data.Faces))
	}
	if data.Faces[0] != [3]int{0, 1, 2} || data.Faces[1] != [3]int{0, 2, 3} {
		t.Errorf("unexpected fan triangulation: %v", data.Faces)
	}
}

func TestLoadOBJ_FaceWithTextureAndNormalIndices(t *testing.T) {
	path := writeTempOBJ(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1 2/2/1 3/3/1\n")
	data, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Faces[0] != [3]int{0, 1, 2} {
		t.Errorf("expected vertex-only indices to be extracted, got %v", data.Faces[0])
	}
}

func TestLoadOBJ_MalformedVertexIsError(t *testing.T) {
	path := writeTempOBJ(t, "v not a number 0\n")
	if _, err := LoadOBJ(path); err == nil {
		t.Error("expected error for malformed vertex line")
	}
}

func TestLoadOBJ_MissingFileIsError(t *testing.T) {
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}
