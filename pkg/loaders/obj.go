package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/df07/pathtracer/pkg/core"
)

// MeshData is the raw vertex/face data parsed from an OBJ file, ready to
// hand to geometry.NewTriangleMesh once a material is chosen.
type MeshData struct {
	Vertices []core.Vec3
	Faces    [][3]int
}

// LoadOBJ parses `v x y z` vertex lines and `f ...` face lines. Only the
// vertex index of each face token is consumed (`a`, `a/b`, `a/b/c`, `a//c`
// all reduce to `a`); faces with more than three vertices are fan-
// triangulated around the first vertex. OBJ indices are 1-based and may be
// negative (relative to the current vertex count); both are normalized to
// 0-based absolute indices.
func LoadOBJ(path string) (*MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer f.Close()

	data := &MeshData{}
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs 3 components", lineNum)
			}
			x, err1 := strconv.ParseFloat(fields[1], 64)
			y, err2 := strconv.ParseFloat(fields[2], 64)
			z, err3 := strconv.ParseFloat(fields[3], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("obj line %d: malformed vertex %q", lineNum, line)
			}
			data.Vertices = append(data.Vertices, core.NewVec3(x, y, z))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 vertices", lineNum)
			}
			indices := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := parseFaceVertexIndex(tok, len(data.Vertices))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNum, err)
				}
				indices = append(indices, idx)
			}
			for i := 1; i < len(indices)-1; i++ {
				data.Faces = append(data.Faces, [3]int{indices[0], indices[i], indices[i+1]})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ file: %w", err)
	}
	return data, nil
}

// parseFaceVertexIndex extracts the vertex index from a face token of the
// form "v", "v/vt", "v/vt/vn", or "v//vn", normalizing 1-based and negative
// (relative) indices to a 0-based absolute index.
func parseFaceVertexIndex(tok string, vertexCount int) (int, error) {
	vPart := tok
	if slash := strings.IndexByte(tok, '/'); slash >= 0 {
		vPart = tok[:slash]
	}
	raw, err := strconv.Atoi(vPart)
	if err != nil {
		return 0, fmt.Errorf("malformed face index %q: %w", tok, err)
	}
	if raw < 0 {
		return vertexCount + raw, nil
	}
	return raw - 1, nil
}
