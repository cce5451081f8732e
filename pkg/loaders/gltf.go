package loaders

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/df07/pathtracer/pkg/core"
)

// LoadGLTF opens a .gltf/.glb file and flattens every mesh primitive's
// POSITION accessor (plus TEXCOORD_0 when present) and triangle indices into
// one MeshData, in document order. Only geometry is extracted; materials,
// textures, and the node hierarchy are the scene builder's concern.
func LoadGLTF(path string) (*MeshData, []core.Vec2, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open glTF file: %w", err)
	}

	data := &MeshData{}
	var uvs []core.Vec2

	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			posIdx, ok := prim.Attributes["POSITION"]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, nil, fmt.Errorf("mesh %d primitive %d positions: %w", mi, pi, err)
			}

			base := len(data.Vertices)
			for _, p := range positions {
				data.Vertices = append(data.Vertices, core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2])))
			}

			if uvIdx, ok := prim.Attributes["TEXCOORD_0"]; ok {
				texCoords, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
				if err != nil {
					return nil, nil, fmt.Errorf("mesh %d primitive %d texcoords: %w", mi, pi, err)
				}
				for _, uv := range texCoords {
					uvs = append(uvs, core.NewVec2(float64(uv[0]), float64(uv[1])))
				}
			}

			if prim.Indices == nil {
				continue
			}
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, nil, fmt.Errorf("mesh %d primitive %d indices: %w", mi, pi, err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				data.Faces = append(data.Faces, [3]int{
					base + int(indices[i]),
					base + int(indices[i+1]),
					base + int(indices[i+2]),
				})
			}
		}
	}

	return data, uvs, nil
}
