package io

import (
	"fmt"
	gomath "math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"softrender/core"
	"softrender/math"
	"softrender/scene"
)

// LoadGLTF opens a .glb or .gltf file and instantiates its node hierarchy
// inside s. Each glTF mesh primitive becomes one mesh node; node TRS data
// carries over, with quaternion rotations converted to the Euler angles the
// transform system uses. Returns the identities of the created roots.
func LoadGLTF(path string, s *scene.Scene) ([]scene.NodeID, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf: open %q: %w", path, err)
	}

	// One mesh list per glTF mesh, one entry per primitive.
	meshPrims := make([][]*scene.Mesh, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := loadPrimitive(doc, gm.Name, pi, *prim)
			if err != nil {
				return nil, fmt.Errorf("gltf: mesh %d prim %d: %w", mi, pi, err)
			}
			meshPrims[mi] = append(meshPrims[mi], m)
		}
	}

	ids := make([]scene.NodeID, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		name := gn.Name
		if name == "" {
			name = fmt.Sprintf("node_%d", i)
		}
		id := s.CreateNode(name)
		ids[i] = id
		node, _ := s.Node(id)

		t := gn.TranslationOrDefault()
		node.Transform.SetPosition(math.NewVec3(t[0], t[1], t[2]))
		sc := gn.ScaleOrDefault()
		node.Transform.SetScale(math.NewVec3(sc[0], sc[1], sc[2]))
		r := gn.RotationOrDefault() // [x, y, z, w]
		node.Transform.SetRotation(quatToEuler(r[0], r[1], r[2], r[3]))

		if gn.Mesh != nil && int(*gn.Mesh) < len(meshPrims) {
			prims := meshPrims[*gn.Mesh]
			switch len(prims) {
			case 0:
				// no geometry
			case 1:
				node.Mesh = prims[0]
			default:
				// One child node per extra primitive.
				for pi, p := range prims {
					childID := s.CreateMeshNode(fmt.Sprintf("%s_prim%d", name, pi), p)
					if err := s.SetParent(childID, id); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	// Wire up the hierarchy after every node exists.
	for i, gn := range doc.Nodes {
		for _, childIdx := range gn.Children {
			if int(childIdx) < len(ids) {
				if err := s.SetParent(ids[childIdx], ids[i]); err != nil {
					return nil, err
				}
			}
		}
	}

	var roots []scene.NodeID
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		for _, rootIdx := range doc.Scenes[*doc.Scene].Nodes {
			if int(rootIdx) < len(ids) {
				roots = append(roots, ids[rootIdx])
			}
		}
	} else {
		for _, id := range ids {
			if node, ok := s.Node(id); ok && node.IsRoot() {
				roots = append(roots, id)
			}
		}
	}
	return roots, nil
}

// loadPrimitive converts one glTF mesh primitive into a scene.Mesh.
func loadPrimitive(doc *gltf.Document, meshName string, primIdx int, prim gltf.Primitive) (*scene.Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	mesh := scene.NewMeshWithCapacity(name, len(positions), len(positions)/3)
	for i, p := range positions {
		normal := math.Vec3Up
		if i < len(normals) {
			normal = math.NewVec3(float64(normals[i][0]), float64(normals[i][1]), float64(normals[i][2]))
		}
		var uv math.Vec2
		if i < len(uvs) {
			uv = math.NewVec2(float64(uvs[i][0]), float64(uvs[i][1]))
		}
		mesh.AddVertex(core.NewVertex(
			math.NewVec3(float64(p[0]), float64(p[1]), float64(p[2])),
			normal, uv,
		))
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		// Non-indexed primitive: consecutive triples form triangles.
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d not a multiple of 3", len(indices))
	}

	for i := 0; i+2 < len(indices); i += 3 {
		if err := mesh.AddFace(int(indices[i]), int(indices[i+1]), int(indices[i+2])); err != nil {
			return nil, err
		}
	}

	if len(normals) == 0 {
		mesh.GenerateVertexNormals()
	}
	return mesh, nil
}

// quatToEuler converts a unit quaternion to the Euler angles composed as
// Rz * Ry * Rx by the transform system.
func quatToEuler(x, y, z, w float64) math.Vec3 {
	// Roll (about X)
	sinr := 2 * (w*x + y*z)
	cosr := 1 - 2*(x*x+y*y)
	roll := gomath.Atan2(sinr, cosr)

	// Pitch (about Y), clamped at the poles
	sinp := 2 * (w*y - z*x)
	var pitch float64
	if gomath.Abs(sinp) >= 1 {
		pitch = gomath.Copysign(gomath.Pi/2, sinp)
	} else {
		pitch = gomath.Asin(sinp)
	}

	// Yaw (about Z)
	siny := 2 * (w*z + x*y)
	cosy := 1 - 2*(y*y+z*z)
	yaw := gomath.Atan2(siny, cosy)

	return math.NewVec3(roll, pitch, yaw)
}
