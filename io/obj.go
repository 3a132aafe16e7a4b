// Package io loads mesh geometry from external files into the validated
// scene mesh API. Materials and textures are ignored; this pipeline does
// not shade or sample.
package io

import (
	"bufio"
	"fmt"
	stdio "io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"softrender/core"
	"softrender/math"
	"softrender/scene"
)

// LoadOBJ parses a Wavefront .obj file into a single mesh. Faces with more
// than three vertices are fan-triangulated. If the file carries no vertex
// normals, averaged normals are generated after parsing.
func LoadOBJ(path string) (*scene.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: open: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("obj: %s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ reads OBJ statements from r and builds a mesh named name.
func ParseOBJ(r stdio.Reader, name string) (*scene.Mesh, error) {
	mesh := scene.NewMesh(name)

	var positions []math.Vec3
	var normals []math.Vec3
	var uvs []math.Vec2
	sawNormals := false

	// "v/vt/vn" triple -> mesh vertex index
	vertexMap := make(map[string]int)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: malformed vertex", lineNo)
			}
			positions = append(positions, parseVec3(parts[1:4]))

		case "vn":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: malformed normal", lineNo)
			}
			normals = append(normals, parseVec3(parts[1:4]))
			sawNormals = true

		case "vt":
			if len(parts) < 3 {
				return nil, fmt.Errorf("line %d: malformed texcoord", lineNo)
			}
			u, _ := strconv.ParseFloat(parts[1], 64)
			v, _ := strconv.ParseFloat(parts[2], 64)
			uvs = append(uvs, math.NewVec2(u, v))

		case "f":
			faceVerts := make([]int, 0, len(parts)-1)
			for _, ref := range parts[1:] {
				if idx, ok := vertexMap[ref]; ok {
					faceVerts = append(faceVerts, idx)
					continue
				}
				vertex, err := resolveFaceVertex(ref, positions, normals, uvs)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx := mesh.AddVertex(vertex)
				vertexMap[ref] = idx
				faceVerts = append(faceVerts, idx)
			}

			// Fan triangulation for n-gons.
			for i := 2; i < len(faceVerts); i++ {
				if err := mesh.AddFace(faceVerts[0], faceVerts[i-1], faceVerts[i]); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("no mesh data found")
	}
	if !sawNormals {
		mesh.GenerateVertexNormals()
	}
	return mesh, nil
}

func parseVec3(fields []string) math.Vec3 {
	x, _ := strconv.ParseFloat(fields[0], 64)
	y, _ := strconv.ParseFloat(fields[1], 64)
	z, _ := strconv.ParseFloat(fields[2], 64)
	return math.NewVec3(x, y, z)
}

// resolveFaceVertex decodes one "v", "v/vt", "v//vn" or "v/vt/vn" face
// reference. OBJ indices are 1-based; negative indices count from the end.
func resolveFaceVertex(ref string, positions, normals []math.Vec3, uvs []math.Vec2) (core.Vertex, error) {
	fields := strings.Split(ref, "/")

	posIdx, err := objIndex(fields[0], len(positions))
	if err != nil {
		return core.Vertex{}, fmt.Errorf("face reference %q: %w", ref, err)
	}

	var uv math.Vec2
	if len(fields) > 1 && fields[1] != "" {
		uvIdx, err := objIndex(fields[1], len(uvs))
		if err != nil {
			return core.Vertex{}, fmt.Errorf("face reference %q: %w", ref, err)
		}
		uv = uvs[uvIdx]
	}

	normal := math.Vec3Up
	if len(fields) > 2 && fields[2] != "" {
		nIdx, err := objIndex(fields[2], len(normals))
		if err != nil {
			return core.Vertex{}, fmt.Errorf("face reference %q: %w", ref, err)
		}
		normal = normals[nIdx]
	}

	return core.NewVertex(positions[posIdx], normal, uv), nil
}

func objIndex(field string, count int) (int, error) {
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", field)
	}
	if n < 0 {
		n = count + n + 1
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("index %d out of range [1,%d]", n, count)
	}
	return n - 1, nil
}
