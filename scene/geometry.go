// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// vertex layout: position and normal [Vector3] plus texture coordinate
// Vector2 per vertex, with an optional Vector4 per-vertex color,
// and uint32 indexes.
const (
	vertexBytes      = (3 + 3 + 2) * 4
	vertexColorBytes = 4 * 4
	indexBytes       = 4
)

// Geometry is the interface for all geometry buffers: the vertex and
// index data defining the shape of a [Solid]. Only indexed triangle
// meshes are supported.
type Geometry interface {
	Resource

	// AsGeometryBase returns the [GeometryBase] for this geometry,
	// which provides the core data common to all geometry buffers.
	AsGeometryBase() *GeometryBase
}

// GeometryBase provides the core implementation of the [Geometry]
// interface. It records the size of the buffer data; concrete types
// hold the data itself (e.g., in device memory for gpu.Geometry).
type GeometryBase struct {

	// Name is the name of the geometry, used in diagnostic reports.
	Name string

	// NumVertex is the number of vertex points. Each vertex always
	// includes a normal and a texture coordinate.
	NumVertex int

	// NumIndex is the number of uint32 indexes.
	NumIndex int

	// HasColor is whether the geometry has per-vertex colors.
	HasColor bool

	// BBox is the local bounding box of the geometry.
	BBox Box3
}

func (gb *GeometryBase) AsGeometryBase() *GeometryBase { return gb }

func (gb *GeometryBase) Kind() Kind { return GeometryKind }

// Release is a no-op for the base type, which holds no device memory.
func (gb *GeometryBase) Release() {}

// Bytes returns the estimated device memory for the geometry buffers,
// based on the vertex layout and index count.
func (gb *GeometryBase) Bytes() int {
	vb := vertexBytes
	if gb.HasColor {
		vb += vertexColorBytes
	}
	return gb.NumVertex*vb + gb.NumIndex*indexBytes
}
