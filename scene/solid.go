// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Class is the closed set of renderable primitive classes for a [Solid].
// It is fixed at construction time, so renderability never has to be
// re-derived from capability flags during traversal.
type Class int32

const (
	// ClassNone is not renderable; it is the class of transform-only
	// nodes and the zero value.
	ClassNone Class = iota

	// ClassMesh is an indexed triangle mesh.
	ClassMesh

	// ClassLine is a line or line-strip primitive.
	ClassLine

	// ClassSprite is a camera-facing quad primitive.
	ClassSprite

	// ClassPoints is a point-cloud primitive.
	ClassPoints
)

var classNames = [...]string{"None", "Mesh", "Line", "Sprite", "Points"}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "Class(?)"
	}
	return classNames[c]
}

// IsRenderable returns whether this class is a renderable primitive.
func (c Class) IsRenderable() bool {
	return c != ClassNone
}

// Skeleton holds the skinning data for a skinned [Solid]: the bone
// transform matrices are packed into a data texture for the GPU.
type Skeleton struct {

	// NumBones is the number of bones in the skeleton.
	NumBones int

	// BoneTexture is the data texture holding the bone matrices.
	// It is a disposable resource like any other texture.
	BoneTexture Texture
}

// Solid is an individual renderable element: the leaf node that directly
// owns a geometry buffer and one or more materials. Its [Class] determines
// the primitive kind and is set at construction.
type Solid struct {
	NodeBase

	// Class is the renderable primitive class of this solid.
	Class Class

	// Geometry is the geometry buffer for this solid; may be nil
	// while the solid is being constructed.
	Geometry Geometry

	// Materials are the materials of the surface. Most solids have one;
	// multi-material geometries have one per group.
	Materials []Material

	// Skeleton is the skinning data for a skinned solid, or nil.
	Skeleton *Skeleton
}

// NewSolid returns a new [Solid] of the given class with the given name,
// added as a child of the given parent if it is non-nil.
func NewSolid(parent Node, name string, class Class) *Solid {
	sld := &Solid{Class: class}
	initNode(sld, parent, name)
	return sld
}

func (sld *Solid) AsSolid() *Solid { return sld }

// SetGeometry sets the geometry buffer for this solid.
func (sld *Solid) SetGeometry(ge Geometry) *Solid {
	sld.Geometry = ge
	return sld
}

// SetMaterial sets a single material for this solid,
// replacing any existing materials.
func (sld *Solid) SetMaterial(mt Material) *Solid {
	sld.Materials = []Material{mt}
	return sld
}

// AddMaterial appends a material for this solid, for
// multi-material geometries.
func (sld *Solid) AddMaterial(mt Material) *Solid {
	sld.Materials = append(sld.Materials, mt)
	return sld
}

// test for interface impls
var (
	_ Node = &Group{}
	_ Node = &Solid{}
)
