// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Kind is the closed set of disposable GPU-backed resource kinds.
// Every [Resource] reports its kind explicitly, set at construction,
// so that classification never requires inspecting resource contents.
type Kind int32

const (
	// GeometryKind is a geometry buffer: vertex and index data
	// in device memory.
	GeometryKind Kind = iota

	// MaterialKind is a material: surface parameters plus the
	// textures it owns through its slots.
	MaterialKind

	// TextureKind is a texture image in device memory.
	TextureKind
)

var kindNames = [...]string{"Geometry", "Material", "Texture"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Resource is a disposable GPU-backed object: a geometry buffer, material,
// or texture. Resources have no identity beyond handle equality; a tracker
// never inspects or mutates resource contents beyond invoking [Resource.Release]
// exactly once when the last owner is gone.
type Resource interface {

	// Kind returns the kind of this resource.
	Kind() Kind

	// Release frees any device memory and cached data held by this
	// resource. It must be safe to call more than once.
	Release()
}

// ResourceName returns the name of the given resource from its base,
// for diagnostic reports. Returns "" for a nil resource.
func ResourceName(rs Resource) string {
	switch r := rs.(type) {
	case Geometry:
		return r.AsGeometryBase().Name
	case Material:
		return r.AsMaterialBase().Name
	case Texture:
		return r.AsTextureBase().Name
	}
	return ""
}

// ResourceBytes returns the estimated device memory held by the given
// resource, in bytes. Returns 0 for a nil resource or a kind with no
// device allocation.
func ResourceBytes(rs Resource) int {
	switch r := rs.(type) {
	case Geometry:
		return r.AsGeometryBase().Bytes()
	case Texture:
		return r.AsTextureBase().Bytes()
	}
	return 0
}
