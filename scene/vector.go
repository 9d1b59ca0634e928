// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/chewxy/math32"

// Vector2 is a 2D vector with float32 components, used for texture
// coordinates and tiling parameters.
type Vector2 struct {
	X, Y float32
}

// V2 returns a new [Vector2] with the given x, y components.
func V2(x, y float32) Vector2 {
	return Vector2{x, y}
}

// Set sets the components of the vector.
func (v *Vector2) Set(x, y float32) {
	v.X, v.Y = x, y
}

// Vector3 is a 3D vector with float32 components, used for geometry
// bounding data.
type Vector3 struct {
	X, Y, Z float32
}

// V3 returns a new [Vector3] with the given x, y, z components.
func V3(x, y, z float32) Vector3 {
	return Vector3{x, y, z}
}

// Set sets the components of the vector.
func (v *Vector3) Set(x, y, z float32) {
	v.X, v.Y, v.Z = x, y, z
}

// Sub returns this vector minus the other vector.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Min returns the component-wise minimum of this vector and the other.
func (v Vector3) Min(o Vector3) Vector3 {
	return Vector3{math32.Min(v.X, o.X), math32.Min(v.Y, o.Y), math32.Min(v.Z, o.Z)}
}

// Max returns the component-wise maximum of this vector and the other.
func (v Vector3) Max(o Vector3) Vector3 {
	return Vector3{math32.Max(v.X, o.X), math32.Max(v.Y, o.Y), math32.Max(v.Z, o.Z)}
}

// Length returns the length of the vector.
func (v Vector3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Box3 is a 3D axis-aligned bounding box defined by min and max corners.
type Box3 struct {
	Min Vector3
	Max Vector3
}

// SetEmpty sets the box to an empty state where any expansion
// replaces the bounds.
func (b *Box3) SetEmpty() {
	inf := math32.Inf(1)
	b.Min.Set(inf, inf, inf)
	b.Max.Set(-inf, -inf, -inf)
}

// IsEmpty returns whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// ExpandByPoint expands the box to include the given point.
func (b *Box3) ExpandByPoint(p Vector3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Size returns the dimensions of the box, or the zero vector if empty.
func (b Box3) Size() Vector3 {
	if b.IsEmpty() {
		return Vector3{}
	}
	return b.Max.Sub(b.Min)
}
