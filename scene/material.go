// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"
)

// Tiling are the texture tiling parameters.
type Tiling struct {

	// Repeat is how often to repeat the texture in each direction.
	Repeat Vector2

	// Off is the offset for where to start the texture in each direction.
	Off Vector2
}

// Defaults sets default tiling params if not yet initialized.
func (tl *Tiling) Defaults() {
	if tl.Repeat == (Vector2{}) {
		tl.Repeat.Set(1, 1)
	}
}

// Material is the interface for all materials describing the surface
// properties of a [Solid]. The base implementation is [MaterialBase];
// custom shader materials that reference textures outside the fixed
// slots must also implement [TextureReferencer].
type Material interface {
	Resource

	// AsMaterialBase returns the [MaterialBase] for this material,
	// which contains the core parameters and texture slots.
	AsMaterialBase() *MaterialBase
}

// TextureReferencer is implemented by materials that own textures beyond
// the fixed [MaterialBase] slots, such as [ShaderMaterial]. The references
// are declared explicitly at construction or uniform-set time, so texture
// ownership never has to be discovered by scanning untyped parameter
// tables at traversal time.
type TextureReferencer interface {

	// TextureRefs returns all textures this material references
	// outside of the fixed slots.
	TextureRefs() []Texture
}

// MaterialBase describes the material properties of a surface (colors,
// shininess, textures), i.e., phong lighting parameters. The main color is
// used for both ambient and diffuse color, and its alpha component is used
// for opacity. Textures are owned through a closed set of well-known slots.
type MaterialBase struct {

	// Name is the name of the material, used in diagnostic reports.
	Name string

	// Color is the main color of the surface, used for both ambient and
	// diffuse color in the standard phong model. The alpha component
	// determines transparency.
	Color color.RGBA

	// Emissive is the color the surface emits independent of any lighting,
	// i.e., glow.
	Emissive color.RGBA

	// Shiny is the specular shininess factor: how focally vs. broadly the
	// surface shines back directional light. This is an exponential factor;
	// 0 = very broad diffuse reflection, higher values (typically up to 128)
	// are smaller more focal reflections.
	Shiny float32

	// Reflective is the specular reflectiveness factor: how much the
	// surface shines back directional light. The specular reflection color
	// is always white, multiplied by the incoming light.
	Reflective float32

	// Bright is an overall multiplier on the final computed color value,
	// for tuning overall brightness of surfaces relative to each other.
	Bright float32

	// Tiling is the texture tiling parameters: repeat and offset.
	Tiling Tiling

	// CullBack indicates to cull the back-facing surfaces.
	CullBack bool

	// CullFront indicates to cull the front-facing surfaces.
	CullFront bool

	// The fixed texture slots. A nil slot is simply unused.

	// Diffuse is the color texture for the surface.
	Diffuse Texture

	// Normal is the normal-map texture.
	Normal Texture

	// Roughness is the roughness-map texture.
	Roughness Texture

	// Metallic is the metallic-map texture.
	Metallic Texture

	// Occlusion is the ambient-occlusion texture.
	Occlusion Texture

	// Emission is the emissive-map texture.
	Emission Texture
}

// Defaults sets default surface parameters.
func (mb *MaterialBase) Defaults() {
	mb.Color = color.RGBA{128, 128, 128, 255}
	mb.Emissive = color.RGBA{}
	mb.Shiny = 30
	mb.Reflective = 1
	mb.Bright = 1
	mb.Tiling.Defaults()
	mb.CullBack = true
}

// NewMaterial returns a new [MaterialBase] with the given name
// and default parameters.
func NewMaterial(name string) *MaterialBase {
	mb := &MaterialBase{Name: name}
	mb.Defaults()
	return mb
}

func (mb *MaterialBase) AsMaterialBase() *MaterialBase { return mb }

func (mb *MaterialBase) Kind() Kind { return MaterialKind }

// Release resets the texture slot pointers. It does not release the
// textures themselves: their lifetime is arbitrated separately, since
// they may be shared with other materials.
func (mb *MaterialBase) Release() {
	mb.Diffuse = nil
	mb.Normal = nil
	mb.Roughness = nil
	mb.Metallic = nil
	mb.Occlusion = nil
	mb.Emission = nil
}

// IsTransparent returns true if the diffuse texture says it is,
// or if the color has alpha < 255.
func (mb *MaterialBase) IsTransparent() bool {
	if mb.Diffuse != nil {
		return mb.Diffuse.AsTextureBase().Transparent
	}
	return mb.Color.A < 255
}

// Slots returns the populated fixed texture slots, in slot order.
func (mb *MaterialBase) Slots() []Texture {
	var ts []Texture
	for _, tx := range []Texture{mb.Diffuse, mb.Normal, mb.Roughness, mb.Metallic, mb.Occlusion, mb.Emission} {
		if tx != nil {
			ts = append(ts, tx)
		}
	}
	return ts
}

// ShaderMaterial is a material driven by custom shader code, with an
// open-ended table of uniform parameters. Texture-valued uniforms are
// recorded in an explicit reference list as they are set, implementing
// [TextureReferencer].
type ShaderMaterial struct {
	MaterialBase

	// Code is the shader source for this material.
	Code string

	// Uniforms is the table of uniform parameter values, by name.
	Uniforms map[string]any

	refs []Texture
}

// NewShaderMaterial returns a new [ShaderMaterial] with the given name
// and shader code, and default parameters.
func NewShaderMaterial(name, code string) *ShaderMaterial {
	sm := &ShaderMaterial{Code: code, Uniforms: map[string]any{}}
	sm.Name = name
	sm.MaterialBase.Defaults()
	return sm
}

// SetUniform sets the given uniform parameter. Texture and []Texture
// values are additionally recorded as texture references.
func (sm *ShaderMaterial) SetUniform(name string, val any) {
	if sm.Uniforms == nil {
		sm.Uniforms = map[string]any{}
	}
	sm.Uniforms[name] = val
	switch v := val.(type) {
	case Texture:
		sm.refs = append(sm.refs, v)
	case []Texture:
		sm.refs = append(sm.refs, v...)
	}
}

// TextureRefs returns the textures referenced by uniform parameters.
func (sm *ShaderMaterial) TextureRefs() []Texture { return sm.refs }

// Release drops the uniform table and texture references along with
// the fixed slots.
func (sm *ShaderMaterial) Release() {
	sm.MaterialBase.Release()
	sm.Uniforms = nil
	sm.refs = nil
}

var _ TextureReferencer = &ShaderMaterial{}
