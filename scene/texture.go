// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "image"

// Texture is the interface for all textures.
type Texture interface {
	Resource

	// AsTextureBase returns the [TextureBase] for this texture,
	// which contains the core data and functionality.
	AsTextureBase() *TextureBase

	// Image returns the image for the texture in the [image.RGBA]
	// format used internally, or nil if not available.
	Image() *image.RGBA
}

// TextureBase is the base texture implementation. It uses an [image.RGBA]
// as the underlying image storage to facilitate interface with the GPU.
type TextureBase struct {

	// Name is the name of the texture, used in diagnostic reports.
	Name string

	// Transparent is whether the texture has transparency.
	Transparent bool

	// RGBA is the cached internal representation of the image.
	RGBA *image.RGBA
}

func (tx *TextureBase) AsTextureBase() *TextureBase { return tx }

func (tx *TextureBase) Image() *image.RGBA { return tx.RGBA }

func (tx *TextureBase) Kind() Kind { return TextureKind }

// Release drops the cached image data. Concrete types that hold device
// memory free it as well.
func (tx *TextureBase) Release() {
	tx.RGBA = nil
}

// Bytes returns the estimated device memory for the texture,
// 4 bytes per pixel, or 0 if no image is set.
func (tx *TextureBase) Bytes() int {
	if tx.RGBA == nil {
		return 0
	}
	sz := tx.RGBA.Rect.Size()
	return 4 * sz.X * sz.Y
}
